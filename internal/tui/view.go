package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	docStyle         = lipgloss.NewStyle().Margin(0, 1)
	selectedStyle    = lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255"))
	faintStyle       = lipgloss.NewStyle().Faint(true)
	warningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	titleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	pidStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	commandStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	countStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	targetStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	detailPaneStyle  = paneStyle.BorderForeground(lipgloss.Color("63")).Padding(1, 2)
	detailTitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	detailLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true).Width(10).Align(lipgloss.Right)
	detailValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

const viewHeight = 12

func (m model) View() string {
	if m.showDetails {
		return m.renderDetailsView()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())

	if len(m.groups) == 0 {
		b.WriteString("  No processes hold " + m.title() + ".\n")
		b.WriteString("\n" + m.help.View(m.keys))
		return docStyle.Render(b.String())
	}
	if len(m.filtered) == 0 {
		b.WriteString("  No results...\n")
		b.WriteString("\n" + m.help.View(m.keys))
		return docStyle.Render(b.String())
	}

	start := m.cursor - viewHeight/2
	if start < 0 {
		start = 0
	}
	end := start + viewHeight
	if end > len(m.filtered) {
		end = len(m.filtered)
		start = end - viewHeight
		if start < 0 {
			start = 0
		}
	}

	for i := start; i < end; i++ {
		g := m.filtered[i]
		pids := strings.Join(g.pids, ",")
		count := fmt.Sprintf("%d", len(g.targets))
		if i == m.cursor {
			line := fmt.Sprintf("%s %s  %s", pids, g.cmdline, count)
			b.WriteString(selectedStyle.Render("❯ "+line) + "\n")
			continue
		}
		line := fmt.Sprintf("%s %s  %s", pidStyle.Render(pids), commandStyle.Render(g.cmdline), countStyle.Render(count))
		b.WriteString("  " + line + "\n")
	}

	if m.textInput.Focused() {
		b.WriteString("\n" + faintStyle.Render(" enter/esc to exit filter"))
	} else {
		b.WriteString("\n" + m.help.View(m.keys))
	}
	return docStyle.Render(b.String())
}

func (m model) title() string {
	if m.opts.Title == "" {
		return "deleted files"
	}
	return m.opts.Title
}

func (m model) renderHeader() string {
	var b strings.Builder
	pidCount := 0
	for _, g := range m.groups {
		pidCount += len(g.pids)
	}

	summary := fmt.Sprintf("(%d/%d groups, %d processes)", len(m.filtered), len(m.groups), pidCount)
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("Processes holding "+m.title()), faintStyle.Render(summary))
	fmt.Fprintf(&b, "Filter: %s\n", m.textInput.View())
	if m.opts.Warning != "" {
		b.WriteString(warningStyle.Render(m.opts.Warning) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m model) renderDetailsView() string {
	g, _ := m.selected()

	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(g.cmdline) + "\n\n")
	if m.details == "" {
		b.WriteString("  Loading...")
	} else {
		b.WriteString(m.viewport.View())
	}
	b.WriteString("\n" + faintStyle.Render(" esc/enter: back • ↑/↓: scroll"))
	return docStyle.Render(detailPaneStyle.Render(b.String()))
}

// writeDetailLines renders "Label:\tvalue" lines with an aligned label column.
func writeDetailLines(b *strings.Builder, lines []string) {
	for _, line := range lines {
		label, value, ok := strings.Cut(line, "\t")
		if !ok {
			b.WriteString(detailValueStyle.Render(line) + "\n")
			continue
		}
		b.WriteString(detailLabelStyle.Render(label) + " " + detailValueStyle.Render(value) + "\n")
	}
}
