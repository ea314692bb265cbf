// Package tui browses a deleted-file report in the terminal.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/w31r4/deluse/internal/process"
	"github.com/w31r4/deluse/internal/report"
	"github.com/w31r4/deluse/internal/service"
)

// Options configures the browser.
type Options struct {
	// Title names what was scanned, e.g. "deleted files" or "deleted libraries".
	Title string
	// Warning is shown above the list when part of the scan could not be read.
	Warning string
	// ProcRoot is handed to per-process lookups.
	ProcRoot string
	// Querier resolves units in the details pane. Nil disables it.
	Querier service.Querier
}

// group is one report line: processes sharing a command line.
type group struct {
	cmdline string
	pids    []string
	targets []string
}

type detailsMsg struct {
	cmdline     string
	content     string
	unitsFailed bool
}

type model struct {
	opts Options

	groups   []group
	filtered []group
	cursor   int

	textInput textinput.Model
	viewport  viewport.Model
	help      help.Model
	keys      keyMap

	showDetails bool
	details     string
	// unitsDisabled is set once the querier failed as a whole.
	unitsDisabled bool

	width, height int
}

func newModel(usage report.Usage, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "Filter by command, pid or path"
	ti.CharLimit = 156
	ti.Width = 40

	groups := make([]group, 0, len(usage))
	for _, cmdline := range usage.Cmdlines() {
		rec := usage[cmdline]
		groups = append(groups, group{
			cmdline: strings.TrimSpace(cmdline),
			pids:    rec.PIDs.Sorted(),
			targets: rec.Targets.Sorted(),
		})
	}

	m := model{
		opts:      opts,
		groups:    groups,
		textInput: ti,
		viewport:  viewport.New(80, 20),
		help:      help.New(),
		keys:      keys,
	}
	m.filtered = m.filterGroups("")
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

// groupSource exposes the groups to the fuzzy finder. Command line, pids and
// targets are all searchable.
type groupSource []group

func (s groupSource) String(i int) string {
	g := s[i]
	return g.cmdline + " " + strings.Join(g.pids, " ") + " " + strings.Join(g.targets, " ")
}

func (s groupSource) Len() int {
	return len(s)
}

func (m *model) filterGroups(filter string) []group {
	if filter == "" {
		return m.groups
	}

	matches := fuzzy.FindFrom(filter, groupSource(m.groups))
	filtered := make([]group, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, m.groups[match.Index])
	}
	return filtered
}

func (m model) selected() (group, bool) {
	if m.cursor < 0 || m.cursor >= len(m.filtered) {
		return group{}, false
	}
	return m.filtered[m.cursor], true
}

// loadDetails looks up every pid of g and, when a querier is configured,
// its unit. It runs off the UI loop.
func loadDetails(g group, opts Options, unitsDisabled bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var b strings.Builder

		queryUnits := opts.Querier != nil && !unitsDisabled
		unitsFailed := false
		for _, pid := range g.pids {
			d := process.Lookup(ctx, opts.ProcRoot, pid)
			lines := d.Lines()

			if queryUnits {
				unit, err := opts.Querier.Unit(ctx, pid)
				switch {
				case err != nil:
					lines = append(lines, "Unit:\t"+err.Error())
					queryUnits = false
					unitsFailed = true
				case unit == "":
					lines = append(lines, "Unit:\t(none)")
				default:
					lines = append(lines, "Unit:\t"+unit)
				}
			}

			writeDetailLines(&b, lines)
			b.WriteString("\n")
		}

		b.WriteString(detailTitleStyle.Render("Deleted targets") + "\n")
		if len(g.targets) == 0 {
			b.WriteString(faintStyle.Render("  (none)") + "\n")
		}
		for _, t := range g.targets {
			b.WriteString("  " + targetStyle.Render(t) + "\n")
		}

		return detailsMsg{cmdline: g.cmdline, content: b.String(), unitsFailed: unitsFailed}
	}
}

// Run shows usage in an interactive browser until the user quits.
func Run(usage report.Usage, opts Options) error {
	_, err := tea.NewProgram(newModel(usage, opts), tea.WithAltScreen()).Run()
	return err
}
