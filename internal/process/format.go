package process

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lines renders d as "Label:\tvalue" rows for a details pane.
func (d *Details) Lines() []string {
	if d.Gone {
		return []string{fmt.Sprintf("PID %d:\t(exited)", d.PID)}
	}
	if d.PID == 0 {
		return []string{"Process:\t" + unavailable(d.Err)}
	}

	lines := make([]string, 0, 7)
	lines = append(lines, fmt.Sprintf("PID:\t%d %s", d.PID, orNA(d.Name)))
	lines = append(lines, "User:\t"+orNA(d.User))
	lines = append(lines, "Status:\t"+orNA(d.Status))

	exe := orNA(d.Exe)
	if d.ExeDeleted {
		exe += " (replaced on disk)"
	}
	lines = append(lines, "Exe:\t"+exe)

	if d.Started.IsZero() {
		lines = append(lines, "Started:\t(n/a)")
	} else {
		lines = append(lines, "Started:\t"+d.Started.Format("2006-01-02 15:04:05"))
	}
	if d.RSS > 0 {
		lines = append(lines, "Memory:\tRSS "+formatBytesIEC(d.RSS))
	} else {
		lines = append(lines, "Memory:\t(n/a)")
	}
	lines = append(lines, fmt.Sprintf("Threads:\t%d", d.Threads))
	return lines
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(n/a)"
	}
	return s
}

func unavailable(err error) string {
	if err == nil {
		return "(unavailable)"
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		return "(unavailable)"
	}
	return "(unavailable: " + truncateRunes(msg, 90) + ")"
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}

func formatBytesIEC(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}

	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	value := float64(b) / float64(div)
	suffix := "KMGTPE"[exp]
	return fmt.Sprintf("%.1f %ciB", value, suffix)
}
