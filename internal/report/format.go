package report

import (
	"fmt"
	"strings"
)

// Human renders one line per group:
//
//	1,2 "cmdline"
//	1,2 "cmdline" uses /a,/b
//
// the second form when showItems is set. Groups are ordered by command line.
func Human(u Usage, showItems bool) string {
	lines := make([]string, 0, len(u))
	for _, cmdline := range u.Cmdlines() {
		rec := u[cmdline]
		pids := strings.Join(rec.PIDs.Sorted(), ",")
		line := fmt.Sprintf(`%s "%s"`, pids, strings.TrimSpace(cmdline))
		if showItems {
			line += " uses " + strings.Join(rec.Targets.Sorted(), ",")
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Machine renders one `pids;targets;cmdline` line per group.
// Empty lists still keep their separator.
func Machine(u Usage) string {
	lines := make([]string, 0, len(u))
	for _, cmdline := range u.Cmdlines() {
		rec := u[cmdline]
		lines = append(lines, strings.Join([]string{
			strings.Join(rec.PIDs.Sorted(), ","),
			strings.Join(rec.Targets.Sorted(), ","),
			strings.TrimSpace(cmdline),
		}, ";"))
	}
	return strings.Join(lines, "\n")
}
