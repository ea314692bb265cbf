package service

import (
	"fmt"
	"strings"
)

// ParseStatusHeader extracts the unit name from `systemctl status <pid>`
// output. Two header forms are understood:
//
//	sshd.service - OpenSSH Daemon
//	● sshd.service - OpenSSH Daemon
//
// It reports false when systemd says no unit is loaded for pid, or when the
// header carries nothing before the description separator.
func ParseStatusHeader(pid, output string) (string, bool) {
	if strings.Contains(output, fmt.Sprintf("No unit for PID %s is loaded.", pid)) {
		return "", false
	}

	header, _, _ := strings.Cut(output, "\n")
	head, _, _ := strings.Cut(header, " - ")
	fields := strings.Fields(head)
	switch len(fields) {
	case 0:
		return "", false
	case 1:
		return fields[0], true
	default:
		return fields[1], true
	}
}
