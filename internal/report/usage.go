// Package report groups per-process scan results by command line and renders them.
package report

import (
	"sort"

	log "github.com/sirupsen/logrus"
)

// Scanner extracts the deleted targets referenced by one process.
type Scanner interface {
	Scan(pid string) ([]string, error)
}

// CmdlineResolver returns the display command line of a process, or false
// when it cannot be attributed.
type CmdlineResolver interface {
	Cmdline(pid string) (string, bool)
}

// Set is an unordered collection of strings.
type Set map[string]struct{}

// NewSet returns a Set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	s.Add(items...)
	return s
}

// Add inserts items into s.
func (s Set) Add(items ...string) {
	for _, it := range items {
		s[it] = struct{}{}
	}
}

// Sorted returns the members of s in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for it := range s {
		out = append(out, it)
	}
	sort.Strings(out)
	return out
}

// Record is what a group of processes sharing one command line uses.
// Targets is the union over all PIDs; which PID uses which target is not kept.
type Record struct {
	PIDs    Set
	Targets Set
}

// Usage maps a command line to its Record.
type Usage map[string]*Record

// Add merges pid and its targets into the group of cmdline.
func (u Usage) Add(cmdline, pid string, targets ...string) {
	rec, ok := u[cmdline]
	if !ok {
		rec = &Record{PIDs: NewSet(), Targets: NewSet()}
		u[cmdline] = rec
	}
	rec.PIDs.Add(pid)
	rec.Targets.Add(targets...)
}

// Cmdlines returns the group keys sorted.
func (u Usage) Cmdlines() []string {
	out := make([]string, 0, len(u))
	for c := range u {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// PIDCount returns the number of distinct processes across all groups.
func (u Usage) PIDCount() int {
	n := 0
	for _, rec := range u {
		n += len(rec.PIDs)
	}
	return n
}

// Aggregate scans every pid not in exclude and groups the processes that
// reference deleted targets by their command line.
//
// A scanner error marks the scan as incomplete and moves on to the next pid.
// Processes without a resolvable command line are dropped without affecting
// that flag.
func Aggregate(pids []string, scanner Scanner, resolver CmdlineResolver, exclude map[string]struct{}) (Usage, bool) {
	usage := make(Usage)
	readFailure := false

	for _, pid := range pids {
		if _, skip := exclude[pid]; skip {
			continue
		}

		targets, err := scanner.Scan(pid)
		if err != nil {
			log.Debugf("skipping %s: %v", pid, err)
			readFailure = true
			continue
		}
		if len(targets) == 0 {
			continue
		}

		cmdline, ok := resolver.Cmdline(pid)
		if !ok {
			log.Debugf("skipping %s: no command line", pid)
			continue
		}

		usage.Add(cmdline, pid, targets...)
	}

	return usage, readFailure
}
