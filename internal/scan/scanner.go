package scan

import (
	"errors"
	"fmt"
	"sort"
)

// DeletedMarker is what the kernel appends to a link target or mapping path
// once the underlying inode has been unlinked.
const DeletedMarker = "(deleted)"

// deletedSuffix is the marker as it appears at the end of an fd link target.
const deletedSuffix = " " + DeletedMarker

// ErrUnreadable is wrapped by every error a Scanner returns when the per-process
// table could not be read, typically because of missing privileges or because
// the process exited mid-scan.
var ErrUnreadable = errors.New("process table unreadable")

// Scanner extracts the deleted targets referenced by one process.
// Results are sorted and free of duplicates.
type Scanner interface {
	Scan(pid string) ([]string, error)
}

type readError struct {
	pid   string
	table string
	err   error
}

func (e *readError) Error() string {
	return fmt.Sprintf("reading %s of %s: %v", e.table, e.pid, e.err)
}

func (e *readError) Unwrap() []error {
	return []error{ErrUnreadable, e.err}
}

func unreadable(pid, table string, err error) error {
	return &readError{pid: pid, table: table, err: err}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
