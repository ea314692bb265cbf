// Package service maps processes to the systemd units that own them.
package service

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimeout bounds a single unit query.
const DefaultTimeout = 5 * time.Second

//go:generate mockgen -destination=mocks/mock_querier.go -package=mocks github.com/w31r4/deluse/internal/service Querier

// Querier looks up the unit owning a process.
//
// Unit returns "" when no unit owns pid. A non-nil error means the query
// mechanism itself could not run, and no further lookups should be attempted.
type Querier interface {
	Name() string
	Unit(ctx context.Context, pid string) (string, error)
}

// QueryError reports that a querier could not run at all.
type QueryError struct {
	Querier string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("Could not run %s: %v", e.Querier, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Backends lists the accepted querier names.
var Backends = []string{"systemctl", "cgroup", "dbus"}

// New builds the querier registered under backend.
func New(backend, procRoot string, timeout time.Duration) (Querier, error) {
	switch backend {
	case "", "systemctl":
		return NewSystemctlQuerier(&RealExecutor{}, timeout), nil
	case "cgroup":
		q, err := NewCgroupQuerier(procRoot)
		if err != nil {
			return nil, err
		}
		return q, nil
	case "dbus":
		return NewDBusQuerier(timeout), nil
	default:
		return nil, fmt.Errorf("unknown service backend %q (want one of %v)", backend, Backends)
	}
}
