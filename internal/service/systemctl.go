package service

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	log "github.com/sirupsen/logrus"
)

// SystemctlQuerier asks `systemctl status` which unit owns a process.
type SystemctlQuerier struct {
	exec    Executor
	timeout time.Duration
}

// NewSystemctlQuerier returns a querier that runs systemctl through e, waiting
// at most timeout per lookup. A non-positive timeout selects DefaultTimeout.
func NewSystemctlQuerier(e Executor, timeout time.Duration) *SystemctlQuerier {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SystemctlQuerier{exec: e, timeout: timeout}
}

func (q *SystemctlQuerier) Name() string { return "systemctl" }

// Unit runs `systemctl status --no-pager <pid>` and parses its header.
//
// systemctl exits non-zero for inactive units and for pids outside any unit,
// so an exit status alone is not a failure; whatever it printed is parsed.
// Failing to start the binary or running past the timeout is.
func (q *SystemctlQuerier) Unit(ctx context.Context, pid string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	start := time.Now()
	out, err := q.exec.Run(ctx, "systemctl", "status", "--no-pager", pid)
	log.Debugf("systemctl status %s took %s", pid, time.Since(start))

	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", &QueryError{Querier: q.Name(), Err: fmt.Errorf("status of %s: %w", pid, ctxErr)}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return "", &QueryError{Querier: q.Name(), Err: err}
		}
	}

	unit, ok := ParseStatusHeader(pid, string(out))
	if !ok {
		return "", nil
	}
	return unit, nil
}
