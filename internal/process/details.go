// Package process collects live per-process details shown next to a report entry.
package process

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/common"
	"github.com/shirou/gopsutil/v3/process"
)

const (
	lookupTimeout = 900 * time.Millisecond
	exeDeleted    = " (deleted)"
)

// Details is a snapshot of one process as gopsutil sees it. Fields whose
// lookup failed stay zero and the first such error is kept in Err.
type Details struct {
	PID        int32
	Name       string
	User       string
	Status     string
	Exe        string
	ExeDeleted bool
	Started    time.Time
	RSS        uint64
	Threads    int32
	Gone       bool
	Err        error
}

// Lookup reads details for pid below procRoot. Lookups are bounded by a
// short timeout and answered from a small cache while the process is alive.
func Lookup(ctx context.Context, procRoot, pid string) *Details {
	n, err := strconv.ParseInt(pid, 10, 32)
	if err != nil {
		return &Details{Err: err}
	}

	ctx, cancel := context.WithTimeout(withProcRoot(ctx, procRoot), lookupTimeout)
	defer cancel()

	p, err := process.NewProcessWithContext(ctx, int32(n))
	if err != nil {
		return &Details{PID: int32(n), Gone: errors.Is(err, process.ErrorProcessNotRunning), Err: err}
	}

	key := cacheKey{pid: p.Pid}
	if created, err := p.CreateTimeWithContext(ctx); err == nil {
		key.createTime = created
	}

	now := time.Now()
	if d, ok := details.get(key, now); ok {
		return d
	}

	d := collect(ctx, p)
	details.put(key, d, now)
	return d
}

func withProcRoot(ctx context.Context, procRoot string) context.Context {
	if procRoot == "" {
		return ctx
	}
	return context.WithValue(ctx, common.EnvKey, common.EnvMap{common.HostProcEnvKey: procRoot})
}

func collect(ctx context.Context, p *process.Process) *Details {
	d := &Details{PID: p.Pid}
	keep := func(err error) {
		if err != nil && d.Err == nil {
			d.Err = err
		}
	}

	name, err := p.NameWithContext(ctx)
	keep(err)
	d.Name = name

	user, err := p.UsernameWithContext(ctx)
	keep(err)
	d.User = user

	if st, err := p.StatusWithContext(ctx); err == nil {
		d.Status = strings.Join(st, ",")
	} else {
		keep(err)
	}

	exe, err := p.ExeWithContext(ctx)
	keep(err)
	d.Exe, d.ExeDeleted = splitDeletedExe(exe)

	if created, err := p.CreateTimeWithContext(ctx); err == nil {
		d.Started = time.UnixMilli(created)
	} else {
		keep(err)
	}

	if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		d.RSS = mem.RSS
	} else {
		keep(err)
	}

	threads, err := p.NumThreadsWithContext(ctx)
	keep(err)
	d.Threads = threads

	return d
}

// splitDeletedExe strips the kernel's " (deleted)" suffix from an exe link.
func splitDeletedExe(exe string) (string, bool) {
	if strings.HasSuffix(exe, exeDeleted) {
		return strings.TrimSuffix(exe, exeDeleted), true
	}
	return exe, false
}
