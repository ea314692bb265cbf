package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/prometheus/procfs"
	log "github.com/sirupsen/logrus"
)

// CgroupQuerier reads the owning unit from the process's cgroup membership.
// It needs neither systemd's bus nor its CLI, so it also works against a
// host proc mount from inside a container.
type CgroupQuerier struct {
	fs procfs.FS
}

// NewCgroupQuerier returns a querier reading cgroup files below procRoot.
// It fails when procRoot is not a usable proc mount.
func NewCgroupQuerier(procRoot string) (*CgroupQuerier, error) {
	fs, err := procfs.NewFS(procRoot)
	if err != nil {
		return nil, err
	}
	return &CgroupQuerier{fs: fs}, nil
}

func (q *CgroupQuerier) Name() string { return "cgroup" }

// Unit never fails as a whole: an unreadable cgroup file only means this
// process has no known unit.
func (q *CgroupQuerier) Unit(_ context.Context, pid string) (string, error) {
	n, err := strconv.Atoi(pid)
	if err != nil {
		return "", nil
	}
	p, err := q.fs.Proc(n)
	if err != nil {
		log.Debugf("cgroup of %s: %v", pid, err)
		return "", nil
	}
	groups, err := p.Cgroups()
	if err != nil {
		log.Debugf("cgroup of %s: %v", pid, err)
		return "", nil
	}

	paths := make([]string, 0, len(groups))
	for _, g := range groups {
		paths = append(paths, g.Path)
	}
	return unitFromCgroupPaths(paths), nil
}

func unitFromCgroupPaths(paths []string) string {
	var candidates []string

	for _, path := range paths {
		// The deepest *.service segment is the most specific unit.
		unit := ""
		for _, seg := range strings.Split(path, "/") {
			if strings.HasSuffix(seg, ".service") {
				unit = seg
			}
		}
		if unit != "" {
			candidates = append(candidates, unit)
		}
	}

	return pickUnitCandidate(candidates)
}

func pickUnitCandidate(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}

	// Skip the per-user manager (user@UID.service) when a hierarchy names
	// something more specific.
	for i := len(candidates) - 1; i >= 0; i-- {
		if !strings.HasPrefix(candidates[i], "user@") {
			return candidates[i]
		}
	}
	return candidates[len(candidates)-1]
}
