package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/w31r4/deluse/internal/report"
)

// Resolve groups every pid in usage by its owning unit and renders one
// `pid,pid belong to unit` line per unit, ordered by unit name. Pids
// without a unit are left out.
//
// If q fails as a whole the partial result is discarded and a single line
// describing the failure is returned instead.
func Resolve(ctx context.Context, q Querier, usage report.Usage) string {
	units := make(map[string]report.Set)

	for _, cmdline := range usage.Cmdlines() {
		for _, pid := range usage[cmdline].PIDs.Sorted() {
			unit, err := q.Unit(ctx, pid)
			if err != nil {
				var qErr *QueryError
				if !errors.As(err, &qErr) {
					qErr = &QueryError{Querier: q.Name(), Err: err}
				}
				log.Debugf("service lookup aborted at %s: %v", pid, err)
				return qErr.Error()
			}
			if unit == "" {
				continue
			}
			if units[unit] == nil {
				units[unit] = report.NewSet()
			}
			units[unit].Add(pid)
		}
	}

	names := make([]string, 0, len(units))
	for u := range units {
		names = append(names, u)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, u := range names {
		lines = append(lines, strings.Join(units[u].Sorted(), ",")+" belong to "+u)
	}
	return strings.Join(lines, "\n")
}
