package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/w31r4/deluse/internal/ignore"
	"github.com/w31r4/deluse/internal/report"
	"github.com/w31r4/deluse/internal/scan"
	"github.com/w31r4/deluse/internal/service"
	"github.com/w31r4/deluse/internal/tui"
)

var (
	geteuid    = os.Geteuid
	runBrowser = tui.Run
)

func run(ctx context.Context, v variant, opts *Options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	rules, err := ignore.New(opts.IgnorePatterns, opts.IgnoreLiterals)
	if err != nil {
		return err
	}

	fs, err := scan.NewFS(opts.ProcRoot)
	if err != nil {
		return fmt.Errorf("opening %s: %w", opts.ProcRoot, err)
	}
	pids, err := fs.PIDs()
	if err != nil {
		return fmt.Errorf("listing processes in %s: %w", opts.ProcRoot, err)
	}
	log.Debugf("scanning %d processes in %s for %s", len(pids), fs.Root(), v.what)

	usage, readFailure := report.Aggregate(pids, v.newScanner(fs, rules), fs, fs.SelfIDs())
	log.Debugf("%d processes in %d groups use %s", usage.PIDCount(), len(usage), v.what)

	warning := ""
	if readFailure {
		warning = v.permissionWarning(geteuid())
	}

	if opts.Interactive {
		return browse(usage, v, opts, warning)
	}

	if len(usage) > 0 {
		if opts.MachineReadable {
			fmt.Fprintln(stdout, report.Machine(usage))
		} else {
			fmt.Fprintln(stdout, report.Human(usage, opts.ShowItems))
		}

		if opts.Services {
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, resolveServices(ctx, opts, usage))
		}
	}

	if warning != "" {
		fmt.Fprintln(stderr, warning)
	}
	return nil
}

// resolveServices never fails: a broken backend yields a one-line
// explanation in place of the unit list.
func resolveServices(ctx context.Context, opts *Options, usage report.Usage) string {
	q, err := service.New(opts.ServiceBackend, opts.ProcRoot, opts.ServiceTimeout)
	if err != nil {
		return (&service.QueryError{Querier: opts.ServiceBackend, Err: err}).Error()
	}
	defer closeQuerier(q)

	log.Debugf("resolving services with %s", q.Name())
	return service.Resolve(ctx, q, usage)
}

func browse(usage report.Usage, v variant, opts *Options, warning string) error {
	q, err := service.New(opts.ServiceBackend, opts.ProcRoot, opts.ServiceTimeout)
	if err != nil {
		log.Warnf("service lookup disabled: %v", err)
	} else {
		defer closeQuerier(q)
	}

	return runBrowser(usage, tui.Options{
		Title:    v.what,
		Warning:  warning,
		ProcRoot: opts.ProcRoot,
		Querier:  q,
	})
}

func closeQuerier(q service.Querier) {
	if c, ok := q.(io.Closer); ok {
		if err := c.Close(); err != nil {
			log.Debugf("closing %s: %v", q.Name(), err)
		}
	}
}
