// Package cli wires the scanners, the report and the service lookup into the
// deluse command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewCommand returns the root command.
func NewCommand(version string) *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:   "deluse",
		Short: "Find processes that still use deleted files",
		Long: `deluse lists running processes that keep deleted files open or mapped,
typically after a package upgrade replaced libraries they had loaded.
Processes are grouped by command line.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
			log.SetLevel(log.WarnLevel)
			if opts.Debug {
				log.SetLevel(log.DebugLevel)
			}
			return opts.validate()
		},
	}
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	opts.addFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newVariantCommand(fdVariant, opts),
		newVariantCommand(libsVariant, opts),
	)
	return cmd
}

func newVariantCommand(v variant, opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   v.use,
		Short: v.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().BoolVarP(&opts.ShowItems, v.showFlag, "s", false, v.showUsage)
	return cmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand(version).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
