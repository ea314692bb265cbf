package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"

	"github.com/w31r4/deluse/internal/scan"
	"github.com/w31r4/deluse/internal/service"
)

// Options holds the flags shared by every scan command.
type Options struct {
	MachineReadable bool
	Services        bool
	IgnorePatterns  []string
	IgnoreLiterals  []string
	ProcRoot        string
	ServiceBackend  string
	ServiceTimeout  time.Duration
	Interactive     bool
	Debug           bool

	// ShowItems is bound per command (-s/--showfiles, -s/--showlibs).
	ShowItems bool
}

func (o *Options) addFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.MachineReadable, "machine-readable", "m", false, "Output machine readable info")
	fs.BoolVarP(&o.Services, "services", "S", false, "Try to find systemd services for the listed processes")
	fs.StringArrayVarP(&o.IgnorePatterns, "ignore-pattern", "i", nil, "Ignore deleted targets matching `GLOB`. Can be specified multiple times.")
	fs.StringArrayVarP(&o.IgnoreLiterals, "ignore-literal", "I", nil, "Ignore deleted targets named `LITERAL`. Can be specified multiple times.")
	fs.StringVarP(&o.ProcRoot, "proc", "P", scan.DefaultRoot(), "proc filesystem mount `DIR`")
	fs.StringVar(&o.ServiceBackend, "service-backend", "systemctl", fmt.Sprintf("How to look up services: one of %v", service.Backends))
	fs.DurationVar(&o.ServiceTimeout, "service-timeout", service.DefaultTimeout, "Timeout for a single service lookup")
	fs.BoolVarP(&o.Interactive, "interactive", "t", false, "Browse the result in a terminal UI")
	fs.BoolVar(&o.Debug, "debug", false, "Log debug information to stderr")
}

func (o *Options) validate() error {
	if !slices.Contains(service.Backends, o.ServiceBackend) {
		return fmt.Errorf("invalid --service-backend %q: want one of %v", o.ServiceBackend, service.Backends)
	}
	if o.ServiceTimeout <= 0 {
		return fmt.Errorf("invalid --service-timeout %s: must be positive", o.ServiceTimeout)
	}
	if o.ProcRoot == "" {
		return fmt.Errorf("--proc must not be empty")
	}
	return nil
}
