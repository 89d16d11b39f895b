//go:build debug

package main

import (
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/extattr/extattr/internal/errors"
)

type profileOptions struct {
	memPath string
	cpuPath string
}

func (opts *profileOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.memPath, "mem-profile", "", "write memory profile to `dir`")
	f.StringVar(&opts.cpuPath, "cpu-profile", "", "write cpu profile to `dir`")
}

type stopper interface {
	Stop()
}

func (opts *profileOptions) start() (stopper, error) {
	switch {
	case opts.memPath != "" && opts.cpuPath != "":
		return nil, errors.Fatal("only one profile (memory or CPU) may be activated at the same time")
	case opts.memPath != "":
		return profile.Start(profile.Quiet, profile.NoShutdownHook, profile.MemProfile, profile.ProfilePath(opts.memPath)), nil
	case opts.cpuPath != "":
		return profile.Start(profile.Quiet, profile.NoShutdownHook, profile.CPUProfile, profile.ProfilePath(opts.cpuPath)), nil
	default:
		return nil, nil
	}
}

func registerProfiling(cmd *cobra.Command) {
	var opts profileOptions
	var prof stopper

	preRun := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		if err := preRun(c, args); err != nil {
			return err
		}

		var err error
		prof, err = opts.start()
		return err
	}
	cmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		if prof != nil {
			prof.Stop()
		}
	}

	opts.AddFlags(cmd.PersistentFlags())
}
