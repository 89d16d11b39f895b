package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/extattr/extattr"
	"github.com/extattr/extattr/internal/debug"
	"github.com/extattr/extattr/internal/errors"
	"github.com/extattr/extattr/internal/options"
)

// GlobalOptions hold all global options for extattr.
type GlobalOptions struct {
	Namespace string
	Quiet     bool
	Verbose   int
	JSON      bool
	Options   []string

	stdout io.Writer
	stderr io.Writer

	// verbosity is set as follows:
	//  0 means: don't print any messages except errors, this is used when --quiet is specified
	//  1 is the default: print essential messages
	//  2 means: print more messages, this is used when --verbose is specified
	verbosity uint

	extended options.Options
	attrs    *extattr.Attrs
}

func newGlobalOptions() *GlobalOptions {
	return &GlobalOptions{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVarP(&opts.Namespace, "namespace", "n", "", "attribute `namespace` for names given without one (default: $EXTATTR_NAMESPACE or xattr.namespace)")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "only print values and errors")
	f.CountVarP(&opts.Verbose, "verbose", "v", "be verbose (specify multiple times or a level using --verbose=n``)")
	f.BoolVar(&opts.JSON, "json", false, "set output mode to JSON for commands that support it")
	f.StringSliceVarP(&opts.Options, "option", "o", []string{}, "set extended option (`key=value`, can be specified multiple times)")

	opts.Namespace = os.Getenv("EXTATTR_NAMESPACE")
}

// PreRun parses the extended options and sets up the attribute accessor.
func (opts *GlobalOptions) PreRun() error {
	if opts.Quiet && opts.Verbose > 0 {
		return errors.Fatal("--quiet and --verbose cannot be specified at the same time")
	}

	switch {
	case opts.Quiet:
		opts.verbosity = 0
	case opts.Verbose > 0:
		opts.verbosity = 1 + uint(opts.Verbose)
	default:
		opts.verbosity = 1
	}

	var err error
	opts.extended, err = options.Parse(opts.Options)
	if err != nil {
		return err
	}

	cfg, err := extattr.ParseConfig(opts.extended)
	if err != nil {
		return err
	}
	if opts.Namespace != "" {
		cfg.DefaultNamespace = opts.Namespace
	}

	debug.Log("using config %#v", cfg)
	opts.attrs = extattr.New(cfg)
	return nil
}

// Printf writes the message to the configured stdout stream.
func (opts *GlobalOptions) Printf(format string, args ...interface{}) {
	_, err := fmt.Fprintf(opts.stdout, format, args...)
	if err != nil {
		_, _ = fmt.Fprintf(opts.stderr, "unable to write to stdout: %v\n", err)
	}
}

// Verbosef calls Printf to write the message when the verbose flag is set.
func (opts *GlobalOptions) Verbosef(format string, args ...interface{}) {
	if opts.verbosity >= 2 {
		opts.Printf(format, args...)
	}
}

// Warnf writes the message to the configured stderr stream.
func (opts *GlobalOptions) Warnf(format string, args ...interface{}) {
	_, err := fmt.Fprintf(opts.stderr, format, args...)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "unable to write to stderr: %v\n", err)
	}
	debug.Log(format, args...)
}

// isTerminal reports whether stdout is attached to a terminal.
func (opts *GlobalOptions) isTerminal() bool {
	f, ok := opts.stdout.(*os.File)
	return ok && stdoutIsTerminal(f)
}

// eachFile runs fn for all files. Failures are reported and the remaining
// files are processed. The returned error is fatal and keeps the last
// failure as its cause.
func (opts *GlobalOptions) eachFile(files []string, fn func(file string) error) error {
	var failed int
	var last error
	for _, file := range files {
		err := fn(file)
		if err != nil {
			failed++
			last = err
			if len(files) > 1 {
				opts.Warnf("%v\n", err)
			}
		}
	}

	switch {
	case failed == 0:
		return nil
	case len(files) == 1:
		return last
	default:
		return errors.Fatalf("%v (%d of %d): %v", ErrPartial, failed, len(files), last)
	}
}
