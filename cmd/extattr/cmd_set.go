package main

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/extattr/extattr"
	"github.com/extattr/extattr/internal/errors"
)

func newSetCommand(gopts *GlobalOptions) *cobra.Command {
	var opts SetOptions

	cmd := &cobra.Command{
		Use:   "set [flags] NAME VALUE FILE [FILE...]",
		Short: "Set the value of an extended attribute",
		Long: `
The "set" command sets the attribute NAME to VALUE for each FILE. By default
the attribute is created if needed and replaced otherwise. With --create the
command fails for files that already have the attribute, with --replace it
fails for files that do not.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if --replace was given and the attribute does not exist.
Exit status is 3 if extended attributes are not supported.
`,
		DisableAutoGenTag: true,
		Args:              cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd.Context(), opts, gopts, args)
		},
	}

	opts.AddFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("create", "replace")
	return cmd
}

// SetOptions collects all options for the set command.
type SetOptions struct {
	Create  bool
	Replace bool
}

func (opts *SetOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVar(&opts.Create, "create", false, "fail if the attribute already exists")
	f.BoolVar(&opts.Replace, "replace", false, "fail if the attribute does not exist")
}

func (opts SetOptions) mode() extattr.CreateMode {
	switch {
	case opts.Create:
		return extattr.CreateOnly
	case opts.Replace:
		return extattr.ReplaceOnly
	default:
		return extattr.CreateIfNeeded
	}
}

func runSet(ctx context.Context, opts SetOptions, gopts *GlobalOptions, args []string) error {
	name, xopts := attrRef(args[0])
	value, files := []byte(args[1]), args[2:]
	xopts.Create = opts.mode()

	return gopts.eachFile(files, func(file string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := gopts.attrs.Set(file, name, value, xopts)
		if err != nil {
			return errors.Fatalf("set %v on %v failed: %v", args[0], file, err)
		}
		gopts.Verbosef("set %v on %v (%v)\n", args[0], file, xopts.Create)
		return nil
	})
}
