package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/extattr/extattr/internal/errors"
)

func newRmCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm NAME FILE [FILE...]",
		Short: "Remove an extended attribute",
		Long: `
The "rm" command removes the attribute NAME from each FILE. On Linux, a NAME
starting with a namespace ("user.comment") selects that namespace.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if the attribute or file does not exist.
Exit status is 3 if extended attributes are not supported.
`,
		DisableAutoGenTag: true,
		Args:              cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRm(cmd.Context(), gopts, args)
		},
	}
	return cmd
}

func runRm(ctx context.Context, gopts *GlobalOptions, args []string) error {
	name, xopts := attrRef(args[0])
	files := args[1:]

	return gopts.eachFile(files, func(file string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := gopts.attrs.Remove(file, name, xopts)
		if err != nil {
			return errors.Fatalf("remove %v from %v failed: %v", args[0], file, err)
		}
		gopts.Verbosef("removed %v from %v\n", args[0], file)
		return nil
	})
}
