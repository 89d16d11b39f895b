package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/extattr/extattr/internal/errors"
)

func newGetCommand(gopts *GlobalOptions) *cobra.Command {
	var opts GetOptions

	cmd := &cobra.Command{
		Use:   "get [flags] NAME FILE [FILE...]",
		Short: "Print the value of an extended attribute",
		Long: `
The "get" command prints the value of the attribute NAME for each FILE. When
stdout is a terminal, values containing control characters are quoted.
Otherwise the value of a single file is written unchanged.

On Linux, a NAME starting with a namespace ("user.comment") selects that
namespace, so names printed by "ls" can be passed on as they are.

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
			return runGet(cmd.Context(), opts, gopts, args)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// GetOptions collects all options for the get command.
type GetOptions struct {
	Size bool
}

func (opts *GetOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Size, "size", "s", false, "print the size of the value instead of the value")
}

type jsonValue struct {
	MessageType string `json:"message_type"` // attribute
	Path        string `json:"path"`
	Name        string `json:"name"`
	Size        int    `json:"size"`
	Value       []byte `json:"value,omitempty"`
}

func runGet(ctx context.Context, opts GetOptions, gopts *GlobalOptions, args []string) error {
	name, xopts := attrRef(args[0])
	files := args[1:]
	raw := len(files) == 1 && !gopts.isTerminal()
	enc := json.NewEncoder(gopts.stdout)

	return gopts.eachFile(files, func(file string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		var value []byte
		var size int
		var err error
		if opts.Size {
			size, err = gopts.attrs.Len(file, name, xopts)
		} else {
			value, err = gopts.attrs.GetAll(file, name, xopts)
			size = len(value)
		}
		if err != nil {
			return errors.Fatalf("get %v from %v failed: %v", args[0], file, err)
		}

		switch {
		case gopts.JSON:
			return enc.Encode(jsonValue{
				MessageType: "attribute",
				Path:        file,
				Name:        args[0],
				Size:        size,
				Value:       value,
			})
		case opts.Size && len(files) == 1:
			gopts.Printf("%d\n", size)
		case opts.Size:
			gopts.Printf("%s: %d\n", file, size)
		case raw:
			gopts.Printf("%s", value)
		case len(files) == 1:
			gopts.Printf("%s\n", formatValue(value))
		default:
			gopts.Printf("%s: %s\n", file, formatValue(value))
		}
		return nil
	})
}
