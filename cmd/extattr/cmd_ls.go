package main

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/extattr/extattr/internal/debug"
	"github.com/extattr/extattr/internal/errors"
)

func newLsCommand(gopts *GlobalOptions) *cobra.Command {
	var opts LsOptions

	cmd := &cobra.Command{
		Use:   "ls [flags] FILE [FILE...]",
		Short: "List the extended attributes of files",
		Long: `
The "ls" command lists the names of the attributes of each FILE. On Linux the
names include their namespace, e.g. "user.comment". With --long the size of
each value and its xxhash64 digest are printed as well.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if a file does not exist.
Exit status is 3 if extended attributes are not supported.
`,
		DisableAutoGenTag: true,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLs(cmd.Context(), opts, gopts, args)
		},
	}

	opts.AddFlags(cmd.Flags())
	return cmd
}

// LsOptions collects all options for the ls command.
type LsOptions struct {
	Long bool
}

func (opts *LsOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.Long, "long", "l", false, "print the size and digest of each value")
}

type lsEntry struct {
	Name   string `json:"name"`
	Size   int    `json:"size,omitempty"`
	Digest string `json:"xxhash,omitempty"`
}

type lsResult struct {
	MessageType string    `json:"message_type"` // list
	Path        string    `json:"path"`
	Attributes  []lsEntry `json:"attributes"`

	err error
}

func listFile(gopts *GlobalOptions, file string, long bool) lsResult {
	res := lsResult{MessageType: "list", Path: file, Attributes: []lsEntry{}}

	names, err := gopts.attrs.ListNames(file)
	if err != nil {
		res.err = errors.Fatalf("list %v failed: %v", file, err)
		return res
	}

	for _, listed := range names {
		entry := lsEntry{Name: listed}
		if long {
			name, xopts := attrRef(listed)
			value, err := gopts.attrs.GetAll(file, name, xopts)
			if err != nil {
				res.err = errors.Fatalf("get %v from %v failed: %v", listed, file, err)
				return res
			}
			entry.Size = len(value)
			entry.Digest = digest(value)
		}
		res.Attributes = append(res.Attributes, entry)
	}
	return res
}

func digest(value []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(value))
}

func runLs(ctx context.Context, opts LsOptions, gopts *GlobalOptions, files []string) error {
	results := make([]lsResult, len(files))

	wg, ctx := errgroup.WithContext(ctx)
	wg.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		i, file := i, file
		wg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = listFile(gopts, file, opts.Long)
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return err
	}
	debug.Log("listed %d files", len(files))

	enc := json.NewEncoder(gopts.stdout)
	i := 0
	return gopts.eachFile(files, func(file string) error {
		res := results[i]
		i++
		if res.err != nil {
			return res.err
		}

		if gopts.JSON {
			return enc.Encode(res)
		}

		indent := ""
		if len(files) > 1 {
			gopts.Printf("%s:\n", file)
			indent = "  "
		}
		for _, e := range res.Attributes {
			if opts.Long {
				gopts.Printf("%s%8d  %s  %s\n", indent, e.Size, e.Digest, e.Name)
			} else {
				gopts.Printf("%s%s\n", indent, e.Name)
			}
		}
		return nil
	})
}
