package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/extattr/extattr"
	"github.com/extattr/extattr/internal/debug"
	"github.com/extattr/extattr/internal/errors"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

var version = "0.1.0-dev (compiled manually)"

// ErrPartial is returned when an operation failed for some of the files.
var ErrPartial = errors.New("operation failed for some files")

func newRootCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extattr",
		Short: "Read and write extended file attributes",
		Long: `
extattr reads, writes, removes and lists extended attributes of files. Names
given without a namespace are placed in the default namespace ("user",
or the value of --namespace / $EXTATTR_NAMESPACE) on systems that have
attribute namespaces.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 2 if an attribute or file does not exist.
Exit status is 3 if extended attributes are not supported.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return gopts.PreRun()
		},
	}

	gopts.AddFlags(cmd.PersistentFlags())
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newGetCommand(gopts),
		newSetCommand(gopts),
		newRmCommand(gopts),
		newLsCommand(gopts),
		newOptionsCommand(gopts),
		newVersionCommand(gopts),
	)

	registerProfiling(cmd)

	return cmd
}

// exitCode maps the error returned by a command to the exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case extattr.IsNotSupported(err):
		return 3
	case extattr.IsNotExist(err):
		return 2
	default:
		return 1
	}
}

func exitMessage(err error) string {
	if errors.IsFatal(err) {
		return err.Error()
	}
	return fmt.Sprintf("%+v", err)
}

func printExitError(gopts *GlobalOptions, code int, message string) {
	if gopts.JSON {
		type jsonExitError struct {
			MessageType string `json:"message_type"` // exit_error
			Code        int    `json:"code"`
			Message     string `json:"message"`
		}

		err := json.NewEncoder(gopts.stderr).Encode(jsonExitError{
			MessageType: "exit_error",
			Code:        code,
			Message:     message,
		})
		if err != nil {
			gopts.Warnf("JSON encode failed: %v\n", err)
		}
		return
	}

	_, _ = fmt.Fprintf(gopts.stderr, "%v\n", message)
}

func main() {
	// install custom global logger into a buffer, if an error occurs
	// we can show the logs
	logBuffer := bytes.NewBuffer(nil)
	log.SetOutput(logBuffer)

	debug.Log("main %#v", os.Args)
	debug.Log("extattr %s compiled with %v on %v/%v",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	gopts := newGlobalOptions()
	ctx := createGlobalContext()
	err := newRootCommand(gopts).ExecuteContext(ctx)
	if err == nil {
		err = ctx.Err()
	}

	code := exitCode(err)
	if code != 0 {
		msg := exitMessage(err)
		if !errors.IsFatal(err) && logBuffer.Len() > 0 {
			msg += "\nalso, the following messages were logged by a library:\n"
			sc := bufio.NewScanner(logBuffer)
			for sc.Scan() {
				msg += fmt.Sprintln(sc.Text())
			}
		}
		printExitError(gopts, code, msg)
	}
	Exit(code)
}
