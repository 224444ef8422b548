package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// usageError marks a failure in how wm was invoked (bad flags, a missing
// or unreadable file) rather than a failure the pipeline itself reported
// (a parse or type error). Execute maps the two to different exit codes.
type usageError struct{ err error }

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// pipelineError marks a failure the compiler pipeline itself reported
// (diagnostics were rendered already); Execute exits 1 without printing
// anything further.
type pipelineError struct{}

func (pipelineError) Error() string { return "pipeline reported errors" }

var rootCmd = &cobra.Command{
	Use:   "wm [file]",
	Short: "Workman compiler front end",
	Long: `wm is a thin command-line front end over the Workman compiler
pipeline: lexing, parsing, type inference, and lowering to Core and MIR.

Running wm against a file is equivalent to 'wm run':

  wm greet.wm

Subcommands expose the individual pipeline stages:

  wm type greet.wm      type-check only
  wm err greet.wm       report diagnostics only
  wm compile greet.wm   lower all the way to MIR and write it out`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		if len(args) == 0 {
			return c.Help()
		}
		return runFile(args[0])
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and returns the process exit code: 0 on
// success, 1 if the pipeline reported diagnostics, 2 on a usage error.
func Execute() int {
	err := rootCmd.Execute()
	switch {
	case err == nil:
		return 0
	case isPipelineError(err):
		return 1
	default:
		// Anything other than a pipelineError is either our own
		// usageError or one of cobra's own arg/flag validation errors;
		// both mean wm was invoked wrong, so both exit 2.
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), err)
		return 2
	}
}

func isUsageError(err error) bool {
	_, ok := err.(*usageError)
	return ok
}

func isPipelineError(err error) bool {
	_, ok := err.(pipelineError)
	return ok
}
