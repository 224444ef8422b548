package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run the full pipeline against a file",
	Long: `Lex, parse, type-check, and lower a Workman source file all the way
to MIR. This is the same pipeline 'wm file.wm' runs without a subcommand;
'wm run' exists for symmetry with the other stage-scoped subcommands.`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return runFile(args[0])
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runFile(path string) error {
	lw, err := lowerFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s: %d function(s), %d declared type(s)\n",
		green("✓"), path, len(lw.mirProg.Funcs), len(lw.mirProg.TagTables))
	return nil
}
