package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/workman-lang/workman/internal/present"
)

var typeCmd = &cobra.Command{
	Use:   "type [file]",
	Short: "Type-check a file without lowering it",
	Long: `Lex, parse, and type-check a Workman source file, stopping before
Core or MIR lowering. Exits 1 if parsing, inference, or the constraint
solver reported any diagnostic.`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return typeCheckOnly(args[0])
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(typeCmd)
}

func typeCheckOnly(path string) error {
	tc, err := typecheckFile(path)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s: type-checks\n", green("✓"), tc.file)

	var unsolved int
	for _, h := range tc.view.Holes() {
		if h.Status != present.Filled {
			unsolved++
		}
	}
	if unsolved > 0 {
		fmt.Printf("  %d hole(s) not fully solved\n", unsolved)
	}
	return nil
}
