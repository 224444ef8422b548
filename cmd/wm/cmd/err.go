package cmd

import "github.com/spf13/cobra"

var errCmd = &cobra.Command{
	Use:   "err [file]",
	Short: "Report diagnostics only",
	Long: `Run the full pipeline against a file and print nothing but its
diagnostics: no success banner, no instruction counts. Exits 1 if the
pipeline reported anything, 0 otherwise.`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		_, err := lowerFile(args[0])
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(errCmd)
}
