package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workman-lang/workman/internal/mir"
)

var (
	compileOutDir  string
	compileBackend string
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Lower a file to MIR and write it out",
	Long: `Run the full pipeline against a file and write its lowered MIR to
--out-dir as a text dump: a single <name>.mir file holding the tag tables
followed by every lowered function.

There is no code generator behind --backend: MIR here has no executing
target, so the flag is recorded in the dump's header rather than driving
an actual js/zig emitter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		return compileFile(args[0])
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&compileOutDir, "out-dir", ".", "directory to write the lowered MIR dump into")
	compileCmd.Flags().StringVar(&compileBackend, "backend", "js", "backend label recorded in the dump header (js or zig)")
}

func compileFile(path string) error {
	if compileBackend != "js" && compileBackend != "zig" {
		return usageErrorf("unknown backend %q (use js or zig)", compileBackend)
	}

	lw, err := lowerFile(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(compileOutDir, 0755); err != nil {
		return usageErrorf("creating %s: %s", compileOutDir, err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := filepath.Join(compileOutDir, base+".mir")

	var b strings.Builder
	fmt.Fprintf(&b, "// wm MIR dump of %s (backend: %s)\n\n", path, compileBackend)
	writeTagTables(&b, lw.mirProg)
	writeFuncs(&b, lw.mirProg)

	if err := os.WriteFile(outPath, []byte(b.String()), 0644); err != nil {
		return usageErrorf("writing %s: %s", outPath, err)
	}

	fmt.Printf("%s %s -> %s\n", green("✓"), path, outPath)
	return nil
}

func writeTagTables(b *strings.Builder, prog *mir.Program) {
	if len(prog.TagTables) == 0 {
		return
	}
	fmt.Fprintln(b, "-- tag tables --")
	names := make([]string, 0, len(prog.TagTables))
	for name := range prog.TagTables {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(b, "%s:\n", name)
		for _, c := range prog.TagTables[name].Ctors {
			fmt.Fprintf(b, "  %d %s/%d\n", c.Tag, c.Name, c.Arity)
		}
	}
	fmt.Fprintln(b)
}

func writeFuncs(b *strings.Builder, prog *mir.Program) {
	fmt.Fprintln(b, "-- functions --")
	for _, fn := range prog.Funcs {
		fmt.Fprintf(b, "func %s(%s):\n", fn.Name, strings.Join(fn.Params, ", "))
		for _, instr := range fn.Body {
			fmt.Fprintf(b, "  %s\n", instr.String())
		}
		if fn.Continue != nil {
			fmt.Fprintf(b, "  continue(%s)\n", strings.Join(fn.Continue, ", "))
		} else {
			fmt.Fprintf(b, "  return %s\n", fn.Result)
		}
		fmt.Fprintln(b)
	}
}
