// Command wm is a thin demonstration front end over the compiler
// pipeline (lex, parse, infer, lower to Core, lower to MIR). It exists
// for grounding and manual exploration, not as part of the pipeline
// itself.
package main

import (
	"os"

	"github.com/workman-lang/workman/cmd/wm/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
