package cmd

import (
	"fmt"
	"os"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/core"
	"github.com/workman-lang/workman/internal/diagnostic"
	"github.com/workman-lang/workman/internal/infer"
	"github.com/workman-lang/workman/internal/lexer"
	"github.com/workman-lang/workman/internal/lower"
	"github.com/workman-lang/workman/internal/mir"
	"github.com/workman-lang/workman/internal/parser"
	"github.com/workman-lang/workman/internal/present"
	"github.com/workman-lang/workman/internal/solver"
	"github.com/workman-lang/workman/internal/token"
)

// parsed is one source file read and parsed, kept together with its text
// so later stages can render diagnostics against the right snippet.
type parsed struct {
	file string
	src  string
	prog *ast.Program
}

func parseFile(path string) (*parsed, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, usageErrorf("%s", err)
	}
	if info.IsDir() {
		return nil, usageErrorf("%s is a directory, expected a .wm file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, usageErrorf("reading %s: %s", path, err)
	}
	src := string(content)

	prog, errs := parser.Parse(src, path,
		parser.WithOperators(parser.StandardOperators()),
		parser.WithPrefixOperators(parser.StandardPrefixOperators()))
	if len(errs) > 0 {
		for _, e := range errs {
			printSourceError(path, src, e)
		}
		return nil, pipelineError{}
	}
	return &parsed{file: path, src: src, prog: prog}, nil
}

// typechecked is a parsed file that has completed inference and
// constraint solving: the inferencer carries the ADT environment, marks,
// and match coverage that Core lowering needs next; solved carries the
// narrowed error rows and boundary diagnostics the solver computed from
// the inferencer's constraint stubs; view is the presentation layer
// reduced from both, for any subcommand that wants per-node types,
// hole solutions, or the constraint trace instead of re-deriving them.
type typechecked struct {
	*parsed
	inf    *infer.Inferencer
	env    *infer.Env
	solved *solver.Result
	view   *present.View
}

// typecheckFile parses and type-checks path, then runs the solver over
// the constraint stubs inference emitted — which is where an error row
// that escapes a function never declared to return Result is actually
// caught — and builds a presentation view over the combined result.
// Diagnostics from either inference or the solver fail the pipeline.
func typecheckFile(path string) (*typechecked, error) {
	p, err := parseFile(path)
	if err != nil {
		return nil, err
	}

	env := infer.NewEnv()
	infer.DefineNatives(env)
	inf := infer.New(nil)
	env = inf.InferProgram(p.prog, env)

	if diags := inf.Diagnostics(); len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprint(os.Stderr, diagnostic.Render(d, p.src))
		}
		return nil, pipelineError{}
	}

	solved := solver.New(nil).Solve(inf.Constraints())
	if len(solved.Diagnostics) > 0 {
		for _, d := range solved.Diagnostics {
			fmt.Fprint(os.Stderr, diagnostic.Render(d, p.src))
		}
		return nil, pipelineError{}
	}

	view := present.Build(inf, solved)
	return &typechecked{parsed: p, inf: inf, env: env, solved: solved, view: view}, nil
}

// lowered is a type-checked file lowered all the way to MIR.
type lowered struct {
	*typechecked
	mirProg *mir.Program
}

func lowerFile(path string) (*lowered, error) {
	tc, err := typecheckFile(path)
	if err != nil {
		return nil, err
	}

	coreProg, err := core.NewLowerer(tc.inf.ADTEnv(), tc.inf.Marks(), tc.inf.MatchCoverage()).LowerProgram(tc.prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), err)
		return nil, pipelineError{}
	}

	lw := lower.New(tc.inf.ADTEnv())
	mirProg, err := lw.Lower(coreProg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red("Error"), err)
		return nil, pipelineError{}
	}
	if diags := lw.Diagnostics(); len(diags) > 0 {
		for _, d := range diags {
			fmt.Fprint(os.Stderr, diagnostic.Render(d, tc.src))
		}
		return nil, pipelineError{}
	}
	return &lowered{typechecked: tc, mirProg: mirProg}, nil
}

// printSourceError renders a lexer or parser error. Neither carries a
// diagnostic.Code, just a message and a span it names differently, so
// this extracts what span it can rather than forcing diagnostic.Render.
func printSourceError(file, src string, err error) {
	var span token.Span
	hasSpan := false

	switch e := err.(type) {
	case *lexer.Error:
		span, hasSpan = e.Span, true
	case *parser.ParseError:
		span, hasSpan = e.Offending.Span, true
	}

	if !hasSpan {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", red("Error"), file, err)
		return
	}

	pos := diagnostic.LineCol(src, span.Start)
	fmt.Fprintf(os.Stderr, "%s: %s:%d:%d: %s\n", red("Error"), file, pos.Line, pos.Column, err)
}
