package lower_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/core"
	"github.com/workman-lang/workman/internal/diagnostic"
	"github.com/workman-lang/workman/internal/infer"
	"github.com/workman-lang/workman/internal/lower"
	"github.com/workman-lang/workman/internal/mir"
	"github.com/workman-lang/workman/internal/parser"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := parser.Parse(src, "test.wm",
		parser.WithOperators(parser.StandardOperators()),
		parser.WithPrefixOperators(parser.StandardPrefixOperators()))
	require.Empty(t, errs)
	require.NotNil(t, prog)
	return prog
}

func lowerToMIR(t *testing.T, src string) (*mir.Program, *lower.Lowering) {
	t.Helper()
	prog := parseOK(t, src)
	inf := infer.New(nil)
	env := infer.NewEnv()
	infer.DefineNatives(env)
	inf.InferProgram(prog, env)
	require.Empty(t, inf.Diagnostics())

	coreProg, err := core.NewLowerer(inf.ADTEnv(), inf.Marks(), inf.MatchCoverage()).LowerProgram(prog)
	require.NoError(t, err)

	lw := lower.New(inf.ADTEnv())
	mirProg, err := lw.Lower(coreProg)
	require.NoError(t, err)
	return mirProg, lw
}

func findFunc(t *testing.T, p *mir.Program, name string) *mir.Func {
	t.Helper()
	for _, fn := range p.Funcs {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("no function named %q in lowered program", name)
	return nil
}

func TestLowerArithmeticProducesFlatPrimChain(t *testing.T) {
	prog, _ := lowerToMIR(t, `let x = 1 + 2 * 3;`)
	fn := findFunc(t, prog, "x")
	require.NotEmpty(t, fn.Body)

	var prims int
	for _, instr := range fn.Body {
		if _, ok := instr.(*mir.Prim); ok {
			prims++
		}
	}
	assert.Equal(t, 2, prims)
	assert.Equal(t, fn.Body[len(fn.Body)-1].Dest(), fn.Result)
}

func TestLowerTagTableFollowsDeclarationOrder(t *testing.T) {
	prog, _ := lowerToMIR(t, `
type Option<a> = Some(a) | None;
let n = None;
`)
	table, ok := prog.TagTables["Option"]
	require.True(t, ok)
	require.Len(t, table.Ctors, 2)
	assert.Equal(t, "Some", table.Ctors[0].Name)
	assert.Equal(t, 0, table.Ctors[0].Tag)
	assert.Equal(t, "None", table.Ctors[1].Name)
	assert.Equal(t, 1, table.Ctors[1].Tag)
}

func TestLowerMatchCompilesToIfElseWithGetTag(t *testing.T) {
	prog, _ := lowerToMIR(t, `
type Option<a> = Some(a) | None;
let unwrapOr = (opt, default) => {
  match(opt) {
    Some(x) => { x },
    None => { default },
  }
};`)
	fn := findFunc(t, prog, "unwrapOr")
	ifElse := lastIfElse(t, fn.Body)

	// Some(x)'s tag check and field projection are computed unconditionally
	// against the scrutinee, ahead of the branch itself, rather than gated
	// behind the then-arm: both are safe to compute regardless of which
	// arm the match actually takes.
	var sawGetTag, sawGetField bool
	for _, instr := range fn.Body {
		switch instr.(type) {
		case *mir.GetTag:
			sawGetTag = true
		case *mir.GetField:
			sawGetField = true
		}
	}
	assert.True(t, sawGetTag)
	assert.True(t, sawGetField)
	// The Some(x) arm's body is just `x`, which resolves straight to the
	// already-extracted field atom with no further instructions needed.
	assert.Empty(t, ifElse.ThenInstrs)
}

func lastIfElse(t *testing.T, instrs []mir.Instr) *mir.IfElse {
	t.Helper()
	for i := len(instrs) - 1; i >= 0; i-- {
		if ie, ok := instrs[i].(*mir.IfElse); ok {
			return ie
		}
	}
	t.Fatal("no IfElse instruction found")
	return nil
}

func TestLowerTailRecursiveCallBecomesContinue(t *testing.T) {
	prog, _ := lowerToMIR(t, `
let rec loop = (n, acc) => {
  match(n) {
    0 => { acc },
    m => { loop(n - 1, acc * n) },
  }
};`)
	fn := findFunc(t, prog, "loop")
	assert.True(t, fn.SelfRecursive)

	ifElse := lastIfElse(t, fn.Body)
	require.NotNil(t, ifElse.ElseContinue)
	assert.Len(t, ifElse.ElseContinue, 2)
	assert.Empty(t, ifElse.ElseResult)
}

func TestLowerNonTailRecursionStaysOrdinaryCall(t *testing.T) {
	prog, _ := lowerToMIR(t, `
let rec fact = (n) => {
  match(n) {
    0 => { 1 },
    m => { n * fact(n - 1) },
  }
};`)
	fn := findFunc(t, prog, "fact")
	assert.True(t, fn.SelfRecursive)
	assert.Nil(t, fn.Continue)

	ifElse := lastIfElse(t, fn.Body)
	assert.Nil(t, ifElse.ElseContinue)
	assert.NotEmpty(t, ifElse.ElseResult)

	var sawSelfCall bool
	for _, instr := range ifElse.ElseInstrs {
		if call, ok := instr.(*mir.Call); ok && call.Func == "fact" {
			sawSelfCall = true
		}
	}
	assert.True(t, sawSelfCall)
}

func TestLowerNestedLambdaProducesClosureOverCapturedVar(t *testing.T) {
	prog, _ := lowerToMIR(t, `let adder = (x) => { (y) => { x + y } };`)
	outer := findFunc(t, prog, "adder")

	var closure *mir.MakeClosure
	for _, instr := range outer.Body {
		if c, ok := instr.(*mir.MakeClosure); ok {
			closure = c
		}
	}
	require.NotNil(t, closure)
	assert.Equal(t, outer.Result, closure.Dest())

	inner := findFunc(t, prog, closure.FuncID)
	assert.Equal(t, []string{"x"}, inner.Captures)
	assert.Equal(t, []string{"y"}, inner.Params)
}

func TestLowerStringPatternReportsMIR001(t *testing.T) {
	prog := parseOK(t, `
let greet = (name) => {
  match(name) {
    "world" => { 1 },
    other => { 0 },
  }
};`)
	inf := infer.New(nil)
	env := infer.NewEnv()
	infer.DefineNatives(env)
	inf.InferProgram(prog, env)
	require.Empty(t, inf.Diagnostics())

	coreProg, err := core.NewLowerer(inf.ADTEnv(), inf.Marks(), inf.MatchCoverage()).LowerProgram(prog)
	require.NoError(t, err)

	lw := lower.New(inf.ADTEnv())
	_, err = lw.Lower(coreProg)
	require.NoError(t, err)

	require.NotEmpty(t, lw.Diagnostics())
	assert.Equal(t, diagnostic.MIR001, lw.Diagnostics()[0].Code)
}
