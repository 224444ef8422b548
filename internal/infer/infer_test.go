package infer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/infer"
	"github.com/workman-lang/workman/internal/parser"
	"github.com/workman-lang/workman/internal/solver"
	"github.com/workman-lang/workman/internal/types"
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

func newInferEnv() *infer.Env {
	env := infer.NewEnv()
	infer.DefineNatives(env)
	return env
}

func TestInferLiteralBinding(t *testing.T) {
	prog := parseOK(t, `let x = 1;`)
	inf := infer.New(nil)
	env := inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())
	scheme, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.Int, scheme.Body)
}

func TestInferArrowGeneralizesOverUnconstrainedParam(t *testing.T) {
	prog := parseOK(t, `let identity = (x) => { x };`)
	inf := infer.New(nil)
	env := inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())
	scheme, ok := env.Lookup("identity")
	require.True(t, ok)
	require.Len(t, scheme.Quantifiers, 1)
	fn, ok := scheme.Body.(*types.TFunc)
	require.True(t, ok)
	assert.Equal(t, fn.Params[0], fn.Return)
}

func TestInferArithmeticCall(t *testing.T) {
	prog := parseOK(t, `let x = 1 + 2;`)
	inf := infer.New(nil)
	env := inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())
	scheme, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, types.Int, scheme.Body)
}

func TestInferRecursiveLetSelfCall(t *testing.T) {
	prog := parseOK(t, `
let rec fact = (n) => {
  match(n) {
    0 => { 1 },
    m => { n * fact(n - 1) },
  }
};`)
	inf := infer.New(nil)
	env := newInferEnv()
	env = inf.InferProgram(prog, env)
	require.Empty(t, inf.Diagnostics())
	scheme, ok := env.Lookup("fact")
	require.True(t, ok)
	fn, ok := scheme.Body.(*types.TFunc)
	require.True(t, ok)
	assert.Equal(t, types.Int, fn.Params[0])
	assert.Equal(t, types.Int, fn.Return)
}

func TestInferADTConstructorAndMatch(t *testing.T) {
	prog := parseOK(t, `
type Option<a> = Some(a) | None;
let unwrapOr = (opt, default) => {
  match(opt) {
    Some(x) => { x },
    None => { default },
  }
};`)
	inf := infer.New(nil)
	env := inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())
	scheme, ok := env.Lookup("unwrapOr")
	require.True(t, ok)
	assert.Len(t, scheme.Quantifiers, 1)
}

func TestInferNonExhaustiveMatchReportsMissingConstructor(t *testing.T) {
	prog := parseOK(t, `
type Option<a> = Some(a) | None;
let unwrap = (opt) => {
  match(opt) {
    Some(x) => { x },
  }
};`)
	inf := infer.New(nil)
	inf.InferProgram(prog, newInferEnv())
	require.NotEmpty(t, inf.Diagnostics())
	assert.Equal(t, "TC004", string(inf.Diagnostics()[0].Code))
}

func TestInferUnboundVariableReported(t *testing.T) {
	prog := parseOK(t, `let x = y;`)
	inf := infer.New(nil)
	inf.InferProgram(prog, newInferEnv())
	require.NotEmpty(t, inf.Diagnostics())
	assert.Equal(t, "TC002", string(inf.Diagnostics()[0].Code))
}

func TestInferDivisionEmitsResultWithDivByZeroRow(t *testing.T) {
	prog := parseOK(t, `let x = 10 / 2;`)
	inf := infer.New(nil)
	env := inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())
	scheme, ok := env.Lookup("x")
	require.True(t, ok)
	value, row, ok := types.AsResult(scheme.Body)
	require.True(t, ok)
	assert.Equal(t, types.Int, value)
	assert.True(t, row.Cases["DivByZero"] != nil)
}

func TestInferFieldAccessUnifiesOpenRecord(t *testing.T) {
	prog := parseOK(t, `let getName = (r) => { r.name };`)
	inf := infer.New(nil)
	env := inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())
	scheme, ok := env.Lookup("getName")
	require.True(t, ok)
	fn, ok := scheme.Body.(*types.TFunc)
	require.True(t, ok)
	rec, ok := fn.Params[0].(*types.TRecord)
	require.True(t, ok)
	assert.Contains(t, rec.Fields, "name")
	assert.NotEmpty(t, rec.Tail)
}

func TestInferDivisionEmitsCallAndNumericStubs(t *testing.T) {
	prog := parseOK(t, `let x = 10 / 2;`)
	inf := infer.New(nil)
	inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())

	var sawCall, sawNumeric int
	for _, c := range inf.Constraints() {
		switch c.(type) {
		case *infer.Call:
			sawCall++
		case *infer.Numeric:
			sawNumeric++
		}
	}
	assert.Equal(t, 1, sawCall)
	assert.Equal(t, 2, sawNumeric)
}

func TestInferFieldAccessEmitsHasFieldStub(t *testing.T) {
	prog := parseOK(t, `let getName = (r) => { r.name };`)
	inf := infer.New(nil)
	inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())

	var found *infer.HasField
	for _, c := range inf.Constraints() {
		if hf, ok := c.(*infer.HasField); ok {
			found = hf
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "name", found.Field)
}

func TestInferExhaustiveMatchEmitsBranchJoinStub(t *testing.T) {
	prog := parseOK(t, `
type Option<a> = Some(a) | None;
let unwrapOr = (opt, default) => {
  match(opt) {
    Some(x) => { x },
    None => { default },
  }
};`)
	inf := infer.New(nil)
	inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())

	var found *infer.BranchJoin
	for _, c := range inf.Constraints() {
		if bj, ok := c.(*infer.BranchJoin); ok {
			found = bj
		}
	}
	require.NotNil(t, found)
	assert.Len(t, found.Branches, 2)
}

func TestInferAnnotatedBindingEmitsAnnotationStub(t *testing.T) {
	prog := parseOK(t, `let x: Int = 1;`)
	inf := infer.New(nil)
	inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())

	var found *infer.Annotation
	for _, c := range inf.Constraints() {
		if a, ok := c.(*infer.Annotation); ok {
			found = a
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, "Int", found.Expected.String())
}

func TestInferDeclaredErrorRowCoveringBodyPassesBoundaryCheck(t *testing.T) {
	prog := parseOK(t, `let f: (Int) -> Result<Int, <DivByZero>> = (x) => { 10 / x };`)
	inf := infer.New(nil)
	inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())

	res := solver.New(nil).Solve(inf.Constraints())
	assert.Empty(t, res.Diagnostics)
}

func TestInferDeclaredErrorRowNotCoveringBodyFailsBoundaryCheck(t *testing.T) {
	prog := parseOK(t, `let f: (Int) -> Result<Int, <>> = (x) => { 10 / x };`)
	inf := infer.New(nil)
	inf.InferProgram(prog, newInferEnv())
	require.Empty(t, inf.Diagnostics())

	res := solver.New(nil).Solve(inf.Constraints())
	require.NotEmpty(t, res.Diagnostics)
	var sawSLV002 bool
	for _, d := range res.Diagnostics {
		if string(d.Code) == "SLV002" {
			sawSLV002 = true
		}
	}
	assert.True(t, sawSLV002)
}
