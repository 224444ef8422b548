package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/core"
	"github.com/workman-lang/workman/internal/infer"
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

func lowerOK(t *testing.T, src string) *core.Program {
	t.Helper()
	prog := parseOK(t, src)
	inf := infer.New(nil)
	env := infer.NewEnv()
	infer.DefineNatives(env)
	inf.InferProgram(prog, env)
	require.Empty(t, inf.Diagnostics())

	lowered, err := core.NewLowerer(inf.ADTEnv(), inf.Marks(), inf.MatchCoverage()).LowerProgram(prog)
	require.NoError(t, err)
	return lowered
}

func TestLowerArithmeticProducesPrim(t *testing.T) {
	lowered := lowerOK(t, `let x = 1 + 2;`)
	require.Len(t, lowered.Decls, 1)
	prim, ok := lowered.Decls[0].Value.(*core.Prim)
	require.True(t, ok)
	assert.Equal(t, core.PrimAdd, prim.Op)
	assert.Len(t, prim.Args, 2)
}

func TestLowerArrowProducesLam(t *testing.T) {
	lowered := lowerOK(t, `let identity = (x) => { x };`)
	require.Len(t, lowered.Decls, 1)
	lam, ok := lowered.Decls[0].Value.(*core.Lam)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, lam.Params)
	_, ok = lam.Body.(*core.Var)
	assert.True(t, ok)
}

func TestLowerRecursiveLetProducesLetRecBinding(t *testing.T) {
	lowered := lowerOK(t, `
let rec fact = (n) => {
  match(n) {
    0 => { 1 },
    m => { n * fact(n - 1) },
  }
};`)
	require.Len(t, lowered.Decls, 1)
	assert.True(t, lowered.Decls[0].Rec)
	require.Len(t, lowered.Decls[0].Bindings, 1)
	assert.Equal(t, "fact", lowered.Decls[0].Bindings[0].Name)
}

func TestLowerConstructorResolvesDeclarationOrderTag(t *testing.T) {
	lowered := lowerOK(t, `
type Option<a> = Some(a) | None;
let n = None;
let s = Some(1);
`)
	require.Len(t, lowered.Decls, 2)
	noneCtor, ok := lowered.Decls[0].Value.(*core.Ctor)
	require.True(t, ok)
	assert.Equal(t, 1, noneCtor.Tag)
	someCtor, ok := lowered.Decls[1].Value.(*core.Ctor)
	require.True(t, ok)
	assert.Equal(t, 0, someCtor.Tag)
}

func TestLowerMatchCarriesExhaustiveFlag(t *testing.T) {
	lowered := lowerOK(t, `
type Option<a> = Some(a) | None;
let unwrapOr = (opt, default) => {
  match(opt) {
    Some(x) => { x },
    None => { default },
  }
};`)
	require.Len(t, lowered.Decls, 1)
	lam := lowered.Decls[0].Value.(*core.Lam)
	m, ok := lam.Body.(*core.Match)
	require.True(t, ok)
	assert.True(t, m.Exhaustive)
	require.Len(t, m.Arms, 2)
	ctorPat, ok := m.Arms[0].Pattern.(*core.CtorPattern)
	require.True(t, ok)
	assert.Equal(t, "Some", ctorPat.Name)
	assert.Equal(t, 0, ctorPat.Tag)
}

func TestLowerBlockStatementsNestIntoLets(t *testing.T) {
	lowered := lowerOK(t, `let x = { let a = 1; let b = 2; a + b };`)
	require.Len(t, lowered.Decls, 1)
	outer, ok := lowered.Decls[0].Value.(*core.Let)
	require.True(t, ok)
	assert.Equal(t, "a", outer.Name)
	inner, ok := outer.Body.(*core.Let)
	require.True(t, ok)
	assert.Equal(t, "b", inner.Name)
	_, ok = inner.Body.(*core.Prim)
	assert.True(t, ok)
}
