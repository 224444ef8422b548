package infer

import "github.com/workman-lang/workman/internal/types"

// binOpScheme builds the monomorphic scheme `(operand, operand) -> result`
// shared by the native arithmetic, comparison, and boolean operators.
func binOpScheme(operand, result types.Type) *types.Scheme {
	return types.Mono(&types.TFunc{Params: []types.Type{operand, operand}, Return: result})
}

// nativeDivScheme is `(Int, Int) -> Result<Int, <DivByZero>>`, the one
// native binary operator whose result is itself fallible.
func nativeDivScheme() *types.Scheme {
	row := &types.TErrorRow{Cases: map[string]*types.ErrorCase{
		"DivByZero": {Label: "DivByZero"},
	}}
	return types.Mono(&types.TFunc{
		Params: []types.Type{types.Int, types.Int},
		Return: types.Result(types.Int, row),
	})
}

// DefineNatives installs the native operator bindings and print primitive
// into env: `__op_add`, `__op_sub`, `__op_mul`, `__op_div` (fallible),
// `__op_lt/gt/le/ge/eq/ne`, `__op_and/or`, `__prefix_neg`, `__prefix_not`,
// and `print`.
func DefineNatives(env *Env) {
	env.Define("__op_add", binOpScheme(types.Int, types.Int))
	env.Define("__op_sub", binOpScheme(types.Int, types.Int))
	env.Define("__op_mul", binOpScheme(types.Int, types.Int))
	env.Define("__op_div", nativeDivScheme())

	for _, cmp := range []string{"__op_lt", "__op_gt", "__op_le", "__op_ge", "__op_eq", "__op_ne"} {
		env.Define(cmp, binOpScheme(types.Int, types.Bool))
	}

	env.Define("__op_and", binOpScheme(types.Bool, types.Bool))
	env.Define("__op_or", binOpScheme(types.Bool, types.Bool))

	env.Define("__prefix_neg", types.Mono(&types.TFunc{Params: []types.Type{types.Int}, Return: types.Int}))
	env.Define("__prefix_not", types.Mono(&types.TFunc{Params: []types.Type{types.Bool}, Return: types.Bool}))

	fresh := NewFreshFor(env)
	a := fresh.Var()
	env.Define("print", &types.Scheme{
		Quantifiers: []string{a.Name},
		Body:        &types.TFunc{Params: []types.Type{a}, Return: types.Unit},
	})
}

// NewFreshFor returns a fresh-variable generator. Exposed as a function of
// env for symmetry with call sites that only have an environment in
// scope; the generator itself holds no reference to env.
func NewFreshFor(env *Env) *types.Fresh {
	return types.NewFresh()
}
