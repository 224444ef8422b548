package infer

import (
	"fmt"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/types"
)

// declareBuiltinResult registers `Result<value, error>` as an ADT with
// constructors `Ok(value)` (tag 0) and `Err(error)` (tag 1), so pattern
// matching and constructor-call inference for Result reuse the same
// machinery as any user-declared ADT.
func declareBuiltinResult(adtEnv *types.ADTEnv) {
	_ = adtEnv.Declare(&types.ADTInfo{
		Name:   "Result",
		Params: []string{"value", "error"},
		Ctors: []types.CtorInfo{
			{Name: "Ok", Fields: []types.Type{&types.TVar{Name: "value"}}, Tag: 0},
			{Name: "Err", Fields: []types.Type{&types.TVar{Name: "error"}}, Tag: 1},
		},
	})
}

// declareTypeDecl elaborates a surface type declaration into the ADT
// environment and installs each constructor as a function (or nullary
// value) binding in env.
func (inf *Inferencer) declareTypeDecl(td *ast.TypeDecl, env *Env) error {
	if td.IsAlias {
		return inf.declareErrorRowAlias(td)
	}

	scope := newTypeScope()
	for _, p := range td.Params {
		scope.resolve(p)
	}

	ctors := make([]types.CtorInfo, len(td.Members))
	for i, m := range td.Members {
		fields := make([]types.Type, len(m.Fields))
		for j, f := range m.Fields {
			elaborated, err := ElaborateTypeExpr(f, inf.adtEnv, scope)
			if err != nil {
				return err
			}
			fields[j] = elaborated
		}
		ctors[i] = types.CtorInfo{Name: m.Name, Fields: fields, Tag: i}
	}

	info := &types.ADTInfo{Name: td.Name, Params: td.Params, Ctors: ctors}
	if err := inf.adtEnv.Declare(info); err != nil {
		return err
	}

	for _, c := range ctors {
		inf.defineCtorBinding(env, info, c)
	}
	return nil
}

func (inf *Inferencer) defineCtorBinding(env *Env, info *types.ADTInfo, c types.CtorInfo) {
	resultType := Type(info.Name, paramVars(info.Params))
	if len(c.Fields) == 0 {
		env.Define(c.Name, &types.Scheme{Quantifiers: info.Params, Body: resultType})
		return
	}
	env.Define(c.Name, &types.Scheme{
		Quantifiers: info.Params,
		Body:        &types.TFunc{Params: c.Fields, Return: resultType},
	})
}

func paramVars(params []string) []types.Type {
	out := make([]types.Type, len(params))
	for i, p := range params {
		out[i] = &types.TVar{Name: p}
	}
	return out
}

// declareErrorRowAlias elaborates `type Err = <Case, ...>;` into a named
// error-row scheme the solver and presenter can look up by name; aliases
// do not introduce constructors or ADT entries of their own, since an
// error row is matched structurally, not nominally.
func (inf *Inferencer) declareErrorRowAlias(td *ast.TypeDecl) error {
	scope := newTypeScope()
	for _, p := range td.Params {
		scope.resolve(p)
	}
	elaborated, err := ElaborateTypeExpr(td.Alias, inf.adtEnv, scope)
	if err != nil {
		return err
	}
	row, ok := elaborated.(*types.TErrorRow)
	if !ok {
		return fmt.Errorf("type alias %q must elaborate to an error row", td.Name)
	}
	inf.rowAliases[td.Name] = row
	return nil
}
