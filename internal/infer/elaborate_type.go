package infer

import (
	"fmt"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/types"
)

// typeScope tracks the type-variable names already bound within one
// declaration (a type or binding's own parameter list), so repeated
// mentions of the same lowercase name resolve to the same TVar.
type typeScope struct {
	vars map[string]*types.TVar
}

func newTypeScope() *typeScope {
	return &typeScope{vars: map[string]*types.TVar{}}
}

func (s *typeScope) resolve(name string) *types.TVar {
	if v, ok := s.vars[name]; ok {
		return v
	}
	v := &types.TVar{Name: name}
	s.vars[name] = v
	return v
}

// ElaborateTypeExpr converts a surface TypeExpr into an internal/types.Type,
// resolving named ADTs against adtEnv and interning type-variable names
// against scope.
func ElaborateTypeExpr(te ast.TypeExpr, adtEnv *types.ADTEnv, scope *typeScope) (types.Type, error) {
	switch t := te.(type) {
	case *ast.TypeVarExpr:
		return scope.resolve(t.Name), nil

	case *ast.TypeNameExpr:
		if len(t.Args) == 0 {
			if types.IsPrimitive(&types.TCtor{Name: t.Name}) {
				return &types.TCtor{Name: t.Name}, nil
			}
			if _, ok := adtEnv.Type(t.Name); ok || isBuiltinCtor(t.Name) {
				return &types.TCtor{Name: t.Name}, nil
			}
			return &types.TCtor{Name: t.Name}, nil
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			elaborated, err := ElaborateTypeExpr(a, adtEnv, scope)
			if err != nil {
				return nil, err
			}
			args[i] = elaborated
		}
		return &types.TCtor{Name: t.Name, Args: args}, nil

	case *ast.TypeFuncExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			elaborated, err := ElaborateTypeExpr(p, adtEnv, scope)
			if err != nil {
				return nil, err
			}
			params[i] = elaborated
		}
		ret, err := ElaborateTypeExpr(t.Return, adtEnv, scope)
		if err != nil {
			return nil, err
		}
		return &types.TFunc{Params: params, Return: ret}, nil

	case *ast.TypeTupleExpr:
		elems := make([]types.Type, len(t.Elements))
		for i, e := range t.Elements {
			elaborated, err := ElaborateTypeExpr(e, adtEnv, scope)
			if err != nil {
				return nil, err
			}
			elems[i] = elaborated
		}
		return &types.TTuple{Elements: elems}, nil

	case *ast.ErrorRowExpr:
		cases := map[string]*types.ErrorCase{}
		for _, c := range t.Cases {
			var payload types.Type
			if c.Payload != nil {
				elaborated, err := ElaborateTypeExpr(c.Payload, adtEnv, scope)
				if err != nil {
					return nil, err
				}
				payload = elaborated
			}
			cases[c.Label] = &types.ErrorCase{Label: c.Label, Payload: payload}
		}
		tail := t.Tail
		if tail != "" {
			tail = scope.resolve(tail).Name
		}
		return &types.TErrorRow{Cases: cases, Tail: tail}, nil
	}
	return nil, fmt.Errorf("unhandled type expression %T", te)
}

func isBuiltinCtor(name string) bool {
	return name == "Result"
}
