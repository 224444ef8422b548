package infer

import (
	"fmt"
	"sort"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/types"
)

// patternResult is what inferring one pattern against a scrutinee type
// produces: the bindings it introduces (always monomorphic; a pattern
// variable is never generalized) and the possibly-refined substitution.
type patternResult struct {
	bindings map[string]*types.Scheme
}

// inferPattern unifies p's shape against scrutType and returns the
// variable bindings it introduces.
func (inf *Inferencer) inferPattern(p ast.Pattern, scrutType types.Type, sub types.Substitution) (*patternResult, types.Substitution, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return &patternResult{bindings: map[string]*types.Scheme{}}, sub, nil

	case *ast.VarPattern:
		return &patternResult{bindings: map[string]*types.Scheme{pat.Name: types.Mono(sub.Apply(scrutType))}}, sub, nil

	case *ast.LitPattern:
		litType := litKindType(pat.Kind)
		sub, err := types.Unify(scrutType, litType, sub, inf.fresh)
		if err != nil {
			return nil, nil, err
		}
		return &patternResult{bindings: map[string]*types.Scheme{}}, sub, nil

	case *ast.CtorPattern:
		if row, ok := sub.Apply(scrutType).(*types.TErrorRow); ok {
			return inf.inferErrorCasePattern(pat, row, sub)
		}
		return inf.inferCtorPattern(pat, scrutType, sub)

	case *ast.TuplePattern:
		elems := make([]types.Type, len(pat.Elements))
		for i := range elems {
			elems[i] = inf.fresh.Var()
		}
		sub, err := types.Unify(scrutType, &types.TTuple{Elements: elems}, sub, inf.fresh)
		if err != nil {
			return nil, nil, err
		}
		bindings := map[string]*types.Scheme{}
		for i, elemPat := range pat.Elements {
			res, newSub, err := inf.inferPattern(elemPat, elems[i], sub)
			if err != nil {
				return nil, nil, err
			}
			sub = newSub
			for name, scheme := range res.bindings {
				bindings[name] = scheme
			}
		}
		return &patternResult{bindings: bindings}, sub, nil
	}
	return nil, nil, fmt.Errorf("unhandled pattern kind %T", p)
}

func (inf *Inferencer) inferCtorPattern(pat *ast.CtorPattern, scrutType types.Type, sub types.Substitution) (*patternResult, types.Substitution, error) {
	owner, ctorInfo, ok := inf.adtEnv.CtorOwner(pat.Name)
	if !ok {
		return nil, nil, fmt.Errorf("unknown constructor %q", pat.Name)
	}
	if len(ctorInfo.Fields) != len(pat.Args) {
		return nil, nil, fmt.Errorf("constructor %q expects %d argument(s), got %d", pat.Name, len(ctorInfo.Fields), len(pat.Args))
	}

	instSub := types.Substitution{}
	for _, param := range owner.Params {
		instSub[param] = inf.fresh.Var()
	}
	args := make([]types.Type, len(owner.Params))
	for i, param := range owner.Params {
		args[i] = instSub.Apply(&types.TVar{Name: param})
	}
	adtType := Type(owner.Name, args)

	sub, err := types.Unify(scrutType, adtType, sub, inf.fresh)
	if err != nil {
		return nil, nil, err
	}

	bindings := map[string]*types.Scheme{}
	for i, fieldArg := range pat.Args {
		fieldType := instSub.Apply(ctorInfo.Fields[i])
		res, newSub, err := inf.inferPattern(fieldArg, fieldType, sub)
		if err != nil {
			return nil, nil, err
		}
		sub = newSub
		for name, scheme := range res.bindings {
			bindings[name] = scheme
		}
	}
	return &patternResult{bindings: bindings}, sub, nil
}

// inferErrorCasePattern matches one labeled case out of an error row
// value, e.g. `DivByZero => ...` or `Overflow(amount) => ...`. The case
// must be present in the row (open rows admit any label the pattern
// names, since the tail could carry it); the row's own unification
// machinery is bypassed here since a pattern match narrows a row, it does
// not unify two rows against each other.
func (inf *Inferencer) inferErrorCasePattern(pat *ast.CtorPattern, row *types.TErrorRow, sub types.Substitution) (*patternResult, types.Substitution, error) {
	c, known := row.Cases[pat.Name]
	if !known && row.Tail == "" {
		return nil, nil, fmt.Errorf("error row has no case %q", pat.Name)
	}
	if !known {
		// Open row: the tail may supply this case. Assume a payload shape
		// matching the pattern's own arity so pattern variables still get a
		// type, then let the tail absorb it via row unification elsewhere.
		if len(pat.Args) == 0 {
			c = &types.ErrorCase{Label: pat.Name}
		} else {
			c = &types.ErrorCase{Label: pat.Name, Payload: inf.fresh.Var()}
		}
	}

	bindings := map[string]*types.Scheme{}
	switch {
	case c.Payload == nil && len(pat.Args) == 0:
		// nullary case, no bindings
	case c.Payload != nil && len(pat.Args) == 1:
		res, newSub, err := inf.inferPattern(pat.Args[0], c.Payload, sub)
		if err != nil {
			return nil, nil, err
		}
		sub = newSub
		bindings = res.bindings
	default:
		return nil, nil, fmt.Errorf("error case %q arity mismatch", pat.Name)
	}
	return &patternResult{bindings: bindings}, sub, nil
}

// Type builds `Name<Args...>`, or bare `Name` when Args is empty.
func Type(name string, args []types.Type) types.Type {
	return &types.TCtor{Name: name, Args: args}
}

func litKindType(k ast.LitKind) types.Type {
	switch k {
	case ast.IntLit:
		return types.Int
	case ast.BoolLit:
		return types.Bool
	case ast.CharLit:
		return types.Char
	case ast.StringLit:
		return types.String
	case ast.UnitLit:
		return types.Unit
	}
	return &types.TUnknown{}
}

// checkExhaustiveness reports the ADT constructors (or "true"/"false" for
// a bool scrutinee) left uncovered by a match's top-level patterns. When
// every concrete case is covered, missing is nil and exhaustive is true;
// exhaustive is also true whenever a wildcard or variable pattern is
// present, regardless of scrutinee shape.
func (inf *Inferencer) checkExhaustiveness(arms []*ast.MatchArm, scrutType types.Type) (missing []string, exhaustive bool) {
	for _, arm := range arms {
		switch arm.Pattern.(type) {
		case *ast.WildcardPattern, *ast.VarPattern:
			return nil, true
		}
	}

	switch st := scrutType.(type) {
	case *types.TCtor:
		if st.Name == "Bool" {
			seen := map[bool]bool{}
			for _, arm := range arms {
				lit, ok := arm.Pattern.(*ast.LitPattern)
				if !ok || lit.Kind != ast.BoolLit {
					continue
				}
				seen[lit.Value.(bool)] = true
			}
			if seen[true] && seen[false] {
				return nil, true
			}
			var missing []string
			if !seen[true] {
				missing = append(missing, "true")
			}
			if !seen[false] {
				missing = append(missing, "false")
			}
			return missing, false
		}

		owner, ok := inf.adtEnv.Type(st.Name)
		if !ok {
			return []string{"_"}, false
		}
		seen := map[string]bool{}
		for _, arm := range arms {
			ctorPat, ok := arm.Pattern.(*ast.CtorPattern)
			if !ok {
				continue
			}
			seen[ctorPat.Name] = true
		}
		var missing []string
		for _, c := range owner.Ctors {
			if !seen[c.Name] {
				missing = append(missing, c.Name)
			}
		}
		sort.Strings(missing)
		return missing, len(missing) == 0

	case *types.TErrorRow:
		if st.Tail != "" {
			// An open row could always admit one more case through its
			// tail, so no fixed set of arms can be proven exhaustive
			// without a catch-all.
			return []string{"<open row>"}, false
		}
		seen := map[string]bool{}
		for _, arm := range arms {
			ctorPat, ok := arm.Pattern.(*ast.CtorPattern)
			if !ok {
				continue
			}
			seen[ctorPat.Name] = true
		}
		var missing []string
		for label := range st.Cases {
			if !seen[label] {
				missing = append(missing, label)
			}
		}
		sort.Strings(missing)
		return missing, len(missing) == 0
	}

	return []string{"_"}, false
}
