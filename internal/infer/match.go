package infer

import (
	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/diagnostic"
	"github.com/workman-lang/workman/internal/types"
)

func (inf *Inferencer) inferMatch(ex *ast.Match, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	scrutType, sub, err := inf.inferExpr(ex.Scrutinee, env, sub)
	if err != nil {
		return nil, nil, err
	}
	resolved := sub.Apply(scrutType)

	if v, isVar := resolved.(*types.TVar); isVar && looksLikeErrorRowMatch(ex.Arms, inf.adtEnv) {
		row := errorRowFromArms(ex.Arms, inf.fresh)
		if bindErr := sub.Bind(v.Name, row); bindErr != nil {
			return nil, nil, bindErr
		}
		resolved = row
	}

	resultVar := inf.fresh.Var()
	var resultType types.Type = resultVar
	haveResult := false
	var branches []types.Type

	for _, arm := range ex.Arms {
		armEnv := env.Child()
		res, newSub, err := inf.inferPattern(arm.Pattern, resolved, sub)
		if err != nil {
			inf.report(diagnostic.New(diagnostic.TC005, arm.Pattern.Span(), "%s", err.Error()))
			continue
		}
		sub = newSub
		for name, scheme := range res.bindings {
			armEnv.Define(name, scheme)
		}

		armType, newSub, err := inf.inferBlock(arm.Body, armEnv, sub)
		if err != nil {
			continue
		}
		sub = newSub
		branches = append(branches, armType)

		if !haveResult {
			resultType = armType
			haveResult = true
		} else if sub, err = types.Unify(resultType, armType, sub, inf.fresh); err != nil {
			inf.report(diagnostic.New(diagnostic.TC001, arm.Body.Span(),
				"match arm returns %s, expected %s", armType, resultType))
		}

		if errRow, ok := resolved.(*types.TErrorRow); ok {
			if ctorPat, ok := arm.Pattern.(*ast.CtorPattern); ok {
				inf.constraints.Emit(&ConstraintRewrite{
					At:       arm.Body.Result,
					Row:      errRow,
					Handled:  ctorPat.Name,
					Residual: removeCaseFromRow(errRow, ctorPat.Name),
				})
			}
		}
	}

	missing, exhaustive := inf.checkExhaustiveness(ex.Arms, resolved)
	inf.matchCoverage = append(inf.matchCoverage, &MatchCoverage{
		Node:       ex,
		Missing:    missing,
		Exhaustive: exhaustive,
		ArmCount:   len(ex.Arms),
	})
	if !exhaustive {
		inf.report(diagnostic.New(diagnostic.TC004, ex.Span(),
			"non-exhaustive match, missing: %v", missing).WithDetail("missing", missing))
	}

	errRow, matchesErrorRow := resolved.(*types.TErrorRow)
	inf.constraints.Emit(&BranchJoin{
		At:               ex,
		Branches:         branches,
		DischargesResult: matchesErrorRow && exhaustive,
		ErrorRowCoverage: errRow,
	})

	return sub.Apply(resultType), sub, nil
}

// looksLikeErrorRowMatch reports whether every arm's top-level pattern is
// a bare, non-wildcard constructor name that is not a known ADT
// constructor — the shape of a match against an error row whose type was
// not yet pinned down by the scrutinee's own inferred type (e.g. a
// locally rebound error value).
func looksLikeErrorRowMatch(arms []*ast.MatchArm, adtEnv *types.ADTEnv) bool {
	if len(arms) == 0 {
		return false
	}
	for _, arm := range arms {
		ctorPat, ok := arm.Pattern.(*ast.CtorPattern)
		if !ok {
			return false
		}
		if _, known := adtEnv.CtorOwner(ctorPat.Name); known {
			return false
		}
	}
	return true
}

func errorRowFromArms(arms []*ast.MatchArm, fresh *types.Fresh) *types.TErrorRow {
	cases := map[string]*types.ErrorCase{}
	for _, arm := range arms {
		ctorPat := arm.Pattern.(*ast.CtorPattern)
		var payload types.Type
		if len(ctorPat.Args) == 1 {
			payload = fresh.Var()
		}
		cases[ctorPat.Name] = &types.ErrorCase{Label: ctorPat.Name, Payload: payload}
	}
	return &types.TErrorRow{Cases: cases, Tail: fresh.RowVar()}
}

func removeCaseFromRow(row *types.TErrorRow, label string) *types.TErrorRow {
	cases := map[string]*types.ErrorCase{}
	for k, c := range row.Cases {
		if k == label {
			continue
		}
		cases[k] = c
	}
	return &types.TErrorRow{Cases: cases, Tail: row.Tail}
}
