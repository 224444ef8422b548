// Package solver discharges the constraint stubs internal/infer emits
// during its single inference pass. Because the error-row domain is
// monotone (rows only ever grow by union or shrink by a pattern-match
// discharge, never both at the same site), one linear pass over the
// constraints in emission order is sufficient; no fixed-point iteration is
// needed. Phases 1-4 of the design (annotations, calls & field access,
// numeric/boolean, branch joins) and phase 7 (boundary checks) are each a
// case in Solve's switch below; phase 5 (constraint propagation) is the
// ConstraintSource/Flow/Rewrite/Alias handling already present in the
// original cut of this package. Phase 6 (conflict detection) is a no-op
// for the only domain currently populated: the error domain never
// conflicts (rows only ever union or get narrowed by a discharge), and
// the memory/hole domains it would also cover are placeholders.
package solver

import (
	"sort"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/diagnostic"
	"github.com/workman-lang/workman/internal/infer"
	"github.com/workman-lang/workman/internal/types"
)

// FlowDomain is the pluggable propagation policy the solver applies when
// merging one call site's error row into an enclosing one. The default
// policy is ordinary row union; a caller wanting different semantics
// (e.g. capping the number of distinct cases tracked) can supply its own.
type FlowDomain interface {
	Union(a, b *types.TErrorRow) *types.TErrorRow
	Discharge(row *types.TErrorRow, label string) *types.TErrorRow
}

// DefaultFlowDomain implements FlowDomain with plain row union and
// case removal, the semantics internal/types.UnionRows and the
// match-arm narrowing in internal/infer already assume.
type DefaultFlowDomain struct{}

func (DefaultFlowDomain) Union(a, b *types.TErrorRow) *types.TErrorRow {
	return types.UnionRows(a, b)
}

func (DefaultFlowDomain) Discharge(row *types.TErrorRow, label string) *types.TErrorRow {
	cases := map[string]*types.ErrorCase{}
	for k, c := range row.Cases {
		if k == label {
			continue
		}
		cases[k] = c
	}
	return &types.TErrorRow{Cases: cases, Tail: row.Tail}
}

// Result is the outcome of solving one module's constraint stubs: the
// final, narrowed error row at every call/constructor site that produced
// one, plus any diagnostics the solving process itself raised.
type Result struct {
	RowAt       map[ast.Expr]*types.TErrorRow
	Diagnostics []*diagnostic.Diagnostic
}

// Solver discharges constraint stubs emitted by internal/infer.
type Solver struct {
	domain FlowDomain
}

// New returns a solver using domain, or DefaultFlowDomain if domain is nil.
func New(domain FlowDomain) *Solver {
	if domain == nil {
		domain = DefaultFlowDomain{}
	}
	return &Solver{domain: domain}
}

// Solve processes constraints in the order internal/infer emitted them,
// which is a topological order because inference is a post-order tree
// walk: every consumer of a node's accumulated row is emitted after every
// producer of it.
//
//   - Annotation: re-checks a binding's declared type against what
//     inference computed, reporting TC001 on a mismatch.
//   - Call / HasField: re-derives the arrow shape or record shape the
//     call or field access depends on and confirms it's still consistent.
//   - Numeric / Boolean: confirms an operand resolved to the primitive
//     kind its operator requires.
//   - BranchJoin: when a match's coverage discharges its scrutinee's
//     error row, clears the row recorded at the join; otherwise carries
//     the scrutinee's row through unchanged.
//   - ConstraintSource: seeds a node's row.
//   - ConstraintFlow: unions one node's row into another's.
//   - ConstraintRewrite: narrows a row by the case a match arm just
//     handled, reporting a conflict if the row no longer has that case.
//   - ConstraintAlias: the function-boundary check. When B is given,
//     checks the two rows are identical. When B is nil, resolves it from
//     whatever row has accumulated at At and checks A covers it —
//     the declared return row may name cases the body never raises, but
//     never the reverse.
func (s *Solver) Solve(constraints []infer.Constraint) *Result {
	res := &Result{RowAt: map[ast.Expr]*types.TErrorRow{}}

	for _, c := range constraints {
		switch con := c.(type) {
		case *infer.Annotation:
			if types.Rename(con.Expected).String() != types.Rename(con.Actual).String() {
				res.Diagnostics = append(res.Diagnostics, diagnostic.New(
					diagnostic.TC001, con.At.Span(),
					"declared type %s does not match inferred type %s", con.Expected, con.Actual))
			}

		case *infer.Call:
			expected := &types.TFunc{Params: con.Args, Return: con.Result}
			if _, err := types.Unify(con.Callee, expected, types.Substitution{}, types.NewFresh()); err != nil {
				res.Diagnostics = append(res.Diagnostics, diagnostic.New(
					diagnostic.TC001, con.At.Span(), "call does not match callee's shape: %s", err.Error()))
			}

		case *infer.HasField:
			expected := &types.TRecord{Fields: map[string]types.Type{con.Field: con.ResultType}, Tail: types.NewFresh().RowVar()}
			if _, err := types.Unify(con.Record, expected, types.Substitution{}, types.NewFresh()); err != nil {
				res.Diagnostics = append(res.Diagnostics, diagnostic.New(
					diagnostic.TC001, con.At.Span(), "value has no field %q: %s", con.Field, err.Error()))
			}

		case *infer.Numeric:
			if con.Operand.String() != types.Int.String() {
				res.Diagnostics = append(res.Diagnostics, diagnostic.New(
					diagnostic.TC001, con.At.Span(), "expected numeric operand, found %s", con.Operand))
			}

		case *infer.Boolean:
			if con.Operand.String() != types.Bool.String() {
				res.Diagnostics = append(res.Diagnostics, diagnostic.New(
					diagnostic.TC001, con.At.Span(), "expected Bool operand, found %s", con.Operand))
			}

		case *infer.BranchJoin:
			switch {
			case con.DischargesResult:
				res.RowAt[con.At] = types.EmptyErrorRow()
			case con.ErrorRowCoverage != nil:
				res.RowAt[con.At] = con.ErrorRowCoverage
			}

		case *infer.ConstraintSource:
			res.RowAt[con.At] = con.Row

		case *infer.ConstraintFlow:
			existing, ok := res.RowAt[con.At]
			if !ok {
				existing = con.To
			}
			res.RowAt[con.At] = s.domain.Union(existing, con.From)

		case *infer.ConstraintRewrite:
			if _, handled := con.Row.Cases[con.Handled]; !handled && con.Row.Tail == "" {
				res.Diagnostics = append(res.Diagnostics, diagnostic.New(
					diagnostic.SLV001, con.At.Span(),
					"match arm handles case %q, which the error row does not carry", con.Handled))
				continue
			}
			res.RowAt[con.At] = s.domain.Discharge(con.Row, con.Handled)

		case *infer.ConstraintAlias:
			if con.B != nil {
				if !rowsEqual(con.A, con.B) {
					res.Diagnostics = append(res.Diagnostics, diagnostic.New(
						diagnostic.SLV002, con.At.Span(),
						"declared error row %s does not match inferred row %s", con.A, con.B))
				}
				continue
			}
			accumulated, ok := res.RowAt[con.At]
			if !ok {
				accumulated = types.EmptyErrorRow()
			}
			if !rowCovers(con.A, accumulated) {
				res.Diagnostics = append(res.Diagnostics, diagnostic.New(
					diagnostic.SLV002, con.At.Span(),
					"declared error row %s does not account for %s, which the function body actually raises",
					con.A, accumulated))
			}
		}
	}

	return res
}

// rowsEqual reports whether two error rows carry exactly the same cases
// and tail, used by ConstraintAlias checks where the two sides must match
// exactly rather than merely unify.
func rowsEqual(a, b *types.TErrorRow) bool {
	if a.Tail != b.Tail || len(a.Cases) != len(b.Cases) {
		return false
	}
	var aLabels, bLabels []string
	for l := range a.Cases {
		aLabels = append(aLabels, l)
	}
	for l := range b.Cases {
		bLabels = append(bLabels, l)
	}
	sort.Strings(aLabels)
	sort.Strings(bLabels)
	for i := range aLabels {
		if aLabels[i] != bLabels[i] {
			return false
		}
	}
	return true
}

// rowCovers reports whether every case accumulated carries is also named
// in declared — the superset relationship a function-boundary check
// requires, as opposed to the exact equality rowsEqual checks. An open
// declared row (non-empty Tail) covers anything.
func rowCovers(declared, accumulated *types.TErrorRow) bool {
	if declared.Tail != "" {
		return true
	}
	for label := range accumulated.Cases {
		if _, ok := declared.Cases[label]; !ok {
			return false
		}
	}
	return true
}
