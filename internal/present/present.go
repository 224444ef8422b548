// Package present builds a read-only, queryable view over one module's
// inference and solving results: a per-node type lookup, a hole-solution
// table, match-coverage summaries, and a constraint trace suitable for
// editor-style tooling. It never mutates the AST or re-runs any part of
// inference; it only reshapes what internal/infer and internal/solver
// already computed.
package present

import (
	"sort"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/infer"
	"github.com/workman-lang/workman/internal/solver"
	"github.com/workman-lang/workman/internal/types"
)

// HoleStatus classifies how resolved a `?` placeholder ended up once
// inference finished.
type HoleStatus string

const (
	// Unsolved means the hole's type variable was never touched by any
	// unification: nothing in the program constrained it at all.
	Unsolved HoleStatus = "unsolved"
	// Partial means the hole's type was narrowed but still contains at
	// least one free type variable (e.g. `List<a>` with `a` still open).
	Partial HoleStatus = "partial"
	// Conflicted means inference hit an error while trying to narrow the
	// hole's type, leaving it standing in for a real type it never found.
	Conflicted HoleStatus = "conflicted"
	// Filled means the hole resolved to a fully concrete, ground type.
	Filled HoleStatus = "filled"
)

// HoleSolution is one `?` placeholder's final status, for an editor to
// render as a suggestion or an error depending on Status.
type HoleSolution struct {
	Node   *ast.Hole
	Status HoleStatus
	Type   string
}

// NodeType is the pretty-printed type recorded for one expression node.
type NodeType struct {
	ID   int
	Type string
}

// MatchSummary restates one match expression's exhaustiveness result.
type MatchSummary struct {
	Node       *ast.Match
	Exhaustive bool
	Missing    []string
	ArmCount   int
}

// FlowStep is one constraint the solver consumed, reduced to a form an
// editor can show as a single line in a per-node trace: what kind of
// constraint it was, the row it concerned before and after, and which
// node it's anchored to.
type FlowStep struct {
	Node ast.Expr
	Kind string
	Row  string
}

// View is the queryable presentation layer built from one module's
// inference and solver results.
type View struct {
	types   map[ast.Expr]*NodeType
	holes   []*HoleSolution
	matches []*MatchSummary
	trace   []*FlowStep
	byOrder []ast.Expr
}

// Build reduces inf's marks, holes, and match coverage, together with
// res's narrowed rows, into a View. res may be nil if the caller only
// wants types, holes, and match coverage without constraint-flow detail.
func Build(inf *infer.Inferencer, res *solver.Result) *View {
	v := &View{types: map[ast.Expr]*NodeType{}}

	for node, mark := range inf.Marks().All() {
		v.types[node] = &NodeType{ID: mark.ID, Type: types.Rename(mark.Type).String()}
		v.byOrder = append(v.byOrder, node)
	}
	sort.Slice(v.byOrder, func(i, j int) bool {
		return v.types[v.byOrder[i]].ID < v.types[v.byOrder[j]].ID
	})

	for _, h := range inf.Holes() {
		v.holes = append(v.holes, buildHoleSolution(h, inf))
	}

	for _, mc := range inf.MatchCoverage() {
		v.matches = append(v.matches, &MatchSummary{
			Node:       mc.Node,
			Exhaustive: mc.Exhaustive,
			Missing:    mc.Missing,
			ArmCount:   mc.ArmCount,
		})
	}

	for _, c := range inf.Constraints() {
		v.trace = append(v.trace, buildFlowStep(c, res))
	}

	return v
}

func buildHoleSolution(h *ast.Hole, inf *infer.Inferencer) *HoleSolution {
	mark, ok := inf.Marks().Lookup(h)
	if !ok {
		return &HoleSolution{Node: h, Status: Unsolved, Type: "?"}
	}
	t := mark.Type

	if u, isUnknown := t.(*types.TUnknown); isUnknown {
		if u.Provenance == types.InferenceFailure {
			return &HoleSolution{Node: h, Status: Conflicted, Type: "?"}
		}
		return &HoleSolution{Node: h, Status: Unsolved, Type: "?"}
	}
	if _, isVar := t.(*types.TVar); isVar {
		return &HoleSolution{Node: h, Status: Unsolved, Type: types.Rename(t).String()}
	}
	if len(types.FreeVars(t)) > 0 {
		return &HoleSolution{Node: h, Status: Partial, Type: types.Rename(t).String()}
	}
	return &HoleSolution{Node: h, Status: Filled, Type: types.Rename(t).String()}
}

func buildFlowStep(c infer.Constraint, res *solver.Result) *FlowStep {
	step := &FlowStep{Node: c.Node()}
	switch con := c.(type) {
	case *infer.ConstraintSource:
		step.Kind = "source"
		step.Row = con.Row.String()
	case *infer.ConstraintFlow:
		step.Kind = "flow"
		step.Row = con.From.String() + " -> " + con.To.String()
	case *infer.ConstraintRewrite:
		step.Kind = "rewrite"
		residual := "<empty>"
		if con.Residual != nil {
			residual = con.Residual.String()
		}
		step.Row = con.Row.String() + " handles " + con.Handled + " leaves " + residual
	case *infer.ConstraintAlias:
		step.Kind = "alias"
		if con.B != nil {
			step.Row = con.A.String() + " == " + con.B.String()
		} else {
			step.Row = con.A.String() + " covers <accumulated>"
		}
	case *infer.Annotation:
		step.Kind = "annotation"
		step.Row = con.Expected.String() + " ~ " + con.Actual.String()
	case *infer.Call:
		step.Kind = "call"
		step.Row = con.Callee.String() + " -> " + con.Result.String()
	case *infer.HasField:
		step.Kind = "has_field"
		step.Row = con.Record.String() + "." + con.Field + " : " + con.ResultType.String()
	case *infer.Numeric:
		step.Kind = "numeric"
		step.Row = con.Operand.String()
	case *infer.Boolean:
		step.Kind = "boolean"
		step.Row = con.Operand.String()
	case *infer.BranchJoin:
		step.Kind = "branch_join"
		if con.ErrorRowCoverage != nil {
			step.Row = con.ErrorRowCoverage.String()
		} else {
			step.Row = "<no row>"
		}
	}
	if res != nil {
		if narrowed, ok := res.RowAt[c.Node()]; ok {
			step.Row += " (solved: " + narrowed.String() + ")"
		}
	}
	return step
}

// NodeType returns the pretty-printed type recorded for node, if any.
func (v *View) NodeType(node ast.Expr) (*NodeType, bool) {
	nt, ok := v.types[node]
	return nt, ok
}

// AllNodeTypes returns every node's type, ordered by assignment (mark)
// ID, which follows the order inference first visited each node.
func (v *View) AllNodeTypes() []*NodeType {
	out := make([]*NodeType, 0, len(v.byOrder))
	for _, node := range v.byOrder {
		out = append(out, v.types[node])
	}
	return out
}

// Holes returns every hole's solution status, in source order.
func (v *View) Holes() []*HoleSolution { return v.holes }

// Matches returns every match expression's coverage summary, in source
// order.
func (v *View) Matches() []*MatchSummary { return v.matches }

// Trace returns the constraint-solving history in emission order, one
// step per constraint the solver consumed.
func (v *View) Trace() []*FlowStep { return v.trace }
