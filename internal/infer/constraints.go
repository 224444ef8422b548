package infer

import (
	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/types"
)

// Constraint is one stub emitted during inference for the solver to
// discharge in a later, separate pass. Inference emits these in
// post-order as it walks each expression, so the solver sees them in a
// topological order with no back-references.
type Constraint interface {
	constraintNode()
	Node() ast.Expr
}

// ConstraintSource names the error row a call or constructor use
// introduces at its own call site (the row attached to the callee's
// return type, verbatim).
type ConstraintSource struct {
	At  ast.Expr
	Row *types.TErrorRow
}

func (*ConstraintSource) constraintNode()  {}
func (c *ConstraintSource) Node() ast.Expr { return c.At }

// ConstraintFlow records that an error row at From must be included in
// (flow into) the row accumulating at To — the mechanism by which a
// failing sub-call's error cases propagate outward to the enclosing
// function's own result row.
type ConstraintFlow struct {
	At       ast.Expr
	From, To *types.TErrorRow
}

func (*ConstraintFlow) constraintNode()  {}
func (c *ConstraintFlow) Node() ast.Expr { return c.At }

// ConstraintRewrite records a match arm that handles (and thereby
// discharges) a specific error case, rewriting the row to no longer
// carry it past this point.
type ConstraintRewrite struct {
	At       ast.Expr
	Row      *types.TErrorRow
	Handled  string
	Residual *types.TErrorRow
}

func (*ConstraintRewrite) constraintNode()  {}
func (c *ConstraintRewrite) Node() ast.Expr { return c.At }

// ConstraintAlias records that two error rows must end up identical (used
// when a function's declared return type names a row explicitly and
// inference must check the inferred row against it rather than merely
// union with it). B may be left nil: the solver then resolves it
// dynamically from whatever row has accumulated at At by the time it
// processes this stub, and checks that A covers it rather than checking
// exact equality — the shape of a function-boundary check, where the
// declared row is allowed to name more cases than the body actually
// raises but never fewer.
type ConstraintAlias struct {
	At   ast.Expr
	A, B *types.TErrorRow
}

func (*ConstraintAlias) constraintNode()  {}
func (c *ConstraintAlias) Node() ast.Expr { return c.At }

// Annotation records that a binding's declared type must match what
// inference actually computed for its value.
type Annotation struct {
	At               ast.Expr
	Expected, Actual types.Type
}

func (*Annotation) constraintNode()  {}
func (c *Annotation) Node() ast.Expr { return c.At }

// Call records the arrow shape one call site must satisfy: the callee's
// type, the argument types supplied at this site, and the result type
// inference settled on.
type Call struct {
	At     ast.Expr
	Callee types.Type
	Args   []types.Type
	Result types.Type
}

func (*Call) constraintNode()  {}
func (c *Call) Node() ast.Expr { return c.At }

// HasField records that Record must carry Field at type ResultType.
type HasField struct {
	At         ast.Expr
	Record     types.Type
	Field      string
	ResultType types.Type
}

func (*HasField) constraintNode()  {}
func (c *HasField) Node() ast.Expr { return c.At }

// Numeric records that Operand must resolve to a numeric primitive type.
type Numeric struct {
	At      ast.Expr
	Operand types.Type
}

func (*Numeric) constraintNode()  {}
func (c *Numeric) Node() ast.Expr { return c.At }

// Boolean records that Operand must resolve to Bool.
type Boolean struct {
	At      ast.Expr
	Operand types.Type
}

func (*Boolean) constraintNode()  {}
func (c *Boolean) Node() ast.Expr { return c.At }

// BranchJoin records a match expression's arm result types, for the
// solver to re-check, plus whether this match's coverage discharges an
// error row its scrutinee carried (a total match over every Err case
// strips the row from the join's result).
type BranchJoin struct {
	At               ast.Expr
	Branches         []types.Type
	DischargesResult bool
	ErrorRowCoverage *types.TErrorRow
}

func (*BranchJoin) constraintNode()  {}
func (c *BranchJoin) Node() ast.Expr { return c.At }

// ConstraintSink collects constraints in emission order.
type ConstraintSink struct {
	All []Constraint
}

func (s *ConstraintSink) Emit(c Constraint) {
	s.All = append(s.All, c)
}
