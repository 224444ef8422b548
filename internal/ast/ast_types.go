package ast

// TypeExpr is a surface-syntax type annotation, as written in `binding :
// type`, constructor field lists, and type declarations. internal/infer
// elaborates TypeExpr into internal/types.Type during inference.
type TypeExpr interface {
	typeExprNode()
	Span() Span
}

// TypeVarExpr is a lowercase type parameter reference, e.g. `t` in
// `Option<t>`.
type TypeVarExpr struct {
	Name    string
	SpanVal Span
}

func (t *TypeVarExpr) typeExprNode() {}
func (t *TypeVarExpr) Span() Span { return t.SpanVal }

// TypeNameExpr is an uppercase type-constructor reference with optional
// generic arguments, e.g. `Int`, `Option<Int>`, `Result<Int, <NotMul>>`.
type TypeNameExpr struct {
	Name    string
	Args    []TypeExpr
	SpanVal Span
}

func (t *TypeNameExpr) typeExprNode() {}
func (t *TypeNameExpr) Span() Span { return t.SpanVal }

// TypeFuncExpr is `(T1, T2) -> T3` (right-associative; curried by the
// elaborator into nested internal/types.TFunc values).
type TypeFuncExpr struct {
	Params  []TypeExpr
	Return  TypeExpr
	SpanVal Span
}

func (t *TypeFuncExpr) typeExprNode() {}
func (t *TypeFuncExpr) Span() Span { return t.SpanVal }

// TypeTupleExpr is `(T1, T2, ...)` with at least two elements.
type TypeTupleExpr struct {
	Elements []TypeExpr
	SpanVal  Span
}

func (t *TypeTupleExpr) typeExprNode() {}
func (t *TypeTupleExpr) Span() Span { return t.SpanVal }

// ErrorCaseExpr is one `Label [(Payload)]` entry in an error-row literal.
type ErrorCaseExpr struct {
	Label   string
	Payload TypeExpr // nil if nullary
}

// ErrorRowExpr is `<Case, Case(Payload), ... [| tailVar]>`, the surface
// syntax for a row-polymorphic error type (used in `type Err = <NotMul>;`
// and inline as `Result<T, <E1, E2>>`).
type ErrorRowExpr struct {
	Cases   []ErrorCaseExpr
	Tail    string // type-variable name of an open tail; "" if closed
	SpanVal Span
}

func (t *ErrorRowExpr) typeExprNode() {}
func (t *ErrorRowExpr) Span() Span { return t.SpanVal }
