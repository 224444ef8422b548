// Package ast defines the surface AST produced by internal/parser. Nodes
// are created once by the parser and never mutated; the inferencer
// attaches node IDs and marks out-of-band (internal/infer).
package ast

import "github.com/workman-lang/workman/internal/token"

// Span is re-exported from token for readability in AST code.
type Span = token.Span

// Program is the root of a parsed module.
type Program struct {
	Imports   []*Import
	Reexports []*Reexport
	Decls     []Decl
}

// Decl is a top-level declaration.
type Decl interface {
	declNode()
	Span() Span
}

// Binding is one `name [: type] = expr` inside a let declaration.
type Binding struct {
	Name     string
	NameSpan Span
	TypeAnn  TypeExpr // nil if absent
	Value    Expr
	BSpan    Span
}

// LetDecl is `let [rec] binding (and binding)*`.
type LetDecl struct {
	Exported  bool
	Recursive bool
	Bindings  []*Binding
	SpanVal   Span
}

func (d *LetDecl) declNode() {}
func (d *LetDecl) Span() Span { return d.SpanVal }

// CtorMember is one `Name [(type, ...)]` arm of a type declaration.
type CtorMember struct {
	Name   string
	Fields []TypeExpr
	MSpan  Span
}

// TypeDecl is `type Name [<params>] = member | member | ...` or a type
// alias `type Name [<params>] = <ErrorRowTypeExpr>` (the error-row literal
// form, e.g. `type Err = <NotMul>;`).
type TypeDecl struct {
	Exported bool
	Name     string
	Params   []string
	Members  []*CtorMember // nil when IsAlias
	IsAlias  bool
	Alias    TypeExpr
	SpanVal  Span
}

func (d *TypeDecl) declNode() {}
func (d *TypeDecl) Span() Span { return d.SpanVal }

// Assoc is operator associativity.
type Assoc int

const (
	NonAssoc Assoc = iota
	LeftAssoc
	RightAssoc
)

// InfixDecl registers a user-defined binary operator.
type InfixDecl struct {
	Assoc    Assoc
	Prec     int
	Op       string
	FuncName string
	SpanVal  Span
}

func (d *InfixDecl) declNode() {}
func (d *InfixDecl) Span() Span { return d.SpanVal }

// PrefixDecl registers a user-defined prefix operator.
type PrefixDecl struct {
	Op       string
	FuncName string
	SpanVal  Span
}

func (d *PrefixDecl) declNode() {}
func (d *PrefixDecl) Span() Span { return d.SpanVal }

// ImportedName is one `name [as local]` inside an import specifier list.
type ImportedName struct {
	Name  string
	Local string // equals Name when no `as` clause
}

// Import is `from "path" import { names } ;` or `from "path" import * as ns;`.
type Import struct {
	Path      string
	Names     []ImportedName
	Wildcard  bool
	Namespace string // set when Wildcard
	SpanVal   Span
}

func (d *Import) Span() Span { return d.SpanVal }

// ReexportedType is one `Name` or `Name(..)` entry in an export-from clause.
type ReexportedType struct {
	Name          string
	WithCtors     bool
	TransitiveTag bool // always false: transitive re-export expansion is
	// not yet implemented; flagged here rather than silently wrong.
}

// Reexport is `export from "path" type Name, Name(..);`.
type Reexport struct {
	Path    string
	Types   []ReexportedType
	SpanVal Span
}

func (d *Reexport) Span() Span { return d.SpanVal }

// Expr is any surface expression node.
type Expr interface {
	exprNode()
	Span() Span
}

// Var is an identifier reference.
type Var struct {
	Name    string
	SpanVal Span
}

func (e *Var) exprNode() {}
func (e *Var) Span() Span { return e.SpanVal }

// LitKind classifies a Lit node's payload.
type LitKind int

const (
	IntLit LitKind = iota
	BoolLit
	CharLit
	StringLit
	UnitLit
)

// Lit is a literal value.
type Lit struct {
	Kind    LitKind
	Value   interface{}
	SpanVal Span
}

func (e *Lit) exprNode() {}
func (e *Lit) Span() Span { return e.SpanVal }

// Ctor is a saturated (or partially applied, via Call) constructor use,
// e.g. `Some(x)` or a bare `None`.
type Ctor struct {
	Name    string
	Args    []Expr
	SpanVal Span
}

func (e *Ctor) exprNode() {}
func (e *Ctor) Span() Span { return e.SpanVal }

// Tuple is `(a, b, ...)` with at least two elements; a parenthesized
// single expression is unwrapped to its element by the parser instead of
// becoming a length-1 Tuple.
type Tuple struct {
	Elements []Expr
	SpanVal  Span
}

func (e *Tuple) exprNode() {}
func (e *Tuple) Span() Span { return e.SpanVal }

// Call is function application `fn(args...)`.
type Call struct {
	Func    Expr
	Args    []Expr
	SpanVal Span
}

func (e *Call) exprNode() {}
func (e *Call) Span() Span { return e.SpanVal }

// Param is one arrow-function parameter.
type Param struct {
	Name    string
	TypeAnn TypeExpr // nil if absent
}

// Arrow is `(params) => { block }`.
type Arrow struct {
	Params  []Param
	Body    *Block
	SpanVal Span
}

func (e *Arrow) exprNode() {}
func (e *Arrow) Span() Span { return e.SpanVal }

// Stmt is one statement inside a Block.
type Stmt interface {
	stmtNode()
	Span() Span
}

// LetStmt is a local, non-exported `let name = expr;` inside a block.
type LetStmt struct {
	Name    string
	Value   Expr
	SpanVal Span
}

func (s *LetStmt) stmtNode() {}
func (s *LetStmt) Span() Span { return s.SpanVal }

// ExprStmt is an expression evaluated for its side effect and discarded.
type ExprStmt struct {
	X       Expr
	SpanVal Span
}

func (s *ExprStmt) stmtNode() {}
func (s *ExprStmt) Span() Span { return s.SpanVal }

// Block is `{ stmt* result }`.
type Block struct {
	Stmts   []Stmt
	Result  Expr
	SpanVal Span
}

func (e *Block) exprNode() {}
func (e *Block) Span() Span { return e.SpanVal }

// MatchArm is `pattern => { block }`.
type MatchArm struct {
	Pattern Pattern
	Body    *Block
	SpanVal Span
}

// Match is `match(scrutinee) { arm, arm, ... }`.
type Match struct {
	Scrutinee Expr
	Arms      []*MatchArm
	SpanVal   Span
}

func (e *Match) exprNode() {}
func (e *Match) Span() Span { return e.SpanVal }

// Binary is an infix-operator application, desugared during inference to a
// call of `__op_<name>`.
type Binary struct {
	Op      string
	Left    Expr
	Right   Expr
	SpanVal Span
}

func (e *Binary) exprNode() {}
func (e *Binary) Span() Span { return e.SpanVal }

// Unary is a prefix-operator application, desugared to `__prefix_<name>`.
type Unary struct {
	Op       string
	Operand  Expr
	SpanVal  Span
}

func (e *Unary) exprNode() {}
func (e *Unary) Span() Span { return e.SpanVal }

// FieldAccess is `record.field`, the sole surface-syntax producer of a
// HasField constraint stub.
type FieldAccess struct {
	Record  Expr
	Field   string
	SpanVal Span
}

func (e *FieldAccess) exprNode() {}
func (e *FieldAccess) Span() Span { return e.SpanVal }

// Hole is the user-written `?` placeholder; its Type mark carries
// provenance `UserHole`.
type Hole struct {
	SpanVal Span
}

func (e *Hole) exprNode() {}
func (e *Hole) Span() Span { return e.SpanVal }
