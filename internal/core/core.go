// Package core defines the Core IR that this package's Lowerer produces
// from the marked surface AST (internal/lower then lowers it to MIR): a small, desugared node set with no operator syntax
// and no implicit numeric overloading, each node carrying the resolved
// type recorded for its originating surface node. There is no
// dictionary-passing node set here, since this language has no type
// classes to resolve: every call is either to a user binding, to a
// constructor, or to one of the fixed primitive operations in Prim.
package core

import (
	"fmt"
	"strings"

	"github.com/workman-lang/workman/internal/token"
	"github.com/workman-lang/workman/internal/types"
)

// Node is embedded in every Core expression: a stable ID assigned during
// lowering and the originating surface span, kept for diagnostics raised
// against lowered code (exhaustiveness-at-MIR checks, for instance).
type Node struct {
	NodeID  int
	SpanVal token.Span
	Type    types.Type
}

func (n Node) ID() int          { return n.NodeID }
func (n Node) Span() token.Span { return n.SpanVal }

// Expr is the base interface for every Core expression.
type Expr interface {
	ID() int
	Span() token.Span
	String() string
	coreExpr()
}

// Var is a reference to a let-bound or lambda-bound name.
type Var struct {
	Node
	Name string
}

func (*Var) coreExpr()        {}
func (v *Var) String() string { return v.Name }

// Lit is a literal value, its Kind mirroring ast.LitKind.
type Lit struct {
	Node
	Kind  LitKind
	Value interface{}
}

// LitKind classifies a Lit node's payload.
type LitKind int

const (
	IntLit LitKind = iota
	BoolLit
	CharLit
	StringLit
	UnitLit
)

func (*Lit) coreExpr()        {}
func (l *Lit) String() string { return fmt.Sprintf("%v", l.Value) }

// Lam is a function value. Params names the bound variables; the Core
// lowering of a surface arrow always produces exactly one Lam per
// surface parameter list, never curried one-at-a-time, since the
// surface grammar only allows one parameter list per arrow.
type Lam struct {
	Node
	Params []string
	Body   Expr
}

func (*Lam) coreExpr() {}
func (l *Lam) String() string {
	return fmt.Sprintf("lam(%s) -> %s", strings.Join(l.Params, ", "), l.Body)
}

// Let is a single non-recursive binding.
type Let struct {
	Node
	Name  string
	Value Expr
	Body  Expr
}

func (*Let) coreExpr() {}
func (l *Let) String() string {
	return fmt.Sprintf("let %s = %s in %s", l.Name, l.Value, l.Body)
}

// RecBinding is one member of a LetRec group.
type RecBinding struct {
	Name  string
	Value Expr
}

// LetRec is a group of mutually recursive bindings, always surviving
// from a surface `let rec ... and ...` group (never introduced by ANF
// hoisting itself, which only ever needs non-recursive Let).
type LetRec struct {
	Node
	Bindings []RecBinding
	Body     Expr
}

func (*LetRec) coreExpr() {}
func (l *LetRec) String() string {
	names := make([]string, len(l.Bindings))
	for i, b := range l.Bindings {
		names[i] = b.Name
	}
	return fmt.Sprintf("let rec %s in %s", strings.Join(names, ", "), l.Body)
}

// App is function application. Func and Args may be arbitrary Core
// expressions; Core lowering does no ANF normalization.
type App struct {
	Node
	Func Expr
	Args []Expr
}

func (*App) coreExpr() {}
func (a *App) String() string {
	args := make([]string, len(a.Args))
	for i, arg := range a.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", a.Func, strings.Join(args, ", "))
}

// PrimOp names one of the fixed primitive operations surface binary and
// unary operators desugar to. Unlike a surface Call to `__op_add`,
// lowering resolves these directly to PrimOp rather than leaving them as
// ordinary calls, since the MIR emitter compiles them to single
// instructions instead of closure calls.
type PrimOp string

const (
	PrimAdd PrimOp = "add"
	PrimSub PrimOp = "sub"
	PrimMul PrimOp = "mul"
	PrimDiv PrimOp = "div"
	PrimLt  PrimOp = "lt"
	PrimGt  PrimOp = "gt"
	PrimLe  PrimOp = "le"
	PrimGe  PrimOp = "ge"
	PrimEq  PrimOp = "eq"
	PrimNe  PrimOp = "ne"
	PrimAnd PrimOp = "and"
	PrimOr  PrimOp = "or"
	PrimNeg PrimOp = "neg"
	PrimNot PrimOp = "not"
)

// Prim is a primitive operation; its operands may be arbitrary Core
// expressions.
type Prim struct {
	Node
	Op   PrimOp
	Args []Expr
}

func (*Prim) coreExpr() {}
func (p *Prim) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Op, strings.Join(args, ", "))
}

// Ctor is a saturated constructor application, Tag already resolved to
// its declaration-order index for the MIR tag switch.
type Ctor struct {
	Node
	Name string
	Tag  int
	Args []Expr
}

func (*Ctor) coreExpr() {}
func (c *Ctor) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Name, strings.Join(args, ", "))
}

// TupleExpr is tuple construction.
type TupleExpr struct {
	Node
	Elements []Expr
}

func (*TupleExpr) coreExpr() {}
func (t *TupleExpr) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}

// FieldAccess reads one field from a record value.
type FieldAccess struct {
	Node
	Record Expr
	Field  string
}

func (*FieldAccess) coreExpr() {}
func (f *FieldAccess) String() string {
	return fmt.Sprintf("%s.%s", f.Record, f.Field)
}

// MatchArm is one `pattern -> body` arm of a Match.
type MatchArm struct {
	Pattern Pattern
	Body    Expr
}

// Match is pattern matching over a scrutinee expression. Exhaustive is
// carried through from the surface coverage check rather than
// recomputed; internal/lower does not read it and always compiles a
// trailing panic stub after the last arm.
type Match struct {
	Node
	Scrutinee  Expr
	Arms       []MatchArm
	Exhaustive bool
}

func (*Match) coreExpr() {}
func (m *Match) String() string {
	arms := make([]string, len(m.Arms))
	for i, a := range m.Arms {
		arms[i] = fmt.Sprintf("%s -> %s", a.Pattern, a.Body)
	}
	return fmt.Sprintf("match %s { %s }", m.Scrutinee, strings.Join(arms, "; "))
}

// Pattern is the Core pattern grammar, already stripped of surface
// syntax: every constructor pattern carries the tag lowering resolved,
// so MIR compilation never needs to re-consult an ADT environment.
type Pattern interface {
	String() string
	patternNode()
}

// WildcardPattern matches anything and binds nothing.
type WildcardPattern struct{}

func (*WildcardPattern) patternNode()   {}
func (*WildcardPattern) String() string { return "_" }

// VarPattern matches anything and binds it to Name.
type VarPattern struct {
	Name string
}

func (*VarPattern) patternNode()      {}
func (p *VarPattern) String() string { return p.Name }

// LitPattern matches a literal value exactly. SpanVal is kept (unlike
// every other pattern variant) because MIR lowering needs a source
// location to anchor MIR001 against when it rejects a string pattern.
type LitPattern struct {
	Kind    LitKind
	Value   interface{}
	SpanVal token.Span
}

func (*LitPattern) patternNode()      {}
func (p *LitPattern) String() string { return fmt.Sprintf("%v", p.Value) }
func (p *LitPattern) Span() token.Span { return p.SpanVal }

// CtorPattern matches a specific constructor tag, binding its fields.
type CtorPattern struct {
	Name string
	Tag  int
	Args []Pattern
}

func (*CtorPattern) patternNode() {}
func (p *CtorPattern) String() string {
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.Name, strings.Join(args, ", "))
}

// TuplePattern matches a tuple element-wise.
type TuplePattern struct {
	Elements []Pattern
}

func (*TuplePattern) patternNode() {}
func (p *TuplePattern) String() string {
	elems := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}

// Decl is one top-level Core declaration: either a single Let or a
// LetRec group, mirroring the surface LetDecl it lowered from.
type Decl struct {
	Rec      bool
	Name     string       // set when !Rec
	Value    Expr         // set when !Rec
	Bindings []RecBinding // set when Rec
}

// Program is a whole lowered module.
type Program struct {
	Decls []Decl
}
