// Package mir defines the Machine IR that internal/lower produces from
// Core: flat, single-assignment instruction lists with explicit control
// flow, no nested expression trees. Every instruction names a fresh
// destination variable; later instructions and branch conditions refer
// back to earlier destinations by name (an atom), never by re-embedding
// the producing instruction.
package mir

import (
	"fmt"
	"strings"
)

// Instr is one single-assignment instruction. Dest names the SSA
// variable its result is bound to.
type Instr interface {
	Dest() string
	String() string
	instrNode()
}

// Base is embedded in every Instr: the SSA variable name its result is
// bound to.
type Base struct {
	DestName string
}

func (b Base) Dest() string { return b.DestName }

// Const materializes a literal value.
type Const struct {
	Base
	Kind  int // mirrors core.LitKind without importing internal/core here
	Value interface{}
}

func (*Const) instrNode() {}
func (c *Const) String() string {
	return fmt.Sprintf("%s = const %v", c.DestName, c.Value)
}

// Prim applies one of the fixed primitive operations to already-bound
// atoms.
type Prim struct {
	Base
	Op   string
	Args []string
}

func (*Prim) instrNode() {}
func (p *Prim) String() string {
	return fmt.Sprintf("%s = %s(%s)", p.DestName, p.Op, strings.Join(p.Args, ", "))
}

// MakeTuple allocates a tuple from already-bound element atoms.
type MakeTuple struct {
	Base
	Elements []string
}

func (*MakeTuple) instrNode() {}
func (t *MakeTuple) String() string {
	return fmt.Sprintf("%s = tuple(%s)", t.DestName, strings.Join(t.Elements, ", "))
}

// GetTuple projects one element out of a tuple atom.
type GetTuple struct {
	Base
	Tuple string
	Index int
}

func (*GetTuple) instrNode() {}
func (g *GetTuple) String() string {
	return fmt.Sprintf("%s = get_tuple(%s, %d)", g.DestName, g.Tuple, g.Index)
}

// MakeClosure allocates a closure over FuncID, capturing Env (a flat
// list of already-bound atoms, positionally matching the target
// function's Captures).
type MakeClosure struct {
	Base
	FuncID string
	Env    []string
}

func (*MakeClosure) instrNode() {}
func (m *MakeClosure) String() string {
	return fmt.Sprintf("%s = closure(%s; %s)", m.DestName, m.FuncID, strings.Join(m.Env, ", "))
}

// Call invokes Func (a bound atom: a top-level function name or a
// closure value) with Args.
type Call struct {
	Base
	Func string
	Args []string
}

func (*Call) instrNode() {}
func (c *Call) String() string {
	return fmt.Sprintf("%s = call(%s, %s)", c.DestName, c.Func, strings.Join(c.Args, ", "))
}

// AllocCtor allocates a tagged constructor value, Fields already bound.
type AllocCtor struct {
	Base
	Tag    int
	Fields []string
}

func (*AllocCtor) instrNode() {}
func (a *AllocCtor) String() string {
	return fmt.Sprintf("%s = alloc_ctor(%d, %s)", a.DestName, a.Tag, strings.Join(a.Fields, ", "))
}

// GetTag reads the declaration-order tag off a constructor value.
type GetTag struct {
	Base
	Value string
}

func (*GetTag) instrNode() {}
func (g *GetTag) String() string {
	return fmt.Sprintf("%s = get_tag(%s)", g.DestName, g.Value)
}

// GetField projects one field out of a constructor value by index.
type GetField struct {
	Base
	Value string
	Index int
}

func (*GetField) instrNode() {}
func (g *GetField) String() string {
	return fmt.Sprintf("%s = get_field(%s, %d)", g.DestName, g.Value, g.Index)
}

// GetRecordField projects one named field out of a record value. This
// isn't one of the tagged-union accessors pattern compilation needs, but
// FieldAccess is a real Core node (record field access against a
// foreign-provided shape) that has to lower to something.
type GetRecordField struct {
	Base
	Value string
	Field string
}

func (*GetRecordField) instrNode() {}
func (g *GetRecordField) String() string {
	return fmt.Sprintf("%s = get_record_field(%s, %q)", g.DestName, g.Value, g.Field)
}

// IfElse is the only branching instruction MIR has. Both arms are their
// own flat instruction lists, each producing a result atom; whichever
// arm runs, its result is what Dest() names. An arm that ends in a
// self-recursive tail call carries no Result at all: Continue holds the
// rebound argument atoms instead, and the arm loops rather than returns.
type IfElse struct {
	Base
	Cond string

	ThenInstrs   []Instr
	ThenResult   string
	ThenContinue []string

	ElseInstrs   []Instr
	ElseResult   string
	ElseContinue []string
}

func (*IfElse) instrNode() {}
func (ie *IfElse) String() string {
	then := ie.ThenResult
	if ie.ThenContinue != nil {
		then = "continue(" + strings.Join(ie.ThenContinue, ", ") + ")"
	}
	els := ie.ElseResult
	if ie.ElseContinue != nil {
		els = "continue(" + strings.Join(ie.ElseContinue, ", ") + ")"
	}
	return fmt.Sprintf("%s = if %s then {%d instrs; %s} else {%d instrs; %s}",
		ie.DestName, ie.Cond, len(ie.ThenInstrs), then, len(ie.ElseInstrs), els)
}

// CtorTag is one constructor's declaration-order tag and field count,
// carried into MIR so pattern compilation never needs to re-consult an
// ADT environment.
type CtorTag struct {
	Name  string
	Tag   int
	Arity int
}

// TagTable is one declared type's constructor tag assignments.
type TagTable struct {
	TypeName string
	Ctors    []CtorTag
}

// Func is one lowered function: flat instructions ending in either a
// Result atom (ordinary return) or, for a self-recursive function whose
// body ends in a tail call to itself, a Continue rebinding of Params
// (the loop wraps back to the top instead of returning).
type Func struct {
	Name          string
	Params        []string
	Captures      []string // free variables closed over, positionally matching a MakeClosure's Env
	SelfRecursive bool

	Body     []Instr
	Result   string
	Continue []string
}

// Program is a whole lowered module: its constructor tag tables plus
// every function (top-level bindings and the closures nested lambdas
// were split into).
type Program struct {
	TagTables map[string]*TagTable
	Funcs     []*Func
}
