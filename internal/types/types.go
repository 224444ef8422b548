// Package types implements the Workman type system: the Type sum, type
// schemes, the ADT environment, and Hindley-Milner unification extended
// with row-polymorphic error tracking.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is any Workman type. Concrete variants are TVar, TFunc, TCtor,
// TTuple, TRecord, TErrorRow, and TUnknown.
type Type interface {
	typeNode()
	String() string
}

// TVar is an unbound (or substitution-bound) type variable.
type TVar struct {
	Name string
}

func (*TVar) typeNode()      {}
func (t *TVar) String() string { return t.Name }

// TCtor is a named type constructor applied to zero or more arguments:
// primitives (`Int`, `Bool`, ...), built-ins (`Result<T, E>`), and
// user-declared ADTs (`Option<Int>`).
type TCtor struct {
	Name string
	Args []Type
}

func (*TCtor) typeNode() {}
func (t *TCtor) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(args, ", "))
}

// Primitive type constructors with no arguments.
var (
	Int    = &TCtor{Name: "Int"}
	Bool   = &TCtor{Name: "Bool"}
	Char   = &TCtor{Name: "Char"}
	String = &TCtor{Name: "String"}
	Unit   = &TCtor{Name: "Unit"}
)

// IsPrimitive reports whether t is one of the built-in nullary primitives.
func IsPrimitive(t Type) bool {
	c, ok := t.(*TCtor)
	if !ok || len(c.Args) != 0 {
		return false
	}
	switch c.Name {
	case "Int", "Bool", "Char", "String", "Unit":
		return true
	}
	return false
}

// TFunc is a multi-parameter function type `(P1, P2, ...) -> R`; the
// parameters are taken together, not curried.
type TFunc struct {
	Params []Type
	Return Type
}

func (*TFunc) typeNode() {}
func (t *TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.Return.String())
}

// TTuple is a fixed-arity product type, always of length >= 2.
type TTuple struct {
	Elements []Type
}

func (*TTuple) typeNode() {}
func (t *TTuple) String() string {
	elems := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		elems[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(elems, ", "))
}

// TRecord is a row-polymorphic record type. Fields is the set of known
// labels; Tail, when non-empty, names a row variable standing for the
// record's unknown remainder (used by HasField constraints against
// foreign-imported record values).
type TRecord struct {
	Fields map[string]Type
	Tail   string // "" means closed
}

func (*TRecord) typeNode() {}
func (t *TRecord) String() string {
	names := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, k := range names {
		parts[i] = fmt.Sprintf("%s: %s", k, t.Fields[k].String())
	}
	if t.Tail != "" {
		parts = append(parts, "| "+t.Tail)
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

// ErrorCase is one labeled case of an error row, with an optional payload
// type (nil for a nullary case like `DivByZero`).
type ErrorCase struct {
	Label   string
	Payload Type // nil if nullary
}

// TErrorRow is a row-polymorphic set of error cases, the type of the `E`
// in `Result<T, E>`. Tail, when non-empty, names a row variable standing
// for cases not yet known (an "open" row); "" means the row is closed and
// carries exactly the listed cases.
type TErrorRow struct {
	Cases map[string]*ErrorCase
	Tail  string
}

func (*TErrorRow) typeNode() {}
func (t *TErrorRow) String() string {
	names := make([]string, 0, len(t.Cases))
	for k := range t.Cases {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		c := t.Cases[name]
		if c.Payload != nil {
			parts[i] = fmt.Sprintf("%s(%s)", c.Label, c.Payload.String())
		} else {
			parts[i] = c.Label
		}
	}
	if t.Tail != "" {
		parts = append(parts, "| "+t.Tail)
	}
	return fmt.Sprintf("<%s>", strings.Join(parts, ", "))
}

// EmptyErrorRow returns a fresh closed error row with no cases, the unit
// of error-row union.
func EmptyErrorRow() *TErrorRow {
	return &TErrorRow{Cases: map[string]*ErrorCase{}}
}

// HoleProvenance explains why a TUnknown was produced.
type HoleProvenance int

const (
	// UserHole marks a type standing in for a surface `?` the user wrote.
	UserHole HoleProvenance = iota
	// InferenceFailure marks a type that could not be determined because
	// an earlier inference step already failed.
	InferenceFailure
)

// TUnknown is a placeholder type: either a user-written hole or the
// result of giving up after an earlier error, so inference can continue
// and report every problem in one pass instead of aborting at the first.
type TUnknown struct {
	Provenance HoleProvenance
}

func (*TUnknown) typeNode()        {}
func (t *TUnknown) String() string { return "?" }

// Result builds the `Result<T, E>` applied type.
func Result(value Type, errorRow *TErrorRow) *TCtor {
	return &TCtor{Name: "Result", Args: []Type{value, errorRow}}
}

// AsResult reports whether t is `Result<T, E>`, returning its value and
// error-row components.
func AsResult(t Type) (value Type, errRow *TErrorRow, ok bool) {
	c, isCtor := t.(*TCtor)
	if !isCtor || c.Name != "Result" || len(c.Args) != 2 {
		return nil, nil, false
	}
	row, isRow := c.Args[1].(*TErrorRow)
	if !isRow {
		return nil, nil, false
	}
	return c.Args[0], row, true
}
