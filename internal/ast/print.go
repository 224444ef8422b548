package ast

import (
	"fmt"
	"strings"
)

// String renders an expression in a debug-friendly surface-like form.
// Not a formatter; used only for diagnostics and test failure messages.
func String(e Expr) string {
	switch e := e.(type) {
	case *Var:
		return e.Name
	case *Lit:
		return fmt.Sprintf("%v", e.Value)
	case *Ctor:
		if len(e.Args) == 0 {
			return e.Name
		}
		return fmt.Sprintf("%s(%s)", e.Name, joinExprs(e.Args))
	case *Tuple:
		return fmt.Sprintf("(%s)", joinExprs(e.Elements))
	case *Call:
		return fmt.Sprintf("%s(%s)", String(e.Func), joinExprs(e.Args))
	case *Arrow:
		names := make([]string, len(e.Params))
		for i, p := range e.Params {
			names[i] = p.Name
		}
		return fmt.Sprintf("(%s) => { ... }", strings.Join(names, ", "))
	case *Block:
		return "{ ... }"
	case *Match:
		return fmt.Sprintf("match(%s) { ... }", String(e.Scrutinee))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", String(e.Left), e.Op, String(e.Right))
	case *Unary:
		return fmt.Sprintf("(%s%s)", e.Op, String(e.Operand))
	case *FieldAccess:
		return fmt.Sprintf("%s.%s", String(e.Record), e.Field)
	case *Hole:
		return "?"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func joinExprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = String(e)
	}
	return strings.Join(parts, ", ")
}

// PatternString renders a pattern in surface-like form.
func PatternString(p Pattern) string {
	switch p := p.(type) {
	case *WildcardPattern:
		return "_"
	case *VarPattern:
		return p.Name
	case *LitPattern:
		return fmt.Sprintf("%v", p.Value)
	case *CtorPattern:
		if len(p.Args) == 0 {
			return p.Name
		}
		parts := make([]string, len(p.Args))
		for i, a := range p.Args {
			parts[i] = PatternString(a)
		}
		return fmt.Sprintf("%s(%s)", p.Name, strings.Join(parts, ", "))
	case *TuplePattern:
		parts := make([]string, len(p.Elements))
		for i, a := range p.Elements {
			parts[i] = PatternString(a)
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	default:
		return fmt.Sprintf("<%T>", p)
	}
}
