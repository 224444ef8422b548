package core

import (
	"fmt"
	"sort"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/infer"
	"github.com/workman-lang/workman/internal/types"
)

// Lowerer turns the marked surface AST into Core expressions, stamping
// each node with the type internal/infer recorded for it. It performs no
// ANF normalization itself (internal/lower does that over its output); a
// lowered Call's arguments may still be arbitrarily complex expressions,
// and a lowered Match's scrutinee need not be atomic.
type Lowerer struct {
	adtEnv   *types.ADTEnv
	marks    *infer.Marks
	coverage map[*ast.Match]bool
	nextID   int
}

// NewLowerer returns a Lowerer reading types from marks, constructor tags
// from adtEnv, and each match's exhaustiveness result from coverage
// (internal/infer.Inferencer.MatchCoverage) rather than recomputing it.
func NewLowerer(adtEnv *types.ADTEnv, marks *infer.Marks, coverage []*infer.MatchCoverage) *Lowerer {
	byNode := make(map[*ast.Match]bool, len(coverage))
	for _, mc := range coverage {
		byNode[mc.Node] = mc.Exhaustive
	}
	return &Lowerer{adtEnv: adtEnv, marks: marks, coverage: byNode}
}

func (l *Lowerer) node(e ast.Expr) Node {
	l.nextID++
	var t types.Type = &types.TUnknown{Provenance: types.InferenceFailure}
	if mark, ok := l.marks.Lookup(e); ok {
		t = mark.Type
	}
	return Node{NodeID: l.nextID, SpanVal: e.Span(), Type: t}
}

// LowerProgram lowers every let declaration in prog, in source order.
func (l *Lowerer) LowerProgram(prog *ast.Program) (*Program, error) {
	out := &Program{}
	for _, decl := range prog.Decls {
		ld, ok := decl.(*ast.LetDecl)
		if !ok {
			continue
		}
		decls, err := l.lowerLetDecl(ld)
		if err != nil {
			return nil, err
		}
		out.Decls = append(out.Decls, decls...)
	}
	return out, nil
}

func (l *Lowerer) lowerLetDecl(ld *ast.LetDecl) ([]Decl, error) {
	if ld.Recursive {
		bindings := make([]RecBinding, len(ld.Bindings))
		for i, b := range ld.Bindings {
			v, err := l.lowerExpr(b.Value)
			if err != nil {
				return nil, err
			}
			bindings[i] = RecBinding{Name: b.Name, Value: v}
		}
		return []Decl{{Rec: true, Bindings: bindings}}, nil
	}

	decls := make([]Decl, 0, len(ld.Bindings))
	for _, b := range ld.Bindings {
		v, err := l.lowerExpr(b.Value)
		if err != nil {
			return nil, err
		}
		decls = append(decls, Decl{Name: b.Name, Value: v})
	}
	return decls, nil
}

func (l *Lowerer) lowerExpr(e ast.Expr) (Expr, error) {
	switch ex := e.(type) {
	case *ast.Var:
		return &Var{Node: l.node(e), Name: ex.Name}, nil

	case *ast.Lit:
		return &Lit{Node: l.node(e), Kind: LitKind(ex.Kind), Value: ex.Value}, nil

	case *ast.Hole:
		return nil, fmt.Errorf("cannot lower an unfilled hole at byte %d", ex.Span().Start)

	case *ast.Ctor:
		return l.lowerCtor(ex)

	case *ast.Tuple:
		elems := make([]Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			v, err := l.lowerExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return &TupleExpr{Node: l.node(e), Elements: elems}, nil

	case *ast.Call:
		return l.lowerCall(ex)

	case *ast.Arrow:
		return l.lowerArrow(ex)

	case *ast.Block:
		return l.lowerBlock(ex)

	case *ast.Match:
		return l.lowerMatch(ex)

	case *ast.Binary:
		op, err := primOpForBinary(ex.Op)
		if err != nil {
			return nil, err
		}
		left, err := l.lowerExpr(ex.Left)
		if err != nil {
			return nil, err
		}
		right, err := l.lowerExpr(ex.Right)
		if err != nil {
			return nil, err
		}
		return &Prim{Node: l.node(e), Op: op, Args: []Expr{left, right}}, nil

	case *ast.Unary:
		op, err := primOpForUnary(ex.Op)
		if err != nil {
			return nil, err
		}
		operand, err := l.lowerExpr(ex.Operand)
		if err != nil {
			return nil, err
		}
		return &Prim{Node: l.node(e), Op: op, Args: []Expr{operand}}, nil

	case *ast.FieldAccess:
		rec, err := l.lowerExpr(ex.Record)
		if err != nil {
			return nil, err
		}
		return &FieldAccess{Node: l.node(e), Record: rec, Field: ex.Field}, nil
	}
	return nil, fmt.Errorf("cannot lower expression of type %T", e)
}

func (l *Lowerer) lowerCtor(ex *ast.Ctor) (Expr, error) {
	tag := 0
	if _, info, ok := l.adtEnv.Ctor(ex.Name); ok {
		tag = info.Tag
	}
	args := make([]Expr, len(ex.Args))
	for i, a := range ex.Args {
		v, err := l.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return &Ctor{Node: l.node(ex), Name: ex.Name, Tag: tag, Args: args}, nil
}

func (l *Lowerer) lowerCall(ex *ast.Call) (Expr, error) {
	fn, err := l.lowerExpr(ex.Func)
	if err != nil {
		return nil, err
	}
	args := make([]Expr, len(ex.Args))
	for i, a := range ex.Args {
		v, err := l.lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return &App{Node: l.node(ex), Func: fn, Args: args}, nil
}

func (l *Lowerer) lowerArrow(ex *ast.Arrow) (Expr, error) {
	body, err := l.lowerBlock(ex.Body)
	if err != nil {
		return nil, err
	}
	params := make([]string, len(ex.Params))
	for i, p := range ex.Params {
		params[i] = p.Name
	}
	return &Lam{Node: l.node(ex), Params: params, Body: body}, nil
}

// lowerBlock threads a `{ stmt*; result }` block into nested Lets, with
// the block's final expression as the innermost body. A statement whose
// value is discarded (ExprStmt) still needs a binder, since Core has no
// standalone expression-statement node; it is bound to a name the rest
// of Core never references.
func (l *Lowerer) lowerBlock(b *ast.Block) (Expr, error) {
	result, err := l.lowerExpr(b.Result)
	if err != nil {
		return nil, err
	}

	for i := len(b.Stmts) - 1; i >= 0; i-- {
		switch s := b.Stmts[i].(type) {
		case *ast.LetStmt:
			v, err := l.lowerExpr(s.Value)
			if err != nil {
				return nil, err
			}
			result = &Let{Node: l.node(s.Value), Name: s.Name, Value: v, Body: result}
		case *ast.ExprStmt:
			v, err := l.lowerExpr(s.X)
			if err != nil {
				return nil, err
			}
			result = &Let{Node: l.node(s.X), Name: discardName(i), Value: v, Body: result}
		}
	}
	return result, nil
}

func discardName(i int) string { return fmt.Sprintf("$discard%d", i) }

func (l *Lowerer) lowerMatch(ex *ast.Match) (Expr, error) {
	scrutinee, err := l.lowerExpr(ex.Scrutinee)
	if err != nil {
		return nil, err
	}

	rowTags := l.rowTagsForMatch(ex)

	arms := make([]MatchArm, len(ex.Arms))
	for i, arm := range ex.Arms {
		pat, err := l.lowerPattern(arm.Pattern, rowTags)
		if err != nil {
			return nil, err
		}
		body, err := l.lowerBlock(arm.Body)
		if err != nil {
			return nil, err
		}
		arms[i] = MatchArm{Pattern: pat, Body: body}
	}

	return &Match{
		Node:       l.node(ex),
		Scrutinee:  scrutinee,
		Arms:       arms,
		Exhaustive: l.exhaustive(ex),
	}, nil
}

// exhaustive reports the exhaustiveness internal/infer already computed
// for ex. If ex is missing from the coverage table (only possible for a
// Match built outside normal inference, which LowerProgram never does),
// it falls back to checking for a trailing wildcard/var arm.
func (l *Lowerer) exhaustive(ex *ast.Match) bool {
	if exhaustive, ok := l.coverage[ex]; ok {
		return exhaustive
	}
	for _, arm := range ex.Arms {
		switch arm.Pattern.(type) {
		case *ast.WildcardPattern, *ast.VarPattern:
			return true
		}
	}
	return false
}

// rowTagsForMatch assigns a stable, deterministic tag to every case label
// appearing in a match over an error row that isn't a declared ADT (the
// bare-constructor-name error-case arms internal/infer's
// looksLikeErrorRowMatch heuristic recognizes). There is no declaration
// order for these, since the row is assembled implicitly from the arms
// themselves, so lowering falls back to sorted label order.
func (l *Lowerer) rowTagsForMatch(ex *ast.Match) map[string]int {
	var labels []string
	for _, arm := range ex.Arms {
		if cp, ok := arm.Pattern.(*ast.CtorPattern); ok {
			if _, known := l.adtEnv.CtorOwner(cp.Name); !known {
				labels = append(labels, cp.Name)
			}
		}
	}
	sort.Strings(labels)
	tags := map[string]int{}
	for i, name := range labels {
		tags[name] = i
	}
	return tags
}

func (l *Lowerer) lowerPattern(p ast.Pattern, rowTags map[string]int) (Pattern, error) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
		return &WildcardPattern{}, nil
	case *ast.VarPattern:
		return &VarPattern{Name: pat.Name}, nil
	case *ast.LitPattern:
		return &LitPattern{Kind: LitKind(pat.Kind), Value: pat.Value, SpanVal: pat.Span()}, nil
	case *ast.TuplePattern:
		elems := make([]Pattern, len(pat.Elements))
		for i, el := range pat.Elements {
			lp, err := l.lowerPattern(el, rowTags)
			if err != nil {
				return nil, err
			}
			elems[i] = lp
		}
		return &TuplePattern{Elements: elems}, nil
	case *ast.CtorPattern:
		tag := 0
		if _, info, ok := l.adtEnv.Ctor(pat.Name); ok {
			tag = info.Tag
		} else if t, ok := rowTags[pat.Name]; ok {
			tag = t
		}
		args := make([]Pattern, len(pat.Args))
		for i, a := range pat.Args {
			lp, err := l.lowerPattern(a, rowTags)
			if err != nil {
				return nil, err
			}
			args[i] = lp
		}
		return &CtorPattern{Name: pat.Name, Tag: tag, Args: args}, nil
	}
	return nil, fmt.Errorf("cannot lower pattern of type %T", p)
}

func primOpForBinary(op string) (PrimOp, error) {
	switch op {
	case "+":
		return PrimAdd, nil
	case "-":
		return PrimSub, nil
	case "*":
		return PrimMul, nil
	case "/":
		return PrimDiv, nil
	case "<":
		return PrimLt, nil
	case ">":
		return PrimGt, nil
	case "<=":
		return PrimLe, nil
	case ">=":
		return PrimGe, nil
	case "==":
		return PrimEq, nil
	case "!=":
		return PrimNe, nil
	case "&&":
		return PrimAnd, nil
	case "||":
		return PrimOr, nil
	}
	return "", fmt.Errorf("unknown binary operator %q", op)
}

func primOpForUnary(op string) (PrimOp, error) {
	switch op {
	case "-":
		return PrimNeg, nil
	case "!":
		return PrimNot, nil
	}
	return "", fmt.Errorf("unknown unary operator %q", op)
}
