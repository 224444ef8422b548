package infer

import (
	"fmt"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/diagnostic"
	"github.com/workman-lang/workman/internal/types"
)

// inferExpr is Algorithm W's expression case, extended to emit a
// ConstraintSource stub at every call site whose result is Result<T, E>
// and a mark recording the node's inferred type.
func (inf *Inferencer) inferExpr(e ast.Expr, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	t, sub, err := inf.inferExprRaw(e, env, sub)
	if err != nil {
		t = &types.TUnknown{Provenance: types.InferenceFailure}
	}
	inf.marks.Assign(e, t)
	return t, sub, err
}

func (inf *Inferencer) inferExprRaw(e ast.Expr, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	switch ex := e.(type) {
	case *ast.Var:
		return inf.inferVar(ex, env, sub)

	case *ast.Lit:
		return litKindType(ex.Kind), sub, nil

	case *ast.Hole:
		inf.holes = append(inf.holes, ex)
		return inf.fresh.Var(), sub, nil

	case *ast.Ctor:
		return inf.inferCtorExpr(ex, env, sub)

	case *ast.Tuple:
		elems := make([]types.Type, len(ex.Elements))
		for i, el := range ex.Elements {
			t, newSub, err := inf.inferExpr(el, env, sub)
			if err != nil {
				return nil, nil, err
			}
			sub = newSub
			elems[i] = t
		}
		return &types.TTuple{Elements: elems}, sub, nil

	case *ast.Call:
		return inf.inferCall(ex, env, sub)

	case *ast.Arrow:
		return inf.inferArrow(ex, env, sub)

	case *ast.Block:
		return inf.inferBlock(ex, env, sub)

	case *ast.Match:
		return inf.inferMatch(ex, env, sub)

	case *ast.Binary:
		t, sub, err := inf.inferCall(&ast.Call{
			Func:    &ast.Var{Name: "__op_" + binaryFuncSuffix(ex.Op), SpanVal: ex.SpanVal},
			Args:    []ast.Expr{ex.Left, ex.Right},
			SpanVal: ex.SpanVal,
		}, env, sub)
		if err == nil {
			inf.emitOperandConstraint(ex.Left, binaryOperandKind(ex.Op), sub)
			inf.emitOperandConstraint(ex.Right, binaryOperandKind(ex.Op), sub)
		}
		return t, sub, err

	case *ast.Unary:
		t, sub, err := inf.inferCall(&ast.Call{
			Func:    &ast.Var{Name: "__prefix_" + unaryFuncSuffix(ex.Op), SpanVal: ex.SpanVal},
			Args:    []ast.Expr{ex.Operand},
			SpanVal: ex.SpanVal,
		}, env, sub)
		if err == nil {
			inf.emitOperandConstraint(ex.Operand, unaryOperandKind(ex.Op), sub)
		}
		return t, sub, err

	case *ast.FieldAccess:
		return inf.inferFieldAccess(ex, env, sub)
	}
	return nil, nil, fmt.Errorf("unhandled expression kind %T", e)
}

func binaryFuncSuffix(op string) string {
	switch op {
	case "+":
		return "add"
	case "-":
		return "sub"
	case "*":
		return "mul"
	case "/":
		return "div"
	case "<":
		return "lt"
	case ">":
		return "gt"
	case "<=":
		return "le"
	case ">=":
		return "ge"
	case "==":
		return "eq"
	case "!=":
		return "ne"
	case "&&":
		return "and"
	case "||":
		return "or"
	}
	return op
}

func unaryFuncSuffix(op string) string {
	switch op {
	case "-":
		return "neg"
	case "!":
		return "not"
	}
	return op
}

// binaryOperandKind and unaryOperandKind classify an operator's operands
// as "numeric", "boolean", or "" (neither, e.g. polymorphic equality),
// deciding which kind of operand constraint emitOperandConstraint emits.
func binaryOperandKind(op string) string {
	switch op {
	case "+", "-", "*", "/", "<", ">", "<=", ">=":
		return "numeric"
	case "&&", "||":
		return "boolean"
	}
	return ""
}

func unaryOperandKind(op string) string {
	switch op {
	case "-":
		return "numeric"
	case "!":
		return "boolean"
	}
	return ""
}

// emitOperandConstraint emits a Numeric or Boolean stub for operand's
// already-inferred type, if kind names one; called after the enclosing
// binary/unary call has finished unifying so sub is fully applied.
func (inf *Inferencer) emitOperandConstraint(operand ast.Expr, kind string, sub types.Substitution) {
	if kind == "" {
		return
	}
	mark, ok := inf.marks.Lookup(operand)
	if !ok {
		return
	}
	t := sub.Apply(mark.Type)
	switch kind {
	case "numeric":
		inf.constraints.Emit(&Numeric{At: operand, Operand: t})
	case "boolean":
		inf.constraints.Emit(&Boolean{At: operand, Operand: t})
	}
}

func (inf *Inferencer) inferVar(ex *ast.Var, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	if scheme, ok := env.Lookup(ex.Name); ok {
		return scheme.Instantiate(inf.fresh), sub, nil
	}
	if t, ok := inf.foreign.Lookup(ex.Name); ok {
		return t, sub, nil
	}
	inf.report(diagnostic.New(diagnostic.TC002, ex.Span(), "unbound variable %q", ex.Name))
	return nil, nil, fmt.Errorf("unbound variable %q", ex.Name)
}

func (inf *Inferencer) inferCtorExpr(ex *ast.Ctor, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	owner, ctorInfo, ok := inf.adtEnv.CtorOwner(ex.Name)
	if !ok {
		inf.report(diagnostic.New(diagnostic.TC005, ex.Span(), "unknown constructor %q", ex.Name))
		return nil, nil, fmt.Errorf("unknown constructor %q", ex.Name)
	}
	if len(ctorInfo.Fields) != len(ex.Args) {
		inf.report(diagnostic.New(diagnostic.TC006, ex.Span(),
			"constructor %q expects %d argument(s), got %d", ex.Name, len(ctorInfo.Fields), len(ex.Args)))
		return nil, nil, fmt.Errorf("constructor %q arity mismatch", ex.Name)
	}

	instSub := types.Substitution{}
	for _, p := range owner.Params {
		instSub[p] = inf.fresh.Var()
	}

	for i, argExpr := range ex.Args {
		argType, newSub, err := inf.inferExpr(argExpr, env, sub)
		if err != nil {
			return nil, nil, err
		}
		sub = newSub
		fieldType := instSub.Apply(ctorInfo.Fields[i])
		sub, err = types.Unify(argType, fieldType, sub, inf.fresh)
		if err != nil {
			inf.report(diagnostic.New(diagnostic.TC001, argExpr.Span(),
				"argument %d to %q has the wrong type", i+1, ex.Name))
			return nil, nil, err
		}
	}

	resultType := instSub.Apply(Type(owner.Name, paramVars(owner.Params)))
	return resultType, sub, nil
}

func (inf *Inferencer) inferCall(ex *ast.Call, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	fnType, sub, err := inf.inferExpr(ex.Func, env, sub)
	if err != nil {
		return nil, nil, err
	}

	argTypes := make([]types.Type, len(ex.Args))
	for i, a := range ex.Args {
		t, newSub, err := inf.inferExpr(a, env, sub)
		if err != nil {
			return nil, nil, err
		}
		sub = newSub
		argTypes[i] = t
	}

	resultVar := inf.fresh.Var()
	expected := &types.TFunc{Params: argTypes, Return: resultVar}
	sub, err = types.Unify(fnType, expected, sub, inf.fresh)
	if err != nil {
		inf.report(diagnostic.New(diagnostic.TC001, ex.Span(), "%s", err.Error()))
		return nil, nil, err
	}

	resolvedArgs := make([]types.Type, len(argTypes))
	for i, t := range argTypes {
		resolvedArgs[i] = sub.Apply(t)
	}
	resultType := sub.Apply(resultVar)
	inf.constraints.Emit(&Call{At: ex, Callee: sub.Apply(fnType), Args: resolvedArgs, Result: resultType})

	if _, row, ok := types.AsResult(resultType); ok {
		inf.constraints.Emit(&ConstraintSource{At: ex, Row: row})
	}
	for _, argType := range resolvedArgs {
		if _, argRow, ok := types.AsResult(argType); ok {
			inf.constraints.Emit(&ConstraintFlow{At: ex, From: argRow, To: types.EmptyErrorRow()})
		}
	}
	return resultType, sub, nil
}

func (inf *Inferencer) inferArrow(ex *ast.Arrow, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	bodyEnv := env.Child()
	params := make([]types.Type, len(ex.Params))
	for i, p := range ex.Params {
		var pt types.Type
		if p.TypeAnn != nil {
			scope := newTypeScope()
			elaborated, err := ElaborateTypeExpr(p.TypeAnn, inf.adtEnv, scope)
			if err != nil {
				return nil, nil, err
			}
			pt = elaborated
		} else {
			pt = inf.fresh.Var()
		}
		params[i] = pt
		bodyEnv.Define(p.Name, types.Mono(pt))
	}

	bodyType, sub, err := inf.inferBlock(ex.Body, bodyEnv, sub)
	if err != nil {
		return nil, nil, err
	}
	resolvedParams := make([]types.Type, len(params))
	for i, p := range params {
		resolvedParams[i] = sub.Apply(p)
	}
	return &types.TFunc{Params: resolvedParams, Return: sub.Apply(bodyType)}, sub, nil
}

// inferBlock infers every statement in b in order, then its trailing
// result expression. Any statement whose type turned out to be
// Result<T, E> has its error row flowed forward into the block's own
// result node: a call used only for its side effect still needs its
// error cases accounted for at the enclosing function's boundary, even
// though the block's own type never mentions them.
func (inf *Inferencer) inferBlock(b *ast.Block, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	blockEnv := env.Child()
	var sideEffects []ast.Expr
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			t, newSub, err := inf.inferExpr(s.Value, blockEnv, sub)
			if err != nil {
				return nil, nil, err
			}
			sub = newSub
			blockEnv.Define(s.Name, types.Generalize(blockEnv.TypesInScope(), sub.Apply(t), !isSyntacticValue(s.Value)))
			sideEffects = append(sideEffects, s.Value)
		case *ast.ExprStmt:
			_, newSub, err := inf.inferExpr(s.X, blockEnv, sub)
			if err != nil {
				return nil, nil, err
			}
			sub = newSub
			sideEffects = append(sideEffects, s.X)
		}
	}
	resultType, sub, err := inf.inferExpr(b.Result, blockEnv, sub)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range sideEffects {
		mark, ok := inf.marks.Lookup(e)
		if !ok {
			continue
		}
		if _, row, ok := types.AsResult(sub.Apply(mark.Type)); ok {
			inf.constraints.Emit(&ConstraintFlow{At: b.Result, From: row, To: types.EmptyErrorRow()})
		}
	}
	return resultType, sub, nil
}

func (inf *Inferencer) inferFieldAccess(ex *ast.FieldAccess, env *Env, sub types.Substitution) (types.Type, types.Substitution, error) {
	recordType, sub, err := inf.inferExpr(ex.Record, env, sub)
	if err != nil {
		return nil, nil, err
	}
	fieldType := inf.fresh.Var()
	tail := inf.fresh.RowVar()
	expected := &types.TRecord{Fields: map[string]types.Type{ex.Field: fieldType}, Tail: tail}
	sub, err = types.Unify(recordType, expected, sub, inf.fresh)
	if err != nil {
		inf.report(diagnostic.New(diagnostic.TC001, ex.Span(), "value has no field %q", ex.Field))
		return nil, nil, err
	}
	resultType := sub.Apply(fieldType)
	inf.constraints.Emit(&HasField{At: ex, Record: sub.Apply(recordType), Field: ex.Field, ResultType: resultType})
	return resultType, sub, nil
}
