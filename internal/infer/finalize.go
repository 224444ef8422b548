package infer

import (
	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/types"
)

// finalizeMarks re-applies sub to every mark recorded while inferring e,
// walking into every subexpression. Marks are written during inference
// against whatever substitution existed at that moment, which later
// unifications within the same binding can still refine; this pass
// brings every node's recorded type up to date with the substitution
// that held once the whole binding finished.
func (inf *Inferencer) finalizeMarks(e ast.Expr, sub types.Substitution) {
	if e == nil {
		return
	}
	if mark, ok := inf.marks.Lookup(e); ok {
		mark.Type = sub.Apply(mark.Type)
	}

	switch ex := e.(type) {
	case *ast.Ctor:
		for _, a := range ex.Args {
			inf.finalizeMarks(a, sub)
		}
	case *ast.Tuple:
		for _, el := range ex.Elements {
			inf.finalizeMarks(el, sub)
		}
	case *ast.Call:
		inf.finalizeMarks(ex.Func, sub)
		for _, a := range ex.Args {
			inf.finalizeMarks(a, sub)
		}
	case *ast.Arrow:
		inf.finalizeBlock(ex.Body, sub)
	case *ast.Block:
		inf.finalizeBlock(ex, sub)
	case *ast.Match:
		inf.finalizeMarks(ex.Scrutinee, sub)
		for _, arm := range ex.Arms {
			inf.finalizeBlock(arm.Body, sub)
		}
	case *ast.Binary:
		inf.finalizeMarks(ex.Left, sub)
		inf.finalizeMarks(ex.Right, sub)
	case *ast.Unary:
		inf.finalizeMarks(ex.Operand, sub)
	case *ast.FieldAccess:
		inf.finalizeMarks(ex.Record, sub)
	}
}

func (inf *Inferencer) finalizeBlock(b *ast.Block, sub types.Substitution) {
	if b == nil {
		return
	}
	for _, stmt := range b.Stmts {
		switch s := stmt.(type) {
		case *ast.LetStmt:
			inf.finalizeMarks(s.Value, sub)
		case *ast.ExprStmt:
			inf.finalizeMarks(s.X, sub)
		}
	}
	inf.finalizeMarks(b.Result, sub)
}
