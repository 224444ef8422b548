// Package infer implements Algorithm W over the Workman surface AST,
// extended with row-polymorphic error tracking: every call and
// constructor use emits a constraint stub describing the error cases it
// can introduce, left for internal/solver to resolve in a later pass.
package infer

import (
	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/diagnostic"
	"github.com/workman-lang/workman/internal/foreign"
	"github.com/workman-lang/workman/internal/types"
)

// Inferencer holds the state threaded through one module's type
// inference pass: the ADT and error-row-alias tables built from the
// module's own type declarations, the node-mark store, emitted
// constraint stubs, and any diagnostics collected along the way.
type Inferencer struct {
	adtEnv        *types.ADTEnv
	rowAliases    map[string]*types.TErrorRow
	fresh         *types.Fresh
	marks         *Marks
	constraints   *ConstraintSink
	diags         []*diagnostic.Diagnostic
	foreign       foreign.TypeProvider
	holes         []*ast.Hole
	matchCoverage []*MatchCoverage
}

// MatchCoverage records one match expression's exhaustiveness result, for
// presentation layers that want to show coverage gaps without re-running
// the check themselves.
type MatchCoverage struct {
	Node       *ast.Match
	Missing    []string
	Exhaustive bool
	ArmCount   int
}

// New returns an inferencer ready to process one module, with the
// built-in Result ADT already installed. Native operator bindings live in
// the value environment and are installed separately by DefineNatives.
func New(foreignProvider foreign.TypeProvider) *Inferencer {
	adtEnv := types.NewADTEnv()
	declareBuiltinResult(adtEnv)
	if foreignProvider == nil {
		foreignProvider = foreign.NoProvider{}
	}
	return &Inferencer{
		adtEnv:      adtEnv,
		rowAliases:  map[string]*types.TErrorRow{},
		fresh:       types.NewFresh(),
		marks:       NewMarks(),
		constraints: &ConstraintSink{},
		foreign:     foreignProvider,
	}
}

// Marks returns the node-ID-keyed inference results for every expression
// visited during InferProgram.
func (inf *Inferencer) Marks() *Marks { return inf.marks }

// Constraints returns every constraint stub emitted during InferProgram,
// in emission (post-order) order.
func (inf *Inferencer) Constraints() []Constraint { return inf.constraints.All }

// Diagnostics returns every diagnostic recorded during InferProgram.
func (inf *Inferencer) Diagnostics() []*diagnostic.Diagnostic { return inf.diags }

// ADTEnv exposes the module's declared algebraic data types, for
// downstream lowering passes that need constructor tags and arities.
func (inf *Inferencer) ADTEnv() *types.ADTEnv { return inf.adtEnv }

// Holes returns every `?` placeholder expression encountered during
// InferProgram, in source order. Combined with Marks, a caller can read
// off each hole's best-known type after inference finishes.
func (inf *Inferencer) Holes() []*ast.Hole { return inf.holes }

// MatchCoverage returns the exhaustiveness result recorded for every match
// expression visited during InferProgram, in source order.
func (inf *Inferencer) MatchCoverage() []*MatchCoverage { return inf.matchCoverage }

func (inf *Inferencer) report(d *diagnostic.Diagnostic) {
	inf.diags = append(inf.diags, d)
}

// InferProgram type-checks every declaration in prog against env (the
// environment seeded with whatever the module's imports bound), in two
// passes: first every type declaration (so mutually referenced ADTs and
// forward-used constructors both resolve), then every let declaration in
// source order.
func (inf *Inferencer) InferProgram(prog *ast.Program, env *Env) *Env {
	for _, decl := range prog.Decls {
		if td, ok := decl.(*ast.TypeDecl); ok {
			if err := inf.declareTypeDecl(td, env); err != nil {
				inf.report(diagnostic.New(diagnostic.TC007, td.Span(), "%s", err.Error()))
			}
		}
	}

	for _, decl := range prog.Decls {
		if ld, ok := decl.(*ast.LetDecl); ok {
			inf.inferLetDecl(ld, env)
		}
	}
	return env
}

// inferLetDecl type-checks one `let [rec] b1 [and b2 ...]` group.
//
// Non-recursive groups infer each binding in isolation against the
// enclosing environment, then define all of them at once (so `let x = 1
// and y = x` is a scope error, not a forward reference) — generalizing
// each independently.
//
// Recursive groups use the standard four-step treatment: pre-bind a
// fresh monomorphic type variable for every name in the group, infer
// every binding's body against an environment where the whole group is
// visible at those fresh types, unify each inferred body type with its
// pre-bound variable, and only then generalize each binding under the
// substitution accumulated across the whole group.
func (inf *Inferencer) inferLetDecl(ld *ast.LetDecl, env *Env) {
	if !ld.Recursive {
		schemes := make(map[string]*types.Scheme, len(ld.Bindings))
		for _, b := range ld.Bindings {
			sub := types.Substitution{}
			t, sub, err := inf.inferExpr(b.Value, env, sub)
			if err != nil {
				inf.report(diagnostic.New(diagnostic.TC001, b.Value.Span(), "%s", err.Error()))
				continue
			}
			t = sub.Apply(t)
			if b.TypeAnn != nil {
				t = inf.checkAnnotation(b, t, sub)
			}
			inf.finalizeMarks(b.Value, sub)
			schemes[b.Name] = types.Generalize(env.TypesInScope(), t, !isSyntacticValue(b.Value))
		}
		for _, b := range ld.Bindings {
			if s, ok := schemes[b.Name]; ok {
				env.Define(b.Name, s)
			}
		}
		return
	}

	preBound := map[string]*types.TVar{}
	groupEnv := env.Child()
	for _, b := range ld.Bindings {
		v := inf.fresh.Var()
		preBound[b.Name] = v
		groupEnv.Define(b.Name, types.Mono(v))
	}

	sub := types.Substitution{}
	inferred := map[string]types.Type{}
	for _, b := range ld.Bindings {
		t, newSub, err := inf.inferExpr(b.Value, groupEnv, sub)
		if err != nil {
			inf.report(diagnostic.New(diagnostic.TC001, b.Value.Span(), "%s", err.Error()))
			continue
		}
		sub = newSub
		sub, err = types.Unify(preBound[b.Name], t, sub, inf.fresh)
		if err != nil {
			inf.report(diagnostic.New(diagnostic.TC001, b.Value.Span(), "%s", err.Error()))
			continue
		}
		inferred[b.Name] = t
	}

	for _, b := range ld.Bindings {
		t, ok := inferred[b.Name]
		if !ok {
			continue
		}
		t = sub.Apply(t)
		if b.TypeAnn != nil {
			t = inf.checkAnnotation(b, t, sub)
		}
		inf.finalizeMarks(b.Value, sub)
		env.Define(b.Name, types.Generalize(env.TypesInScope(), t, !isSyntacticValue(b.Value)))
	}
}

// checkAnnotation unifies a binding's declared type against what
// inference computed for its value, then emits an Annotation stub
// recording both sides for the solver's own phase-1 pass (which is what
// now reports a mismatch; this function no longer reports TC001 itself).
// A binding whose value is a function with a Result-returning annotation
// additionally gets a boundary-check ConstraintAlias, comparing the
// declared error row against whatever accumulates at the function body's
// own result node.
func (inf *Inferencer) checkAnnotation(b *ast.Binding, inferred types.Type, sub types.Substitution) types.Type {
	scope := newTypeScope()
	annotated, err := ElaborateTypeExpr(b.TypeAnn, inf.adtEnv, scope)
	if err != nil {
		inf.report(diagnostic.New(diagnostic.TC005, b.TypeAnn.Span(), "%s", err.Error()))
		return inferred
	}

	inf.constraints.Emit(&Annotation{At: b.Value, Expected: annotated, Actual: inferred})
	inf.emitBoundaryAlias(b, annotated)

	unifiedSub, err := types.Unify(inferred, annotated, sub, inf.fresh)
	if err != nil {
		return inferred
	}
	return unifiedSub.Apply(annotated)
}

// emitBoundaryAlias emits the ConstraintAlias the solver's boundary-check
// phase needs when b's value is a function literal whose declared return
// type is Result<T, E>: A is the declared row, B is left nil so the
// solver resolves the function body's actually-accumulated row itself.
func (inf *Inferencer) emitBoundaryAlias(b *ast.Binding, annotated types.Type) {
	arrow, ok := b.Value.(*ast.Arrow)
	if !ok {
		return
	}
	fn, ok := annotated.(*types.TFunc)
	if !ok {
		return
	}
	_, declaredRow, ok := types.AsResult(fn.Return)
	if !ok {
		return
	}
	inf.constraints.Emit(&ConstraintAlias{At: arrow.Body.Result, A: declaredRow})
}

// isSyntacticValue reports whether e is a value form that is safe to
// generalize (the value restriction): a literal, a variable, a
// constructor, a tuple, or a lambda. A non-value right-hand side (a call, for
// instance) is bound monomorphically instead, since generalizing it could
// let effects or error rows incurred once look like they happen once per
// instantiation.
func isSyntacticValue(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Lit, *ast.Var, *ast.Arrow, *ast.Ctor, *ast.Tuple:
		return true
	default:
		return false
	}
}
