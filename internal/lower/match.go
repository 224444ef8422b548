package lower

import (
	"fmt"

	"github.com/workman-lang/workman/internal/core"
	"github.com/workman-lang/workman/internal/diagnostic"
	"github.com/workman-lang/workman/internal/mir"
)

// lowerMatch compiles a Core match into a cascading chain of IfElse
// instructions, one per arm, each condition built from the scrutinee
// (or, for a constructor/tuple pattern, from its unconditionally-safe
// GetTag/GetTuple/GetField projections) rather than from re-walking the
// arms at MIR-consumption time.
func (b *builder) lowerMatch(ex *core.Match) (string, error) {
	scrut, err := b.lowerExpr(ex.Scrutinee)
	if err != nil {
		return "", err
	}
	return b.compileArms(scrut, ex.Arms, 0)
}

// compileArms recurses one arm at a time: trying arm[idx] becomes the
// "then" of an IfElse whose "else" recurses into arm[idx+1..]. Running
// past the last arm means the match wasn't actually exhaustive (a bug
// upstream, since internal/infer would have reported TC004 for that),
// so it compiles to a panic stub rather than silently falling through.
func (b *builder) compileArms(scrut string, arms []core.MatchArm, idx int) (string, error) {
	if idx >= len(arms) {
		dest := b.fresh("nomatch")
		msg := b.fresh("msg")
		b.emit(&mir.Const{Base: mir.Base{DestName: msg}, Kind: int(core.StringLit), Value: "non-exhaustive match"})
		return b.emit(&mir.Call{Base: mir.Base{DestName: dest}, Func: "panic", Args: []string{msg}}), nil
	}

	arm := arms[idx]

	// An irrefutable arm (wildcard or bare variable) always matches, so
	// it needs no branch at all: the cascade ends here, folded straight
	// into the current instruction stream instead of a pointless
	// always-true IfElse.
	if v, ok := arm.Pattern.(*core.VarPattern); ok {
		b.aliases[v.Name] = scrut
		return b.lowerExpr(arm.Body)
	}
	if _, ok := arm.Pattern.(*core.WildcardPattern); ok {
		return b.lowerExpr(arm.Body)
	}

	cond, bindings, err := b.compilePattern(arm.Pattern, scrut)
	if err != nil {
		return "", err
	}

	thenB := b.child()
	for name, atom := range bindings {
		thenB.aliases[name] = atom
	}
	thenResult, err := thenB.lowerExpr(arm.Body)
	if err != nil {
		return "", err
	}

	elseB := b.child()
	elseResult, err := elseB.compileArms(scrut, arms, idx+1)
	if err != nil {
		return "", err
	}

	dest := b.fresh("match")
	b.emit(&mir.IfElse{
		Base:       mir.Base{DestName: dest},
		Cond:       cond,
		ThenInstrs: thenB.instrs,
		ThenResult: thenResult,
		ElseInstrs: elseB.instrs,
		ElseResult: elseResult,
	})
	return dest, nil
}

// compilePattern produces a single boolean atom testing whether pat
// matches scrut, plus the variable bindings it introduces if it does.
// Subpatterns are folded into one flat conjunction via "and" rather than
// nested further if/else levels: every projection it needs (GetField,
// GetTuple) is safe to compute unconditionally against a well-typed
// scrutinee, so there's no need to gate them behind the outer tag check
// succeeding first.
func (b *builder) compilePattern(pat core.Pattern, scrut string) (string, map[string]string, error) {
	switch p := pat.(type) {
	case *core.WildcardPattern:
		return b.constBool(true), map[string]string{}, nil

	case *core.VarPattern:
		return b.constBool(true), map[string]string{p.Name: scrut}, nil

	case *core.LitPattern:
		return b.compileLitCond(p, scrut)

	case *core.CtorPattern:
		tagAtom := b.emit(&mir.GetTag{Base: mir.Base{DestName: b.fresh("tag")}, Value: scrut})
		tagConst := b.emit(&mir.Const{Base: mir.Base{DestName: b.fresh("tagc")}, Kind: int(core.IntLit), Value: p.Tag})
		cond := b.emit(&mir.Prim{Base: mir.Base{DestName: b.fresh("tageq")}, Op: "eq", Args: []string{tagAtom, tagConst}})

		bindings := map[string]string{}
		for i, sub := range p.Args {
			fieldAtom := b.emit(&mir.GetField{Base: mir.Base{DestName: b.fresh("fld")}, Value: scrut, Index: i})
			subCond, subBindings, err := b.compilePattern(sub, fieldAtom)
			if err != nil {
				return "", nil, err
			}
			cond = b.and(cond, subCond)
			for k, v := range subBindings {
				bindings[k] = v
			}
		}
		return cond, bindings, nil

	case *core.TuplePattern:
		cond := b.constBool(true)
		bindings := map[string]string{}
		for i, sub := range p.Elements {
			elemAtom := b.emit(&mir.GetTuple{Base: mir.Base{DestName: b.fresh("elem")}, Tuple: scrut, Index: i})
			subCond, subBindings, err := b.compilePattern(sub, elemAtom)
			if err != nil {
				return "", nil, err
			}
			cond = b.and(cond, subCond)
			for k, v := range subBindings {
				bindings[k] = v
			}
		}
		return cond, bindings, nil
	}
	return "", nil, fmt.Errorf("lower: unhandled pattern %T", pat)
}

// compileLitCond builds the equality test for a literal pattern. String
// patterns reach internal/infer's exhaustiveness checker fine but are
// rejected here with MIR001: this lowering pass has no string-equality
// primitive to compile them to, an inconsistency the diagnostic flags
// rather than silently works around.
func (b *builder) compileLitCond(p *core.LitPattern, scrut string) (string, map[string]string, error) {
	if p.Kind == core.StringLit {
		b.lw.report(diagnostic.New(diagnostic.MIR001, p.Span(),
			"string literal pattern %q cannot be compiled to MIR; rewrite the match to dispatch on a tag or enum instead", p.Value))
		return b.constBool(false), map[string]string{}, nil
	}
	if p.Kind == core.BoolLit {
		if v, _ := p.Value.(bool); v {
			return scrut, map[string]string{}, nil
		}
		dest := b.emit(&mir.Prim{Base: mir.Base{DestName: b.fresh("notb")}, Op: "not", Args: []string{scrut}})
		return dest, map[string]string{}, nil
	}
	constAtom := b.emit(&mir.Const{Base: mir.Base{DestName: b.fresh("lit")}, Kind: int(p.Kind), Value: p.Value})
	cond := b.emit(&mir.Prim{Base: mir.Base{DestName: b.fresh("eq")}, Op: "eq", Args: []string{scrut, constAtom}})
	return cond, map[string]string{}, nil
}

func (b *builder) constBool(v bool) string {
	return b.emit(&mir.Const{Base: mir.Base{DestName: b.fresh("b")}, Kind: int(core.BoolLit), Value: v})
}

func (b *builder) and(x, y string) string {
	return b.emit(&mir.Prim{Base: mir.Base{DestName: b.fresh("and")}, Op: "and", Args: []string{x, y}})
}
