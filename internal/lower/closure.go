package lower

import (
	"sort"

	"github.com/workman-lang/workman/internal/core"
	"github.com/workman-lang/workman/internal/mir"
)

// lowerNestedLam splits a non-top-level lambda value into its own
// mir.Func and replaces it, at the use site, with a MakeClosure over the
// free variables it actually reads. Top-level bindings never reach
// here: lowerBinding peels the outermost Lam off a let/let-rec value
// before handing its body to a builder.
func (b *builder) lowerNestedLam(ex *core.Lam) (string, error) {
	bound := map[string]bool{}
	for _, p := range ex.Params {
		bound[p] = true
	}
	free := freeVars(ex.Body, bound)
	sort.Strings(free)

	env := make([]string, len(free))
	for i, name := range free {
		env[i] = b.resolve(name)
	}

	funcID := b.fresh("lam")
	nested := &builder{lw: b.lw, sh: b.sh, aliases: map[string]string{}}
	result, err := nested.lowerExpr(ex.Body)
	if err != nil {
		return "", err
	}

	b.sh.nestedFuncs = append(b.sh.nestedFuncs, &mir.Func{
		Name:     funcID,
		Params:   ex.Params,
		Captures: free,
		Body:     nested.instrs,
		Result:   result,
	})

	dest := b.fresh("clo")
	return b.emit(&mir.MakeClosure{Base: mir.Base{DestName: dest}, FuncID: funcID, Env: env}), nil
}

// freeVars returns every Var name ex reads that isn't in bound, in no
// particular order (lowerNestedLam sorts before using it, so capture
// order is deterministic regardless of this function's iteration order).
func freeVars(ex core.Expr, bound map[string]bool) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(core.Expr, map[string]bool)
	walk = func(e core.Expr, bound map[string]bool) {
		switch n := e.(type) {
		case *core.Var:
			if !bound[n.Name] && !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case *core.Lit:
		case *core.Prim:
			for _, a := range n.Args {
				walk(a, bound)
			}
		case *core.TupleExpr:
			for _, el := range n.Elements {
				walk(el, bound)
			}
		case *core.Ctor:
			for _, a := range n.Args {
				walk(a, bound)
			}
		case *core.App:
			walk(n.Func, bound)
			for _, a := range n.Args {
				walk(a, bound)
			}
		case *core.FieldAccess:
			walk(n.Record, bound)
		case *core.Lam:
			inner := extend(bound, n.Params...)
			walk(n.Body, inner)
		case *core.Let:
			walk(n.Value, bound)
			walk(n.Body, extend(bound, n.Name))
		case *core.LetRec:
			inner := bound
			for _, rb := range n.Bindings {
				inner = extend(inner, rb.Name)
			}
			for _, rb := range n.Bindings {
				walk(rb.Value, inner)
			}
			walk(n.Body, inner)
		case *core.Match:
			walk(n.Scrutinee, bound)
			for _, arm := range n.Arms {
				walk(arm.Body, extend(bound, patternVars(arm.Pattern)...))
			}
		}
	}
	walk(ex, bound)
	return out
}

func extend(bound map[string]bool, names ...string) map[string]bool {
	out := make(map[string]bool, len(bound)+len(names))
	for k := range bound {
		out[k] = true
	}
	for _, n := range names {
		out[n] = true
	}
	return out
}

func patternVars(p core.Pattern) []string {
	switch pat := p.(type) {
	case *core.VarPattern:
		return []string{pat.Name}
	case *core.TuplePattern:
		var out []string
		for _, el := range pat.Elements {
			out = append(out, patternVars(el)...)
		}
		return out
	case *core.CtorPattern:
		var out []string
		for _, a := range pat.Args {
			out = append(out, patternVars(a)...)
		}
		return out
	}
	return nil
}

// referencesName reports whether ex's body syntactically mentions name
// anywhere, the self-recursion test: a plain name scan, not a call-graph
// or tail-position analysis. A function that merely passes itself around
// as a value (never calling itself) is still flagged; the loop wrapping
// that follows is a no-op for it since its body never reaches a Continue.
func referencesName(ex core.Expr, name string) bool {
	found := false
	var walk func(core.Expr)
	walk = func(e core.Expr) {
		if found || e == nil {
			return
		}
		switch n := e.(type) {
		case *core.Var:
			if n.Name == name {
				found = true
			}
		case *core.Prim:
			for _, a := range n.Args {
				walk(a)
			}
		case *core.TupleExpr:
			for _, el := range n.Elements {
				walk(el)
			}
		case *core.Ctor:
			for _, a := range n.Args {
				walk(a)
			}
		case *core.App:
			walk(n.Func)
			for _, a := range n.Args {
				walk(a)
			}
		case *core.FieldAccess:
			walk(n.Record)
		case *core.Lam:
			walk(n.Body)
		case *core.Let:
			walk(n.Value)
			walk(n.Body)
		case *core.LetRec:
			for _, rb := range n.Bindings {
				walk(rb.Value)
			}
			walk(n.Body)
		case *core.Match:
			walk(n.Scrutinee)
			for _, arm := range n.Arms {
				walk(arm.Body)
			}
		}
	}
	walk(ex)
	return found
}
