package infer

import "github.com/workman-lang/workman/internal/types"

// Env is a lexically scoped map from value names to their schemes. Child
// scopes shadow their parent without mutating it.
type Env struct {
	parent *Env
	vars   map[string]*types.Scheme
}

// NewEnv returns an empty root environment.
func NewEnv() *Env {
	return &Env{vars: map[string]*types.Scheme{}}
}

// Child returns a new scope nested under e.
func (e *Env) Child() *Env {
	return &Env{parent: e, vars: map[string]*types.Scheme{}}
}

// Define binds name to scheme in this scope, shadowing any outer binding.
func (e *Env) Define(name string, scheme *types.Scheme) {
	e.vars[name] = scheme
}

// Lookup searches this scope and its ancestors for name.
func (e *Env) Lookup(name string) (*types.Scheme, bool) {
	for env := e; env != nil; env = env.parent {
		if s, ok := env.vars[name]; ok {
			return s, true
		}
	}
	return nil, false
}

// TypesInScope returns every scheme's body currently visible, used by
// Generalize to compute which free variables must stay monomorphic.
func (e *Env) TypesInScope() []types.Type {
	var out []types.Type
	seen := map[string]bool{}
	for env := e; env != nil; env = env.parent {
		for name, s := range env.vars {
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, s.Body)
		}
	}
	return out
}
