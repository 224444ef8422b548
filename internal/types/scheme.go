package types

import "fmt"

// Scheme is a let-bound type scheme: a body type universally quantified
// over the type variables (and row variables) listed in Quantifiers.
type Scheme struct {
	Quantifiers []string
	Body        Type
}

// Mono wraps a type with no quantifiers, the scheme of a non-generalized
// binding (a lambda parameter, a pattern variable, a name pre-bound
// for a recursive let group).
func Mono(t Type) *Scheme {
	return &Scheme{Body: t}
}

// Instantiate produces a fresh copy of the scheme's body, replacing every
// quantified variable with a newly minted one drawn from fresh.
func (s *Scheme) Instantiate(fresh *Fresh) Type {
	if len(s.Quantifiers) == 0 {
		return s.Body
	}
	sub := Substitution{}
	for _, q := range s.Quantifiers {
		sub[q] = fresh.Var()
	}
	return sub.Apply(s.Body)
}

func (s *Scheme) String() string {
	if len(s.Quantifiers) == 0 {
		return s.Body.String()
	}
	return fmt.Sprintf("forall %v. %s", s.Quantifiers, s.Body.String())
}

// Fresh mints type and row variables with strictly increasing names, used
// both for instantiation and for inference's own variable generation.
type Fresh struct {
	n int
}

// NewFresh returns a variable generator starting at 0.
func NewFresh() *Fresh {
	return &Fresh{}
}

// Var returns a new, never-before-used type variable.
func (f *Fresh) Var() *TVar {
	f.n++
	return &TVar{Name: fmt.Sprintf("t%d", f.n)}
}

// RowVar returns a new, never-before-used row-tail name, distinct from
// type-variable names by prefix so the two spaces never collide.
func (f *Fresh) RowVar() string {
	f.n++
	return fmt.Sprintf("r%d", f.n)
}

// Generalize quantifies over every free variable in t that is not also
// free somewhere in env, producing the scheme assigned to a let-bound
// name. monomorphic, when true (a value restriction case, e.g. the
// right-hand side of a let is not itself a syntactic value), forces an
// unquantified scheme instead.
func Generalize(env []Type, t Type, monomorphic bool) *Scheme {
	if monomorphic {
		return Mono(t)
	}
	envFree := map[string]bool{}
	for _, e := range env {
		for v := range FreeVars(e) {
			envFree[v] = true
		}
	}
	var quantifiers []string
	for v := range FreeVars(t) {
		if !envFree[v] {
			quantifiers = append(quantifiers, v)
		}
	}
	sortStrings(quantifiers)
	return &Scheme{Quantifiers: quantifiers, Body: t}
}

func sortStrings(ss []string) {
	for i := 1; i < len(ss); i++ {
		for j := i; j > 0 && ss[j-1] > ss[j]; j-- {
			ss[j-1], ss[j] = ss[j], ss[j-1]
		}
	}
}

// FreeVars collects every type and row variable name free in t.
func FreeVars(t Type) map[string]bool {
	out := map[string]bool{}
	collectFreeVars(t, out)
	return out
}

func collectFreeVars(t Type, out map[string]bool) {
	switch v := t.(type) {
	case *TVar:
		out[v.Name] = true
	case *TCtor:
		for _, a := range v.Args {
			collectFreeVars(a, out)
		}
	case *TFunc:
		for _, p := range v.Params {
			collectFreeVars(p, out)
		}
		collectFreeVars(v.Return, out)
	case *TTuple:
		for _, e := range v.Elements {
			collectFreeVars(e, out)
		}
	case *TRecord:
		for _, f := range v.Fields {
			collectFreeVars(f, out)
		}
		if v.Tail != "" {
			out[v.Tail] = true
		}
	case *TErrorRow:
		for _, c := range v.Cases {
			if c.Payload != nil {
				collectFreeVars(c.Payload, out)
			}
		}
		if v.Tail != "" {
			out[v.Tail] = true
		}
	case *TUnknown:
		// carries no variables
	}
}
