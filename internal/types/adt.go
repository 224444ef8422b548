package types

import "fmt"

// CtorInfo describes one constructor of a declared algebraic data type.
type CtorInfo struct {
	Name   string
	Fields []Type // field types, with the ADT's own type parameters free
	Tag    int    // 0-based, declaration order
}

// ADTInfo describes one user-declared algebraic data type.
type ADTInfo struct {
	Name     string
	Params   []string // type parameter names, e.g. ["a"] for Option<a>
	Ctors    []CtorInfo
	CtorTags map[string]int // constructor name -> Tag, for fast lookup
}

// ADTEnv maps type names and constructor names into the declarations
// visible during inference and lowering.
type ADTEnv struct {
	types map[string]*ADTInfo
	ctors map[string]*ADTInfo // constructor name -> owning type
}

// NewADTEnv returns an empty environment.
func NewADTEnv() *ADTEnv {
	return &ADTEnv{types: map[string]*ADTInfo{}, ctors: map[string]*ADTInfo{}}
}

// Declare registers a new ADT, failing if the name or any of its
// constructor names is already taken.
func (e *ADTEnv) Declare(info *ADTInfo) error {
	if _, exists := e.types[info.Name]; exists {
		return fmt.Errorf("type %q already declared", info.Name)
	}
	for _, c := range info.Ctors {
		if owner, exists := e.ctors[c.Name]; exists {
			return fmt.Errorf("constructor %q already declared by type %q", c.Name, owner.Name)
		}
	}
	if info.CtorTags == nil {
		info.CtorTags = map[string]int{}
		for _, c := range info.Ctors {
			info.CtorTags[c.Name] = c.Tag
		}
	}
	e.types[info.Name] = info
	for _, c := range info.Ctors {
		e.ctors[c.Name] = info
	}
	return nil
}

// Type looks up a declared ADT by name.
func (e *ADTEnv) Type(name string) (*ADTInfo, bool) {
	info, ok := e.types[name]
	return info, ok
}

// CtorOwner returns the ADT declaring the given constructor name.
func (e *ADTEnv) CtorOwner(ctor string) (*ADTInfo, bool) {
	info, ok := e.ctors[ctor]
	return info, ok
}

// Ctor returns the CtorInfo for a constructor name, alongside its owning
// ADT.
func (e *ADTEnv) Ctor(ctor string) (*ADTInfo, *CtorInfo, bool) {
	owner, ok := e.ctors[ctor]
	if !ok {
		return nil, nil, false
	}
	for i := range owner.Ctors {
		if owner.Ctors[i].Name == ctor {
			return owner, &owner.Ctors[i], true
		}
	}
	return nil, nil, false
}

// All returns every declared ADT, in no particular order. Callers that
// need a stable order should sort by Name.
func (e *ADTEnv) All() []*ADTInfo {
	out := make([]*ADTInfo, 0, len(e.types))
	for _, info := range e.types {
		out = append(out, info)
	}
	return out
}

// Arity returns the number of fields a constructor takes.
func (e *ADTEnv) Arity(ctor string) (int, bool) {
	_, info, ok := e.Ctor(ctor)
	if !ok {
		return 0, false
	}
	return len(info.Fields), true
}
