package module

import "github.com/workman-lang/workman/internal/ast"

// Exports splits a module's externally visible names by namespace: value
// bindings, type names, and the constructor functions an ADT's members
// introduce.
type Exports struct {
	Values           map[string]bool
	Types            map[string]bool
	TypeConstructors map[string]bool

	// ctorsByType tracks which constructor names belong to which ADT, so a
	// re-export's `Name(..)` form can pull in exactly that type's
	// constructors rather than every constructor the module happens to
	// export.
	ctorsByType map[string][]string
}

func newExports() *Exports {
	return &Exports{
		Values:           map[string]bool{},
		Types:            map[string]bool{},
		TypeConstructors: map[string]bool{},
		ctorsByType:      map[string][]string{},
	}
}

// collectExports walks a program's top-level declarations and records the
// ones marked `export`.
func collectExports(prog *ast.Program) *Exports {
	ex := newExports()
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.LetDecl:
			if !d.Exported {
				continue
			}
			for _, b := range d.Bindings {
				ex.Values[b.Name] = true
			}
		case *ast.TypeDecl:
			if !d.Exported {
				continue
			}
			ex.Types[d.Name] = true
			for _, m := range d.Members {
				ex.TypeConstructors[m.Name] = true
				ex.ctorsByType[d.Name] = append(ex.ctorsByType[d.Name], m.Name)
			}
		}
	}
	return ex
}

// mergeReexport folds a dependency's exports (filtered to the names named
// in a re-export clause) into ex.
func mergeReexport(ex *Exports, rex *ast.Reexport, dep *Exports) {
	for _, t := range rex.Types {
		if dep.Types[t.Name] {
			ex.Types[t.Name] = true
		}
		if t.WithCtors {
			for _, ctor := range dep.ctorsByType[t.Name] {
				ex.TypeConstructors[ctor] = true
			}
		}
	}
}
