// Package module resolves Workman module specifiers, builds the
// dependency graph with cycle detection, and collects per-module exports.
package module

import "github.com/workman-lang/workman/internal/ast"

// ResolvedImport is one import clause with its specifier resolved to a
// file path by Resolver.
type ResolvedImport struct {
	Specifier string
	AbsPath   string
	Import    *ast.Import
}

// Module is one parsed, resolved unit of compilation.
type Module struct {
	Path    string // resolved file path, used as the graph node identity
	Program *ast.Program

	Imports   []ResolvedImport
	Reexports []ResolvedImport

	Exports *Exports
}
