package module

import (
	"fmt"
	"strings"

	"github.com/workman-lang/workman/internal/config"
	"github.com/workman-lang/workman/internal/parser"
)

// CycleError reports a DFS re-entry into a `visiting` node.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular module dependency: %s", strings.Join(e.Cycle, " -> "))
}

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// Graph builds the module dependency graph by DFS, in the order described
// by the resolver: the configured prelude module (if any) first, then the
// entry module and everything it transitively imports.
type Graph struct {
	fs       FileSystem
	resolver *Resolver

	state   map[string]visitState
	modules map[string]*Module
	stack   []string // current DFS path, for cycle reporting
	order   []*Module
}

// Build parses entryPath and every module it transitively imports, failing
// on an unsupported specifier, a missing file, or a cycle. The returned
// slice is in post-order: each module appears after all of its
// dependencies, a valid compilation order.
func Build(entryPath string, cfg *config.Config, fs FileSystem) ([]*Module, error) {
	g := &Graph{
		fs:       fs,
		resolver: NewResolver(fs, cfg.StdRoots),
		state:    map[string]visitState{},
		modules:  map[string]*Module{},
	}

	if cfg.Prelude != "" {
		preludePath, err := g.resolver.Resolve(cfg.Prelude, entryPath)
		if err != nil {
			return nil, err
		}
		if err := g.visit(preludePath); err != nil {
			return nil, err
		}
	}

	if err := g.visit(entryPath); err != nil {
		return nil, err
	}
	return g.order, nil
}

func (g *Graph) visit(path string) error {
	switch g.state[path] {
	case visited:
		return nil
	case visiting:
		cycle := append(append([]string{}, g.stack...), path)
		return &CycleError{Cycle: cycle}
	}

	g.state[path] = visiting
	g.stack = append(g.stack, path)
	defer func() {
		g.stack = g.stack[:len(g.stack)-1]
		g.state[path] = visited
	}()

	src, err := g.fs.ReadFile(path)
	if err != nil {
		return err
	}
	prog, errs := parser.Parse(string(src), path,
		parser.WithOperators(parser.StandardOperators()),
		parser.WithPrefixOperators(parser.StandardPrefixOperators()))
	if len(errs) > 0 {
		return errs[0]
	}

	mod := &Module{Path: path, Program: prog, Exports: collectExports(prog)}
	g.modules[path] = mod

	for _, imp := range prog.Imports {
		resolved, err := g.resolveAndVisit(imp.Path, path)
		if err != nil {
			return err
		}
		mod.Imports = append(mod.Imports, ResolvedImport{Specifier: imp.Path, AbsPath: resolved, Import: imp})
	}

	for _, rex := range prog.Reexports {
		resolved, err := g.resolveAndVisit(rex.Path, path)
		if err != nil {
			return err
		}
		mod.Reexports = append(mod.Reexports, ResolvedImport{Specifier: rex.Path, AbsPath: resolved})
		mergeReexport(mod.Exports, rex, g.modules[resolved].Exports)
	}

	g.order = append(g.order, mod)
	return nil
}

func (g *Graph) resolveAndVisit(specifier, fromFile string) (string, error) {
	resolved, err := g.resolver.Resolve(specifier, fromFile)
	if err != nil {
		return "", err
	}
	if err := g.visit(resolved); err != nil {
		return "", err
	}
	return resolved, nil
}
