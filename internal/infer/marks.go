package infer

import (
	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/types"
)

// Mark is the per-node inference result attached out-of-band to every
// expression, since the surface AST nodes themselves are never mutated.
type Mark struct {
	ID   int
	Type types.Type
}

// Marks is the node-ID-keyed store of inference results for one module.
// Node identity is the ast.Expr pointer itself: every Expr the parser
// builds is heap-allocated and distinct, so the pointer is a stable,
// comparable key without needing to thread IDs through construction.
type Marks struct {
	byNode map[ast.Expr]*Mark
	nextID int
}

// NewMarks returns an empty mark store.
func NewMarks() *Marks {
	return &Marks{byNode: map[ast.Expr]*Mark{}}
}

// Assign records t as the type of node, minting a fresh node ID on first
// assignment and overwriting the type on any subsequent one (inference
// revisits a node's type as unification refines earlier guesses).
func (m *Marks) Assign(node ast.Expr, t types.Type) *Mark {
	mark, ok := m.byNode[node]
	if !ok {
		m.nextID++
		mark = &Mark{ID: m.nextID}
		m.byNode[node] = mark
	}
	mark.Type = t
	return mark
}

// Lookup returns the mark previously assigned to node, if any.
func (m *Marks) Lookup(node ast.Expr) (*Mark, bool) {
	mark, ok := m.byNode[node]
	return mark, ok
}

// All returns every node the inferencer assigned a mark to, keyed by node
// identity. Callers that need a stable order should sort by Mark.ID.
func (m *Marks) All() map[ast.Expr]*Mark {
	return m.byNode
}
