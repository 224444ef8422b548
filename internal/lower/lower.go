// Package lower turns a Core program into MIR: ANF instruction lists,
// constructor tag tables, and pattern matches compiled down to cascading
// GetTag/GetField/GetTuple comparisons. It never re-consults the surface
// AST; constructor tags come from the ADT environment passed to New, and
// everything else it needs already sits in the Core tree internal/core
// produced.
package lower

import (
	"fmt"
	"sort"

	"github.com/workman-lang/workman/internal/core"
	"github.com/workman-lang/workman/internal/diagnostic"
	"github.com/workman-lang/workman/internal/mir"
	"github.com/workman-lang/workman/internal/types"
)

// Lowering drives one module's Core-to-MIR pass.
type Lowering struct {
	adtEnv *types.ADTEnv
	diags  []*diagnostic.Diagnostic
}

// New returns a Lowering reading constructor tags from adtEnv.
func New(adtEnv *types.ADTEnv) *Lowering {
	return &Lowering{adtEnv: adtEnv}
}

// Diagnostics returns every diagnostic raised while lowering, in
// emission order.
func (lw *Lowering) Diagnostics() []*diagnostic.Diagnostic { return lw.diags }

func (lw *Lowering) report(d *diagnostic.Diagnostic) {
	lw.diags = append(lw.diags, d)
}

// Lower produces a whole MIR program from prog's declarations.
func (lw *Lowering) Lower(prog *core.Program) (*mir.Program, error) {
	out := &mir.Program{TagTables: lw.buildTagTables()}
	for _, d := range prog.Decls {
		if err := lw.lowerDecl(d, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (lw *Lowering) buildTagTables() map[string]*mir.TagTable {
	tables := map[string]*mir.TagTable{}
	for _, info := range lw.adtEnv.All() {
		ctors := make([]mir.CtorTag, len(info.Ctors))
		for i, c := range info.Ctors {
			ctors[i] = mir.CtorTag{Name: c.Name, Tag: c.Tag, Arity: len(c.Fields)}
		}
		sort.Slice(ctors, func(i, j int) bool { return ctors[i].Tag < ctors[j].Tag })
		tables[info.Name] = &mir.TagTable{TypeName: info.Name, Ctors: ctors}
	}
	return tables
}

func (lw *Lowering) lowerDecl(d core.Decl, out *mir.Program) error {
	if !d.Rec {
		return lw.lowerBinding(d.Name, d.Value, out)
	}
	for _, b := range d.Bindings {
		if err := lw.lowerBinding(b.Name, b.Value, out); err != nil {
			return err
		}
	}
	return nil
}

func (lw *Lowering) lowerBinding(name string, value core.Expr, out *mir.Program) error {
	var params []string
	body := value
	if lam, ok := value.(*core.Lam); ok {
		params = lam.Params
		body = lam.Body
	}

	selfRec := referencesName(value, name)
	sh := &shared{}
	b := &builder{lw: lw, sh: sh, aliases: map[string]string{}}

	result, err := b.lowerExpr(body)
	if err != nil {
		return err
	}

	fn := &mir.Func{Name: name, Params: params, SelfRecursive: selfRec, Body: b.instrs, Result: result}
	if selfRec {
		rewriteTailCalls(fn)
	}
	out.Funcs = append(out.Funcs, fn)
	out.Funcs = append(out.Funcs, sh.nestedFuncs...)
	return nil
}

// shared is the per-top-level-binding state every nested builder (each
// IfElse arm, each nested closure body) shares: a monotonically growing
// name counter, so every instruction in a function gets a globally
// unique destination, and the list of Funcs split out of nested lambdas.
type shared struct {
	n           int
	nestedFuncs []*mir.Func
}

// builder accumulates one straight-line instruction sequence. aliases
// resolves a Core name (a let binding or a captured free variable) to
// the atom currently standing for it; child builders chain to their
// parent so a branch can see outer bindings without copying them.
type builder struct {
	lw      *Lowering
	sh      *shared
	parent  *builder
	aliases map[string]string
	instrs  []mir.Instr
}

func (b *builder) child() *builder {
	return &builder{lw: b.lw, sh: b.sh, parent: b, aliases: map[string]string{}}
}

func (b *builder) fresh(prefix string) string {
	b.sh.n++
	return fmt.Sprintf("$%s%d", prefix, b.sh.n)
}

func (b *builder) emit(i mir.Instr) string {
	b.instrs = append(b.instrs, i)
	return i.Dest()
}

func (b *builder) resolve(name string) string {
	for bb := b; bb != nil; bb = bb.parent {
		if v, ok := bb.aliases[name]; ok {
			return v
		}
	}
	return name
}

func (b *builder) lowerExpr(e core.Expr) (string, error) {
	switch ex := e.(type) {
	case *core.Var:
		return b.resolve(ex.Name), nil

	case *core.Lit:
		dest := b.fresh("lit")
		return b.emit(&mir.Const{Base: mir.Base{DestName: dest}, Kind: int(ex.Kind), Value: ex.Value}), nil

	case *core.Prim:
		args, err := b.lowerAtoms(ex.Args)
		if err != nil {
			return "", err
		}
		dest := b.fresh("p")
		return b.emit(&mir.Prim{Base: mir.Base{DestName: dest}, Op: string(ex.Op), Args: args}), nil

	case *core.TupleExpr:
		elems, err := b.lowerAtoms(ex.Elements)
		if err != nil {
			return "", err
		}
		dest := b.fresh("tup")
		return b.emit(&mir.MakeTuple{Base: mir.Base{DestName: dest}, Elements: elems}), nil

	case *core.Ctor:
		fields, err := b.lowerAtoms(ex.Args)
		if err != nil {
			return "", err
		}
		dest := b.fresh("ctor")
		return b.emit(&mir.AllocCtor{Base: mir.Base{DestName: dest}, Tag: ex.Tag, Fields: fields}), nil

	case *core.App:
		fn, err := b.lowerExpr(ex.Func)
		if err != nil {
			return "", err
		}
		args, err := b.lowerAtoms(ex.Args)
		if err != nil {
			return "", err
		}
		dest := b.fresh("call")
		return b.emit(&mir.Call{Base: mir.Base{DestName: dest}, Func: fn, Args: args}), nil

	case *core.FieldAccess:
		rec, err := b.lowerExpr(ex.Record)
		if err != nil {
			return "", err
		}
		dest := b.fresh("fld")
		return b.emit(&mir.GetRecordField{Base: mir.Base{DestName: dest}, Value: rec, Field: ex.Field}), nil

	case *core.Let:
		atom, err := b.lowerExpr(ex.Value)
		if err != nil {
			return "", err
		}
		b.aliases[ex.Name] = atom
		return b.lowerExpr(ex.Body)

	case *core.Lam:
		return b.lowerNestedLam(ex)

	case *core.Match:
		return b.lowerMatch(ex)

	case *core.LetRec:
		return "", fmt.Errorf("nested letrec at byte %d: the surface grammar only allows `let rec` at top level, so this is unreachable for any program lowered through internal/core", ex.Span().Start)
	}
	return "", fmt.Errorf("lower: unhandled core expression %T", e)
}

func (b *builder) lowerAtoms(exprs []core.Expr) ([]string, error) {
	atoms := make([]string, len(exprs))
	for i, e := range exprs {
		a, err := b.lowerExpr(e)
		if err != nil {
			return nil, err
		}
		atoms[i] = a
	}
	return atoms, nil
}
