// Package parser implements the Workman recursive-descent / Pratt parser.
// Operator precedence/associativity tables are built up incrementally as
// infix/prefix declarations are parsed, with the grammar split across
// parser_decl.go/parser_expr.go/parser_pattern.go/parser_type.go.
package parser

import (
	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/lexer"
	"github.com/workman-lang/workman/internal/token"
)

// OpInfo is one entry in the operator precedence/associativity table.
type OpInfo struct {
	Prec     int
	Assoc    ast.Assoc
	FuncName string
}

// Parser consumes a pre-lexed token stream and produces a *ast.Program.
type Parser struct {
	toks []token.Token
	pos  int
	file string

	infix   map[string]OpInfo
	prefix  map[string]string // operator -> bound function name

	errs []error
}

// Option configures a Parser.
type Option func(*Parser)

// WithOperators seeds the infix table, e.g. with the standard arithmetic/
// comparison/boolean operators a real prelude module would declare via
// `infix`/`infixl`/`infixr` before user code runs (see StandardOperators).
func WithOperators(ops map[string]OpInfo) Option {
	return func(p *Parser) {
		for k, v := range ops {
			p.infix[k] = v
		}
	}
}

// WithPrefixOperators seeds the prefix operator table.
func WithPrefixOperators(ops map[string]string) Option {
	return func(p *Parser) {
		for k, v := range ops {
			p.prefix[k] = v
		}
	}
}

// New creates a Parser over pre-lexed tokens.
func New(toks []token.Token, file string, opts ...Option) *Parser {
	p := &Parser{
		toks:   toks,
		file:   file,
		infix:  map[string]OpInfo{},
		prefix: map[string]string{},
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Parse lexes src and parses a full program. Convenience wrapper for
// callers that don't need to inspect lexical errors separately.
func Parse(src, file string, opts ...Option) (*ast.Program, []error) {
	l := lexer.New(src, file)
	toks := l.Tokenize()
	if len(l.Errors()) > 0 {
		return nil, l.Errors()
	}
	p := New(toks, file, opts...)
	prog, err := p.ParseProgram()
	if err != nil {
		return nil, append(p.errs, err)
	}
	return prog, p.errs
}

// InfixTable returns the current operator table (for chaining module
// compilation: a later module's parser can seed from an earlier module's
// final table when they share scope, e.g. within one compilation unit).
func (p *Parser) InfixTable() map[string]OpInfo { return p.infix }

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) atOperatorLiteral(lit string) bool {
	t := p.cur()
	switch t.Kind {
	case token.OPERATOR, token.LT, token.GT, token.STAR, token.PIPE:
		return t.Literal == lit
	}
	return false
}

func (p *Parser) expect(k token.Kind, hint string) (token.Token, error) {
	if p.at(k) {
		return p.advance(), nil
	}
	return token.Token{}, &ParseError{
		Offending: p.cur(),
		Message:   "expected " + k.String() + ", got " + p.cur().Kind.String(),
		Hint:      hint,
	}
}

func (p *Parser) expectSemicolon() error {
	_, err := p.expect(token.SEMICOLON, "Statements must be terminated with a semicolon")
	return err
}

// ParseProgram parses (import | reexport | decl)*.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.at(token.EOF) {
		switch {
		case p.at(token.FROM):
			imp, rex, err := p.parseFromClause()
			if err != nil {
				return nil, err
			}
			if rex != nil {
				prog.Reexports = append(prog.Reexports, rex)
			} else {
				prog.Imports = append(prog.Imports, imp)
			}
		case p.at(token.EXPORT) && p.peekAt(1).Kind == token.FROM:
			rex, err := p.parseReexport()
			if err != nil {
				return nil, err
			}
			prog.Reexports = append(prog.Reexports, rex)
		default:
			decl, err := p.parseDecl()
			if err != nil {
				return nil, err
			}
			prog.Decls = append(prog.Decls, decl)
		}
	}
	return prog, nil
}

func (p *Parser) parseDecl() (ast.Decl, error) {
	exported := false
	if p.at(token.EXPORT) {
		exported = true
		p.advance()
	}
	switch {
	case p.at(token.LET):
		return p.parseLetDecl(exported)
	case p.at(token.TYPE):
		return p.parseTypeDecl(exported)
	case p.at(token.INFIX), p.at(token.INFIXL), p.at(token.INFIXR):
		if exported {
			return nil, &ParseError{Offending: p.cur(), Message: "infix declarations cannot be exported"}
		}
		return p.parseInfixDecl()
	case p.at(token.PREFIX):
		if exported {
			return nil, &ParseError{Offending: p.cur(), Message: "prefix declarations cannot be exported"}
		}
		return p.parsePrefixDecl()
	default:
		return nil, &ParseError{
			Offending: p.cur(),
			Message:   "expected a declaration",
			Hint:      "expected let, type, infix, infixl, infixr, or prefix",
		}
	}
}
