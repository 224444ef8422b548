package parser

import (
	"strconv"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/token"
)

func (p *Parser) parseLetDecl(exported bool) (ast.Decl, error) {
	start := p.cur().Span.Start
	p.advance() // 'let'

	recursive := false
	if p.at(token.REC) {
		recursive = true
		p.advance()
	}

	var bindings []*ast.Binding
	b, err := p.parseBinding()
	if err != nil {
		return nil, err
	}
	bindings = append(bindings, b)
	for p.at(token.AND) {
		p.advance()
		b, err := p.parseBinding()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}

	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}

	end := bindings[len(bindings)-1].BSpan.End
	return &ast.LetDecl{
		Exported:  exported,
		Recursive: recursive,
		Bindings:  bindings,
		SpanVal:   ast.Span{Start: start, End: end},
	}, nil
}

func (p *Parser) parseBinding() (*ast.Binding, error) {
	nameTok, err := p.expect(token.IDENT, "binding names must be lowercase identifiers")
	if err != nil {
		return nil, err
	}
	var typeAnn ast.TypeExpr
	if p.at(token.COLON) {
		p.advance()
		typeAnn, err = p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.ASSIGN, "expected '=' in binding"); err != nil {
		return nil, err
	}

	value, err := p.parseBindingValue(nameTok)
	if err != nil {
		return nil, err
	}

	return &ast.Binding{
		Name:     nameTok.Literal,
		NameSpan: nameTok.Span,
		TypeAnn:  typeAnn,
		Value:    value,
		BSpan:    ast.Span{Start: nameTok.Span.Start, End: value.Span().End},
	}, nil
}

// parseBindingValue implements the first-class-match desugaring: when the
// bound value is literally `match(x) { ... }` with a bare identifier
// scrutinee, it is rewritten in-place to `(x) => { match(x) { ... } }`.
func (p *Parser) parseBindingValue(nameTok token.Token) (ast.Expr, error) {
	if !p.at(token.MATCH) {
		return p.parseExpr()
	}
	m, err := p.parseMatchExpr()
	if err != nil {
		return nil, err
	}
	scrutineeVar, ok := m.Scrutinee.(*ast.Var)
	if !ok {
		return nil, &ParseError{
			Offending: nameTok,
			Message:   "first-class match requires a bare identifier scrutinee",
			Hint:      "write `let f = (x) => { match(x) { ... } }` instead",
		}
	}
	return &ast.Arrow{
		Params: []ast.Param{{Name: scrutineeVar.Name}},
		Body: &ast.Block{
			Result:  m,
			SpanVal: m.Span(),
		},
		SpanVal: m.Span(),
	}, nil
}

func (p *Parser) parseTypeDecl(exported bool) (ast.Decl, error) {
	start := p.cur().Span.Start
	p.advance() // 'type'
	nameTok, err := p.expect(token.CONSTRUCTOR, "type names must start with an uppercase letter")
	if err != nil {
		return nil, err
	}

	var params []string
	if p.at(token.LT) {
		p.advance()
		for {
			pt, err := p.expect(token.IDENT, "type parameters must be lowercase identifiers")
			if err != nil {
				return nil, err
			}
			params = append(params, pt.Literal)
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(token.GT, "expected '>' to close type parameter list"); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.ASSIGN, "expected '=' in type declaration"); err != nil {
		return nil, err
	}

	if p.at(token.LT) {
		alias, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		end := alias.Span().End
		if err := p.expectSemicolon(); err != nil {
			return nil, err
		}
		return &ast.TypeDecl{
			Exported: exported,
			Name:     nameTok.Literal,
			Params:   params,
			IsAlias:  true,
			Alias:    alias,
			SpanVal:  ast.Span{Start: start, End: end},
		}, nil
	}

	if p.at(token.PIPE) {
		p.advance()
	}
	var members []*ast.CtorMember
	for {
		m, err := p.parseCtorMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
		if p.at(token.PIPE) {
			p.advance()
			continue
		}
		break
	}

	end := members[len(members)-1].MSpan.End
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return &ast.TypeDecl{
		Exported: exported,
		Name:     nameTok.Literal,
		Params:   params,
		Members:  members,
		SpanVal:  ast.Span{Start: start, End: end},
	}, nil
}

func (p *Parser) parseCtorMember() (*ast.CtorMember, error) {
	nameTok, err := p.expect(token.CONSTRUCTOR, "constructors must start with an uppercase letter")
	if err != nil {
		return nil, err
	}
	end := nameTok.Span.End
	var fields []ast.TypeExpr
	if p.at(token.LPAREN) {
		p.advance()
		if !p.at(token.RPAREN) {
			for {
				f, err := p.parseTypeExpr()
				if err != nil {
					return nil, err
				}
				fields = append(fields, f)
				if p.at(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
		}
		rp, err := p.expect(token.RPAREN, "expected ')' to close constructor field list")
		if err != nil {
			return nil, err
		}
		end = rp.Span.End
	}
	return &ast.CtorMember{
		Name:   nameTok.Literal,
		Fields: fields,
		MSpan:  ast.Span{Start: nameTok.Span.Start, End: end},
	}, nil
}

func (p *Parser) parseInfixDecl() (ast.Decl, error) {
	start := p.cur().Span.Start
	var assoc ast.Assoc
	switch p.cur().Kind {
	case token.INFIX:
		assoc = ast.NonAssoc
	case token.INFIXL:
		assoc = ast.LeftAssoc
	case token.INFIXR:
		assoc = ast.RightAssoc
	}
	p.advance()

	numTok, err := p.expect(token.NUMBER, "expected a precedence number")
	if err != nil {
		return nil, err
	}
	prec, convErr := strconv.Atoi(numTok.Literal)
	if convErr != nil {
		return nil, &ParseError{Offending: numTok, Message: "invalid precedence number"}
	}

	opTok, err := p.expectOperatorLiteral()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.ASSIGN, "expected '=' in infix declaration"); err != nil {
		return nil, err
	}
	fnTok, err := p.expect(token.IDENT, "expected the bound function name")
	if err != nil {
		return nil, err
	}
	end := fnTok.Span.End
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}

	p.infix[opTok.Literal] = OpInfo{Prec: prec, Assoc: assoc, FuncName: fnTok.Literal}

	return &ast.InfixDecl{
		Assoc:    assoc,
		Prec:     prec,
		Op:       opTok.Literal,
		FuncName: fnTok.Literal,
		SpanVal:  ast.Span{Start: start, End: end},
	}, nil
}

func (p *Parser) parsePrefixDecl() (ast.Decl, error) {
	start := p.cur().Span.Start
	p.advance() // 'prefix'
	opTok, err := p.expectOperatorLiteral()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "expected '=' in prefix declaration"); err != nil {
		return nil, err
	}
	fnTok, err := p.expect(token.IDENT, "expected the bound function name")
	if err != nil {
		return nil, err
	}
	end := fnTok.Span.End
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}

	p.prefix[opTok.Literal] = fnTok.Literal

	return &ast.PrefixDecl{
		Op:       opTok.Literal,
		FuncName: fnTok.Literal,
		SpanVal:  ast.Span{Start: start, End: end},
	}, nil
}

// expectOperatorLiteral accepts any of the token kinds the lexer may have
// classified an operator symbol sequence as (OPERATOR, or one of the
// specially-recognized LT/GT/STAR/PIPE/ASSIGN tokens).
func (p *Parser) expectOperatorLiteral() (token.Token, error) {
	switch p.cur().Kind {
	case token.OPERATOR, token.LT, token.GT, token.STAR, token.PIPE, token.ASSIGN:
		return p.advance(), nil
	}
	return token.Token{}, &ParseError{
		Offending: p.cur(),
		Message:   "expected an operator symbol",
	}
}

func (p *Parser) parseFromClause() (*ast.Import, *ast.Reexport, error) {
	start := p.cur().Span.Start
	p.advance() // 'from'
	pathTok, err := p.expect(token.STRING, "expected a module path string")
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.expect(token.IMPORT, "expected 'import' after module path"); err != nil {
		return nil, nil, err
	}

	if p.at(token.STAR) {
		p.advance()
		if _, err := p.expect(token.AS, "expected 'as' after '*' in wildcard import"); err != nil {
			return nil, nil, err
		}
		nsTok, err := p.expect(token.IDENT, "expected a namespace identifier")
		if err != nil {
			return nil, nil, err
		}
		end := nsTok.Span.End
		if err := p.expectSemicolon(); err != nil {
			return nil, nil, err
		}
		return &ast.Import{
			Path:      pathTok.Literal,
			Wildcard:  true,
			Namespace: nsTok.Literal,
			SpanVal:   ast.Span{Start: start, End: end},
		}, nil, nil
	}

	if _, err := p.expect(token.LBRACE, "expected '{' to begin an import list"); err != nil {
		return nil, nil, err
	}
	seen := map[string]bool{}
	var names []ast.ImportedName
	for !p.at(token.RBRACE) {
		nameTok, err := p.expect(token.IDENT, "expected an imported name")
		if err != nil {
			return nil, nil, err
		}
		local := nameTok.Literal
		if p.at(token.AS) {
			p.advance()
			localTok, err := p.expect(token.IDENT, "expected a local alias identifier")
			if err != nil {
				return nil, nil, err
			}
			local = localTok.Literal
		}
		if seen[local] {
			return nil, nil, &ParseError{Offending: nameTok, Message: "duplicate local import name: " + local}
		}
		seen[local] = true
		names = append(names, ast.ImportedName{Name: nameTok.Literal, Local: local})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	rb, err := p.expect(token.RBRACE, "expected '}' to close the import list")
	if err != nil {
		return nil, nil, err
	}
	if err := p.expectSemicolon(); err != nil {
		return nil, nil, err
	}
	return &ast.Import{
		Path:    pathTok.Literal,
		Names:   names,
		SpanVal: ast.Span{Start: start, End: rb.Span.End},
	}, nil, nil
}

func (p *Parser) parseReexport() (*ast.Reexport, error) {
	start := p.cur().Span.Start
	p.advance() // 'export'
	p.advance() // 'from'
	pathTok, err := p.expect(token.STRING, "expected a module path string")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.TYPE, "expected 'type' in a re-export clause"); err != nil {
		return nil, err
	}
	var types []ast.ReexportedType
	for {
		nameTok, err := p.expect(token.CONSTRUCTOR, "expected a type name")
		if err != nil {
			return nil, err
		}
		withCtors := false
		if p.at(token.LPAREN) {
			p.advance()
			if _, err := p.expect(token.DOT, "expected '..' inside '(..)'"); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.DOT, "expected '..' inside '(..)'"); err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN, "expected ')' to close '(..)'"); err != nil {
				return nil, err
			}
			withCtors = true
		}
		types = append(types, ast.ReexportedType{Name: nameTok.Literal, WithCtors: withCtors})
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.cur().Span.End
	if err := p.expectSemicolon(); err != nil {
		return nil, err
	}
	return &ast.Reexport{
		Path:    pathTok.Literal,
		Types:   types,
		SpanVal: ast.Span{Start: start, End: end},
	}, nil
}
