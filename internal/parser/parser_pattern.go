package parser

import (
	"strconv"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/token"
)

// parsePattern implements:
//
//	pattern ::= '_' | ident | literal | UPPER ['(' pattern,* ')'] | '(' pattern,* ')'
func (p *Parser) parsePattern() (ast.Pattern, error) {
	switch p.cur().Kind {
	case token.UNDERSCORE:
		t := p.advance()
		return &ast.WildcardPattern{SpanVal: t.Span}, nil
	case token.IDENT:
		t := p.advance()
		return &ast.VarPattern{Name: t.Literal, SpanVal: t.Span}, nil
	case token.NUMBER:
		t := p.advance()
		n, err := strconv.Atoi(t.Literal)
		if err != nil {
			return nil, &ParseError{Offending: t, Message: "invalid integer literal pattern"}
		}
		return &ast.LitPattern{Kind: ast.IntLit, Value: n, SpanVal: t.Span}, nil
	case token.BOOL:
		t := p.advance()
		return &ast.LitPattern{Kind: ast.BoolLit, Value: t.Literal == "true", SpanVal: t.Span}, nil
	case token.CHAR:
		t := p.advance()
		return &ast.LitPattern{Kind: ast.CharLit, Value: []rune(t.Literal)[0], SpanVal: t.Span}, nil
	case token.STRING:
		t := p.advance()
		return &ast.LitPattern{Kind: ast.StringLit, Value: t.Literal, SpanVal: t.Span}, nil
	case token.CONSTRUCTOR:
		return p.parseCtorPattern()
	case token.LPAREN:
		return p.parseParenPattern()
	}
	return nil, &ParseError{Offending: p.cur(), Message: "expected a pattern"}
}

func (p *Parser) parseCtorPattern() (ast.Pattern, error) {
	nameTok := p.advance()
	end := nameTok.Span.End
	var args []ast.Pattern
	if p.at(token.LPAREN) {
		p.advance()
		if !p.at(token.RPAREN) {
			for {
				a, err := p.parsePattern()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.at(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
		}
		rp, err := p.expect(token.RPAREN, "expected ')' to close constructor pattern arguments")
		if err != nil {
			return nil, err
		}
		end = rp.Span.End
	}
	return &ast.CtorPattern{Name: nameTok.Literal, Args: args, SpanVal: ast.Span{Start: nameTok.Span.Start, End: end}}, nil
}

func (p *Parser) parseParenPattern() (ast.Pattern, error) {
	start := p.cur().Span.Start
	p.advance() // '('
	var elems []ast.Pattern
	if !p.at(token.RPAREN) {
		for {
			e, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	rp, err := p.expect(token.RPAREN, "expected ')' to close a tuple pattern")
	if err != nil {
		return nil, err
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return &ast.TuplePattern{Elements: elems, SpanVal: ast.Span{Start: start, End: rp.Span.End}}, nil
}
