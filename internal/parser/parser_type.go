package parser

import (
	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/token"
)

// parseTypeExpr parses a type annotation. Grammar (informal):
//
//	typeExpr  ::= '(' typeExpr,* ')' ['->' typeExpr]
//	            | IDENT                                   -- type variable
//	            | CONSTRUCTOR ['<' typeExpr,* '>']         -- named/applied
//	            | '<' errorCase,* ['|' IDENT] '>'          -- error row literal
func (p *Parser) parseTypeExpr() (ast.TypeExpr, error) {
	switch p.cur().Kind {
	case token.IDENT:
		t := p.advance()
		return &ast.TypeVarExpr{Name: t.Literal, SpanVal: t.Span}, nil
	case token.CONSTRUCTOR:
		return p.parseTypeNameExpr()
	case token.LPAREN:
		return p.parseParenTypeExpr()
	case token.LT:
		return p.parseErrorRowExpr()
	case token.OPERATOR:
		// `<>>` lexes as one operator token: an empty error row followed by
		// the '>' that closes the enclosing argument list, which stays.
		if t := p.cur(); t.Literal == "<>>" {
			p.toks[p.pos].Kind, p.toks[p.pos].Literal = token.GT, ">"
			p.toks[p.pos].Span.Start += 2
			return &ast.ErrorRowExpr{SpanVal: ast.Span{Start: t.Span.Start, End: t.Span.Start + 2}}, nil
		}
	}
	return nil, &ParseError{Offending: p.cur(), Message: "expected a type"}
}

func (p *Parser) parseTypeNameExpr() (ast.TypeExpr, error) {
	nameTok := p.advance()
	end := nameTok.Span.End
	var args []ast.TypeExpr
	if p.at(token.LT) {
		p.advance()
		for {
			a, err := p.parseTypeExpr()
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
		gt, err := p.expect(token.GT, "expected '>' to close type arguments")
		if err != nil {
			return nil, err
		}
		end = gt.Span.End
	}
	return &ast.TypeNameExpr{Name: nameTok.Literal, Args: args, SpanVal: ast.Span{Start: nameTok.Span.Start, End: end}}, nil
}

func (p *Parser) parseParenTypeExpr() (ast.TypeExpr, error) {
	start := p.cur().Span.Start
	p.advance() // '('
	var elems []ast.TypeExpr
	if !p.at(token.RPAREN) {
		for {
			e, err := p.parseTypeExpr()
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
	rp, err := p.expect(token.RPAREN, "expected ')' to close a type group")
	if err != nil {
		return nil, err
	}
	end := rp.Span.End

	if p.atOperatorLiteral("->") {
		p.advance()
		ret, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		return &ast.TypeFuncExpr{Params: elems, Return: ret, SpanVal: ast.Span{Start: start, End: ret.Span().End}}, nil
	}

	if len(elems) == 1 {
		return elems[0], nil
	}
	return &ast.TypeTupleExpr{Elements: elems, SpanVal: ast.Span{Start: start, End: end}}, nil
}

func (p *Parser) parseErrorRowExpr() (ast.TypeExpr, error) {
	start := p.cur().Span.Start
	p.advance() // '<'
	var cases []ast.ErrorCaseExpr
	tail := ""
	if !p.at(token.GT) {
		for {
			if p.at(token.PIPE) {
				p.advance()
				tailTok, err := p.expect(token.IDENT, "expected a row-tail type variable")
				if err != nil {
					return nil, err
				}
				tail = tailTok.Literal
				break
			}
			labelTok, err := p.expect(token.CONSTRUCTOR, "error-row case labels must be uppercase")
			if err != nil {
				return nil, err
			}
			var payload ast.TypeExpr
			if p.at(token.LPAREN) {
				p.advance()
				payload, err = p.parseTypeExpr()
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(token.RPAREN, "expected ')' after error-case payload"); err != nil {
					return nil, err
				}
			}
			cases = append(cases, ast.ErrorCaseExpr{Label: labelTok.Literal, Payload: payload})
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			if p.at(token.PIPE) {
				continue
			}
			break
		}
	}
	if t := p.cur(); t.Kind == token.OPERATOR && t.Literal == ">>" {
		// A closing `>>` lexes as one operator token: its first '>' closes
		// this row and the second stays for the enclosing argument list.
		p.toks[p.pos].Kind, p.toks[p.pos].Literal = token.GT, ">"
		p.toks[p.pos].Span.Start++
		return &ast.ErrorRowExpr{Cases: cases, Tail: tail, SpanVal: ast.Span{Start: start, End: t.Span.Start + 1}}, nil
	}
	gt, err := p.expect(token.GT, "expected '>' to close an error row")
	if err != nil {
		return nil, err
	}
	return &ast.ErrorRowExpr{Cases: cases, Tail: tail, SpanVal: ast.Span{Start: start, End: gt.Span.End}}, nil
}
