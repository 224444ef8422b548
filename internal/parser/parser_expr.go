package parser

import (
	"strconv"

	"github.com/workman-lang/workman/internal/ast"
	"github.com/workman-lang/workman/internal/token"
)

// parseExpr parses `match_expr | arrow | binary`.
func (p *Parser) parseExpr() (ast.Expr, error) {
	if p.at(token.MATCH) {
		return p.parseMatchExpr()
	}
	return p.parseBinaryExpr(0)
}

func (p *Parser) parseMatchExpr() (*ast.Match, error) {
	start := p.cur().Span.Start
	p.advance() // 'match'
	if _, err := p.expect(token.LPAREN, "expected '(' after match"); err != nil {
		return nil, err
	}
	scrutinee, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN, "expected ')' after match scrutinee"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE, "expected '{' to begin match arms"); err != nil {
		return nil, err
	}
	var arms []*ast.MatchArm
	for {
		arm, err := p.parseMatchArm()
		if err != nil {
			return nil, err
		}
		arms = append(arms, arm)
		if p.at(token.COMMA) {
			p.advance()
			if p.at(token.RBRACE) {
				break
			}
			continue
		}
		break
	}
	rb, err := p.expect(token.RBRACE, "expected '}' to close match arms")
	if err != nil {
		return nil, err
	}
	return &ast.Match{Scrutinee: scrutinee, Arms: arms, SpanVal: ast.Span{Start: start, End: rb.Span.End}}, nil
}

func (p *Parser) parseMatchArm() (*ast.MatchArm, error) {
	start := p.cur().Span.Start
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.FARROW, "expected '=>' after a match pattern"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	return &ast.MatchArm{Pattern: pat, Body: body, SpanVal: ast.Span{Start: start, End: body.SpanVal.End}}, nil
}

// parseBlockBody enforces that match/arrow bodies are brace-delimited
// blocks: a bare expression is never a valid arm or arrow body.
func (p *Parser) parseBlockBody() (*ast.Block, error) {
	if !p.at(token.LBRACE) {
		return nil, &ParseError{
			Offending: p.cur(),
			Message:   "expected a block expression",
			Hint:      "match arms and arrow bodies must be wrapped in { ... }",
		}
	}
	return p.parseBlock()
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	start := p.cur().Span.Start
	p.advance() // '{'
	block := &ast.Block{}

	for !p.at(token.RBRACE) {
		if p.at(token.LET) {
			stmt, err := p.parseLetStmt()
			if err != nil {
				return nil, err
			}
			block.Stmts = append(block.Stmts, stmt)
			continue
		}

		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.at(token.SEMICOLON) {
			semi := p.advance()
			block.Stmts = append(block.Stmts, &ast.ExprStmt{X: e, SpanVal: ast.Span{Start: e.Span().Start, End: semi.Span.End}})
			continue
		}
		block.Result = e
		break
	}

	rb, err := p.expect(token.RBRACE, "expected '}' to close a block")
	if err != nil {
		return nil, err
	}
	block.SpanVal = ast.Span{Start: start, End: rb.Span.End}
	return block, nil
}

func (p *Parser) parseLetStmt() (ast.Stmt, error) {
	start := p.cur().Span.Start
	p.advance() // 'let'
	nameTok, err := p.expect(token.IDENT, "expected a binding name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN, "expected '=' in a let statement"); err != nil {
		return nil, err
	}
	val, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	semi, err := p.expect(token.SEMICOLON, "Statements must be terminated with a semicolon")
	if err != nil {
		return nil, err
	}
	return &ast.LetStmt{Name: nameTok.Literal, Value: val, SpanVal: ast.Span{Start: start, End: semi.Span.End}}, nil
}

// parseBinaryExpr is a precedence-climbing (Pratt) parser driven by the
// operator table built up from `infix`/`infixl`/`infixr` declarations.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		opTok, info, ok := p.peekInfixOp()
		if !ok || info.Prec < minPrec {
			return left, nil
		}
		p.advance()
		nextMin := info.Prec + 1
		if info.Assoc == ast.RightAssoc {
			nextMin = info.Prec
		}
		right, err := p.parseBinaryExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: opTok.Literal, Left: left, Right: right, SpanVal: ast.Span{Start: left.Span().Start, End: right.Span().End}}
	}
}

func (p *Parser) peekInfixOp() (token.Token, OpInfo, bool) {
	t := p.cur()
	switch t.Kind {
	case token.OPERATOR, token.LT, token.GT, token.STAR, token.PIPE:
		if info, ok := p.infix[t.Literal]; ok {
			return t, info, true
		}
	}
	return token.Token{}, OpInfo{}, false
}

func (p *Parser) parseUnaryExpr() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case token.OPERATOR, token.LT, token.GT, token.STAR:
		if _, ok := p.prefix[t.Literal]; ok {
			p.advance()
			operand, err := p.parseUnaryExpr()
			if err != nil {
				return nil, err
			}
			return &ast.Unary{Op: t.Literal, Operand: operand, SpanVal: ast.Span{Start: t.Span.Start, End: operand.Span().End}}, nil
		}
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() (ast.Expr, error) {
	e, err := p.parsePrimaryExpr()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(token.LPAREN):
			args, end, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			e = &ast.Call{Func: e, Args: args, SpanVal: ast.Span{Start: e.Span().Start, End: end}}
		case p.at(token.DOT):
			p.advance()
			fieldTok, err := p.expect(token.IDENT, "expected a field name after '.'")
			if err != nil {
				return nil, err
			}
			e = &ast.FieldAccess{Record: e, Field: fieldTok.Literal, SpanVal: ast.Span{Start: e.Span().Start, End: fieldTok.Span.End}}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parseArgList() ([]ast.Expr, int, error) {
	p.advance() // '('
	var args []ast.Expr
	if !p.at(token.RPAREN) {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, 0, err
			}
			args = append(args, a)
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	rp, err := p.expect(token.RPAREN, "expected ')' to close an argument list")
	if err != nil {
		return nil, 0, err
	}
	return args, rp.Span.End, nil
}

func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	t := p.cur()
	switch t.Kind {
	case token.IDENT:
		p.advance()
		return &ast.Var{Name: t.Literal, SpanVal: t.Span}, nil
	case token.NUMBER:
		p.advance()
		n, err := strconv.Atoi(t.Literal)
		if err != nil {
			return nil, &ParseError{Offending: t, Message: "invalid integer literal"}
		}
		return &ast.Lit{Kind: ast.IntLit, Value: n, SpanVal: t.Span}, nil
	case token.BOOL:
		p.advance()
		return &ast.Lit{Kind: ast.BoolLit, Value: t.Literal == "true", SpanVal: t.Span}, nil
	case token.CHAR:
		p.advance()
		return &ast.Lit{Kind: ast.CharLit, Value: []rune(t.Literal)[0], SpanVal: t.Span}, nil
	case token.STRING:
		p.advance()
		return &ast.Lit{Kind: ast.StringLit, Value: t.Literal, SpanVal: t.Span}, nil
	case token.OPERATOR:
		if t.Literal == "?" {
			p.advance()
			return &ast.Hole{SpanVal: t.Span}, nil
		}
	case token.CONSTRUCTOR:
		return p.parseCtorExpr()
	case token.LPAREN:
		return p.parseParenOrArrow()
	}
	return nil, &ParseError{Offending: t, Message: "expected an expression"}
}

func (p *Parser) parseCtorExpr() (ast.Expr, error) {
	nameTok := p.advance()
	end := nameTok.Span.End
	var args []ast.Expr
	if p.at(token.LPAREN) {
		a, e, err := p.parseArgList()
		if err != nil {
			return nil, err
		}
		args, end = a, e
	}
	return &ast.Ctor{Name: nameTok.Literal, Args: args, SpanVal: ast.Span{Start: nameTok.Span.Start, End: end}}, nil
}

// parenItem is a parenthesized comma-list element still ambiguous between
// an arrow parameter and a tuple/group expression element.
type parenItem struct {
	name    string
	nameTok token.Token
	typeAnn ast.TypeExpr
	expr    ast.Expr // set when the item was not a bare identifier candidate
}

// parseParenOrArrow disambiguates `(expr)`, `(e1, e2, ...)` and
// `(params) => { block }` by speculatively collecting each comma-separated
// item, then looking at what follows the closing paren.
func (p *Parser) parseParenOrArrow() (ast.Expr, error) {
	start := p.cur().Span.Start
	p.advance() // '('

	var items []parenItem
	if !p.at(token.RPAREN) {
		for {
			item, err := p.parseParenItem()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
			if p.at(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	rp, err := p.expect(token.RPAREN, "expected ')' to close a parenthesized expression")
	if err != nil {
		return nil, err
	}

	if p.at(token.FARROW) {
		p.advance()
		params := make([]ast.Param, len(items))
		for i, it := range items {
			if it.expr != nil {
				if v, ok := it.expr.(*ast.Var); ok {
					params[i] = ast.Param{Name: v.Name}
					continue
				}
				return nil, &ParseError{Offending: it.nameTok, Message: "expected a parameter name"}
			}
			params[i] = ast.Param{Name: it.name, TypeAnn: it.typeAnn}
		}
		body, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		return &ast.Arrow{Params: params, Body: body, SpanVal: ast.Span{Start: start, End: body.SpanVal.End}}, nil
	}

	exprs := make([]ast.Expr, len(items))
	for i, it := range items {
		if it.typeAnn != nil {
			return nil, &ParseError{Offending: it.nameTok, Message: "type annotations are only allowed on arrow parameters"}
		}
		if it.expr != nil {
			exprs[i] = it.expr
		} else {
			exprs[i] = &ast.Var{Name: it.name, SpanVal: it.nameTok.Span}
		}
	}

	if len(exprs) == 0 {
		return &ast.Lit{Kind: ast.UnitLit, Value: nil, SpanVal: ast.Span{Start: start, End: rp.Span.End}}, nil
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return &ast.Tuple{Elements: exprs, SpanVal: ast.Span{Start: start, End: rp.Span.End}}, nil
}

func (p *Parser) parseParenItem() (parenItem, error) {
	if p.at(token.IDENT) {
		nameTok := p.advance()
		if p.at(token.COLON) {
			p.advance()
			ty, err := p.parseTypeExpr()
			if err != nil {
				return parenItem{}, err
			}
			return parenItem{name: nameTok.Literal, nameTok: nameTok, typeAnn: ty}, nil
		}
		if p.at(token.COMMA) || p.at(token.RPAREN) {
			return parenItem{name: nameTok.Literal, nameTok: nameTok}, nil
		}
		// Not a bare identifier after all (e.g. `x + 1`): fall through to a
		// full expression parse, continuing from the identifier we already
		// consumed by re-parsing it as the left operand.
		left := ast.Expr(&ast.Var{Name: nameTok.Literal, SpanVal: nameTok.Span})
		e, err := p.continueBinaryExpr(left, 0)
		if err != nil {
			return parenItem{}, err
		}
		return parenItem{expr: e, nameTok: nameTok}, nil
	}
	e, err := p.parseExpr()
	if err != nil {
		return parenItem{}, err
	}
	return parenItem{expr: e}, nil
}

// continueBinaryExpr resumes Pratt parsing given an already-parsed left
// operand (used by parseParenItem once it discovers a bare identifier is
// actually the start of a larger expression).
func (p *Parser) continueBinaryExpr(left ast.Expr, minPrec int) (ast.Expr, error) {
	for {
		opTok, info, ok := p.peekInfixOp()
		if !ok || info.Prec < minPrec {
			return left, nil
		}
		p.advance()
		nextMin := info.Prec + 1
		if info.Assoc == ast.RightAssoc {
			nextMin = info.Prec
		}
		right, err := p.parseBinaryExpr(nextMin)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: opTok.Literal, Left: left, Right: right, SpanVal: ast.Span{Start: left.Span().Start, End: right.Span().End}}
	}
}
