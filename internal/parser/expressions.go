package parser

import (
	"github.com/cwbudde/go-toy/internal/ast"
	"github.com/cwbudde/go-toy/internal/token"
)

// expression parses the loosest precedence level: assignment.
func (p *Parser) expression() ast.Expression {
	return p.assignment()
}

// assignment handles `target = value`, converting the already-parsed
// left-hand side into an Assign or Set node per spec.md §4.2. Lambdas are
// recognised earlier, in primary (see lambdaOrParen below).
func (p *Parser) assignment() ast.Expression {
	expr := p.or()

	if p.match(token.ASSIGN) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target")
			return expr
		}
	}

	return expr
}

func (p *Parser) or() ast.Expression {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expression {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expression {
	expr := p.comparison()
	for p.match(token.EQ, token.NEQ) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expression {
	expr := p.term()
	for p.match(token.GREATER, token.GE, token.LESS, token.LE) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expression {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expression {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH, token.PERCENT) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Operator: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expression {
	if p.match(token.MINUS, token.BANG) {
		op := p.previous()
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.call()
}

// call parses a postfix chain of `(args)` and `.name` after a primary
// expression, per spec.md §4.2.
func (p *Parser) call() ast.Expression {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LPAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENT, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expression) ast.Expression {
	var args []ast.Expression
	if !p.check(token.RPAREN) {
		for {
			if len(args) >= maxCallArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	closeParen := p.consume(token.RPAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, CloseParen: closeParen, Args: args}
}

// primary parses the tightest-binding forms, including the lambda
// heuristic and `new Name(args)` sugar described in spec.md §4.2.
func (p *Parser) primary() ast.Expression {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Token: p.previous(), Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Token: p.previous(), Value: true}
	case p.match(token.NULL):
		return &ast.Literal{Token: p.previous(), Value: nil}
	case p.match(token.NUMBER):
		tok := p.previous()
		if tok.Literal.IsFloat {
			return &ast.Literal{Token: tok, Value: tok.Literal.Float}
		}
		return &ast.Literal{Token: tok, Value: tok.Literal.Int}
	case p.match(token.STRING):
		tok := p.previous()
		return &ast.Literal{Token: tok, Value: tok.Literal.Str}
	case p.match(token.THIS):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.IDENT):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.NEW):
		return p.newExpression()
	case p.check(token.LPAREN):
		return p.lambdaOrParen()
	}

	panic(p.errorAt(p.peek(), "Expect expression."))
}

// newExpression parses `new Name(args)` as a Call on a Variable(Name), per
// spec.md §4.2.
func (p *Parser) newExpression() ast.Expression {
	name := p.consume(token.IDENT, "Expect class name after 'new'.")
	p.consume(token.LPAREN, "Expect '(' after class name.")
	callee := &ast.Variable{Name: name}
	return p.finishCall(callee)
}

// lambdaOrParen resolves the ambiguity in spec.md §4.2/§9: the parser
// commits to a lambda whenever '(' is followed by an identifier token,
// which misparses a plain parenthesized identifier expression like `(x)`.
// This reproduces the documented wart rather than the two-token-lookahead
// fix, per the spec's "known wart" note.
func (p *Parser) lambdaOrParen() ast.Expression {
	keyword := p.peek()
	p.advance() // consume '('

	if p.check(token.IDENT) {
		return p.finishLambda(keyword)
	}

	if p.match(token.RPAREN) {
		// Empty parameter list also commits to a lambda form.
		return p.finishLambdaBody(keyword, nil)
	}

	expr := p.expression()
	p.consume(token.RPAREN, "Expect ')' after expression.")
	return expr
}

func (p *Parser) finishLambda(keyword token.Token) ast.Expression {
	var params []token.Token
	params = append(params, p.consume(token.IDENT, "Expect parameter name."))
	for p.match(token.COMMA) {
		params = append(params, p.consume(token.IDENT, "Expect parameter name."))
	}
	p.consume(token.RPAREN, "Expect ')' after lambda parameters.")
	return p.finishLambdaBody(keyword, params)
}

func (p *Parser) finishLambdaBody(keyword token.Token, params []token.Token) ast.Expression {
	p.consume(token.FATARROW, "Expect '=>' after lambda parameters.")
	body := p.expression()
	return &ast.Lambda{Keyword: keyword, Params: params, Body: body}
}
