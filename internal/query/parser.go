package query

import (
	"github.com/jacoelho/jello/internal/value"
)

type node interface{}

type literalNode struct {
	value value.Value
	pos   int
}

type nameNode struct {
	name string
	pos  int
}

type listNode struct {
	elems []node
}

type objectNode struct {
	keys   []node
	values []node
}

type attrNode struct {
	target node
	name   string
	pos    int
}

type indexNode struct {
	target node
	index  node
	pos    int
}

type sliceNode struct {
	target node
	low    node // nil means start
	high   node // nil means end
	pos    int
}

type callNode struct {
	fn   string
	args []node
	pos  int
}

type unaryNode struct {
	op      tokenType
	operand node
	pos     int
}

type binaryNode struct {
	op    tokenType
	left  node
	right node
	pos   int
}

type condNode struct {
	cond node
	then node
	els  node
}

type compNode struct {
	expr node
	name string
	seq  node
	cond node // nil when no filter clause
	pos  int
}

type statement interface{}

type assignStmt struct {
	name string
	expr node
}

type exprStmt struct {
	expr node
}

type parserState struct {
	tokens []token
	pos    int
}

// parseProgram parses a statement sequence: assignments or bare
// expressions separated by newlines or semicolons.
func parseProgram(src string) ([]statement, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	state := parserState{tokens: tokens}
	var statements []statement

	for {
		state.skipSeparators()
		if state.current().typ == tokenEOF {
			break
		}

		stmt, err := state.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)

		switch state.current().typ {
		case tokenNewline, tokenSemicolon:
			state.advance()
		case tokenEOF:
		default:
			return nil, parseErrorf(state.current().pos, "unexpected token after statement")
		}
	}

	if len(statements) == 0 {
		return nil, parseErrorf(0, "query is empty")
	}
	return statements, nil
}

func (p *parserState) skipSeparators() {
	for p.current().typ == tokenNewline || p.current().typ == tokenSemicolon {
		p.advance()
	}
}

func (p *parserState) parseStatement() (statement, error) {
	if p.current().typ == tokenIdentifier && p.peek().typ == tokenAssign {
		name := p.advance().literal
		p.advance() // '='
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return assignStmt{name: name, expr: expr}, nil
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return exprStmt{expr: expr}, nil
}

// parseExpression handles the conditional form `a if cond else b`, the
// lowest-precedence construct.
func (p *parserState) parseExpression() (node, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.current().typ != tokenIf {
		return expr, nil
	}
	p.advance()

	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.current().typ != tokenElse {
		return nil, parseErrorf(p.current().pos, "expected 'else' in conditional expression")
	}
	p.advance()

	els, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return condNode{cond: cond, then: expr, els: els}, nil
}

func (p *parserState) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenOr {
		pos := p.advance().pos
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tokenOr, left: left, right: right, pos: pos}
	}
	return left, nil
}

func (p *parserState) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenAnd {
		pos := p.advance().pos
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: tokenAnd, left: left, right: right, pos: pos}
	}
	return left, nil
}

func (p *parserState) parseNot() (node, error) {
	if p.current().typ == tokenNot && p.peek().typ != tokenIn {
		pos := p.advance().pos
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: tokenNot, operand: operand, pos: pos}, nil
	}
	return p.parseComparison()
}

// comparisonOps are the infix comparison and membership operators.
var comparisonOps = map[tokenType]bool{
	tokenEqual:        true,
	tokenNotEqual:     true,
	tokenLess:         true,
	tokenLessEqual:    true,
	tokenGreater:      true,
	tokenGreaterEqual: true,
	tokenIn:           true,
}

func (p *parserState) parseComparison() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	for {
		// `not in` is lexed as two tokens.
		if p.current().typ == tokenNot && p.peek().typ == tokenIn {
			pos := p.advance().pos
			p.advance() // 'in'
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			membership := binaryNode{op: tokenIn, left: left, right: right, pos: pos}
			left = unaryNode{op: tokenNot, operand: membership, pos: pos}
			continue
		}

		typ := p.current().typ
		if !comparisonOps[typ] {
			break
		}
		pos := p.advance().pos
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: typ, left: left, right: right, pos: pos}
	}
	return left, nil
}

func (p *parserState) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenPlus || p.current().typ == tokenMinus {
		op := p.current().typ
		pos := p.advance().pos
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right, pos: pos}
	}
	return left, nil
}

func (p *parserState) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenStar || p.current().typ == tokenSlash || p.current().typ == tokenPercent {
		op := p.current().typ
		pos := p.advance().pos
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binaryNode{op: op, left: left, right: right, pos: pos}
	}
	return left, nil
}

func (p *parserState) parseUnary() (node, error) {
	if p.current().typ == tokenMinus {
		pos := p.advance().pos
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: tokenMinus, operand: operand, pos: pos}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles member access, indexing and slicing, which bind
// tighter than any operator.
func (p *parserState) parsePostfix() (node, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.current().typ {
		case tokenDot:
			pos := p.advance().pos
			if p.current().typ != tokenIdentifier {
				return nil, parseErrorf(p.current().pos, "expected member name after '.'")
			}
			name := p.advance().literal
			expr = attrNode{target: expr, name: name, pos: pos}
		case tokenLBracket:
			pos := p.advance().pos
			updated, err := p.parseSubscript(expr, pos)
			if err != nil {
				return nil, err
			}
			expr = updated
		default:
			return expr, nil
		}
	}
}

// parseSubscript parses the inside of `target[...]`: a plain index or a
// slice with optional bounds.
func (p *parserState) parseSubscript(target node, pos int) (node, error) {
	var low node
	if p.current().typ != tokenColon {
		parsed, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		low = parsed
	}

	if p.current().typ == tokenColon {
		p.advance()
		var high node
		if p.current().typ != tokenRBracket {
			parsed, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			high = parsed
		}
		if p.current().typ != tokenRBracket {
			return nil, parseErrorf(p.current().pos, "missing closing ']'")
		}
		p.advance()
		return sliceNode{target: target, low: low, high: high, pos: pos}, nil
	}

	if low == nil {
		return nil, parseErrorf(p.current().pos, "empty subscript")
	}
	if p.current().typ != tokenRBracket {
		return nil, parseErrorf(p.current().pos, "missing closing ']'")
	}
	p.advance()
	return indexNode{target: target, index: low, pos: pos}, nil
}

func (p *parserState) parsePrimary() (node, error) {
	tok := p.current()
	switch tok.typ {
	case tokenIdentifier:
		p.advance()
		if p.current().typ == tokenLParen {
			p.advance()
			args, err := p.parseCallArgs()
			if err != nil {
				return nil, err
			}
			return callNode{fn: tok.literal, args: args, pos: tok.pos}, nil
		}
		return nameNode{name: tok.literal, pos: tok.pos}, nil
	case tokenNumber:
		p.advance()
		return literalNode{value: value.FromNumber(value.Number(tok.literal)), pos: tok.pos}, nil
	case tokenString:
		p.advance()
		return literalNode{value: value.String(tok.literal), pos: tok.pos}, nil
	case tokenTrue:
		p.advance()
		return literalNode{value: value.Bool(true), pos: tok.pos}, nil
	case tokenFalse:
		p.advance()
		return literalNode{value: value.Bool(false), pos: tok.pos}, nil
	case tokenNull:
		p.advance()
		return literalNode{value: value.Null(), pos: tok.pos}, nil
	case tokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.current().typ != tokenRParen {
			return nil, parseErrorf(p.current().pos, "missing closing ')'")
		}
		p.advance()
		return expr, nil
	case tokenLBracket:
		p.advance()
		return p.parseListOrComprehension(tok.pos)
	case tokenLBrace:
		p.advance()
		return p.parseObjectLiteral()
	default:
		return nil, parseErrorf(tok.pos, "unexpected token")
	}
}

func (p *parserState) parseCallArgs() ([]node, error) {
	var args []node
	if p.current().typ == tokenRParen {
		p.advance()
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch p.current().typ {
		case tokenComma:
			p.advance()
		case tokenRParen:
			p.advance()
			return args, nil
		default:
			return nil, parseErrorf(p.current().pos, "missing closing ')'")
		}
	}
}

// parseListOrComprehension distinguishes `[a, b]` from
// `[expr for name in seq if cond]` after the first element is parsed.
func (p *parserState) parseListOrComprehension(pos int) (node, error) {
	if p.current().typ == tokenRBracket {
		p.advance()
		return listNode{}, nil
	}

	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.current().typ == tokenFor {
		p.advance()
		if p.current().typ != tokenIdentifier {
			return nil, parseErrorf(p.current().pos, "expected name after 'for'")
		}
		name := p.advance().literal
		if p.current().typ != tokenIn {
			return nil, parseErrorf(p.current().pos, "expected 'in' in comprehension")
		}
		p.advance()
		seq, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		var cond node
		if p.current().typ == tokenIf {
			p.advance()
			cond, err = p.parseOr()
			if err != nil {
				return nil, err
			}
		}
		if p.current().typ != tokenRBracket {
			return nil, parseErrorf(p.current().pos, "missing closing ']'")
		}
		p.advance()
		return compNode{expr: first, name: name, seq: seq, cond: cond, pos: pos}, nil
	}

	elems := []node{first}
	for {
		switch p.current().typ {
		case tokenComma:
			p.advance()
			// Trailing comma before the closing bracket is allowed.
			if p.current().typ == tokenRBracket {
				p.advance()
				return listNode{elems: elems}, nil
			}
			elem, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		case tokenRBracket:
			p.advance()
			return listNode{elems: elems}, nil
		default:
			return nil, parseErrorf(p.current().pos, "missing closing ']'")
		}
	}
}

func (p *parserState) parseObjectLiteral() (node, error) {
	var keys, values []node
	if p.current().typ == tokenRBrace {
		p.advance()
		return objectNode{}, nil
	}

	for {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.current().typ != tokenColon {
			return nil, parseErrorf(p.current().pos, "expected ':' in object literal")
		}
		p.advance()
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
		values = append(values, val)

		switch p.current().typ {
		case tokenComma:
			p.advance()
			if p.current().typ == tokenRBrace {
				p.advance()
				return objectNode{keys: keys, values: values}, nil
			}
		case tokenRBrace:
			p.advance()
			return objectNode{keys: keys, values: values}, nil
		default:
			return nil, parseErrorf(p.current().pos, "missing closing '}'")
		}
	}
}

func (p *parserState) current() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokenEOF, pos: len(p.tokens)}
	}
	return p.tokens[p.pos]
}

func (p *parserState) peek() token {
	if p.pos+1 >= len(p.tokens) {
		return token{typ: tokenEOF, pos: len(p.tokens)}
	}
	return p.tokens[p.pos+1]
}

func (p *parserState) advance() token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}
