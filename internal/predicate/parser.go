package predicate

import (
	"fmt"
	"strconv"
)

// variables maps accepted names, including the short aliases, to the
// canonical binding name.
var variables = map[string]string{
	"rating":  "rating",
	"r":       "rating",
	"tags":    "tags",
	"t":       "tags",
	"comment": "comment",
	"c":       "comment",
}

type parser struct {
	src  string
	toks []token
	pos  int
}

// parse builds the syntax tree for src.
func parse(src string) (Node, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks}
	if p.peek().kind == tokEOF {
		return nil, p.errorf(p.peek(), "empty expression")
	}

	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected %s", describe(tok))
	}
	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) peekAt(offset int) token {
	if p.pos+offset >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+offset]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

// accept consumes the next token when it is one of the given operators or
// keywords.
func (p *parser) accept(texts ...string) (token, bool) {
	tok := p.peek()
	if tok.kind != tokOp && tok.kind != tokIdent {
		return tok, false
	}
	for _, text := range texts {
		if tok.text == text {
			p.pos++
			return tok, true
		}
	}
	return tok, false
}

func (p *parser) expect(text string) (token, error) {
	tok, ok := p.accept(text)
	if !ok {
		return tok, p.errorf(tok, "expected %q, found %s", text, describe(tok))
	}
	return tok, nil
}

func (p *parser) errorf(tok token, format string, args ...any) *SyntaxError {
	return &SyntaxError{Expr: p.src, Pos: tok.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseOr() (Node, error) {
	x, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept("or", "||")
		if !ok {
			return x, nil
		}
		y, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		x = &Binary{At: tok.pos, Op: "or", X: x, Y: y}
	}
}

func (p *parser) parseAnd() (Node, error) {
	x, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept("and", "&&")
		if !ok {
			return x, nil
		}
		y, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		x = &Binary{At: tok.pos, Op: "and", X: x, Y: y}
	}
}

func (p *parser) parseNot() (Node, error) {
	if tok, ok := p.accept("not", "!"); ok {
		x, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Unary{At: tok.pos, Op: "not", X: x}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Node, error) {
	first, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}

	cmp := &Compare{At: first.Pos(), Operands: []Node{first}}
	for {
		op, ok := p.comparisonOp()
		if !ok {
			break
		}
		y, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		cmp.Ops = append(cmp.Ops, op)
		cmp.Operands = append(cmp.Operands, y)
	}

	if len(cmp.Ops) == 0 {
		return first, nil
	}
	return cmp, nil
}

// comparisonOp consumes a comparison operator, including the two-word
// "not in".
func (p *parser) comparisonOp() (string, bool) {
	tok := p.peek()
	switch {
	case tok.kind == tokOp:
		switch tok.text {
		case "==", "!=", "<", "<=", ">", ">=":
			p.pos++
			return tok.text, true
		}
	case tok.kind == tokIdent && tok.text == "in":
		p.pos++
		return "in", true
	case tok.kind == tokIdent && tok.text == "not":
		if next := p.peekAt(1); next.kind == tokIdent && next.text == "in" {
			p.pos += 2
			return "not in", true
		}
	}
	return "", false
}

func (p *parser) parseBitOr() (Node, error) {
	x, err := p.parseBitAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept("|")
		if !ok {
			return x, nil
		}
		y, err := p.parseBitAnd()
		if err != nil {
			return nil, err
		}
		x = &Binary{At: tok.pos, Op: "|", X: x, Y: y}
	}
}

func (p *parser) parseBitAnd() (Node, error) {
	x, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept("&")
		if !ok {
			return x, nil
		}
		y, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		x = &Binary{At: tok.pos, Op: "&", X: x, Y: y}
	}
}

func (p *parser) parseAdditive() (Node, error) {
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := p.accept("+", "-")
		if !ok {
			return x, nil
		}
		y, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		x = &Binary{At: tok.pos, Op: tok.text, X: x, Y: y}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if tok, ok := p.accept("-"); ok {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Unary{At: tok.pos, Op: "-", X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokInt:
		i, err := strconv.Atoi(tok.text)
		if err != nil {
			return nil, p.errorf(tok, "integer %s out of range", tok.text)
		}
		return &Literal{At: tok.pos, Value: intValue(i)}, nil

	case tokString:
		return &Literal{At: tok.pos, Value: stringValue(tok.text)}, nil

	case tokIdent:
		return p.parseName(tok)

	case tokOp:
		switch tok.text {
		case "(":
			x, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		case "{":
			return p.parseSet(tok, "}")
		case "[":
			return p.parseSet(tok, "]")
		}
	}
	return nil, p.errorf(tok, "unexpected %s", describe(tok))
}

func (p *parser) parseName(tok token) (Node, error) {
	switch tok.text {
	case "True":
		return &Literal{At: tok.pos, Value: boolValue(true)}, nil
	case "False":
		return &Literal{At: tok.pos, Value: boolValue(false)}, nil
	case "op":
		if _, err := p.expect("."); err != nil {
			return nil, err
		}
		helper := p.next()
		if helper.kind != tokIdent {
			return nil, p.errorf(helper, "expected helper name after op., found %s", describe(helper))
		}
		fn, ok := opHelpers[helper.text]
		if !ok {
			return nil, p.errorf(helper, "unknown helper op.%s", helper.text)
		}
		return p.parseCall(tok, fn)
	}

	if name, ok := variables[tok.text]; ok {
		return &Variable{At: tok.pos, Name: name}, nil
	}
	if fn, ok := functions[tok.text]; ok {
		return p.parseCall(tok, fn)
	}
	return nil, p.errorf(tok, "unknown name %q", tok.text)
}

func (p *parser) parseCall(tok token, fn *builtin) (Node, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	args, err := p.parseList(")")
	if err != nil {
		return nil, err
	}
	if len(args) != fn.arity {
		return nil, p.errorf(tok, "%s takes %d argument(s), got %d", fn.name, fn.arity, len(args))
	}
	return &Call{At: tok.pos, Func: fn, Args: args}, nil
}

func (p *parser) parseSet(tok token, closing string) (Node, error) {
	elems, err := p.parseList(closing)
	if err != nil {
		return nil, err
	}
	return &SetLit{At: tok.pos, Elems: elems}, nil
}

// parseList parses comma-separated expressions up to and including the
// closing token. A trailing comma is allowed.
func (p *parser) parseList(closing string) ([]Node, error) {
	var items []Node
	for {
		if _, ok := p.accept(closing); ok {
			return items, nil
		}
		item, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if _, ok := p.accept(","); ok {
			continue
		}
		if _, err := p.expect(closing); err != nil {
			return nil, err
		}
		return items, nil
	}
}

func describe(tok token) string {
	switch tok.kind {
	case tokEOF:
		return tok.kind.String()
	case tokString:
		return "string " + strconv.Quote(tok.text)
	default:
		return strconv.Quote(tok.text)
	}
}
