package formula

import (
	"unicode"

	"github.com/shopspring/decimal"
)

// parser is a recursive-descent evaluator with standard precedence:
//
//	expr   := term (('+'|'-') term)*
//	term   := factor (('*'|'/') factor)*
//	factor := '(' expr ')' | '-' factor | number | identifier
//
// Operators are left-associative. Parenthesis depth is tracked so a
// pathological formula cannot blow the stack.
type parser struct {
	src   []rune
	pos   int
	depth int
	vars  map[string]decimal.Decimal
}

func (p *parser) parseExpr() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Decimal{}, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Decimal{}, err
			}
			left = left.Add(right)
		case '-':
			p.pos++
			right, err := p.parseTerm()
			if err != nil {
				return decimal.Decimal{}, err
			}
			left = left.Sub(right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Decimal{}, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Decimal{}, err
			}
			left = left.Mul(right)
		case '/':
			p.pos++
			right, err := p.parseFactor()
			if err != nil {
				return decimal.Decimal{}, err
			}
			// Checked at the point of division: a zero divisor fails
			// whether it came from a literal or a variable.
			if right.IsZero() {
				return decimal.Decimal{}, ErrDivisionByZero
			}
			left = left.Div(right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseFactor() (decimal.Decimal, error) {
	p.skipSpace()
	switch r := p.peek(); {
	case r == '(':
		p.pos++
		p.depth++
		if p.depth > MaxDepth {
			return decimal.Decimal{}, ErrMaxDepthExceeded
		}
		v, err := p.parseExpr()
		if err != nil {
			return decimal.Decimal{}, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return decimal.Decimal{}, SyntaxError{Pos: p.pos, Msg: "expected ')'"}
		}
		p.pos++
		p.depth--
		return v, nil
	case r == '-':
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return decimal.Decimal{}, err
		}
		return v.Neg(), nil
	case r >= '0' && r <= '9', r == '.':
		return p.parseNumber()
	case isLetter(r):
		return p.parseIdentifier()
	case r == 0:
		return decimal.Decimal{}, SyntaxError{Pos: p.pos, Msg: "unexpected end of formula"}
	default:
		return decimal.Decimal{}, SyntaxError{Pos: p.pos, Msg: "expected number, variable or '('"}
	}
}

// parseNumber consumes a decimal literal: digits with at most one '.'.
func (p *parser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	dot := false
	digits := false
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if r >= '0' && r <= '9' {
			digits = true
			p.pos++
			continue
		}
		if r == '.' {
			if dot {
				return decimal.Decimal{}, SyntaxError{Pos: p.pos, Msg: "number has more than one decimal point"}
			}
			dot = true
			p.pos++
			continue
		}
		break
	}
	if !digits {
		return decimal.Decimal{}, SyntaxError{Pos: start, Msg: "malformed number"}
	}
	v, err := decimal.NewFromString(string(p.src[start:p.pos]))
	if err != nil {
		return decimal.Decimal{}, SyntaxError{Pos: start, Msg: "malformed number"}
	}
	return v, nil
}

func (p *parser) parseIdentifier() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.src) && isLetter(p.src[p.pos]) {
		p.pos++
	}
	name := string(p.src[start:p.pos])
	v, ok := p.vars[name]
	if !ok {
		return decimal.Decimal{}, UnknownVariableError{Name: name}
	}
	return v, nil
}

// peek returns the rune at the cursor or 0 at end of input.
func (p *parser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}
