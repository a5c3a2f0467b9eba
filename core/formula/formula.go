// Package formula evaluates restricted arithmetic expressions over a caller
// supplied variable table. It is the only code in the system that ever reads
// a pricing formula, and it admits nothing but numbers, the four operators,
// parentheses and known variable names. The character allowlist, not any
// blocklist, is the security boundary: a formula is scanned in full before a
// single token reaches the parser.
package formula

import (
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	// MaxLength bounds the accepted formula size in characters.
	MaxLength = 500
	// MaxDepth bounds parenthesis nesting. Exactly MaxDepth levels are
	// accepted, one more is rejected.
	MaxDepth = 50
)

// Evaluate checks the formula against the allowlist and evaluates it with the
// given variable bindings. The result is the exact decimal value of the
// arithmetic; no rounding of any kind is applied here.
func Evaluate(input string, vars map[string]decimal.Decimal) (decimal.Decimal, error) {
	src := []rune(input)
	if err := gate(src, vars); err != nil {
		return decimal.Decimal{}, err
	}
	p := &parser{src: src, vars: vars}
	v, err := p.parseExpr()
	if err != nil {
		return decimal.Decimal{}, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return decimal.Decimal{}, TrailingInputError{Pos: p.pos}
	}
	return v, nil
}

// Validate evaluates the formula against a probe variable set and reports any
// failure. Stores use this as the write-time acceptance check for vehicle
// type definitions.
func Validate(input string, probe map[string]decimal.Decimal) error {
	_, err := Evaluate(input, probe)
	return err
}

// gate scans every character before parsing. Digits, the operators, parens,
// the decimal point and whitespace pass; letter runs must exactly match a
// known variable name; anything else is rejected with its position.
func gate(src []rune, vars map[string]decimal.Decimal) error {
	if isBlank(src) {
		return ErrEmptyFormula
	}
	if len(src) > MaxLength {
		return ErrTooLong
	}
	for i := 0; i < len(src); {
		r := src[i]
		switch {
		case isLetter(r):
			start := i
			for i < len(src) && isLetter(src[i]) {
				i++
			}
			name := string(src[start:i])
			if _, ok := vars[name]; !ok {
				return UnknownVariableError{Name: name}
			}
		case r >= '0' && r <= '9', r == '+', r == '-', r == '*', r == '/',
			r == '(', r == ')', r == '.', unicode.IsSpace(r):
			i++
		default:
			return DisallowedCharacterError{Pos: i, Char: r}
		}
	}
	return nil
}

func isBlank(src []rune) bool {
	for _, r := range src {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
