package formula

import (
	"errors"
	"fmt"
)

// Sentinel failures without positional payload.
var (
	// ErrEmptyFormula is returned when the formula is empty or whitespace only.
	ErrEmptyFormula = errors.New("formula is empty")
	// ErrTooLong is returned when the formula exceeds MaxLength characters.
	ErrTooLong = errors.New("formula exceeds maximum length")
	// ErrMaxDepthExceeded is returned when parenthesis nesting exceeds MaxDepth.
	ErrMaxDepthExceeded = errors.New("formula nesting too deep")
	// ErrDivisionByZero is returned when a divisor evaluates to zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// UnknownVariableError reports an identifier that is not in the variable table.
type UnknownVariableError struct {
	Name string
}

func (e UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown variable %q", e.Name)
}

// DisallowedCharacterError reports a character outside the arithmetic allowlist.
type DisallowedCharacterError struct {
	Pos  int
	Char rune
}

func (e DisallowedCharacterError) Error() string {
	return fmt.Sprintf("disallowed character %q at position %d", e.Char, e.Pos)
}

// TrailingInputError reports unconsumed input after a complete expression.
type TrailingInputError struct {
	Pos int
}

func (e TrailingInputError) Error() string {
	return fmt.Sprintf("unexpected trailing input at position %d", e.Pos)
}

// SyntaxError reports a malformed expression.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}
