package formula

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vars(kv map[string]float64) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(kv))
	for k, v := range kv {
		out[k] = decimal.NewFromFloat(v)
	}
	return out
}

func eval(t *testing.T, input string, v map[string]float64) decimal.Decimal {
	t.Helper()
	res, err := Evaluate(input, vars(v))
	require.NoError(t, err, "formula %q", input)
	return res
}

func TestEvaluate_Arithmetic(t *testing.T) {
	cases := []struct {
		formula string
		want    string
	}{
		{"1+2*3", "7"},
		{"(1+2)*3", "9"},
		{"10-4-3", "3"},       // left associative
		{"100/10/2", "5"},     // left associative
		{"-5+10", "5"},
		{"-(2+3)*2", "-10"},
		{"--4", "4"},
		{"2*-3", "-6"},
		{"1.5*4", "6"},
		{"0.1+0.2", "0.3"},    // exact decimal, no float drift
		{"  7 ", "7"},
		{"((((1))))", "1"},
	}
	for _, c := range cases {
		got := eval(t, c.formula, nil)
		want, err := decimal.NewFromString(c.want)
		require.NoError(t, err)
		assert.True(t, got.Equal(want), "formula %q: got %s want %s", c.formula, got, c.want)
	}
}

func TestEvaluate_Variables(t *testing.T) {
	got := eval(t, "baseDayRate * days", map[string]float64{"baseDayRate": 100, "days": 3})
	assert.True(t, got.Equal(decimal.NewFromInt(300)), "small-car price: got %s", got)

	got = eval(t, "(baseDayRate*days*1.3)+(baseKmPrice*km)", map[string]float64{
		"baseDayRate": 100, "baseKmPrice": 0.5, "days": 3, "km": 150,
	})
	assert.True(t, got.Equal(decimal.NewFromInt(465)), "station-wagon price: got %s", got)
}

func TestEvaluate_EmptyAndTooLong(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := Evaluate(in, nil)
		assert.ErrorIs(t, err, ErrEmptyFormula, "input %q", in)
	}

	long := strings.Repeat("1+", 250) + "1" // 501 chars
	_, err := Evaluate(long, nil)
	assert.ErrorIs(t, err, ErrTooLong)

	ok := strings.Repeat("1+", 249) + "11" // exactly 500 chars
	require.Len(t, []rune(ok), 500)
	_, err = Evaluate(ok, nil)
	assert.NoError(t, err)
}

func TestEvaluate_DisallowedCharacter(t *testing.T) {
	cases := []struct {
		formula string
		pos     int
		char    rune
	}{
		{"1+2;3", 3, ';'},
		{"days%2", 4, '%'},
		{"1,5", 1, ','},
		{"2^3", 1, '^'},
		{"days.toString", 5, 't'}, // letters after '.' form an unknown identifier
	}
	for _, c := range cases {
		_, err := Evaluate(c.formula, vars(map[string]float64{"days": 2}))
		require.Error(t, err, "formula %q", c.formula)
		var dce DisallowedCharacterError
		var uve UnknownVariableError
		if !errors.As(err, &dce) && !errors.As(err, &uve) {
			t.Errorf("formula %q: got %v, want disallowed character or unknown variable", c.formula, err)
		}
	}
}

func TestEvaluate_UnknownVariable(t *testing.T) {
	_, err := Evaluate("days * rate", vars(map[string]float64{"days": 2}))
	var uve UnknownVariableError
	require.ErrorAs(t, err, &uve)
	assert.Equal(t, "rate", uve.Name)

	// Variable names are case-sensitive after the gate.
	_, err = Evaluate("Days", vars(map[string]float64{"days": 2}))
	require.ErrorAs(t, err, &uve)
	assert.Equal(t, "Days", uve.Name)
}

func TestEvaluate_NestingDepth(t *testing.T) {
	at := func(depth int) string {
		return strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth)
	}
	_, err := Evaluate(at(MaxDepth), nil)
	assert.NoError(t, err, "exactly %d levels must be accepted", MaxDepth)

	_, err = Evaluate(at(MaxDepth+1), nil)
	assert.ErrorIs(t, err, ErrMaxDepthExceeded)
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	_, err := Evaluate("1/0", nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	// A runtime-evaluated zero divisor fails the same way as a literal.
	_, err = Evaluate("days/(km-km)", vars(map[string]float64{"days": 2, "km": 7}))
	assert.ErrorIs(t, err, ErrDivisionByZero)

	_, err = Evaluate("10/(2-2)", nil)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestEvaluate_TrailingInput(t *testing.T) {
	_, err := Evaluate("1+2 3", nil)
	var tie TrailingInputError
	assert.ErrorAs(t, err, &tie)

	_, err = Evaluate("(1+2))", nil)
	assert.ErrorAs(t, err, &tie)
}

func TestEvaluate_Syntax(t *testing.T) {
	var se SyntaxError
	for _, in := range []string{"1+", "(1+2", "*3", "1..2", "1+.", "()"} {
		_, err := Evaluate(in, nil)
		require.Error(t, err, "formula %q", in)
		if !errors.As(err, &se) {
			t.Errorf("formula %q: got %v, want syntax error", in, err)
		}
	}
}

func TestEvaluate_NoRounding(t *testing.T) {
	got := eval(t, "10/4", nil)
	assert.True(t, got.Equal(decimal.NewFromFloat(2.5)), "got %s", got)
}

func TestValidate(t *testing.T) {
	probe := vars(map[string]float64{"baseDayRate": 10, "baseKmPrice": 1, "days": 1, "km": 1})
	assert.NoError(t, Validate("baseDayRate*days+baseKmPrice*km", probe))
	assert.Error(t, Validate("baseDayRate*hours", probe))
	assert.Error(t, Validate("", probe))
}
