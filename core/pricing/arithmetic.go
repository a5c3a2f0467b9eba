// Package pricing derives billing quantities from timestamps and odometer
// readings and computes the rental price through the vehicle type's formula.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// RentalDays returns the number of billable days between checkout and return:
// the elapsed real time rounded up to whole days, never less than one.
// time.Time subtraction compares absolute instants, so re-expressing either
// timestamp in a different UTC offset cannot change the result.
func RentalDays(checkout, returned time.Time) int64 {
	elapsed := returned.Sub(checkout)
	if elapsed <= 0 {
		return 1
	}
	days := int64((elapsed + day - 1) / day)
	if days < 1 {
		return 1
	}
	return days
}

// Distance returns the kilometers driven. Fractional readings yield a
// fractional distance; nothing is floored here.
func Distance(checkoutOdo, returnOdo decimal.Decimal) decimal.Decimal {
	return returnOdo.Sub(checkoutOdo)
}

// RoundFinal applies the single ceiling rounding step to a raw price. It is
// idempotent and must only ever be applied to the final price, never to an
// intermediate term.
func RoundFinal(raw decimal.Decimal) decimal.Decimal {
	return raw.Ceil()
}
