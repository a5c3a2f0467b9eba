// Package revenue computes fleet KPIs over the rental store. The numbers are
// operator reporting only; nothing in the rental workflows depends on them.
package revenue

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/fleetrent/rentd/core/pricing"
	"github.com/fleetrent/rentd/core/rental"
)

// Report summarizes completed rentals.
type Report struct {
	Completed int
	Active    int

	TotalRevenue float64
	MeanPrice    float64
	StdDevPrice  float64
	MeanDays     float64
	MeanKm       float64
}

// Build scans the store and aggregates completed rentals. Prices are exact
// decimals in the store; the float conversion here only feeds the summary
// statistics.
func Build(ctx context.Context, store rental.Store) (Report, error) {
	rentals, err := store.ListAll(ctx)
	if err != nil {
		return Report{}, err
	}

	var rep Report
	var prices, days, kms []float64
	for _, r := range rentals {
		if r.IsActive() {
			rep.Active++
			continue
		}
		rep.Completed++
		prices = append(prices, r.RentalPrice.InexactFloat64())
		days = append(days, float64(pricing.RentalDays(r.CheckoutTime, *r.ReturnTime)))
		kms = append(kms, pricing.Distance(r.CheckoutOdometer, *r.ReturnOdometer).InexactFloat64())
	}
	if rep.Completed == 0 {
		return rep, nil
	}

	for _, p := range prices {
		rep.TotalRevenue += p
	}
	rep.MeanPrice = stat.Mean(prices, nil)
	rep.MeanDays = stat.Mean(days, nil)
	rep.MeanKm = stat.Mean(kms, nil)
	if sd := stat.StdDev(prices, nil); !math.IsNaN(sd) {
		rep.StdDevPrice = sd
	}
	return rep, nil
}
