package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/fleetrent/rentd/core/metrics"
)

// PromSink records rental lifecycle events in Prometheus metrics.
type PromSink struct {
	checkouts       *prometheus.CounterVec
	returns         *prometheus.CounterVec
	formulaFailures *prometheus.CounterVec
	durationDays    *prometheus.HistogramVec
	price           *prometheus.HistogramVec
}

// NewPromSink registers the rental metrics on the provided registerer. If reg
// is nil the default registerer is used; already registered collectors are
// reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_checkouts_total",
		Help: "Total number of vehicle checkouts",
	}, []string{"vehicle_type", "location"})
	returns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_returns_total",
		Help: "Total number of vehicle returns",
	}, []string{"vehicle_type", "location"})
	formulaFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_formula_failures_total",
		Help: "Pricing formula evaluation failures at return time",
	}, []string{"vehicle_type"})
	durationDays := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rental_duration_days",
		Help:    "Billable rental duration in days",
		Buckets: []float64{1, 2, 3, 5, 7, 14, 30, 60},
	}, []string{"vehicle_type"})
	price := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rental_price",
		Help:    "Final rental price",
		Buckets: prometheus.ExponentialBuckets(50, 2, 10),
	}, []string{"vehicle_type"})

	if err := reg.Register(checkouts); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			checkouts = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(returns); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			returns = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(formulaFailures); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			formulaFailures = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(durationDays); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			durationDays = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(price); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			price = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		checkouts:       checkouts,
		returns:         returns,
		formulaFailures: formulaFailures,
		durationDays:    durationDays,
		price:           price,
	}, nil
}

// RecordCheckout implements the core sink.
func (s *PromSink) RecordCheckout(ev coremetrics.CheckoutEvent) error {
	s.checkouts.WithLabelValues(ev.VehicleTypeID, ev.Location).Inc()
	return nil
}

// RecordReturn implements the core sink.
func (s *PromSink) RecordReturn(ev coremetrics.ReturnEvent) error {
	s.returns.WithLabelValues(ev.VehicleTypeID, ev.Location).Inc()
	s.durationDays.WithLabelValues(ev.VehicleTypeID).Observe(float64(ev.Days))
	s.price.WithLabelValues(ev.VehicleTypeID).Observe(ev.RentalPrice.InexactFloat64())
	return nil
}

// RecordFormulaFailure implements the core sink.
func (s *PromSink) RecordFormulaFailure(ev coremetrics.FormulaFailureEvent) error {
	s.formulaFailures.WithLabelValues(ev.VehicleTypeID).Inc()
	return nil
}
