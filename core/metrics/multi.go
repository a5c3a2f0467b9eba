package metrics

import "errors"

// MultiSink fans events out to several sinks. Every sink sees every event;
// errors are joined so one failing sink cannot hide another.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines the given sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordCheckout(ev CheckoutEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordCheckout(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordReturn(ev ReturnEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordReturn(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordFormulaFailure(ev FormulaFailureEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordFormulaFailure(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
