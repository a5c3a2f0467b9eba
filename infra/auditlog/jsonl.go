// Package auditlog keeps an append-only JSONL trail of rental lifecycle
// events. The trail is operator tooling: losing it never affects rental
// state, and reading it back is only needed for audits.
package auditlog

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/fleetrent/rentd/core/model"
)

// Query filters records on read-back. Zero fields match everything.
type Query struct {
	Start         time.Time
	End           time.Time
	BookingNumber string
	Kind          model.RentalEventKind
}

// JSONLStore appends one JSON document per line to a file.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONLStore creates the file when missing and returns the store.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

// Append writes one event to the trail.
func (s *JSONLStore) Append(_ context.Context, ev model.RentalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(ev)
}

// Query scans the trail and returns matching records. Unparseable lines are
// skipped rather than failing the whole read.
func (s *JSONLStore) Query(_ context.Context, q Query) ([]model.RentalEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var res []model.RentalEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev model.RentalEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		if !q.Start.IsZero() && ev.Time.Before(q.Start) {
			continue
		}
		if !q.End.IsZero() && ev.Time.After(q.End) {
			continue
		}
		if q.BookingNumber != "" && ev.BookingNumber != q.BookingNumber {
			continue
		}
		if q.Kind != "" && ev.Kind != q.Kind {
			continue
		}
		res = append(res, ev)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return res, nil
}

// Run consumes events from the channel until the context is canceled or the
// channel closes, appending each to the trail.
func (s *JSONLStore) Run(ctx context.Context, events <-chan model.RentalEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = s.Append(ctx, ev)
		}
	}
}
