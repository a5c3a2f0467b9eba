package rental

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetrent/rentd/core/model"
)

func TestMemoryStore_AddAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, model.Rental{BookingNumber: "BK1", RegistrationNumber: "V1"}))

	got, err := s.Get(ctx, "BK1")
	require.NoError(t, err)
	assert.Equal(t, "V1", got.RegistrationNumber)

	exists, err := s.Exists(ctx, "BK1")
	require.NoError(t, err)
	assert.True(t, exists)

	active, err := s.HasActive(ctx, "V1")
	require.NoError(t, err)
	assert.True(t, active)

	_, err = s.Get(ctx, "BK2")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestMemoryStore_AddRejectsDuplicateBooking(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, model.Rental{BookingNumber: "BK1", RegistrationNumber: "V1"}))
	err := s.Add(ctx, model.Rental{BookingNumber: "BK1", RegistrationNumber: "V2"})
	assert.ErrorIs(t, err, ErrBookingExists)
}

func TestMemoryStore_AddRejectsSecondActiveRental(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, model.Rental{BookingNumber: "BK1", RegistrationNumber: "V1"}))
	err := s.Add(ctx, model.Rental{BookingNumber: "BK2", RegistrationNumber: "V1"})
	assert.ErrorIs(t, err, ErrVehicleAlreadyRented)
}

func TestMemoryStore_UpdateReleasesVehicle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, model.Rental{BookingNumber: "BK1", RegistrationNumber: "V1"}))

	r, err := s.Get(ctx, "BK1")
	require.NoError(t, err)
	now := time.Now()
	r.ReturnTime = &now
	require.NoError(t, s.Update(ctx, r))

	active, err := s.HasActive(ctx, "V1")
	require.NoError(t, err)
	assert.False(t, active, "completed rental must free the vehicle")

	require.NoError(t, s.Add(ctx, model.Rental{BookingNumber: "BK2", RegistrationNumber: "V1"}))
}

func TestMemoryStore_UpdateUnknownBooking(t *testing.T) {
	s := NewMemoryStore()
	err := s.Update(context.Background(), model.Rental{BookingNumber: "BK9"})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestMemoryStore_ListAllOrdered(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Add(ctx, model.Rental{BookingNumber: "BK2", RegistrationNumber: "V2"}))
	require.NoError(t, s.Add(ctx, model.Rental{BookingNumber: "BK1", RegistrationNumber: "V1"}))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "BK1", all[0].BookingNumber)
}

func TestMemoryStore_ConcurrentCheckoutsOneWinner(t *testing.T) {
	// Many goroutines race to check out the same vehicle; the conditional
	// insert must let exactly one through.
	s := NewMemoryStore()
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	wins := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			booking := "BK" + string(rune('A'+i%26)) + string(rune('0'+i/26))
			if err := s.Add(ctx, model.Rental{BookingNumber: booking, RegistrationNumber: "V1"}); err == nil {
				wins <- booking
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1, "exactly one concurrent checkout may win")
}
