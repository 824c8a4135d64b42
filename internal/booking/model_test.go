package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Andrej19990506/supboard-booking-backend/internal/booking"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{booking.StatusBooked, booking.StatusConfirmed, true},
		{booking.StatusBooked, booking.StatusInUse, true},
		{booking.StatusBooked, booking.StatusCancelled, true},
		{booking.StatusBooked, booking.StatusNoShow, true},
		{booking.StatusBooked, booking.StatusCompleted, false},
		{booking.StatusConfirmed, booking.StatusInUse, true},
		{booking.StatusConfirmed, booking.StatusBooked, false},
		{booking.StatusInUse, booking.StatusCompleted, true},
		{booking.StatusInUse, booking.StatusCancelled, false},
		{booking.StatusCompleted, booking.StatusBooked, false},
		{booking.StatusCompleted, booking.StatusCancelled, false},
		{booking.StatusCancelled, booking.StatusBooked, true},
		{booking.StatusCancelled, booking.StatusConfirmed, false},
		{booking.StatusNoShow, booking.StatusBooked, true},
		{booking.StatusRescheduled, booking.StatusConfirmed, true},
		{booking.StatusRescheduled, booking.StatusCompleted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			require.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []booking.Status{
		booking.StatusBooked, booking.StatusPending, booking.StatusConfirmed,
		booking.StatusInUse, booking.StatusCompleted, booking.StatusCancelled,
		booking.StatusNoShow, booking.StatusRescheduled,
	} {
		require.True(t, s.Valid(), string(s))
	}
	require.False(t, booking.Status("archived").Valid())
}

func TestBookingEndTime(t *testing.T) {
	start := time.Date(2025, 7, 10, 14, 0, 0, 0, time.UTC)
	b := booking.Booking{StartTime: start, DurationHours: 2.5}
	require.Equal(t, start.Add(2*time.Hour+30*time.Minute), b.EndTime())
}

func TestBookingTotalUnits(t *testing.T) {
	b := booking.Booking{SelectedItems: map[string]int{"a": 2, "b": 3, "c": -1}}
	require.Equal(t, 5, b.TotalUnits())
}
