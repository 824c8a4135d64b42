package http

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Andrej19990506/supboard-booking-backend/internal/booking"
)

func TestNewResultResponseCarriesSeatUnits(t *testing.T) {
	r := &booking.Result{
		Booking:   &booking.Booking{ID: "b-1", Status: booking.StatusBooked},
		Warnings:  []string{"not enough rafts"},
		SeatUnits: 5,
	}

	resp := NewResultResponse(r)
	require.Equal(t, 5, resp.SeatUnits)
	require.NotNil(t, resp.Booking)
	require.Equal(t, "b-1", resp.Booking.ID)
	require.Equal(t, []string{"not enough rafts"}, resp.Warnings)
}

func TestNewResultResponseNormalizesNilWarnings(t *testing.T) {
	resp := NewResultResponse(&booking.Result{})
	require.NotNil(t, resp.Warnings)
	require.Empty(t, resp.Warnings)
	require.Nil(t, resp.Booking)
	require.Zero(t, resp.SeatUnits)
}
