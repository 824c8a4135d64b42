package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParsePayloadDefaults(t *testing.T) {
	fixed := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	nowUTC = func() time.Time { return fixed }
	defer func() { nowUTC = func() time.Time { return time.Now().UTC() } }()

	rec, actions, err := ParsePayload([]byte(`{}`))
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, "SUPBoard", rec.Title)
	require.Equal(t, defaultIcon, rec.Icon)
	require.Equal(t, defaultBadge, rec.Badge)
	require.Equal(t, PriorityMedium, rec.Priority)
	require.Equal(t, fixed, rec.Timestamp)
	require.False(t, rec.Read)
	require.False(t, rec.RequireInteraction)
	require.Empty(t, actions)
}

func TestParsePayloadFullRecord(t *testing.T) {
	raw := []byte(`{
		"title": "Client arriving",
		"body": "Ivan, 14:00, 3 units",
		"tag": "custom-tag",
		"actions": [{"action": "confirm", "title": "Confirm"}],
		"data": {
			"type": "booking_reminder",
			"priority": "high",
			"booking_id": "b-1",
			"client_name": "Ivan",
			"phone": "+79990001122"
		}
	}`)

	rec, actions, err := ParsePayload(raw)
	require.NoError(t, err)
	require.Equal(t, "Client arriving", rec.Title)
	require.Equal(t, "custom-tag", rec.Tag)
	require.Equal(t, "booking_reminder", rec.Type)
	require.Equal(t, PriorityHigh, rec.Priority)
	require.Equal(t, "b-1", rec.BookingID)
	require.Equal(t, "Ivan", rec.ClientName)
	require.Equal(t, "+79990001122", rec.Phone)
	// High priority forces interaction even when the payload says nothing.
	require.True(t, rec.RequireInteraction)

	require.Len(t, actions, 1)
	require.Equal(t, "confirm", actions[0].Action)
}

func TestParsePayloadBookingTag(t *testing.T) {
	rec, _, err := ParsePayload([]byte(`{"data": {"booking_id": "b-42"}}`))
	require.NoError(t, err)
	require.Equal(t, "booking-b-42", rec.Tag)
}

func TestParsePayloadInvalidPriority(t *testing.T) {
	rec, _, err := ParsePayload([]byte(`{"data": {"priority": "critical"}}`))
	require.NoError(t, err)
	require.Equal(t, PriorityMedium, rec.Priority)
}

func TestParsePayloadMalformed(t *testing.T) {
	_, _, err := ParsePayload([]byte(`not json`))
	require.ErrorIs(t, err, ErrInvalidPayload)
}
