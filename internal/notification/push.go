package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Defaults applied to incomplete push payloads.
const (
	defaultTitle = "SUPBoard"
	defaultIcon  = "/icons/logo-192.png"
	defaultBadge = "/icons/badge-72.png"
)

// PushPayload is the wire shape of an incoming push message.
type PushPayload struct {
	Title              string   `json:"title"`
	Body               string   `json:"body"`
	Icon               string   `json:"icon"`
	Badge              string   `json:"badge"`
	Tag                string   `json:"tag"`
	RequireInteraction bool     `json:"require_interaction"`
	Actions            []Action `json:"actions"`
	Data               PushData `json:"data"`
}

type PushData struct {
	Type       string   `json:"type"`
	Priority   Priority `json:"priority"`
	BookingID  string   `json:"booking_id"`
	ClientName string   `json:"client_name"`
	Phone      string   `json:"phone"`
}

// nowUTC is separated for tests.
var nowUTC = func() time.Time { return time.Now().UTC() }

// ParsePayload decodes a push payload into a stored record, filling
// defaults for missing fields. High and urgent priorities always require
// interaction regardless of what the payload says.
func ParsePayload(raw []byte) (Record, []Action, error) {
	var payload PushPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return Record{}, nil, ErrInvalidPayload
	}

	rec := Record{
		ID:                 uuid.NewString(),
		Title:              payload.Title,
		Body:               payload.Body,
		Icon:               payload.Icon,
		Badge:              payload.Badge,
		Tag:                payload.Tag,
		Type:               payload.Data.Type,
		Priority:           payload.Data.Priority,
		BookingID:          payload.Data.BookingID,
		ClientName:         payload.Data.ClientName,
		Phone:              payload.Data.Phone,
		RequireInteraction: payload.RequireInteraction,
		Timestamp:          nowUTC(),
	}

	if rec.Title == "" {
		rec.Title = defaultTitle
	}
	if rec.Icon == "" {
		rec.Icon = defaultIcon
	}
	if rec.Badge == "" {
		rec.Badge = defaultBadge
	}
	if !rec.Priority.Valid() {
		rec.Priority = PriorityMedium
	}
	if rec.Priority == PriorityHigh || rec.Priority == PriorityUrgent {
		rec.RequireInteraction = true
	}
	if rec.Tag == "" && rec.BookingID != "" {
		rec.Tag = "booking-" + rec.BookingID
	}

	return rec, payload.Actions, nil
}
