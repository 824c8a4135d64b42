package http

import (
	"github.com/Andrej19990506/supboard-booking-backend/internal/notification"
)

type ListResponse struct {
	Notifications []notification.Record `json:"notifications"`
	Total         int                   `json:"total"`
}

type SyncBody struct {
	// IDs is the authoritative notification id list; everything else is
	// pruned from the server-side history.
	IDs []string `json:"ids" binding:"required"`
}

type SyncResponse struct {
	Removed int `json:"removed"`
}

type ActionBody struct {
	Action    string `json:"action" binding:"required"`
	BookingID string `json:"booking_id"`
	Phone     string `json:"phone"`
}

type ActionResponse struct {
	URL     string `json:"url"`
	Applied string `json:"applied,omitempty"`
	Error   string `json:"error,omitempty"`
}
