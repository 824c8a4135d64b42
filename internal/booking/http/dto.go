package http

import (
	"time"

	"github.com/Andrej19990506/supboard-booking-backend/internal/booking"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pkg/request"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pricing"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	ClientID string     `form:"client_id" binding:"omitempty,uuid"`
	Status   string     `form:"status" binding:"omitempty,oneof=booked pending confirmed in_use completed cancelled no_show rescheduled"`
	Date     string     `form:"date"`
	From     *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To       *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type BookingResponse struct {
	ID            string         `json:"id"`
	ClientID      string         `json:"client_id"`
	ClientName    string         `json:"client_name"`
	ClientPhone   string         `json:"client_phone"`
	StartTime     time.Time      `json:"start_time"`
	DurationHours float64        `json:"duration_hours"`
	ServiceType   string         `json:"service_type"`
	SelectedItems map[string]int `json:"selected_items"`
	Status        string         `json:"status"`
	ActualStart   *time.Time     `json:"actual_start,omitempty"`
	ActualReturn  *time.Time     `json:"actual_return,omitempty"`
	Comment       string         `json:"comment"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		ClientID:      b.ClientID,
		ClientName:    b.ClientName,
		ClientPhone:   b.ClientPhone,
		StartTime:     b.StartTime,
		DurationHours: b.DurationHours,
		ServiceType:   string(b.ServiceType),
		SelectedItems: b.SelectedItems,
		Status:        string(b.Status),
		ActualStart:   b.ActualStart,
		ActualReturn:  b.ActualReturn,
		Comment:       b.Comment,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// ResultResponse carries a booking together with the warnings and the
// quote computed for it.
type ResultResponse struct {
	Booking  *BookingResponse    `json:"booking,omitempty"`
	Warnings []string            `json:"warnings"`
	Quote    pricing.QuoteResult `json:"quote"`
	// Legacy dual counter: boards with seats count one unit, rafts two.
	SeatUnits int `json:"seat_units"`
}

func NewResultResponse(r *booking.Result) ResultResponse {
	resp := ResultResponse{
		Warnings:  r.Warnings,
		Quote:     r.Quote,
		SeatUnits: r.SeatUnits,
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	if r.Booking != nil {
		b := NewBookingResponse(r.Booking)
		resp.Booking = &b
	}
	return resp
}

// CreateBookingBody accepts both the generalized selected_items map and the
// historical per-category count fields. The legacy keys keep their original
// camelCase names for old clients.
type CreateBookingBody struct {
	ClientName      string         `json:"client_name" binding:"required"`
	ClientPhone     string         `json:"client_phone" binding:"required"`
	StartTime       time.Time      `json:"start_time" binding:"required"`
	DurationHours   float64        `json:"duration_hours"`
	ServiceType     string         `json:"service_type" binding:"required,oneof=rent rafting"`
	SelectedItems   map[string]int `json:"selected_items"`
	BoardCount      int            `json:"boardCount"`
	BoardWithSeat   int            `json:"boardWithSeatCount"`
	RaftCount       int            `json:"raftCount"`
	DiscountPercent float64        `json:"discount_percent"`
	Comment         string         `json:"comment"`
}

func (b *CreateBookingBody) toRequest() booking.CreateRequest {
	return booking.CreateRequest{
		ClientName:    b.ClientName,
		ClientPhone:   b.ClientPhone,
		StartTime:     b.StartTime,
		DurationHours: b.DurationHours,
		ServiceType:   pricing.ServiceType(b.ServiceType),
		SelectedItems: b.SelectedItems,
		Legacy: booking.LegacyCounts{
			BoardCount:         b.BoardCount,
			BoardWithSeatCount: b.BoardWithSeat,
			RaftCount:          b.RaftCount,
		},
		DiscountPercent: b.DiscountPercent,
		Comment:         b.Comment,
	}
}

type UpdateBookingBody struct {
	StartTime     *time.Time     `json:"start_time"`
	DurationHours *float64       `json:"duration_hours"`
	ServiceType   *string        `json:"service_type" binding:"omitempty,oneof=rent rafting"`
	SelectedItems map[string]int `json:"selected_items"`
	BoardCount    *int           `json:"boardCount"`
	BoardWithSeat *int           `json:"boardWithSeatCount"`
	RaftCount     *int           `json:"raftCount"`
	Comment       *string        `json:"comment"`
}

func (b *UpdateBookingBody) toRequest() booking.UpdateRequest {
	req := booking.UpdateRequest{
		StartTime:     b.StartTime,
		DurationHours: b.DurationHours,
		SelectedItems: b.SelectedItems,
		Comment:       b.Comment,
	}
	if b.ServiceType != nil {
		st := pricing.ServiceType(*b.ServiceType)
		req.ServiceType = &st
	}
	if b.BoardCount != nil || b.BoardWithSeat != nil || b.RaftCount != nil {
		legacy := booking.LegacyCounts{}
		if b.BoardCount != nil {
			legacy.BoardCount = *b.BoardCount
		}
		if b.BoardWithSeat != nil {
			legacy.BoardWithSeatCount = *b.BoardWithSeat
		}
		if b.RaftCount != nil {
			legacy.RaftCount = *b.RaftCount
		}
		req.Legacy = &legacy
	}
	return req
}

type RescheduleBody struct {
	StartTime     time.Time `json:"start_time" binding:"required"`
	DurationHours float64   `json:"duration_hours" binding:"required,gt=0"`
}

// QuoteBody is the booking form state for a dry-run price check. The
// client may not exist yet, so only the window and the service are
// mandatory.
type QuoteBody struct {
	ClientPhone     string         `json:"client_phone"`
	StartTime       time.Time      `json:"start_time" binding:"required"`
	DurationHours   float64        `json:"duration_hours"`
	ServiceType     string         `json:"service_type" binding:"required,oneof=rent rafting"`
	SelectedItems   map[string]int `json:"selected_items"`
	BoardCount      int            `json:"boardCount"`
	BoardWithSeat   int            `json:"boardWithSeatCount"`
	RaftCount       int            `json:"raftCount"`
	DiscountPercent float64        `json:"discount_percent"`
	ExcludeID       string         `json:"exclude_id" binding:"omitempty,uuid"`
}

func (b *QuoteBody) toRequest() booking.CreateRequest {
	return booking.CreateRequest{
		ClientPhone:   b.ClientPhone,
		StartTime:     b.StartTime,
		DurationHours: b.DurationHours,
		ServiceType:   pricing.ServiceType(b.ServiceType),
		SelectedItems: b.SelectedItems,
		Legacy: booking.LegacyCounts{
			BoardCount:         b.BoardCount,
			BoardWithSeatCount: b.BoardWithSeat,
			RaftCount:          b.RaftCount,
		},
		DiscountPercent: b.DiscountPercent,
	}
}

type FullyBookedResponse struct {
	Days []string `json:"days"`
}
