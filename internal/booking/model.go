package booking

import (
	"net/http"
	"time"

	"github.com/Andrej19990506/supboard-booking-backend/internal/pkg/apperror"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pricing"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrStartRequired     = apperror.New(http.StatusBadRequest, "start time is required")
	ErrInvalidDuration   = apperror.New(http.StatusBadRequest, "duration must be a positive number of hours")
	ErrInvalidService    = apperror.New(http.StatusBadRequest, "unknown service type")
	ErrNothingSelected   = apperror.New(http.StatusBadRequest, "at least one inventory unit must be selected")
	ErrInvalidStatus     = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrInvalidTransition = apperror.New(http.StatusConflict, "status transition not allowed")
	ErrClientRequired    = apperror.New(http.StatusBadRequest, "client name and phone are required")
)

type Status string

const (
	StatusBooked      Status = "booked"
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusInUse       Status = "in_use"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusPending, StatusConfirmed, StatusInUse,
		StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// transitions lists the statuses reachable from each status. Completed is
// terminal; cancelled and no_show can only be restored back to booked.
var transitions = map[Status][]Status{
	StatusBooked:      {StatusPending, StatusConfirmed, StatusInUse, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusPending:     {StatusBooked, StatusConfirmed, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusConfirmed:   {StatusInUse, StatusCancelled, StatusNoShow, StatusRescheduled},
	StatusRescheduled: {StatusConfirmed, StatusInUse, StatusCancelled, StatusNoShow},
	StatusInUse:       {StatusCompleted},
	StatusCancelled:   {StatusBooked},
	StatusNoShow:      {StatusBooked},
	StatusCompleted:   {},
}

// CanTransitionTo reports whether the status change is allowed.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID            string
	ClientID      string
	ClientName    string
	ClientPhone   string
	StartTime     time.Time
	DurationHours float64
	ServiceType   pricing.ServiceType
	// SelectedItems maps inventory type id to the reserved quantity.
	SelectedItems map[string]int
	Status        Status
	ActualStart   *time.Time
	ActualReturn  *time.Time
	Comment       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EndTime is the planned return moment. Intervals are half-open, so a
// booking ending exactly when another starts does not overlap it.
func (b *Booking) EndTime() time.Time {
	return b.StartTime.Add(time.Duration(b.DurationHours * float64(time.Hour)))
}

func (b *Booking) TotalUnits() int {
	total := 0
	for _, qty := range b.SelectedItems {
		if qty > 0 {
			total += qty
		}
	}
	return total
}

type Filter struct {
	ClientID string
	Status   string
	// Day restricts the list to bookings overlapping the given calendar day.
	Day      *time.Time
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
