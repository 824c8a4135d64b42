package booking

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Andrej19990506/supboard-booking-backend/internal/availability"
	"github.com/Andrej19990506/supboard-booking-backend/internal/client"
	"github.com/Andrej19990506/supboard-booking-backend/internal/inventorytype"
	"github.com/Andrej19990506/supboard-booking-backend/internal/pricing"
)

// Working hours used by the fully-booked-day calendar query.
const (
	workingDayStartHour = 9
	workingDayEndHour   = 21
)

// Notifier receives booking lifecycle events for the push pipeline.
// Implementations must be best-effort; a failed notification never fails
// the booking operation.
type Notifier interface {
	BookingEvent(ctx context.Context, b *Booking, event string)
}

// Lifecycle events emitted to the Notifier.
const (
	EventCreated     = "created"
	EventUpdated     = "updated"
	EventConfirmed   = "confirmed"
	EventIssued      = "issued"
	EventCompleted   = "completed"
	EventCancelled   = "cancelled"
	EventNoShow      = "no_show"
	EventRescheduled = "rescheduled"
	EventRestored    = "restored"
)

type CreateRequest struct {
	ClientName      string
	ClientPhone     string
	StartTime       time.Time
	DurationHours   float64
	ServiceType     pricing.ServiceType
	SelectedItems   map[string]int
	Legacy          LegacyCounts
	DiscountPercent float64
	Comment         string
}

type UpdateRequest struct {
	StartTime     *time.Time
	DurationHours *float64
	ServiceType   *pricing.ServiceType
	SelectedItems map[string]int
	Legacy        *LegacyCounts
	Comment       *string
}

// Result pairs a booking with the availability warnings and the price
// computed for it. Warnings do not block the operation: staff may knowingly
// overbook and resolve the shortage by phone.
type Result struct {
	Booking  *Booking
	Warnings []string
	Quote    pricing.QuoteResult

	// SeatUnits is the legacy seat-unit reading of the selection for old
	// clients that still render the boards/seats dual counters.
	SeatUnits int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Result, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Result, error)
	Delete(ctx context.Context, id string) error

	// Availability computes free stock and warnings for a prospective
	// window without touching any booking.
	Availability(ctx context.Context, start time.Time, hours float64, selected map[string]int, excludeID string) (*availability.Info, []string, error)

	// Preview runs the availability check and the quote for the booking
	// form without persisting anything. excludeID carries the booking
	// being edited, if any.
	Preview(ctx context.Context, req CreateRequest, excludeID string) (*Result, error)

	Confirm(ctx context.Context, id string) (*Booking, error)
	Issue(ctx context.Context, id string) (*Booking, error)
	Complete(ctx context.Context, id string) (*Booking, error)
	Cancel(ctx context.Context, id string) (*Booking, error)
	NoShow(ctx context.Context, id string) (*Booking, error)
	Restore(ctx context.Context, id string) (*Booking, error)
	Reschedule(ctx context.Context, id string, newStart time.Time, newHours float64) (*Result, error)

	// FullyBookedDays returns the days in [from, to] with no free stock at
	// any point of the working day.
	FullyBookedDays(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

type service struct {
	repo      Repository
	clients   client.Service
	inventory inventorytype.Service
	pricing   *pricing.Service
	notifier  Notifier
	log       zerolog.Logger
}

func NewService(
	repo Repository,
	clients client.Service,
	inventory inventorytype.Service,
	pricingService *pricing.Service,
	notifier Notifier,
	log zerolog.Logger,
) Service {
	return &service{
		repo:      repo,
		clients:   clients,
		inventory: inventory,
		pricing:   pricingService,
		notifier:  notifier,
		log:       log,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Result, error) {
	if req.StartTime.IsZero() {
		return nil, ErrStartRequired
	}
	if req.ServiceType != pricing.ServiceRent && req.ServiceType != pricing.ServiceRafting {
		return nil, ErrInvalidService
	}
	hours := req.DurationHours
	if req.ServiceType == pricing.ServiceRafting {
		hours = pricing.RaftingHours
	}
	if hours <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.ClientName == "" || req.ClientPhone == "" {
		return nil, ErrClientRequired
	}

	selected, err := s.resolveSelection(ctx, req.SelectedItems, req.Legacy)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}

	cl, err := s.clients.FindOrCreate(ctx, req.ClientName, req.ClientPhone)
	if err != nil {
		return nil, err
	}

	_, warnings, err := s.Availability(ctx, req.StartTime, hours, selected, "")
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ClientID:      cl.ID,
		ClientName:    cl.Name,
		ClientPhone:   cl.Phone,
		StartTime:     req.StartTime,
		DurationHours: hours,
		ServiceType:   req.ServiceType,
		SelectedItems: selected,
		Status:        StatusBooked,
		Comment:       req.Comment,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	quote, err := s.pricing.Quote(ctx, pricing.QuoteInput{
		Service:       req.ServiceType,
		Hours:         hours,
		Selected:      selected,
		CustomPercent: req.DiscountPercent,
		IsVIP:         cl.IsVIP,
	})
	if err != nil {
		// The booking is saved; a broken pricing config should not undo it.
		s.log.Warn().Err(err).Str("booking_id", b.ID).Msg("quote after create failed")
	}

	s.notifier.BookingEvent(ctx, b, EventCreated)

	return &Result{Booking: b, Warnings: warnings, Quote: quote, SeatUnits: s.seatUnits(ctx, selected)}, nil
}

func (s *service) Preview(ctx context.Context, req CreateRequest, excludeID string) (*Result, error) {
	if req.StartTime.IsZero() {
		return nil, ErrStartRequired
	}
	if req.ServiceType != pricing.ServiceRent && req.ServiceType != pricing.ServiceRafting {
		return nil, ErrInvalidService
	}
	hours := req.DurationHours
	if req.ServiceType == pricing.ServiceRafting {
		hours = pricing.RaftingHours
	}
	if hours <= 0 {
		return nil, ErrInvalidDuration
	}

	selected, err := s.resolveSelection(ctx, req.SelectedItems, req.Legacy)
	if err != nil {
		return nil, err
	}

	_, warnings, err := s.Availability(ctx, req.StartTime, hours, selected, excludeID)
	if err != nil {
		return nil, err
	}

	isVIP := false
	if req.ClientPhone != "" {
		if cl, err := s.clients.GetByPhone(ctx, req.ClientPhone); err == nil {
			isVIP = cl.IsVIP
		}
	}

	quote, err := s.pricing.Quote(ctx, pricing.QuoteInput{
		Service:       req.ServiceType,
		Hours:         hours,
		Selected:      selected,
		CustomPercent: req.DiscountPercent,
		IsVIP:         isVIP,
	})
	if err != nil {
		return nil, err
	}

	return &Result{Warnings: warnings, Quote: quote, SeatUnits: s.seatUnits(ctx, selected)}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	if filter.Status != "" && !Status(filter.Status).Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Result, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.StartTime != nil {
		if req.StartTime.IsZero() {
			return nil, ErrStartRequired
		}
		b.StartTime = *req.StartTime
	}
	if req.DurationHours != nil {
		if *req.DurationHours <= 0 {
			return nil, ErrInvalidDuration
		}
		b.DurationHours = *req.DurationHours
	}
	if req.ServiceType != nil {
		if *req.ServiceType != pricing.ServiceRent && *req.ServiceType != pricing.ServiceRafting {
			return nil, ErrInvalidService
		}
		b.ServiceType = *req.ServiceType
		if b.ServiceType == pricing.ServiceRafting {
			b.DurationHours = pricing.RaftingHours
		}
	}
	if req.SelectedItems != nil || req.Legacy != nil {
		legacy := LegacyCounts{}
		if req.Legacy != nil {
			legacy = *req.Legacy
		}
		items := req.SelectedItems
		if items == nil {
			items = b.SelectedItems
		}
		selected, err := s.resolveSelection(ctx, items, legacy)
		if err != nil {
			return nil, err
		}
		if len(selected) == 0 {
			return nil, ErrNothingSelected
		}
		b.SelectedItems = selected
	}
	if req.Comment != nil {
		b.Comment = *req.Comment
	}

	// Re-check availability excluding the booking itself.
	_, warnings, err := s.Availability(ctx, b.StartTime, b.DurationHours, b.SelectedItems, b.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	quote, err := s.quoteFor(ctx, b)
	if err != nil {
		s.log.Warn().Err(err).Str("booking_id", b.ID).Msg("quote after update failed")
	}

	s.notifier.BookingEvent(ctx, b, EventUpdated)

	return &Result{Booking: b, Warnings: warnings, Quote: quote, SeatUnits: s.seatUnits(ctx, b.SelectedItems)}, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) Confirm(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusConfirmed, EventConfirmed, nil)
}

func (s *service) Issue(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusInUse, EventIssued, func(b *Booking) {
		now := time.Now().UTC()
		b.ActualStart = &now
	})
}

func (s *service) Complete(ctx context.Context, id string) (*Booking, error) {
	b, err := s.transition(ctx, id, StatusCompleted, EventCompleted, func(b *Booking) {
		now := time.Now().UTC()
		b.ActualReturn = &now
	})
	if err != nil {
		return nil, err
	}

	// Repeat-client signal. Best effort: the completed booking stands even
	// if the counter bump fails.
	if b.ClientID != "" {
		if err := s.clients.RecordVisit(ctx, b.ClientID); err != nil {
			s.log.Warn().Err(err).Str("client_id", b.ClientID).Msg("record visit failed")
		}
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusCancelled, EventCancelled, nil)
}

func (s *service) NoShow(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusNoShow, EventNoShow, nil)
}

func (s *service) Restore(ctx context.Context, id string) (*Booking, error) {
	return s.transition(ctx, id, StatusBooked, EventRestored, nil)
}

func (s *service) Reschedule(ctx context.Context, id string, newStart time.Time, newHours float64) (*Result, error) {
	if newStart.IsZero() {
		return nil, ErrStartRequired
	}
	if newHours <= 0 {
		return nil, ErrInvalidDuration
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(StatusRescheduled) {
		return nil, ErrInvalidTransition
	}

	b.StartTime = newStart
	b.DurationHours = newHours
	b.Status = StatusRescheduled

	_, warnings, err := s.Availability(ctx, b.StartTime, b.DurationHours, b.SelectedItems, b.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	quote, err := s.quoteFor(ctx, b)
	if err != nil {
		s.log.Warn().Err(err).Str("booking_id", b.ID).Msg("quote after reschedule failed")
	}

	s.notifier.BookingEvent(ctx, b, EventRescheduled)

	return &Result{Booking: b, Warnings: warnings, Quote: quote, SeatUnits: s.seatUnits(ctx, b.SelectedItems)}, nil
}

func (s *service) Availability(ctx context.Context, start time.Time, hours float64, selected map[string]int, excludeID string) (*availability.Info, []string, error) {
	stock, err := s.inventory.StockMap(ctx)
	if err != nil {
		return nil, nil, err
	}

	end := start.Add(time.Duration(hours * float64(time.Hour)))
	overlapping, err := s.repo.ListOverlapping(ctx, start, end, excludeID)
	if err != nil {
		return nil, nil, err
	}

	info, err := availability.Compute(availability.Request{
		Start:     start,
		Duration:  time.Duration(hours * float64(time.Hour)),
		ExcludeID: excludeID,
	}, toReservations(overlapping), stock)
	if err != nil {
		return nil, nil, err
	}

	names, err := s.displayNames(ctx)
	if err != nil {
		return nil, nil, err
	}

	return info, availability.Warnings(info, selected, names), nil
}

func (s *service) FullyBookedDays(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	stock, err := s.inventory.StockMap(ctx)
	if err != nil {
		return nil, err
	}
	totalStock := 0
	for _, n := range stock {
		totalStock += n
	}
	if totalStock == 0 {
		return nil, nil
	}

	rangeStart := startOfDay(from)
	rangeEnd := startOfDay(to).Add(24 * time.Hour)
	overlapping, err := s.repo.ListOverlapping(ctx, rangeStart, rangeEnd, "")
	if err != nil {
		return nil, err
	}
	reservations := toReservations(overlapping)

	var full []time.Time
	for day := rangeStart; day.Before(rangeEnd); day = day.Add(24 * time.Hour) {
		booked := true
		for hour := workingDayStartHour; hour < workingDayEndHour; hour++ {
			slot := day.Add(time.Duration(hour) * time.Hour)
			info, err := availability.Compute(availability.Request{
				Start:    slot,
				Duration: time.Hour,
			}, reservations, stock)
			if err != nil {
				return nil, err
			}
			free := 0
			for _, n := range info.Free {
				if n > 0 {
					free += n
				}
			}
			if free > 0 {
				booked = false
				break
			}
		}
		if booked {
			full = append(full, day)
		}
	}
	return full, nil
}

// transition loads, validates against the transition table, applies the
// mutation and saves.
func (s *service) transition(ctx context.Context, id string, to Status, event string, mutate func(*Booking)) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(to) {
		return nil, ErrInvalidTransition
	}

	b.Status = to
	if mutate != nil {
		mutate(b)
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.BookingEvent(ctx, b, event)
	return b, nil
}

func (s *service) quoteFor(ctx context.Context, b *Booking) (pricing.QuoteResult, error) {
	isVIP := false
	if b.ClientID != "" {
		if cl, err := s.clients.GetByID(ctx, b.ClientID); err == nil {
			isVIP = cl.IsVIP
		}
	}
	return s.pricing.Quote(ctx, pricing.QuoteInput{
		Service:  b.ServiceType,
		Hours:    b.DurationHours,
		Selected: b.SelectedItems,
		IsVIP:    isVIP,
	})
}

// resolveSelection merges legacy per-category counts into the generalized
// map, resolving the well-known category names to current type ids.
func (s *service) resolveSelection(ctx context.Context, selected map[string]int, legacy LegacyCounts) (map[string]int, error) {
	if legacy.Empty() {
		merged := make(map[string]int, len(selected))
		for typeID, qty := range selected {
			if qty > 0 {
				merged[typeID] = qty
			}
		}
		return merged, nil
	}

	ids, err := s.legacyTypeIDs(ctx)
	if err != nil {
		return nil, err
	}
	return MergeLegacyCounts(selected, legacy, ids), nil
}

// seatUnits reports the legacy seat-unit total for a selection. Resolution
// failures degrade to zero; old clients just lose the secondary counter.
func (s *service) seatUnits(ctx context.Context, selected map[string]int) int {
	ids, err := s.legacyTypeIDs(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("legacy type id lookup failed")
		return 0
	}
	return SeatUnits(selected, ids)
}

func (s *service) legacyTypeIDs(ctx context.Context) (LegacyTypeIDs, error) {
	types, _, err := s.inventory.List(ctx, inventorytype.Filter{PageSize: 500})
	if err != nil {
		return LegacyTypeIDs{}, err
	}

	var ids LegacyTypeIDs
	for _, it := range types {
		switch it.Name {
		case inventorytype.NameBoard:
			ids.Board = it.ID
		case inventorytype.NameBoardWithSeat:
			ids.BoardWithSeat = it.ID
		case inventorytype.NameRaft:
			ids.Raft = it.ID
		}
	}
	return ids, nil
}

func (s *service) displayNames(ctx context.Context) (map[string]string, error) {
	types, _, err := s.inventory.List(ctx, inventorytype.Filter{PageSize: 500})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(types))
	for _, it := range types {
		names[it.ID] = it.DisplayName
	}
	return names, nil
}

func toReservations(bookings []*Booking) []availability.Reservation {
	reservations := make([]availability.Reservation, 0, len(bookings))
	for _, b := range bookings {
		reservations = append(reservations, availability.Reservation{
			ID:    b.ID,
			Start: b.StartTime,
			End:   b.EndTime(),
			Units: b.SelectedItems,
		})
	}
	return reservations
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
