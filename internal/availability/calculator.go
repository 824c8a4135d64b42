package availability

import (
	"errors"
	"sort"
	"time"
)

var (
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrZeroStart       = errors.New("start time is required")
)

// Reservation describes an existing booking's claim on inventory.
// Units maps inventory type id to the quantity the booking holds.
type Reservation struct {
	ID    string
	Start time.Time
	End   time.Time
	Units map[string]int
}

// Request describes the probe window for an availability check.
// ExcludeID skips one reservation, used when editing a booking against itself.
type Request struct {
	Start     time.Time
	Duration  time.Duration
	ExcludeID string
}

// Info is the computed availability for a probe window.
type Info struct {
	// Free is stock minus peak concurrent usage per inventory type.
	// Values can be negative when a type is overbooked.
	Free map[string]int
	// PeakUsage is the maximum concurrent usage per type anywhere in the window.
	PeakUsage map[string]int
	// WorstAt is the instant of maximum total concurrent usage within the
	// window. Equals the window start when nothing overlaps.
	WorstAt time.Time
}

// Compute determines how many units of each inventory type remain free for the
// whole requested window. A reservation counts whenever its interval
// intersects the window, including reservations that start before and end
// after it. Intervals are half-open: a reservation ending exactly at the
// window start does not overlap.
//
// The window availability is stock minus the maximum concurrent usage at any
// instant inside the window, not the usage at the window start. Maxima can
// only appear where some overlapping reservation begins, so usage is sampled
// at the window start and at every overlapping reservation start inside the
// window.
func Compute(req Request, existing []Reservation, stock map[string]int) (*Info, error) {
	if req.Start.IsZero() {
		return nil, ErrZeroStart
	}
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	windowEnd := req.Start.Add(req.Duration)

	overlapping := make([]Reservation, 0, len(existing))
	for _, r := range existing {
		if r.ID != "" && r.ID == req.ExcludeID {
			continue
		}
		if r.Start.Before(windowEnd) && r.End.After(req.Start) {
			overlapping = append(overlapping, r)
		}
	}

	info := &Info{
		Free:      make(map[string]int, len(stock)),
		PeakUsage: make(map[string]int, len(stock)),
		WorstAt:   req.Start,
	}

	boundaries := []time.Time{req.Start}
	for _, r := range overlapping {
		if r.Start.After(req.Start) && r.Start.Before(windowEnd) {
			boundaries = append(boundaries, r.Start)
		}
	}
	sort.Slice(boundaries, func(i, j int) bool { return boundaries[i].Before(boundaries[j]) })

	worstTotal := -1
	for _, at := range boundaries {
		usage := make(map[string]int)
		total := 0
		for _, r := range overlapping {
			if !r.Start.After(at) && r.End.After(at) {
				for typeID, qty := range r.Units {
					usage[typeID] += qty
					total += qty
				}
			}
		}

		for typeID, qty := range usage {
			if qty > info.PeakUsage[typeID] {
				info.PeakUsage[typeID] = qty
			}
		}
		if total > worstTotal {
			worstTotal = total
			info.WorstAt = at
		}
	}

	for typeID, count := range stock {
		info.Free[typeID] = count - info.PeakUsage[typeID]
	}

	return info, nil
}
