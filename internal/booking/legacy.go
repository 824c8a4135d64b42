package booking

// Older clients send per-category counts instead of the generalized
// selectedItems map. The conversion lives here and nowhere else; everything
// past the HTTP boundary sees only type-id keyed quantities.

// LegacyCounts is the historical per-category shape of a booking request.
type LegacyCounts struct {
	BoardCount         int
	BoardWithSeatCount int
	RaftCount          int
}

func (c LegacyCounts) Empty() bool {
	return c.BoardCount <= 0 && c.BoardWithSeatCount <= 0 && c.RaftCount <= 0
}

// LegacyTypeIDs resolves the three well-known category names to the current
// inventory type ids. A missing id drops that category from the conversion.
type LegacyTypeIDs struct {
	Board         string
	BoardWithSeat string
	Raft          string
}

// MergeLegacyCounts folds legacy counts into a selected-items map. When a
// type appears in both representations, the larger quantity wins; the two
// shapes were historically kept in sync by the client, so a mismatch means
// one of them is stale and the maximum is the safe reading.
func MergeLegacyCounts(selected map[string]int, counts LegacyCounts, ids LegacyTypeIDs) map[string]int {
	merged := make(map[string]int, len(selected)+3)
	for typeID, qty := range selected {
		if qty > 0 {
			merged[typeID] = qty
		}
	}

	fold := func(typeID string, qty int) {
		if typeID == "" || qty <= 0 {
			return
		}
		if qty > merged[typeID] {
			merged[typeID] = qty
		}
	}
	fold(ids.Board, counts.BoardCount)
	fold(ids.BoardWithSeat, counts.BoardWithSeatCount)
	fold(ids.Raft, counts.RaftCount)

	return merged
}

// SeatUnits computes the legacy seat-unit total for a selection: a board
// with a seat consumes one seat unit, a raft consumes two.
func SeatUnits(selected map[string]int, ids LegacyTypeIDs) int {
	units := 0
	if ids.BoardWithSeat != "" {
		units += selected[ids.BoardWithSeat]
	}
	if ids.Raft != "" {
		units += 2 * selected[ids.Raft]
	}
	return units
}
