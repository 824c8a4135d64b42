package booking_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Andrej19990506/supboard-booking-backend/internal/booking"
)

var testIDs = booking.LegacyTypeIDs{
	Board:         "t-board",
	BoardWithSeat: "t-seat",
	Raft:          "t-raft",
}

func TestMergeLegacyCounts(t *testing.T) {
	tests := []struct {
		name     string
		selected map[string]int
		counts   booking.LegacyCounts
		want     map[string]int
	}{
		{
			name:   "legacy only",
			counts: booking.LegacyCounts{BoardCount: 3, RaftCount: 1},
			want:   map[string]int{"t-board": 3, "t-raft": 1},
		},
		{
			name:     "selected only",
			selected: map[string]int{"t-board": 2, "t-kayak": 1},
			want:     map[string]int{"t-board": 2, "t-kayak": 1},
		},
		{
			name:     "both present takes the maximum per type",
			selected: map[string]int{"t-board": 2, "t-seat": 4},
			counts:   booking.LegacyCounts{BoardCount: 5, BoardWithSeatCount: 1},
			want:     map[string]int{"t-board": 5, "t-seat": 4},
		},
		{
			name:     "zero and negative quantities dropped",
			selected: map[string]int{"t-board": 0, "t-kayak": -2},
			counts:   booking.LegacyCounts{RaftCount: -1},
			want:     map[string]int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := booking.MergeLegacyCounts(tt.selected, tt.counts, testIDs)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestMergeLegacyCountsUnresolvedType(t *testing.T) {
	// No raft type configured: the raft count has nowhere to go.
	ids := booking.LegacyTypeIDs{Board: "t-board"}
	got := booking.MergeLegacyCounts(nil, booking.LegacyCounts{BoardCount: 2, RaftCount: 3}, ids)
	require.Equal(t, map[string]int{"t-board": 2}, got)
}

func TestSeatUnits(t *testing.T) {
	// A raft counts as two seat units, a board with a seat as one.
	selected := map[string]int{"t-board": 4, "t-seat": 3, "t-raft": 2}
	require.Equal(t, 7, booking.SeatUnits(selected, testIDs))

	require.Equal(t, 0, booking.SeatUnits(map[string]int{"t-board": 5}, testIDs))
	require.Equal(t, 0, booking.SeatUnits(selected, booking.LegacyTypeIDs{}))
}

func TestLegacyCountsEmpty(t *testing.T) {
	require.True(t, booking.LegacyCounts{}.Empty())
	require.True(t, booking.LegacyCounts{BoardCount: -1}.Empty())
	require.False(t, booking.LegacyCounts{RaftCount: 1}.Empty())
}
