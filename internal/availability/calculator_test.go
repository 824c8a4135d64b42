package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 6, 14, hour, min, 0, 0, time.UTC)
}

func TestCompute(t *testing.T) {
	stock := map[string]int{"board": 10, "raft": 4}

	tests := []struct {
		name     string
		req      Request
		existing []Reservation
		wantFree map[string]int
		wantAt   time.Time
	}{
		{
			name:     "no bookings, full availability",
			req:      Request{Start: at(10, 0), Duration: 2 * time.Hour},
			existing: []Reservation{},
			wantFree: map[string]int{"board": 10, "raft": 4},
			wantAt:   at(10, 0),
		},
		{
			name: "partial overlap reduces availability",
			req:  Request{Start: at(14, 0), Duration: 4 * time.Hour},
			existing: []Reservation{
				{ID: "b1", Start: at(12, 0), End: at(16, 0), Units: map[string]int{"board": 3}},
			},
			wantFree: map[string]int{"board": 7, "raft": 4},
			wantAt:   at(14, 0),
		},
		{
			name: "booking containing the whole window",
			req:  Request{Start: at(14, 0), Duration: time.Hour},
			existing: []Reservation{
				{ID: "b1", Start: at(10, 0), End: at(20, 0), Units: map[string]int{"board": 4}},
			},
			wantFree: map[string]int{"board": 6, "raft": 4},
			wantAt:   at(14, 0),
		},
		{
			name: "adjacent interval does not overlap",
			req:  Request{Start: at(16, 0), Duration: 2 * time.Hour},
			existing: []Reservation{
				{ID: "b1", Start: at(12, 0), End: at(16, 0), Units: map[string]int{"board": 5}},
			},
			wantFree: map[string]int{"board": 10, "raft": 4},
			wantAt:   at(16, 0),
		},
		{
			name: "probe outside any booking sees full stock",
			req:  Request{Start: at(8, 0), Duration: time.Hour},
			existing: []Reservation{
				{ID: "b1", Start: at(12, 0), End: at(16, 0), Units: map[string]int{"board": 5}},
			},
			wantFree: map[string]int{"board": 10, "raft": 4},
			wantAt:   at(8, 0),
		},
		{
			name: "worst period is the peak of stacked bookings",
			req:  Request{Start: at(10, 0), Duration: 8 * time.Hour},
			existing: []Reservation{
				{ID: "b1", Start: at(10, 0), End: at(14, 0), Units: map[string]int{"board": 2}},
				{ID: "b2", Start: at(12, 0), End: at(16, 0), Units: map[string]int{"board": 3}},
				{ID: "b3", Start: at(15, 0), End: at(17, 0), Units: map[string]int{"board": 1}},
			},
			// 12:00-14:00 holds b1+b2 = 5 boards, the maximum.
			wantFree: map[string]int{"board": 5, "raft": 4},
			wantAt:   at(12, 0),
		},
		{
			name: "excluded booking is ignored",
			req:  Request{Start: at(14, 0), Duration: 2 * time.Hour, ExcludeID: "b1"},
			existing: []Reservation{
				{ID: "b1", Start: at(14, 0), End: at(16, 0), Units: map[string]int{"board": 6}},
				{ID: "b2", Start: at(14, 0), End: at(15, 0), Units: map[string]int{"board": 2}},
			},
			wantFree: map[string]int{"board": 8, "raft": 4},
			wantAt:   at(14, 0),
		},
		{
			name: "overbooking yields negative free count",
			req:  Request{Start: at(14, 0), Duration: time.Hour},
			existing: []Reservation{
				{ID: "b1", Start: at(13, 0), End: at(17, 0), Units: map[string]int{"raft": 5}},
			},
			wantFree: map[string]int{"board": 10, "raft": -1},
			wantAt:   at(14, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := Compute(tt.req, tt.existing, stock)
			require.NoError(t, err)
			require.Equal(t, tt.wantFree, info.Free)
			require.Equal(t, tt.wantAt, info.WorstAt)
		})
	}
}

func TestComputeInvalidInput(t *testing.T) {
	_, err := Compute(Request{Start: at(10, 0), Duration: 0}, nil, nil)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Compute(Request{Start: at(10, 0), Duration: -time.Hour}, nil, nil)
	require.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Compute(Request{Duration: time.Hour}, nil, nil)
	require.ErrorIs(t, err, ErrZeroStart)
}

func TestComputeMultipleBoundaries(t *testing.T) {
	// The requested window spans several existing bookings' boundaries; the
	// availability must reflect the worst sub-interval, not the window start.
	stock := map[string]int{"board": 10}

	existing := []Reservation{
		{ID: "early", Start: at(9, 0), End: at(11, 0), Units: map[string]int{"board": 1}},
		{ID: "late", Start: at(13, 0), End: at(15, 0), Units: map[string]int{"board": 7}},
	}

	info, err := Compute(Request{Start: at(10, 0), Duration: 4 * time.Hour}, existing, stock)
	require.NoError(t, err)

	// At 10:00 only one board is out, but 13:00-14:00 has seven out.
	require.Equal(t, 3, info.Free["board"])
	require.Equal(t, at(13, 0), info.WorstAt)
}
