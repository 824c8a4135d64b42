package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShortageWarning(t *testing.T) {
	info := &Info{WorstAt: time.Date(2026, 6, 14, 14, 0, 0, 0, time.UTC)}

	tests := []struct {
		name      string
		requested int
		free      int
		want      string
	}{
		{"enough inventory", 3, 5, ""},
		{"exactly enough", 5, 5, ""},
		{"shortfall", 5, 2, "Not enough boards: requested 5, only 2 available (peak usage at 14:00)"},
		{"negative free reported as zero", 1, -2, "Not enough boards: requested 1, only 0 available (peak usage at 14:00)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortageWarning("boards", tt.requested, tt.free, info)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestShortageWarningWithoutPeakTime(t *testing.T) {
	got := ShortageWarning("rafts", 3, 1, nil)
	require.Equal(t, "Not enough rafts: requested 3, only 1 available", got)
}

func TestWarnings(t *testing.T) {
	info := &Info{
		Free:    map[string]int{"t1": 0, "t2": 10},
		WorstAt: time.Date(2026, 6, 14, 12, 30, 0, 0, time.UTC),
	}
	names := map[string]string{"t1": "paddleboards"}

	got := Warnings(info, map[string]int{"t1": 2, "t2": 1}, names)
	require.Equal(t, []string{
		"Not enough paddleboards: requested 2, only 0 available (peak usage at 12:30)",
	}, got)

	require.Nil(t, Warnings(info, nil, names))
	require.Nil(t, Warnings(nil, map[string]int{"t1": 1}, names))
}
