package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLevelParsing(t *testing.T) {
	cases := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{name: "debug", level: "debug", want: zerolog.DebugLevel},
		{name: "warn with spaces", level: "  WARN ", want: zerolog.WarnLevel},
		{name: "unknown falls back to info", level: "loud", want: zerolog.InfoLevel},
		{name: "empty falls back to info", level: "", want: zerolog.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := New(tc.level, false)
			require.Equal(t, tc.want, log.GetLevel())

			log = New(tc.level, true)
			require.Equal(t, tc.want, log.GetLevel())
		})
	}
}

func TestNewReturnsUsableLogger(t *testing.T) {
	// Event builders use pointer receivers, so the returned value must be
	// held in a variable before chaining.
	log := New("error", true)
	require.NotPanics(t, func() {
		log.Debug().Msg("suppressed below error level")
	})
}
