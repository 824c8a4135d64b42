package notification

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouteAction(t *testing.T) {
	tests := []struct {
		action     string
		wantURL    string
		transition string
	}{
		{"confirm", "/?booking=b-1", TransitionConfirm},
		{"cancel", "/?booking=b-1", TransitionCancel},
		{"arrived", "/?booking=b-1", TransitionIssue},
		{"returned", "/?booking=b-1", TransitionComplete},
		{"contact", "tel:+79990001122", ""},
		{"contact_urgent", "tel:+79990001122", ""},
		{"prepare", "/?action=prepare&booking=b-1", ""},
		{"view", "/?booking=b-1", ""},
		{"remind", "/?action=remind&booking=b-1", ""},
		{"lost", "/?action=lost&booking=b-1", ""},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			route := RouteAction(tt.action, "b-1", "+79990001122")
			require.Equal(t, tt.wantURL, route.URL)
			require.Equal(t, tt.transition, route.Transition)
		})
	}
}

func TestRouteActionUnknownFallsBack(t *testing.T) {
	route := RouteAction("celebrate", "b-7", "")
	require.Equal(t, "/?action=celebrate&booking=b-7", route.URL)
	require.Empty(t, route.Transition)
}
