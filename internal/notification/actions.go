package notification

import "fmt"

// Transition names understood by the booking side of an action.
const (
	TransitionConfirm  = "confirm"
	TransitionCancel   = "cancel"
	TransitionIssue    = "issue"
	TransitionComplete = "complete"
)

// Route is the resolved outcome of a notification action: where to send
// the client and which booking transition to perform, if any.
type Route struct {
	URL        string
	Transition string
}

type actionSpec struct {
	transition string
	url        func(bookingID, phone string) string
}

func bookingURL(bookingID, _ string) string {
	return "/?booking=" + bookingID
}

func deepLink(action string) func(bookingID, phone string) string {
	return func(bookingID, _ string) string {
		return fmt.Sprintf("/?action=%s&booking=%s", action, bookingID)
	}
}

func telLink(_, phone string) string {
	return "tel:" + phone
}

// actionTable is the single dispatch table for notification buttons.
var actionTable = map[string]actionSpec{
	"confirm":        {transition: TransitionConfirm, url: bookingURL},
	"cancel":         {transition: TransitionCancel, url: bookingURL},
	"arrived":        {transition: TransitionIssue, url: bookingURL},
	"returned":       {transition: TransitionComplete, url: bookingURL},
	"contact":        {url: telLink},
	"contact_urgent": {url: telLink},
	"prepare":        {url: deepLink("prepare")},
	"view":           {url: bookingURL},
	"remind":         {url: deepLink("remind")},
	"lost":           {url: deepLink("lost")},
}

// RouteAction resolves an action id against the dispatch table. Unknown
// actions fall back to a generic deep link so the client still lands
// somewhere sensible.
func RouteAction(actionID, bookingID, phone string) Route {
	spec, ok := actionTable[actionID]
	if !ok {
		return Route{URL: fmt.Sprintf("/?action=%s&booking=%s", actionID, bookingID)}
	}
	return Route{
		URL:        spec.url(bookingID, phone),
		Transition: spec.transition,
	}
}
