package live

import (
	"time"

	"github.com/myatmin/twodlive/internal/model"
)

// Event types pushed to viewers
const (
	EventInfo   = "INFO"
	EventResult = "RESULT"
)

// Event is the wire shape of a message pushed over the live socket
type Event struct {
	Type      string     `json:"type"`
	Message   string     `json:"message,omitempty"`
	Result    string     `json:"result,omitempty"`
	EmittedAt *time.Time `json:"emitted_at,omitempty"`
}

// InfoEvent builds the greeting pushed to a viewer right after connecting.
// latest may be nil when no result has been published yet.
func InfoEvent(latest *model.ResultEvent) Event {
	ev := Event{
		Type:    EventInfo,
		Message: "connected",
	}
	if latest != nil {
		ev.Result = latest.Value
		t := latest.EmittedAt
		ev.EmittedAt = &t
	}
	return ev
}

// ResultEvent builds the broadcast message for a published result
func ResultEvent(result model.ResultEvent) Event {
	t := result.EmittedAt
	return Event{
		Type:      EventResult,
		Result:    result.Value,
		EmittedAt: &t,
	}
}
