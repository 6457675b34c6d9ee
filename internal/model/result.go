package model

import "time"

// ResultEvent is a drawn two-digit result together with its emission time.
// It is transient: viewers connecting after emission do not see past events,
// though the latest event is also persisted for display.
type ResultEvent struct {
	Value     string    `json:"value"`
	EmittedAt time.Time `json:"emitted_at"`
}

// LiveResult is the payload shape of the upstream live feed, passed through
// by the 2d proxy endpoint.
type LiveResult struct {
	Twod  string `json:"twod"`
	Set   string `json:"set"`
	Value string `json:"value"`
	Time  string `json:"time"`
}

// OfflineLiveResult is the sentinel payload served when the upstream feed
// cannot be reached
func OfflineLiveResult() LiveResult {
	return LiveResult{
		Twod:  "--",
		Set:   "Error",
		Value: "Error",
		Time:  "Offline",
	}
}
