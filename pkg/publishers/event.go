package publishers

import (
	"time"

	"github.com/google/uuid"

	"github.com/Adda-Baaj/foodstack-client/pkg/apiclient"
)

// CallEvent is the payload published downstream after each API call.
type CallEvent struct {
	ID         string    `json:"id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	URL        string    `json:"url"`
	Status     int       `json:"status"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewCallEvent builds a CallEvent for a finished call.
func NewCallEvent(rec apiclient.CallRecord) CallEvent {
	evt := CallEvent{
		ID:         uuid.NewString(),
		Method:     rec.Method,
		Path:       rec.Path,
		URL:        rec.URL,
		Status:     rec.Status,
		DurationMs: rec.Duration.Milliseconds(),
		OccurredAt: time.Now().UTC(),
	}
	if rec.Err != nil {
		evt.Error = rec.Err.Error()
	}
	return evt
}

// Failed reports whether the call ended with an error.
func (e CallEvent) Failed() bool { return e.Error != "" }

func (e CallEvent) attributes() map[string]string {
	outcome := "ok"
	if e.Failed() {
		outcome = "error"
	}
	return map[string]string{
		"event_id": e.ID,
		"method":   e.Method,
		"outcome":  outcome,
	}
}
