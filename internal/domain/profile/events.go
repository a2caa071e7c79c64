package profile

import "time"

type EventType string

const (
	EventCreated      EventType = "profile.created"
	EventUpdated      EventType = "profile.updated"
	EventProjectAdded EventType = "profile.project_added"
)

// Event records a change to a profile. Fields lists the top-level fields the
// change touched.
type Event struct {
	Type       EventType `json:"type"`
	ProfileID  string    `json:"profileId"`
	Fields     []string  `json:"fields,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewEvent(t EventType, profileID string, fields ...string) Event {
	return Event{Type: t, ProfileID: profileID, Fields: fields, OccurredAt: time.Now().UTC()}
}
