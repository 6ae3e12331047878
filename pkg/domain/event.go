package domain

// Event is a calendar entry: a shoot day, a meeting, a screening.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DateTime    Time   `json:"dateTime"` // combined date and time-of-day
	Location    string `json:"location"`
	Type        string `json:"type"`
	Attendees   int    `json:"attendees"`
	IsPublic    bool   `json:"isPublic"`
	CreatedAt   Time   `json:"createdAt"`
	CreatorID   string `json:"creatorId"`
}

// EventDraft holds the caller-supplied fields for a new event.
type EventDraft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DateTime    Time   `json:"dateTime"`
	Location    string `json:"location"`
	Type        string `json:"type"`
	Attendees   int    `json:"attendees"`
	IsPublic    bool   `json:"isPublic"`
	CreatorID   string `json:"creatorId"`
}

// Valid event types.
var ValidEventTypes = []string{
	"meeting",
	"shoot",
	"workshop",
	"networking",
	"screening",
}

var validEventTypeSet = func() map[string]bool {
	m := make(map[string]bool, len(ValidEventTypes))
	for _, t := range ValidEventTypes {
		m[t] = true
	}
	return m
}()

// ValidEventType returns true if the given type is a known event type.
func ValidEventType(eventType string) bool {
	return validEventTypeSet[eventType]
}

// EventPatch is a merge-patch for an event.
type EventPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DateTime    *Time   `json:"dateTime,omitempty"`
	Location    *string `json:"location,omitempty"`
	Type        *string `json:"type,omitempty"`
	Attendees   *int    `json:"attendees,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}

// Apply merges the patch into e.
func (patch EventPatch) Apply(e *Event) {
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.DateTime != nil {
		e.DateTime = *patch.DateTime
	}
	if patch.Location != nil {
		e.Location = *patch.Location
	}
	if patch.Type != nil {
		e.Type = *patch.Type
	}
	if patch.Attendees != nil {
		e.Attendees = *patch.Attendees
	}
	if patch.IsPublic != nil {
		e.IsPublic = *patch.IsPublic
	}
}
