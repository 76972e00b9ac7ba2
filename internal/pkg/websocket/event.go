package websocket

import "time"

// EventType names a change pushed to subscribed clients.
type EventType string

const (
	EventConnectionsChanged         EventType = "connections.changed"
	EventMentorshipRequestCreated   EventType = "mentorship_requests.created"
	EventMentorshipRequestUpdated   EventType = "mentorship_requests.updated"
	EventAcceptedMenteesInvalidated EventType = "accepted_mentees.invalidated"
	EventMessagesChanged            EventType = "messages.changed"
	EventTasksChanged               EventType = "tasks.changed"
	EventEventsChanged              EventType = "events.changed"
	EventBlogInteractionsChanged    EventType = "blog_interactions.changed"
)

// Event is the envelope written to a websocket client.
// Clients treat it as a signal to refetch; Payload carries the changed row when useful.
type Event struct {
	Type        EventType   `json:"type"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Payload     interface{} `json:"payload,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// NewEvent stamps an event with the current time.
func NewEvent(eventType EventType, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// WithNotification attaches a user-facing title and description.
func (e *Event) WithNotification(title, description string) *Event {
	e.Title = title
	e.Description = description
	return e
}
