package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "reflection.completed").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewReflectionCompletedEvent fires after a daily mirror has been persisted.
func NewReflectionCompletedEvent(clientID, date string) Event {
	return BaseEvent{
		Type: "reflection.completed",
		Data: map[string]interface{}{
			"client_id": clientID,
			"date":      date,
		},
		OccurredAt: time.Now(),
	}
}

// NewWeeklySummaryCreatedEvent fires after the weekly batch inserts a summary.
func NewWeeklySummaryCreatedEvent(clientID, weekStart, weekEnd string, reflectionCount int) Event {
	return BaseEvent{
		Type: "weekly.summary.created",
		Data: map[string]interface{}{
			"client_id":        clientID,
			"week_start":       weekStart,
			"week_end":         weekEnd,
			"reflection_count": reflectionCount,
		},
		OccurredAt: time.Now(),
	}
}
