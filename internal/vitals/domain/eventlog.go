package domain

import "time"

// DefaultEventCapacity matches the scrolling log surface, which shows the
// last five events.
const DefaultEventCapacity = 5

// Event is one timestamped entry in the session event log.
type Event struct {
	Timestamp time.Time
	Message   string
}

// EventLog keeps the most recent events, oldest first. Not safe for
// concurrent use; callers synchronize.
type EventLog struct {
	capacity int
	events   []Event
}

// NewEventLog creates an event log with the given capacity. Non-positive
// capacities fall back to DefaultEventCapacity.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultEventCapacity
	}
	return &EventLog{
		capacity: capacity,
		events:   make([]Event, 0, capacity),
	}
}

// Add appends an event, evicting the oldest once the capacity is exceeded.
func (l *EventLog) Add(timestamp time.Time, message string) {
	if len(l.events) == l.capacity {
		copy(l.events, l.events[1:])
		l.events = l.events[:len(l.events)-1]
	}
	l.events = append(l.events, Event{Timestamp: timestamp, Message: message})
}

// Tail returns the retained events, oldest first, as a copy.
func (l *EventLog) Tail() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}
