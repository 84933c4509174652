package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate and published after the
// unit of work that produced it commits.
type DomainEvent struct {
	ID          UUID
	Name        string
	AggregateID UUID
	OccurredAt  time.Time
	Payload     map[string]string
}

func NewDomainEvent(name string, aggregateID UUID, payload map[string]string) DomainEvent {
	return DomainEvent{
		ID:          NewUUID(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
}

// EventRecorder collects events raised by an aggregate during one operation.
// Aggregates embed it.
type EventRecorder struct {
	events []DomainEvent
}

func (r *EventRecorder) Record(e DomainEvent) {
	r.events = append(r.events, e)
}

// DomainEvents returns the events recorded since the last clear.
func (r *EventRecorder) DomainEvents() []DomainEvent {
	return r.events
}

func (r *EventRecorder) ClearDomainEvents() {
	r.events = nil
}
