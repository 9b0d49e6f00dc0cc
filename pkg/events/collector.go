package events

import "slices"

// EventCollector buffers the events an aggregate raises until the
// application layer drains and publishes them. The zero value is ready to
// use. It is not safe for concurrent use; an aggregate belongs to one request.
type EventCollector struct {
	pending []DomainEvent
}

// Record buffers events in the order given. Nil events are dropped.
func (c *EventCollector) Record(evts ...DomainEvent) {
	for _, e := range evts {
		if e != nil {
			c.pending = append(c.pending, e)
		}
	}
}

// Events returns a copy of the buffered events.
func (c *EventCollector) Events() []DomainEvent {
	return slices.Clone(c.pending)
}

// PendingCount reports how many events are buffered.
func (c *EventCollector) PendingCount() int {
	return len(c.pending)
}

// ClearEvents drains the buffer.
func (c *EventCollector) ClearEvents() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}
