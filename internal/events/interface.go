package events

import "context"

// EventPublisher sends board change events to the daemon and receives the
// ones published by other processes.
type EventPublisher interface {
	// Connect establishes a connection to the daemon socket
	Connect(ctx context.Context) error

	// SendEvent queues an event without blocking
	SendEvent(event Event) error

	// Listen returns a channel of events published by other processes
	Listen(ctx context.Context) (<-chan Event, error)

	// Origin is the identifier stamped on events sent by this publisher
	Origin() string

	Close() error
}

var _ EventPublisher = (*Client)(nil)
