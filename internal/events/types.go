package events

import "time"

// ProtocolVersion is carried on every wire message
const ProtocolVersion = 1

// EventType indicates what kind of change occurred
type EventType string

const (
	EventBoardChanged EventType = "board_changed"
	EventPing         EventType = "ping"
	EventPong         EventType = "pong"
)

// Event is a board change notification. Origin identifies the publishing
// process so it can ignore its own echoes.
type Event struct {
	Type       EventType `json:"type"`
	Origin     string    `json:"origin,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	SequenceID int64     `json:"sequence_id,omitempty"`
}

// Message wraps events and control messages on the socket
type Message struct {
	Version int    `json:"version"`
	Type    string `json:"type"` // "event", "ping", "pong"
	Event   *Event `json:"event,omitempty"`
}
