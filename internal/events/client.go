package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrQueueFull is returned by SendEvent when the outgoing queue is saturated
var ErrQueueFull = errors.New("event queue full")

// Client is a connection to the leadboard daemon. Outgoing events are
// coalesced: any number of events queued within one debounce window are
// sent as a single board_changed event.
type Client struct {
	socketPath string
	origin     string

	mu      sync.Mutex
	conn    net.Conn
	encoder *json.Encoder
	decoder *json.Decoder
	closed  bool

	eventQueue chan Event
	debounce   time.Duration

	maxRetries int
	baseDelay  time.Duration

	lastSequence int64

	ctx         context.Context
	cancel      context.CancelFunc
	batcherOnce sync.Once
	batcherDone chan struct{}
}

// NewClient creates a client for socketPath but does not connect
func NewClient(socketPath string, debounce time.Duration) *Client {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		socketPath:  socketPath,
		origin:      uuid.NewString(),
		eventQueue:  make(chan Event, 100),
		debounce:    debounce,
		maxRetries:  5,
		baseDelay:   time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}
}

// Origin returns the identifier stamped on this client's events
func (c *Client) Origin() string {
	return c.origin
}

// Connect dials the daemon socket and starts the batcher
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	c.batcherOnce.Do(func() { go c.startBatcher() })
	return nil
}

// SendEvent queues an event to be sent to the daemon
func (c *Client) SendEvent(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errors.New("client closed")
	}

	select {
	case c.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	pending := false
	flush := func() {
		if !pending {
			return
		}
		pending = false
		err := c.sendToSocket(Message{
			Version: ProtocolVersion,
			Type:    "event",
			Event: &Event{
				Type:      EventBoardChanged,
				Origin:    c.origin,
				Timestamp: time.Now(),
			},
		})
		if err != nil && !isConnectionError(err) {
			log.Printf("Failed to send batched event: %v", err)
		}
	}

	for {
		select {
		case <-c.ctx.Done():
			flush()
			return
		case _, ok := <-c.eventQueue:
			if !ok {
				flush()
				return
			}
			pending = true
		case <-ticker.C:
			flush()
		}
	}
}

func (c *Client) sendToSocket(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return errors.New("not connected to daemon")
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	return c.encoder.Encode(msg)
}

// Listen returns a channel of events from other processes. The channel is
// closed when ctx is done or reconnection gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	c.mu.Lock()
	connected := c.conn != nil
	c.mu.Unlock()
	if !connected {
		return nil, errors.New("not connected to daemon")
	}

	out := make(chan Event, 10)
	go c.listenLoop(ctx, out)
	return out, nil
}

func (c *Client) listenLoop(ctx context.Context, out chan Event) {
	defer close(out)

	for {
		if ctx.Err() != nil {
			return
		}
		err := c.readEvents(ctx, out)
		if err == nil || ctx.Err() != nil {
			return
		}

		log.Printf("Connection lost: %v, reconnecting...", err)
		if !c.reconnect(ctx) {
			log.Printf("Failed to reconnect after %d attempts, giving up", c.maxRetries)
			return
		}
	}
}

func (c *Client) readEvents(ctx context.Context, out chan Event) error {
	for {
		c.mu.Lock()
		if c.conn == nil {
			c.mu.Unlock()
			return errors.New("connection closed")
		}
		if err := c.conn.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
			c.mu.Unlock()
			return fmt.Errorf("failed to set read deadline: %w", err)
		}
		decoder := c.decoder
		c.mu.Unlock()

		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("failed to decode message: %w", err)
		}

		switch msg.Type {
		case "event":
			ev := msg.Event
			if ev == nil || ev.SequenceID <= c.lastSequence {
				continue
			}
			c.lastSequence = ev.SequenceID
			if ev.Origin == c.origin {
				continue
			}
			select {
			case out <- *ev:
			case <-ctx.Done():
				return nil
			}

		case "ping":
			err := c.sendToSocket(Message{Version: ProtocolVersion, Type: "pong"})
			if err != nil && !isConnectionError(err) {
				log.Printf("Failed to send pong: %v", err)
			}
		}
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "broken pipe") ||
		strings.Contains(s, "connection reset") ||
		strings.Contains(s, "use of closed network connection")
}

// reconnect retries with exponential backoff: 1s, 2s, 4s...
func (c *Client) reconnect(ctx context.Context) bool {
	delay := c.baseDelay
	for i := 0; i < c.maxRetries; i++ {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return false
		}
		if c.conn != nil {
			_ = c.conn.Close()
		}
		// the daemon restarts its sequence counter
		c.lastSequence = 0
		c.mu.Unlock()

		if err := c.Connect(ctx); err == nil {
			log.Printf("Reconnected to daemon (attempt %d/%d)", i+1, c.maxRetries)
			return true
		}
		delay *= 2
	}
	return false
}

// Close flushes pending events and closes the connection
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	close(c.eventQueue)
	started := c.conn != nil
	c.mu.Unlock()

	c.cancel()
	if started {
		<-c.batcherDone
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
