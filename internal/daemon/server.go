// Package daemon runs the unix-socket hub that rebroadcasts board_changed
// events between leadboard processes.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/leadboard/internal/events"
)

type client struct {
	conn      net.Conn
	send      chan events.Message
	lastPong  time.Time
	mu        sync.Mutex // protects lastPong
	closeOnce sync.Once
}

// Server is the event hub
type Server struct {
	socketPath   string
	listener     net.Listener
	clients      map[*client]bool
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	broadcast    chan events.Event
	metrics      *Metrics
	sequence     atomic.Int64
	clientBuffer int
	shutdownOnce sync.Once

	pingInterval time.Duration
	staleAfter   time.Duration
}

// NewServer listens on socketPath, replacing a stale socket file
func NewServer(socketPath string) (*Server, error) {
	if dir := filepath.Dir(socketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		socketPath:   socketPath,
		listener:     listener,
		clients:      make(map[*client]bool),
		ctx:          ctx,
		cancel:       cancel,
		broadcast:    make(chan events.Event, 100),
		metrics:      NewMetrics(),
		clientBuffer: 10,
		pingInterval: 30 * time.Second,
		staleAfter:   90 * time.Second,
	}, nil
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start serves until ctx is cancelled or the listener fails
func (s *Server) Start(ctx context.Context) error {
	log.Printf("Daemon starting, listening on %s", s.socketPath)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	acceptErr := make(chan error, 1)
	go func() { acceptErr <- s.acceptLoop(runCtx) }()
	go s.broadcastLoop(runCtx)
	go s.monitorHealth(runCtx)

	select {
	case <-runCtx.Done():
		log.Println("Daemon context cancelled, shutting down")
	case err := <-acceptErr:
		if err != nil {
			log.Printf("Accept loop error: %v", err)
		}
	}

	return s.Shutdown()
}

func (s *Server) acceptLoop(ctx context.Context) error {
	ul, _ := s.listener.(*net.UnixListener)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if ul != nil {
			if err := ul.SetDeadline(time.Now().Add(time.Second)); err != nil {
				log.Printf("Error setting listener deadline: %v", err)
			}
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.clientBuffer),
			lastPong: time.Now(),
		}
		s.mu.Lock()
		s.clients[c] = true
		count := len(s.clients)
		s.mu.Unlock()
		s.metrics.SetConnectedClients(int32(count))
		log.Printf("Client connected, total clients: %d", count)

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop stamps a sequence number and fans each event out to every
// client. The origin is kept so publishers can drop their own echoes.
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-s.broadcast:
			if !ok {
				return
			}
			event.SequenceID = s.sequence.Add(1)
			s.metrics.IncBroadcasts()

			msg := events.Message{Version: events.ProtocolVersion, Type: "event", Event: &event}
			s.mu.RLock()
			for c := range s.clients {
				if !s.sendToClient(c, msg) {
					log.Printf("Client send queue full, event dropped")
				}
			}
			s.mu.RUnlock()
		}
	}
}

func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		log.Printf("Client disconnected, total clients: %d", s.clientCount())
	}()

	decoder := json.NewDecoder(c.conn)
	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}
		if msg.Version != 0 && msg.Version != events.ProtocolVersion {
			log.Printf("Warning: received protocol version %d, expected %d", msg.Version, events.ProtocolVersion)
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			s.metrics.IncEventsReceived()
			if err := s.Broadcast(*msg.Event); err != nil {
				log.Printf("Broadcast channel full")
			}
		case "pong":
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()
		}
	}
}

func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)
	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth pings clients and drops the ones that stopped answering
func (s *Server) monitorHealth(ctx context.Context) {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.mu.RLock()
			var live, stale []*client
			for c := range s.clients {
				c.mu.Lock()
				last := c.lastPong
				c.mu.Unlock()
				if now.Sub(last) > s.staleAfter {
					stale = append(stale, c)
				} else {
					live = append(live, c)
				}
			}
			s.mu.RUnlock()

			ping := events.Message{Version: events.ProtocolVersion, Type: "ping"}
			for _, c := range live {
				s.sendToClient(c, ping)
			}
			for _, c := range stale {
				log.Printf("Removing stale client")
				s.removeClient(c)
			}
		}
	}
}

// Broadcast queues an event for fan-out without blocking
func (s *Server) Broadcast(event events.Event) error {
	select {
	case s.broadcast <- event:
		return nil
	default:
		return errors.New("broadcast channel full")
	}
}

// Shutdown closes the listener and every client and removes the socket file
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		log.Println("Shutting down daemon...")
		s.cancel()

		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Printf("Error closing listener: %v", err)
		}

		s.mu.Lock()
		for c := range s.clients {
			_ = c.conn.Close()
			c.closeOnce.Do(func() { close(c.send) })
		}
		s.clients = make(map[*client]bool)
		s.mu.Unlock()
		s.metrics.SetConnectedClients(0)

		if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: failed to remove socket file: %v", err)
		}
	})
	return nil
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	count := len(s.clients)
	s.mu.Unlock()

	_ = c.conn.Close()
	c.closeOnce.Do(func() { close(c.send) })
	s.metrics.SetConnectedClients(int32(count))
}

func (s *Server) sendToClient(c *client, msg events.Message) (ok bool) {
	// send may already be closed by a concurrent removeClient
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case c.send <- msg:
		s.metrics.IncEventsSent()
		return true
	default:
		return false
	}
}
