package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/leadboard/internal/events"
)

func setupTestDaemon(t *testing.T) (*Server, string) {
	t.Helper()
	socketPath := filepath.Join(t.TempDir(), "leadboard.sock")

	server, err := NewServer(socketPath)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}
	t.Cleanup(func() { _ = server.Shutdown() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = server.Start(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(socketPath); err == nil {
			return server, socketPath
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("Timeout waiting for daemon socket")
	return nil, ""
}

func connectClient(t *testing.T, socketPath string) *events.Client {
	t.Helper()
	c := events.NewClient(socketPath, 10*time.Millisecond)
	if err := c.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func waitForClients(t *testing.T, s *Server, n int32) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Metrics().ConnectedClients.Load() == n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d connected clients, got %d", n, s.Metrics().ConnectedClients.Load())
}

func TestEventReachesOtherClient(t *testing.T) {
	server, socketPath := setupTestDaemon(t)

	publisher := connectClient(t, socketPath)
	listener := connectClient(t, socketPath)
	waitForClients(t, server, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	received, err := listener.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}

	if err := publisher.SendEvent(events.Event{Type: events.EventBoardChanged}); err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}

	select {
	case ev := <-received:
		if ev.Type != events.EventBoardChanged {
			t.Errorf("type = %q, want %q", ev.Type, events.EventBoardChanged)
		}
		if ev.Origin != publisher.Origin() {
			t.Errorf("origin = %q, want %q", ev.Origin, publisher.Origin())
		}
		if ev.SequenceID == 0 {
			t.Error("expected sequence id to be stamped")
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestPublisherIgnoresOwnEcho(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	c := connectClient(t, socketPath)
	waitForClients(t, server, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	received, err := c.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	if err := c.SendEvent(events.Event{Type: events.EventBoardChanged}); err != nil {
		t.Fatalf("SendEvent failed: %v", err)
	}

	select {
	case ev, ok := <-received:
		if ok {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-ctx.Done():
	}
}

func TestShutdownRemovesSocket(t *testing.T) {
	server, socketPath := setupTestDaemon(t)
	if err := server.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if _, err := os.Stat(socketPath); !os.IsNotExist(err) {
		t.Errorf("socket file still present: %v", err)
	}
	// second call is a no-op
	if err := server.Shutdown(); err != nil {
		t.Fatalf("second Shutdown failed: %v", err)
	}
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.IncEventsSent()
	m.IncEventsReceived()
	m.IncBroadcasts()
	m.SetConnectedClients(3)

	snap := m.Snapshot()
	if snap.EventsSent != 1 || snap.EventsReceived != 1 || snap.Broadcasts != 1 {
		t.Errorf("unexpected counters: %+v", snap)
	}
	if snap.ConnectedClients != 3 {
		t.Errorf("connected = %d, want 3", snap.ConnectedClients)
	}
}
