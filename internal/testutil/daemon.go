package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/thenoetrevino/leadboard/internal/daemon"
	"github.com/thenoetrevino/leadboard/internal/events"
)

// GetTestSocketPath generates a unique temporary socket path for testing.
func GetTestSocketPath(t *testing.T) string {
	t.Helper()
	// unix socket paths are length limited, so keep the name short
	return filepath.Join(t.TempDir(), "lb.sock")
}

// SetupTestDaemon runs a broadcast daemon on a private socket for the
// lifetime of the test and returns the socket path once it is listening.
func SetupTestDaemon(t *testing.T) (*daemon.Server, string) {
	t.Helper()

	sock := GetTestSocketPath(t)
	srv, err := daemon.NewServer(sock)
	if err != nil {
		t.Fatalf("new daemon on %s: %v", sock, err)
	}

	ctx, stop := context.WithCancel(context.Background())
	go func() {
		if err := srv.Start(ctx); err != nil {
			t.Logf("daemon exited: %v", err)
		}
	}()
	t.Cleanup(func() {
		stop()
		if err := srv.Shutdown(); err != nil {
			t.Logf("daemon shutdown: %v", err)
		}
	})

	listening := WaitFor(t, 2*time.Second, func() bool {
		_, err := os.Stat(sock)
		return err == nil
	})
	if !listening {
		t.Fatalf("daemon never created %s", sock)
	}
	return srv, sock
}

// SetupTestClient creates an event client connected to socketPath with a
// short debounce window. Cleanup is automatic via t.Cleanup().
func SetupTestClient(t *testing.T, socketPath string) *events.Client {
	t.Helper()

	client := events.NewClient(socketPath, 10*time.Millisecond)
	t.Cleanup(func() {
		if err := client.Close(); err != nil {
			t.Logf("Warning: client close error during cleanup: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect test client: %v", err)
	}
	return client
}

// WaitFor polls cond until it holds or timeout passes
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}
