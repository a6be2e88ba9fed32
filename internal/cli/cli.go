package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/leadboard/internal/app"
	"github.com/thenoetrevino/leadboard/internal/config"
	"github.com/thenoetrevino/leadboard/internal/events"
	"github.com/thenoetrevino/leadboard/internal/session"
)

type contextKey string

const appKey contextKey = "app"

// CLI represents the CLI application context
type CLI struct {
	App *app.App
	// owned is false when the app was injected by the caller, who closes it
	owned bool
}

// WithApp makes NewCLI reuse a. Used by tests and by commands that already
// built an app.
func WithApp(ctx context.Context, a *app.App) context.Context {
	return context.WithValue(ctx, appKey, a)
}

// NewCLI loads the config, opens the database, joins the live-sync daemon
// when one is running and loads the board.
func NewCLI(ctx context.Context) (*CLI, error) {
	if a, ok := ctx.Value(appKey).(*app.App); ok && a != nil {
		if err := a.Board.Load(ctx); err != nil {
			return nil, err
		}
		return &CLI{App: a}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Try to connect to daemon (optional - silent fallback)
	var opts []app.Option
	client := events.NewClient(cfg.Socket, 100*time.Millisecond)
	if err := client.Connect(ctx); err == nil {
		opts = append(opts, app.WithEventPublisher(client))
	} else {
		_ = client.Close()
		daemonErr := events.ClassifyDaemonError(err)
		slog.Debug("running without daemon", "message", daemonErr.Message, "hint", daemonErr.Hint)
	}

	a, err := app.New(ctx, cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := a.Board.Load(ctx); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to load board: %w", err)
	}

	return &CLI{App: a, owned: true}, nil
}

// Session resolves the acting user
func (c *CLI) Session(ctx context.Context) (session.Session, error) {
	return c.App.Sessions.Current(ctx)
}

// Close waits for pending writes and releases resources it owns
func (c *CLI) Close() error {
	if !c.owned {
		c.App.Board.Wait()
		c.App.Activity.Wait()
		return nil
	}
	return c.App.Close()
}

// CloseQuietly is Close for defers, logging instead of returning the error
func (c *CLI) CloseQuietly() {
	if err := c.Close(); err != nil {
		slog.Warn("error closing CLI", "error", err)
	}
}
