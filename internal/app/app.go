// Package app wires the database, board, session lookup and activity log
// into one container shared by every front end.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/leadboard/internal/activity"
	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/config"
	"github.com/thenoetrevino/leadboard/internal/database"
	"github.com/thenoetrevino/leadboard/internal/events"
	"github.com/thenoetrevino/leadboard/internal/session"
)

// App holds the application services
type App struct {
	Config   *config.Config
	Repo     database.DataStore
	Board    *board.Manager
	Sessions *session.Provider
	Activity *activity.Sink
	Notices  *board.Notices
	Logger   *slog.Logger

	db          *sql.DB
	eventClient events.EventPublisher
}

// New opens the database and builds the services. The board is not loaded;
// call Board.Load.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	ac := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(ac)
	}

	db, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	repo := database.NewRepository(db)

	notices := board.NewNotices()
	var notifier board.Notifier = notices
	if ac.notifier != nil {
		notifier = ac.notifier
	}

	sink := activity.NewSink(repo, ac.logger)
	a := &App{
		Config:   cfg,
		Repo:     repo,
		Sessions: session.NewProvider(repo, cfg.User),
		Activity: sink,
		Notices:  notices,
		Logger:   ac.logger,
		db:       db,

		eventClient: ac.eventClient,
	}

	boardOpts := []board.Option{
		board.WithActivity(sink),
		board.WithNotifier(notifier),
		board.WithLogger(ac.logger),
		board.WithDefaultStage(cfg.DefaultStage),
	}
	if ac.eventClient != nil {
		boardOpts = append(boardOpts, board.WithEvents(ac.eventClient))
	}
	a.Board = board.New(repo, boardOpts...)
	return a, nil
}

// Events returns the live-sync client, or nil when running standalone
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Sync reloads the board whenever another process reports a change, until
// ctx is done or the event stream ends. onReload runs after each reload.
func (a *App) Sync(ctx context.Context, onReload func(error)) error {
	if a.eventClient == nil {
		return nil
	}
	ch, err := a.eventClient.Listen(ctx)
	if err != nil {
		return err
	}
	go func() {
		for range ch {
			err := a.Board.Load(ctx)
			if err != nil {
				a.Logger.Warn("reload after remote change failed", "error", err)
			}
			if onReload != nil {
				onReload(err)
			}
		}
	}()
	return nil
}

// Close waits for background writes, then releases the database and the
// event connection
func (a *App) Close() error {
	a.Board.Wait()
	a.Activity.Wait()
	if a.eventClient != nil {
		if err := a.eventClient.Close(); err != nil {
			a.Logger.Warn("closing event client", "error", err)
		}
	}
	return a.db.Close()
}
