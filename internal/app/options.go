package app

import (
	"log/slog"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	notifier    board.Notifier
}

// WithEventPublisher connects the board to the live-sync daemon
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithNotifier replaces the default in-memory notice queue
func WithNotifier(n board.Notifier) Option {
	return func(cfg *appConfig) {
		cfg.notifier = n
	}
}
