package main

import (
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/leadboard/internal/config"
	"github.com/thenoetrevino/leadboard/internal/daemon"
)

func daemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Relay board changes between open boards",
		Long: `Run the live-sync daemon. Every board, API server and CLI command that
finds it running announces its changes, and every open board reloads when
another one changes.`,
		Args: cobra.NoArgs,
		RunE: runDaemon,
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(
		cmd.Context(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Ensure the socket directory exists with secure permissions
	if err := os.MkdirAll(filepath.Dir(cfg.Socket), 0o700); err != nil {
		return err
	}

	server, err := daemon.NewServer(cfg.Socket)
	if err != nil {
		return err
	}

	slog.Info("leadboard daemon starting", "socket_path", cfg.Socket, "pid", os.Getpid())

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		return err
	}

	stats := server.Metrics().Snapshot()
	slog.Info("leadboard daemon shutting down gracefully",
		"uptime", stats.Uptime,
		"events_received", stats.EventsReceived,
		"broadcasts", stats.Broadcasts,
	)
	return nil
}
