package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/leadboard/internal/api"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board API to the browser",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().String("addr", "", "HTTP listen address (default from config)")
	cmd.Flags().String("static", os.Getenv("LEADBOARD_STATIC_DIR"), "Directory with the built browser front end")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return err
	}
	defer cliInstance.CloseQuietly()
	a := cliInstance.App

	if err := a.Sync(ctx, nil); err != nil {
		a.Logger.Warn("live sync unavailable", "error", err)
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = a.Config.Addr
	}
	staticDir, _ := cmd.Flags().GetString("static")

	srv := api.New(api.Deps{
		Board:     a.Board,
		Sessions:  a.Sessions,
		Activity:  a.Activity,
		Notices:   a.Notices,
		Logger:    a.Logger,
		StaticDir: staticDir,
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("starting server", slog.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	a.Logger.Info("server stopped")
	return nil
}
