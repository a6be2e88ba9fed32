// Package launcher runs the terminal board for the current user.
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/leadboard/internal/cli"
	"github.com/thenoetrevino/leadboard/internal/tui"
)

// Launch opens the board, joins live sync when the daemon runs and blocks
// until the user quits or the process is signalled.
func Launch(parent context.Context) error {
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return err
	}
	defer cliInstance.CloseQuietly()
	a := cliInstance.App

	sess, err := cliInstance.Session(ctx)
	if err != nil {
		return err
	}

	model := tui.New(ctx, a.Board, sess, tui.Options{
		Keys:    a.Config.KeyMappings,
		Theme:   a.Config.Theme,
		Notices: a.Notices,
	})
	p := tea.NewProgram(model, tea.WithContext(ctx))

	if a.Events() == nil {
		slog.Info("continuing without live updates")
	} else if err := a.Sync(ctx, func(err error) { p.Send(tui.ReloadedMsg{Err: err}) }); err != nil {
		slog.Warn("live sync unavailable", "error", err)
	}

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		// give the program a moment to restore the terminal
		select {
		case <-errChan:
		case <-time.After(2 * time.Second):
		}
	}

	return nil
}
