package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/leadboard/internal/cli"
	"github.com/thenoetrevino/leadboard/internal/cli/activity"
	"github.com/thenoetrevino/leadboard/internal/cli/column"
	"github.com/thenoetrevino/leadboard/internal/cli/lead"
	"github.com/thenoetrevino/leadboard/internal/cli/user"
	"github.com/thenoetrevino/leadboard/internal/config"
	"github.com/thenoetrevino/leadboard/internal/logging"
)

func newRootCmd() *cobra.Command {
	var logCloser io.Closer

	root := &cobra.Command{
		Use:   "leadboard",
		Short: "Leadboard - a CRM lead pipeline board",
		Long: `Leadboard tracks sales leads through pipeline stages.

Run the board in the terminal with "leadboard tui", serve it to the browser
with "leadboard serve", or script it with the column and lead commands.
Start "leadboard daemon" to keep every open board in sync.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cli.InitStyles(cfg.Theme)
			logCloser, err = logging.Init(cfg.Level())
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}

	root.AddCommand(serveCmd())
	root.AddCommand(tuiCmd())
	root.AddCommand(daemonCmd())
	root.AddCommand(cli.BoardCmd())
	root.AddCommand(column.ColumnCmd())
	root.AddCommand(lead.LeadCmd())
	root.AddCommand(user.UserCmd())
	root.AddCommand(activity.ActivityCmd())

	return root
}
