package main

import (
	"github.com/spf13/cobra"

	"github.com/thenoetrevino/leadboard/internal/launcher"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the board in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return launcher.Launch(cmd.Context())
		},
	}
}
