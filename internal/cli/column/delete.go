package column

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <key>",
		Short: "Delete an empty column",
		Long: `Delete a column by key (requires confirmation unless --force, --json or --quiet).

Only admins can delete columns, and only columns that hold no leads.

Examples:
  # Delete with confirmation
  leadboard column delete lost

  # Skip confirmation
  leadboard column delete lost --force
`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	force, _ := cmd.Flags().GetBool("force")
	key := args[0]

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	sess, err := cliInstance.Session(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	// The board checks role and emptiness before it asks
	confirm := board.ConfirmFunc(func(_ context.Context, prompt string) bool {
		ok, err := cli.Confirm(prompt, force, formatter)
		return err == nil && ok
	})
	err = cliInstance.App.Board.DeleteColumn(ctx, sess, key, confirm)
	if errors.Is(err, board.ErrNotConfirmed) {
		fmt.Println("Cancelled")
		return nil
	}
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("column_id", key)
	}

	fmt.Printf("✓ Column %s deleted successfully\n", key)
	return nil
}
