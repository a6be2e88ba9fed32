package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

// DeleteCmd returns the lead delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a lead",
		Long: `Delete a lead by ID (requires confirmation unless --force, --json or --quiet).

Examples:
  leadboard lead delete 12
  leadboard lead delete 12 --force
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

	id, err := cli.ParseLeadID(args[0])
	if err != nil {
		return formatter.Usage("INVALID_LEAD_ID", err.Error(), "Usage: leadboard lead delete <id>")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	sess, err := cliInstance.Session(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	confirm := board.ConfirmFunc(func(_ context.Context, prompt string) bool {
		ok, err := cli.Confirm(prompt, force, formatter)
		return err == nil && ok
	})
	err = cliInstance.App.Board.DeleteCard(ctx, sess, id, confirm)
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
		return formatter.JSONSuccess("lead_id", id)
	}

	fmt.Printf("✓ Lead %d deleted successfully\n", id)
	return nil
}
