package lead

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/cli"
	"github.com/thenoetrevino/leadboard/internal/dnd"
)

// MoveCmd returns the lead move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <id> <column>",
		Short: "Move a lead to another column",
		Long: `Move a lead to the column with the given key.

The move is the same gesture as dragging the card on the board: it is
applied at once and saved in the background. A failed save is reported
but the lead stays where it was dropped until the board is reloaded.

Examples:
  leadboard lead move 12 qualified
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseLeadID(args[0])
	if err != nil {
		return formatter.Usage("INVALID_LEAD_ID", err.Error(), "Usage: leadboard lead move <id> <column>")
	}
	target := args[1]

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	b := cliInstance.App.Board
	lead, ok := b.Lead(id)
	if !ok {
		return formatter.Fail(fmt.Errorf("lead %d: %w", id, board.ErrLeadNotFound))
	}

	drag := dnd.NewCoordinator(b)
	if err := drag.Begin(dnd.Payload{Kind: dnd.KindLead, LeadID: id, Origin: lead.Stage}); err != nil {
		return formatter.Fail(err)
	}
	if err := drag.Drop(ctx, target); err != nil {
		return formatter.Fail(err)
	}

	// Wait so the process does not exit before the save lands
	b.Wait()
	if diverged := b.Diverged(); len(diverged) > 0 {
		return formatter.Fail(fmt.Errorf("lead %d moved on the board but could not be saved", id))
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", id)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("lead", map[string]any{
			"id":   id,
			"from": lead.Stage,
			"to":   target,
		})
	}

	fmt.Printf("✓ Lead %d moved %s → %s\n", id, lead.Stage, target)
	return nil
}
