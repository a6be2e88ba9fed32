package lead

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

// EditCmd returns the lead edit subcommand
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a lead",
		Long: `Edit a lead. Only the flags you pass change; the rest keep their values.

Examples:
  leadboard lead edit 12 --status Contacted --score 5
  leadboard lead edit 12 --notes "## Call notes\n- wants a demo"
`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cli.AddLeadFlags(cmd)
	cmd.Flags().String("stage", "", "Move to the column with this key")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseLeadID(args[0])
	if err != nil {
		return formatter.Usage("INVALID_LEAD_ID", err.Error(), "Usage: leadboard lead edit <id> [flags]")
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

	current, ok := cliInstance.App.Board.Lead(id)
	if !ok {
		return formatter.Fail(fmt.Errorf("lead %d: %w", id, board.ErrLeadNotFound))
	}
	patch := cli.LeadFromFlags(cmd, current)
	// an empty stage keeps the lead where it is
	patch.Stage, _ = cmd.Flags().GetString("stage")

	lead, err := cliInstance.App.Board.EditCard(ctx, sess, id, patch)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", lead.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("lead", lead)
	}

	fmt.Printf("✓ Lead %d updated successfully\n", lead.ID)
	return nil
}
