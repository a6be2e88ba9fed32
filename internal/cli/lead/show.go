package lead

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

// ShowCmd returns the lead show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show lead details",
		Long:  "Display every field of a lead, with its notes rendered as markdown.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	id, err := cli.ParseLeadID(args[0])
	if err != nil {
		return formatter.Usage("INVALID_LEAD_ID", err.Error(), "Usage: leadboard lead show <id>")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	lead, ok := cliInstance.App.Board.Lead(id)
	if !ok {
		return formatter.Fail(fmt.Errorf("lead %d: %w", id, board.ErrLeadNotFound))
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", lead.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("lead", lead)
	}

	stage := lead.Stage
	if c, ok := cliInstance.App.Board.Snapshot().Column(lead.Stage); ok {
		stage = c.Column.Title
	}
	fmt.Println(cli.RenderLead(lead, stage))
	return nil
}
