package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// BoardCmd returns the board command, a read-only print of the pipeline
func BoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the pipeline board",
		Long: `Print every column and the leads it holds.

Examples:
  # Whole board
  leadboard board

  # Only leads whose title or company mentions "acme"
  leadboard board --search acme

  # JSON output for agents
  leadboard board --json
`,
		Args: cobra.NoArgs,
		RunE: runBoard,
	}

	cmd.Flags().String("search", "", "Filter leads by title or company")
	AddOutputFlags(cmd)

	return cmd
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := FormatterFor(cmd)
	query, _ := cmd.Flags().GetString("search")

	cliInstance, err := NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	view := cliInstance.App.Board.Filter(query)

	if formatter.Quiet {
		for _, c := range view.Columns {
			for _, l := range c.Leads {
				fmt.Printf("%d\n", l.ID)
			}
		}
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("board", view)
	}

	fmt.Println(RenderBoard(view))
	if n := cliInstance.App.Board.Orphans(); n > 0 {
		fmt.Println(SubtitleStyle.Render(fmt.Sprintf("%d leads reference a missing column and are hidden", n)))
	}
	return nil
}
