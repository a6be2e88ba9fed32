package column

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns in board order",
		Long: `List all columns (in order) with their lead counts.

Examples:
  # Human-readable list
  leadboard column list

  # JSON output for agents
  leadboard column list --json

  # Quiet mode (one key per line)
  leadboard column list --quiet
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

type columnInfo struct {
	Key   string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
	Leads int    `json:"leads"`
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	view := cliInstance.App.Board.Snapshot()

	if formatter.Quiet {
		for _, c := range view.Columns {
			fmt.Println(c.Column.Key)
		}
		return nil
	}

	columns := make([]columnInfo, len(view.Columns))
	for i, c := range view.Columns {
		columns[i] = columnInfo{Key: c.Column.Key, Title: c.Column.Title, Order: c.Column.Order, Leads: len(c.Leads)}
	}

	if formatter.JSON {
		return formatter.JSONSuccess("columns", columns)
	}

	if len(columns) == 0 {
		fmt.Println("No columns found")
		return nil
	}
	fmt.Println("Columns:")
	for i, c := range columns {
		fmt.Printf("  %d. %s [%s] (%d leads)\n", i+1, c.Title, c.Key, c.Leads)
	}
	return nil
}
