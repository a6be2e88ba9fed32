package lead

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/cli"
	"github.com/thenoetrevino/leadboard/internal/models"
)

// ListCmd returns the lead list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads",
		Long: `List leads column by column.

Examples:
  # Every lead
  leadboard lead list

  # Leads in one column
  leadboard lead list --stage qualified

  # Title or company search, as JSON
  leadboard lead list --search acme --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().String("stage", "", "Only leads in the column with this key")
	cmd.Flags().String("search", "", "Filter by title or company")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	stage, _ := cmd.Flags().GetString("stage")
	query, _ := cmd.Flags().GetString("search")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	view := cliInstance.App.Board.Filter(query)
	leads := []*models.Lead{}
	for _, c := range view.Columns {
		if stage != "" && c.Column.Key != stage {
			continue
		}
		leads = append(leads, c.Leads...)
	}

	if formatter.Quiet {
		for _, l := range leads {
			fmt.Printf("%d\n", l.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("leads", leads)
	}

	if len(leads) == 0 {
		fmt.Println("No leads found")
		return nil
	}
	for _, l := range leads {
		fmt.Printf("  #%d %s", l.ID, l.Title)
		if l.Company != "" {
			fmt.Printf(" (%s)", l.Company)
		}
		fmt.Printf(" [%s]\n", l.Stage)
	}
	return nil
}
