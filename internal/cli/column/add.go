package column

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

// AddCmd returns the column add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a column",
		Long: `Add a column to the board. Its key is derived from the title.

Examples:
  # Append to the end
  leadboard column add "Proposal Sent"

  # Insert after the qualified column
  leadboard column add "Negotiation" --after qualified

  # Quiet mode for bash capture
  KEY=$(leadboard column add "Lost" --quiet)
`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().String("after", "", "Insert after the column with this key (default: append)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	after, _ := cmd.Flags().GetString("after")
	title := strings.Join(args, " ")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	sess, err := cliInstance.Session(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	column, err := cliInstance.App.Board.AddColumn(ctx, sess, title, after)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Println(column.Key)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("column", column)
	}

	fmt.Printf("✓ Column '%s' created successfully (key: %s)\n", column.Title, column.Key)
	return nil
}
