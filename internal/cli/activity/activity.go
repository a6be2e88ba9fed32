package activity

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

// ActivityCmd returns the activity parent command
func ActivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Inspect the activity log",
	}

	cmd.AddCommand(listCmd())
	return cmd
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent board changes, newest first",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of records (0 = all)")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	limit, _ := cmd.Flags().GetInt("limit")

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	records, err := cliInstance.App.Activity.List(ctx, limit)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, r := range records {
			fmt.Printf("%d\n", r.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("activity", records)
	}

	if len(records) == 0 {
		fmt.Println("No activity recorded")
		return nil
	}
	for _, r := range records {
		fmt.Printf("  %s %s  %-6s %s (by %s)\n", r.Date, r.Time, r.Action, r.Activity, r.ActivityBy)
	}
	return nil
}
