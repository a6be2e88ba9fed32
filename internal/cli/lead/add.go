package lead

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/cli"
)

// AddCmd returns the lead add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a lead to the default column",
		Long: `Add a lead. New leads always start in the default column.

Examples:
  leadboard lead add --title "Acme renewal" --company Acme \
    --name "Jane Doe" --email jane@acme.test --phone 555-0100 \
    --source Website --score 4 --tags Hot,Enterprise

  # Quiet mode for bash capture
  LEAD_ID=$(leadboard lead add ... --quiet)
`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}

	cli.AddLeadFlags(cmd)
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	sess, err := cliInstance.Session(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	lead, err := cliInstance.App.Board.AddCard(ctx, sess, cli.LeadFromFlags(cmd, cli.NewLeadDefaults()))
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

	fmt.Printf("✓ Lead '%s' created successfully (ID: %d)\n", lead.Title, lead.ID)
	fmt.Printf("  Stage: %s\n", lead.Stage)
	return nil
}
