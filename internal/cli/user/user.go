package user

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/leadboard/internal/cli"
	"github.com/thenoetrevino/leadboard/internal/models"
)

// UserCmd returns the user parent command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage CRM users",
	}

	cmd.AddCommand(addCmd())
	cmd.AddCommand(listCmd())

	return cmd
}

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a user",
		Long: `Add a user. The name is what the config's user field or
LEADBOARD_USER refers to.

Examples:
  leadboard user add alice --role admin
  leadboard user add bob
`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().String("role", string(models.RoleStaff), "Role: admin or staff")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)
	roleFlag, _ := cmd.Flags().GetString("role")

	role := models.Role(roleFlag)
	if !role.Valid() {
		return formatter.Usage("INVALID_ROLE", fmt.Sprintf("invalid role %q", roleFlag), "Use --role admin or --role staff")
	}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	u, err := cliInstance.App.Repo.CreateUser(ctx, args[0], role)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", u.ID)
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("user", u)
	}

	fmt.Printf("✓ User '%s' created (ID: %d, role: %s)\n", u.Name, u.ID, u.Role)
	return nil
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.FormatterFor(cmd)

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		return formatter.Fail(err)
	}
	defer cliInstance.CloseQuietly()

	users, err := cliInstance.App.Repo.ListUsers(ctx)
	if err != nil {
		return formatter.Fail(err)
	}

	if formatter.Quiet {
		for _, u := range users {
			fmt.Printf("%d\n", u.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess("users", users)
	}

	if len(users) == 0 {
		fmt.Println("No users found")
		return nil
	}
	for _, u := range users {
		fmt.Printf("  %d. %s (%s)\n", u.ID, u.Name, u.Role)
	}
	return nil
}
