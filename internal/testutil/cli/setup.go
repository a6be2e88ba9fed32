// Package cli sets up an in-memory app for command tests. It is separate
// from testutil so package tests that testutil's imports depend on do not
// form cycles.
package cli

import (
	"context"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/leadboard/internal/app"
	clipkg "github.com/thenoetrevino/leadboard/internal/cli"
	"github.com/thenoetrevino/leadboard/internal/config"
	"github.com/thenoetrevino/leadboard/internal/logging"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/testutil"
)

// SetupCLITest creates an app over an in-memory database acting as user,
// who is created with role. Cleanup is automatic.
func SetupCLITest(t *testing.T, user string, role models.Role) *app.App {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	cfg.Database = ":memory:"
	cfg.User = user

	a, err := app.New(ctx, cfg, app.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	if _, err := a.Repo.CreateUser(ctx, user, role); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return a
}

// ExecuteCLICommand runs cmd with args against testApp and returns stdout
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := clipkg.WithApp(context.Background(), testApp)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})
	return output, executeErr
}

// AddTestLead puts a valid lead titled title into the default column
func AddTestLead(t *testing.T, a *app.App, title string) *models.Lead {
	t.Helper()
	ctx := context.Background()

	sess, err := a.Sessions.Current(ctx)
	if err != nil {
		t.Fatalf("Failed to resolve session: %v", err)
	}
	if err := a.Board.Load(ctx); err != nil {
		t.Fatalf("Failed to load board: %v", err)
	}
	lead, err := a.Board.AddCard(ctx, sess, &models.Lead{
		Title:      title,
		Company:    title + " Corp",
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "555-0100",
		LeadSource: models.SourceEmail,
		LeadScore:  3,
		Status:     models.StatusNew,
	})
	if err != nil {
		t.Fatalf("Failed to add test lead: %v", err)
	}
	return lead
}
