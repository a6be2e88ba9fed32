package column

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/leadboard/internal/cli"
	"github.com/thenoetrevino/leadboard/internal/models"
	clitest "github.com/thenoetrevino/leadboard/internal/testutil/cli"
)

func columnKeys(t *testing.T, output string) []string {
	t.Helper()
	return strings.Fields(output)
}

func TestAddColumn_Integration(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantKeys     []string
		verifyOutput func(t *testing.T, output string)
	}{
		{
			name:     "append to end",
			args:     []string{"Proposal Sent"},
			wantKeys: []string{"new", "qualified", "won", "proposal-sent"},
			verifyOutput: func(t *testing.T, output string) {
				assert.Contains(t, output, "Column 'Proposal Sent' created successfully")
			},
		},
		{
			name:     "insert after",
			args:     []string{"Negotiation", "--after", "qualified"},
			wantKeys: []string{"new", "qualified", "negotiation", "won"},
		},
		{
			name:     "json output",
			args:     []string{"Lost", "--json"},
			wantKeys: []string{"new", "qualified", "won", "lost"},
			verifyOutput: func(t *testing.T, output string) {
				var result map[string]any
				require.NoError(t, json.Unmarshal([]byte(output), &result))
				assert.True(t, result["success"].(bool))
				column := result["column"].(map[string]any)
				assert.Equal(t, "lost", column["id"])
				assert.Equal(t, "Lost", column["title"])
			},
		},
		{
			name:     "quiet output",
			args:     []string{"On Hold", "--quiet"},
			wantKeys: []string{"new", "qualified", "won", "on-hold"},
			verifyOutput: func(t *testing.T, output string) {
				assert.Equal(t, "on-hold", strings.TrimSpace(output))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := clitest.SetupCLITest(t, "alice", models.RoleStaff)

			output, err := clitest.ExecuteCLICommand(t, a, AddCmd(), tt.args)
			require.NoError(t, err)
			if tt.verifyOutput != nil {
				tt.verifyOutput(t, output)
			}

			listed, err := clitest.ExecuteCLICommand(t, a, ListCmd(), []string{"--quiet"})
			require.NoError(t, err)
			assert.Equal(t, tt.wantKeys, columnKeys(t, listed))
		})
	}
}

func TestAddColumn_ErrorCases(t *testing.T) {
	a := clitest.SetupCLITest(t, "alice", models.RoleStaff)

	_, err := clitest.ExecuteCLICommand(t, a, AddCmd(), []string{"   "})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeOf(err))

	_, err = clitest.ExecuteCLICommand(t, a, AddCmd(), []string{"Won"})
	assert.Equal(t, cli.ExitConflict, cli.ExitCodeOf(err), "slug collision")

	_, err = clitest.ExecuteCLICommand(t, a, AddCmd(), []string{"Later", "--after", "missing"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeOf(err))
}

func TestDeleteColumn_Integration(t *testing.T) {
	t.Run("admin deletes empty column", func(t *testing.T) {
		a := clitest.SetupCLITest(t, "alice", models.RoleAdmin)

		output, err := clitest.ExecuteCLICommand(t, a, DeleteCmd(), []string{"won", "--force"})
		require.NoError(t, err)
		assert.Contains(t, output, "Column won deleted successfully")
		assert.Len(t, a.Board.Snapshot().Columns, 2)
	})

	t.Run("staff is refused", func(t *testing.T) {
		a := clitest.SetupCLITest(t, "bob", models.RoleStaff)

		_, err := clitest.ExecuteCLICommand(t, a, DeleteCmd(), []string{"won", "--force"})
		assert.Equal(t, cli.ExitUnauthorized, cli.ExitCodeOf(err))
		assert.Len(t, a.Board.Snapshot().Columns, 3)
	})

	t.Run("column with leads is refused", func(t *testing.T) {
		a := clitest.SetupCLITest(t, "alice", models.RoleAdmin)
		lead := clitest.AddTestLead(t, a, "Acme")
		require.NoError(t, a.Board.MoveCard(t.Context(), lead.ID, "new", "won"))
		a.Board.Wait()

		output, err := clitest.ExecuteCLICommand(t, a, DeleteCmd(), []string{"won", "--json"})
		assert.Equal(t, cli.ExitConflict, cli.ExitCodeOf(err))
		assert.Contains(t, output, "cannot delete: contains leads")
	})

	t.Run("declined prompt cancels", func(t *testing.T) {
		a := clitest.SetupCLITest(t, "alice", models.RoleAdmin)
		prompt := cli.Prompt
		cli.Prompt = func(string) (bool, error) { return false, nil }
		t.Cleanup(func() { cli.Prompt = prompt })

		output, err := clitest.ExecuteCLICommand(t, a, DeleteCmd(), []string{"won"})
		require.NoError(t, err)
		assert.Contains(t, output, "Cancelled")
		assert.Len(t, a.Board.Snapshot().Columns, 3)
	})
}
