package activity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/leadboard/internal/models"
	clitest "github.com/thenoetrevino/leadboard/internal/testutil/cli"
)

func TestListActivity(t *testing.T) {
	a := clitest.SetupCLITest(t, "alice", models.RoleStaff)

	output, err := clitest.ExecuteCLICommand(t, a, ActivityCmd(), []string{"list"})
	require.NoError(t, err)
	assert.Contains(t, output, "No activity recorded")

	clitest.AddTestLead(t, a, "Acme")
	a.Activity.Wait()

	output, err = clitest.ExecuteCLICommand(t, a, ActivityCmd(), []string{"list", "--json", "--limit", "5"})
	require.NoError(t, err)

	var result struct {
		Activity []models.Activity `json:"activity"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	require.Len(t, result.Activity, 1)
	assert.Equal(t, "lead: Acme", result.Activity[0].Activity)
	assert.Equal(t, models.ActionAdd, result.Activity[0].Action)
	assert.Equal(t, "alice", result.Activity[0].ActivityBy)
}
