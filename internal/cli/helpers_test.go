package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/types"
)

func TestParseLeadID(t *testing.T) {
	id, err := ParseLeadID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, types.LeadID(12), id)

	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		_, err := ParseLeadID(bad)
		assert.Error(t, err, bad)
	}
}

func TestConfirmSkipsPromptForMachines(t *testing.T) {
	prompt := Prompt
	asked := 0
	Prompt = func(string) (bool, error) { asked++; return false, nil }
	t.Cleanup(func() { Prompt = prompt })

	for _, f := range []*OutputFormatter{{JSON: true}, {Quiet: true}} {
		ok, err := Confirm("sure?", false, f)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := Confirm("sure?", true, &OutputFormatter{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Zero(t, asked)

	ok, err = Confirm("sure?", false, &OutputFormatter{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, asked)
}

func parseLeadFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "x"}
	AddLeadFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLeadFromFlags_OverlaysOnlyChanged(t *testing.T) {
	base := &models.Lead{
		ID:        7,
		Title:     "Acme",
		Email:     "a@acme.test",
		LeadScore: 2,
		Tags:      []string{"Cold"},
		Stage:     "qualified",
	}
	cmd := parseLeadFlags(t, "--score", "5", "--tags", "Hot,Referral", "--client", "9")

	got := LeadFromFlags(cmd, base)
	assert.Equal(t, "Acme", got.Title)
	assert.Equal(t, "a@acme.test", got.Email)
	assert.Equal(t, 5, got.LeadScore)
	assert.Equal(t, []string{"Hot", "Referral"}, got.Tags)
	require.NotNil(t, got.ClientID)
	assert.Equal(t, types.ClientID(9), *got.ClientID)
	assert.Equal(t, "qualified", got.Stage)

	assert.Equal(t, []string{"Cold"}, base.Tags, "base is not modified")
}

func TestRenderBoard(t *testing.T) {
	v := board.View{Columns: []board.ColumnView{
		{Column: models.Column{Key: "new", Title: "New"}, Leads: []*models.Lead{{ID: 1, Title: "Acme", Company: "Acme Corp"}}},
		{Column: models.Column{Key: "won", Title: "Won"}, Leads: []*models.Lead{}},
	}}

	out := RenderBoard(v)
	assert.Contains(t, out, "New (1)")
	assert.Contains(t, out, "#1 Acme")
	assert.Contains(t, out, "Won (0)")
	assert.Contains(t, out, "No leads")
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	out := RenderMarkdown("## Call notes\n\n- wants a demo", 60)
	assert.Contains(t, out, "Call notes")
	assert.Contains(t, out, "wants a demo")
}
