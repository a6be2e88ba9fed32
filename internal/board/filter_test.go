package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatchesTitleOrCompany(t *testing.T) {
	f := newFixture(t)
	for _, l := range []struct{ stage, title, company string }{
		{"new", "Website Redesign", "Acme"},
		{"new", "Support Renewal", "Globex"},
		{"won", "Acme Expansion", "Initech"},
	} {
		lead := validLead(l.title, l.company)
		lead.Stage = l.stage
		f.gw.seed(lead)
	}
	f.load(t)

	v := f.board.Filter("ACME")
	assert.Len(t, v.Columns, 3, "columns are kept even when empty")
	assert.Len(t, idsIn(v, "new"), 1)
	assert.Len(t, idsIn(v, "won"), 1)
	assert.Empty(t, idsIn(v, "qualified"))

	assert.Equal(t, 1, f.board.Filter("glob").LeadCount())
	assert.Equal(t, 2, f.board.Filter(" r").LeadCount(), "spaces are part of the match")
	assert.Zero(t, f.board.Filter("zzz").LeadCount())
}

func TestFilterEmptyQueryAndPurity(t *testing.T) {
	f := newFixture(t)
	f.seed("new", "A")
	f.seed("won", "B")
	f.load(t)

	full := f.board.Snapshot()
	assert.Equal(t, full, f.board.Filter(""))
	assert.Zero(t, f.board.Filter("   ").LeadCount(), "whitespace is not a blank query")

	once := f.board.Filter("a")
	assert.Equal(t, once, FilterView(once, "a"), "filtering is idempotent")
	assert.Equal(t, full, f.board.Snapshot(), "filtering never mutates the board")
}

func TestFilterSurvivesMoves(t *testing.T) {
	f := newFixture(t)
	id := f.seed("new", "Acme deal")
	f.load(t)

	require.NoError(t, f.board.MoveCard(context.Background(), id, "new", "won"))
	assert.Len(t, idsIn(f.board.Filter("acme"), "won"), 1)
}
