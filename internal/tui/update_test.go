package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/database"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
	"github.com/thenoetrevino/leadboard/internal/tui/huhforms"
)

var (
	admin = session.Session{UserID: 1, Name: "alice", Role: models.RoleAdmin}
	staff = session.Session{UserID: 2, Name: "bob", Role: models.RoleStaff}
)

func key(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Text: s, Code: []rune(s)[0]})
}

var (
	enter = tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})
	esc   = tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})
	space = tea.KeyPressMsg(tea.Key{Code: tea.KeySpace, Text: " "})
)

type fixture struct {
	board   *board.Manager
	notices *board.Notices
}

// setupTestModel builds a model over a fresh in-memory board holding the
// given leads in the default column.
func setupTestModel(t *testing.T, sess session.Session, titles ...string) (Model, fixture) {
	t.Helper()
	ctx := context.Background()
	db, err := database.InitDB(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	notices := board.NewNotices()
	b := board.New(database.NewRepository(db), board.WithNotifier(notices))
	require.NoError(t, b.Load(ctx))
	for _, title := range titles {
		_, err := b.AddCard(ctx, staff, &models.Lead{
			Title:      title,
			Company:    title + " Inc",
			Name:       "Jane Doe",
			Email:      "jane@example.com",
			Phone:      "555-0100",
			LeadSource: models.SourceWebsite,
			LeadScore:  4,
			Status:     models.StatusNew,
		})
		require.NoError(t, err)
	}
	t.Cleanup(b.Wait)

	m := New(ctx, b, sess, Options{Notices: notices})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model), fixture{board: b, notices: notices}
}

// press feeds keys through Update, running any command that finishes a
// board operation so its result lands in the model. Commands returned while
// a text input has focus are cursor blinks and are skipped.
func press(t *testing.T, m Model, keys ...tea.KeyPressMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = next.(Model)
		if cmd == nil || m.Mode() != NormalMode {
			continue
		}
		if msg, ok := cmd().(opDoneMsg); ok {
			next, _ = m.Update(msg)
			m = next.(Model)
		}
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyPressMsg(tea.Key{Text: string(r), Code: r}))
	}
	return m
}

func TestNavigation(t *testing.T) {
	m, _ := setupTestModel(t, staff, "A", "B")

	m = press(t, m, key("j"))
	assert.Equal(t, 1, m.row)
	m = press(t, m, key("j"))
	assert.Equal(t, 1, m.row, "cursor stays on the last card")

	m = press(t, m, key("l"))
	assert.Equal(t, 1, m.col)
	assert.Equal(t, 0, m.row, "empty column clamps the row")

	m = press(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyRight}), tea.KeyPressMsg(tea.Key{Code: tea.KeyRight}))
	assert.Equal(t, 2, m.col, "cursor stops at the last column")

	m = press(t, m, key("h"), key("h"), key("h"))
	assert.Equal(t, 0, m.col)
}

func TestToggleExpandIsPerCard(t *testing.T) {
	m, f := setupTestModel(t, staff, "A", "B")
	v := f.board.Snapshot()
	a, b := v.Columns[0].Leads[0].ID, v.Columns[0].Leads[1].ID

	m = press(t, m, enter)
	assert.True(t, m.expanded[a])

	m = press(t, m, key("j"), enter)
	assert.True(t, m.expanded[a], "expanding one card leaves the other open")
	assert.True(t, m.expanded[b])

	m = press(t, m, enter)
	assert.False(t, m.expanded[b])
	assert.True(t, m.expanded[a])
}

func TestDragMovesLeadToSelectedColumn(t *testing.T) {
	m, f := setupTestModel(t, staff, "A")
	id := f.board.Snapshot().Columns[0].Leads[0].ID

	m = press(t, m, space)
	assert.True(t, m.drag.IsDragging(id))

	m = press(t, m, key("l"), space)
	assert.False(t, m.dragging())
	f.board.Wait()

	_, stage, ok := f.board.Snapshot().Find(id)
	require.True(t, ok)
	assert.Equal(t, "qualified", stage)
	assert.Equal(t, 1, m.col, "selection follows the moved card")
	assert.Equal(t, 0, m.row)
}

func TestDropOnOriginIsNoop(t *testing.T) {
	m, f := setupTestModel(t, staff, "A", "B")
	before := f.board.Snapshot()

	m = press(t, m, space, space)
	assert.False(t, m.dragging())
	assert.Equal(t, before, f.board.Snapshot())
}

func TestEscapeCancelsDrag(t *testing.T) {
	m, f := setupTestModel(t, staff, "A")
	id := f.board.Snapshot().Columns[0].Leads[0].ID

	m = press(t, m, space, key("l"), esc)
	assert.False(t, m.dragging())
	assert.Equal(t, 0, m.col, "cursor returns to the grabbed card")

	_, stage, _ := f.board.Snapshot().Find(id)
	assert.Equal(t, "new", stage)
}

func TestSearchFiltersLive(t *testing.T) {
	m, _ := setupTestModel(t, staff, "Acme Deal", "Globex Renewal")

	m = press(t, m, key("/"))
	require.Equal(t, SearchMode, m.Mode())
	m = typeText(t, m, "globex")
	assert.Len(t, m.view().Columns[0].Leads, 1)
	assert.Len(t, m.view().Columns, 3, "columns stay visible while filtering")

	m = press(t, m, enter)
	assert.Equal(t, NormalMode, m.Mode())
	assert.Equal(t, "globex", m.query)
	assert.Len(t, m.view().Columns[0].Leads, 1)

	m = press(t, m, esc)
	assert.Empty(t, m.query)
	assert.Len(t, m.view().Columns[0].Leads, 2)
}

func TestAddColumnAfterCurrent(t *testing.T) {
	m, f := setupTestModel(t, staff)

	m = press(t, m, key("a"))
	require.Equal(t, AddColumnMode, m.Mode())
	m = typeText(t, m, "Proposal Sent")
	m = press(t, m, enter)

	assert.Equal(t, NormalMode, m.Mode())
	v := f.board.Snapshot()
	require.Len(t, v.Columns, 4)
	assert.Equal(t, "proposal-sent", v.Columns[1].Column.Key)
}

func TestAddColumnRejectsEmptyTitle(t *testing.T) {
	m, f := setupTestModel(t, staff)

	m = press(t, m, key("a"), enter)
	assert.Len(t, f.board.Snapshot().Columns, 3)
	require.NotEmpty(t, m.Status())
	assert.Equal(t, board.LevelError, m.Status()[len(m.Status())-1].Level)
}

func TestDeleteColumnRequiresAdmin(t *testing.T) {
	m, f := setupTestModel(t, staff)

	m = press(t, m, key("l"), key("l"), key("x"))
	require.Equal(t, ConfirmMode, m.Mode())
	m = press(t, m, key("y"))

	assert.Len(t, f.board.Snapshot().Columns, 3)
	require.NotEmpty(t, m.Status())
	assert.Equal(t, board.LevelError, m.Status()[0].Level)
}

func TestDeleteColumnAsAdmin(t *testing.T) {
	m, f := setupTestModel(t, admin)

	m = press(t, m, key("l"), key("l"), key("x"), key("y"))
	assert.Len(t, f.board.Snapshot().Columns, 2)
	assert.Equal(t, 1, m.col, "cursor clamps onto the remaining columns")
}

func TestDeleteColumnWithLeadsIsRefused(t *testing.T) {
	m, f := setupTestModel(t, admin, "A")

	m = press(t, m, space, key("l"), space)
	f.board.Wait()
	m = press(t, m, key("x"), key("y"))

	assert.Len(t, f.board.Snapshot().Columns, 3)
	require.NotEmpty(t, m.Status())
	assert.Equal(t, board.LevelError, m.Status()[0].Level)
}

func TestDeleteLeadConfirmation(t *testing.T) {
	m, f := setupTestModel(t, staff, "A")

	m = press(t, m, key("d"), key("n"))
	assert.Equal(t, NormalMode, m.Mode())
	assert.Equal(t, 1, f.board.Snapshot().LeadCount())

	m = press(t, m, enter, key("d"), key("y"))
	assert.Equal(t, 0, f.board.Snapshot().LeadCount())
	assert.Empty(t, m.expanded, "deleted card leaves no expansion behind")
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t, staff)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestViewRendersBoard(t *testing.T) {
	m, _ := setupTestModel(t, staff, "Acme Deal")
	m = press(t, m, enter)

	content := m.View().Content
	assert.Contains(t, content, "New (1)")
	assert.Contains(t, content, "Acme Deal")
	assert.Contains(t, content, "jane@example.com", "expanded card shows contact details")
}

func TestRemoteReloadClampsSelection(t *testing.T) {
	m, f := setupTestModel(t, staff, "A", "B")
	m = press(t, m, key("j"))
	require.Equal(t, 1, m.row)

	lead := f.board.Snapshot().Columns[0].Leads[1]
	require.NoError(t, f.board.DeleteCard(context.Background(), staff, lead.ID, board.Confirmed(true)))

	next, _ := m.Update(ReloadedMsg{})
	m = next.(Model)
	assert.Equal(t, 0, m.row)
	require.NotEmpty(t, m.Status())
	assert.Equal(t, board.LevelInfo, m.Status()[0].Level)
}

var ctrlS = tea.KeyPressMsg(tea.Key{Code: 's', Mod: tea.ModCtrl})

func fillContact(f *huhforms.LeadFields, title string) {
	f.Title = title
	f.Name = "Sam Roe"
	f.Email = "sam@example.com"
	f.Phone = "555-0199"
}

func TestAddLeadForm(t *testing.T) {
	m, f := setupTestModel(t, staff, "A")

	m = press(t, m, key("n"))
	require.Equal(t, LeadFormMode, m.Mode())
	assert.Contains(t, m.View().Content, "New lead")

	fields, ok := m.LeadForm()
	require.True(t, ok)
	fillContact(fields, "Globex Renewal")
	fields.Budget = "1500"
	fields.Tags = []string{"Hot"}

	m = press(t, m, ctrlS)
	assert.Equal(t, NormalMode, m.Mode())
	_, open := m.LeadForm()
	assert.False(t, open)

	col, _ := f.board.Snapshot().Column(f.board.DefaultStage())
	require.Len(t, col.Leads, 2)
	added := col.Leads[1]
	assert.Equal(t, "Globex Renewal", added.Title)
	assert.Equal(t, 1500.0, added.Budget)
	assert.Equal(t, []string{"Hot"}, added.Tags)
	assert.Equal(t, staff.UserID, added.UserID)
	assert.Equal(t, added.ID, m.currentLead(m.view()).ID, "the new card is selected")
}

func TestAddLeadFormReportsValidation(t *testing.T) {
	m, f := setupTestModel(t, staff, "A")

	m = press(t, m, key("n"))
	fields, _ := m.LeadForm()
	fields.Title = "No contact details"

	m = press(t, m, ctrlS)
	assert.Equal(t, 1, f.board.Snapshot().LeadCount())
	require.NotEmpty(t, m.Status())
	assert.Equal(t, board.LevelError, m.Status()[0].Level)
}

func TestLeadFormEscapeDiscards(t *testing.T) {
	m, f := setupTestModel(t, staff, "A")

	m = press(t, m, key("n"))
	fields, _ := m.LeadForm()
	fillContact(fields, "Draft")

	m = press(t, m, esc)
	assert.Equal(t, NormalMode, m.Mode())
	assert.Equal(t, 1, f.board.Snapshot().LeadCount())
	require.NotEmpty(t, m.Status())
	assert.Equal(t, "cancelled", m.Status()[0].Message)
}

func TestEditLeadKeepsExpansion(t *testing.T) {
	m, f := setupTestModel(t, staff, "A", "B")
	m = press(t, m, enter)
	a := m.currentLead(m.view())
	require.True(t, m.expanded[a.ID])

	m = press(t, m, key("e"))
	require.Equal(t, LeadFormMode, m.Mode())
	fields, _ := m.LeadForm()
	assert.Equal(t, "A", fields.Title, "the form starts from the card")
	fields.Title = "A (renewal)"
	fields.Score = 5

	m = press(t, m, ctrlS)
	assert.Equal(t, NormalMode, m.Mode())
	assert.True(t, m.expanded[a.ID], "editing leaves the card expanded")

	got, ok := f.board.Lead(a.ID)
	require.True(t, ok)
	assert.Equal(t, "A (renewal)", got.Title)
	assert.Equal(t, 5, got.LeadScore)
	assert.Equal(t, a.Stage, got.Stage)
	assert.Equal(t, a.Email, got.Email)
}

func TestCollapsedCardShowsTagsBudgetAndScore(t *testing.T) {
	m, f := setupTestModel(t, staff)
	_, err := f.board.AddCard(context.Background(), staff, &models.Lead{
		Title:      "Expansion",
		Company:    "Initech",
		Budget:     2500,
		Tags:       []string{"Enterprise"},
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Phone:      "555-0100",
		LeadSource: models.SourceEmail,
		LeadScore:  3,
		Status:     models.StatusNew,
	})
	require.NoError(t, err)

	content := m.View().Content
	assert.Contains(t, content, "Enterprise")
	assert.Contains(t, content, "$2500")
	assert.Contains(t, content, "Initech")
	assert.Contains(t, content, "★★★☆☆")
	assert.NotContains(t, content, "jane@example.com", "contact details stay hidden until expanded")
}

func TestStarsClampsScore(t *testing.T) {
	assert.Equal(t, "☆☆☆☆☆", stars(-2))
	assert.Equal(t, "★★☆☆☆", stars(2))
	assert.Equal(t, "★★★★★", stars(9))
}
