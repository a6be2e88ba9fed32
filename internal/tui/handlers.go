package tui

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/dnd"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/tui/huhforms"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// ============================================================================
// NORMAL MODE HANDLERS
// ============================================================================

// handleNormalMode dispatches key events in NormalMode to specific handlers.
func (m Model) handleNormalMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.status = nil

	key := msg.String()
	km := m.keys

	switch key {
	case km.Quit, "ctrl+c":
		return m.handleQuit()
	case "esc":
		return m.handleEscape()
	case km.PrevColumn, "left":
		return m.handleNavigateLeft()
	case km.NextColumn, "right":
		return m.handleNavigateRight()
	case km.NextLead, "down":
		return m.handleNavigateDown()
	case km.PrevLead, "up":
		return m.handleNavigateUp()
	case km.ToggleLead:
		return m.handleToggleLead()
	case km.GrabLead, " ":
		return m.handleGrabOrDrop()
	case km.AddLead:
		return m.handleAddLead()
	case km.EditLead:
		return m.handleEditLead()
	case km.DeleteLead:
		return m.handleDeleteLead()
	case km.AddColumn:
		return m.handleAddColumn()
	case km.DeleteColumn:
		return m.handleDeleteColumn()
	case km.Search:
		return m.handleEnterSearch()
	case km.Reload:
		return m.handleReload()
	}

	return m, nil
}

// handleQuit exits the application.
func (m Model) handleQuit() (tea.Model, tea.Cmd) {
	m.drag.Cancel()
	return m, tea.Quit
}

// handleEscape cancels an in-flight drag, otherwise clears an applied search.
func (m Model) handleEscape() (tea.Model, tea.Cmd) {
	if p, ok := m.drag.Active(); ok {
		m.drag.Cancel()
		m.selectLead(m.view(), p.LeadID)
		m.info("move cancelled")
		return m, nil
	}
	if m.query != "" {
		m.query = ""
		m.search.Reset()
		m.clampSelection(m.view())
	}
	return m, nil
}

func (m Model) handleNavigateLeft() (tea.Model, tea.Cmd) {
	if m.col > 0 {
		m.col--
		m.clampSelection(m.view())
	}
	return m, nil
}

func (m Model) handleNavigateRight() (tea.Model, tea.Cmd) {
	v := m.view()
	if m.col < len(v.Columns)-1 {
		m.col++
		m.clampSelection(v)
	}
	return m, nil
}

func (m Model) handleNavigateDown() (tea.Model, tea.Cmd) {
	if m.dragging() {
		return m, nil
	}
	c, ok := m.currentColumn(m.view())
	if ok && m.row < len(c.Leads)-1 {
		m.row++
	}
	return m, nil
}

func (m Model) handleNavigateUp() (tea.Model, tea.Cmd) {
	if m.dragging() {
		return m, nil
	}
	if m.row > 0 {
		m.row--
	}
	return m, nil
}

// handleToggleLead flips the expanded state of the selected card only.
func (m Model) handleToggleLead() (tea.Model, tea.Cmd) {
	lead := m.currentLead(m.view())
	if lead == nil {
		return m, nil
	}
	if m.expanded[lead.ID] {
		delete(m.expanded, lead.ID)
	} else {
		m.expanded[lead.ID] = true
	}
	return m, nil
}

func (m Model) dragging() bool {
	_, ok := m.drag.Active()
	return ok
}

// handleGrabOrDrop starts a drag on the selected card, or drops the card
// being dragged onto the selected column.
func (m Model) handleGrabOrDrop() (tea.Model, tea.Cmd) {
	v := m.view()
	if p, ok := m.drag.Active(); ok {
		c, ok := m.currentColumn(v)
		if !ok {
			m.drag.Cancel()
			return m, nil
		}
		err := m.drag.Drop(m.ctx, c.Column.Key)
		m.report(err)
		if err == nil {
			m.selectLead(m.view(), p.LeadID)
		}
		return m, nil
	}

	lead := m.currentLead(v)
	if lead == nil {
		return m, nil
	}
	err := m.drag.Begin(dnd.Payload{Kind: dnd.KindLead, LeadID: lead.ID, Origin: lead.Stage})
	if errors.Is(err, dnd.ErrDragInProgress) {
		return m, nil
	}
	m.info(fmt.Sprintf("moving %q: pick a column and press %s", lead.Title, m.keys.GrabLead))
	return m, nil
}

// handleAddLead opens an empty lead form. New leads always land in the
// default column.
func (m Model) handleAddLead() (tea.Model, tea.Cmd) {
	if m.dragging() {
		return m, nil
	}
	return m.openLeadForm(nil)
}

// handleEditLead opens the form on the selected card. The card keeps its
// expanded state.
func (m Model) handleEditLead() (tea.Model, tea.Cmd) {
	lead := m.currentLead(m.view())
	if lead == nil || m.dragging() {
		return m, nil
	}
	return m.openLeadForm(lead)
}

func (m Model) openLeadForm(base *models.Lead) (tea.Model, tea.Cmd) {
	st := &leadFormState{fields: huhforms.NewLeadFields()}
	if base != nil {
		st.base = base.Clone()
		st.fields = huhforms.FieldsFromLead(base)
	}
	st.form = huhforms.CreateLeadForm(&st.fields, base != nil).
		WithTheme(huhforms.CreateTheme(m.theme))
	m.leadForm = st
	m.mode = LeadFormMode
	return m, st.form.Init()
}

// handleDeleteLead asks before removing the selected card.
func (m Model) handleDeleteLead() (tea.Model, tea.Cmd) {
	lead := m.currentLead(m.view())
	if lead == nil || m.dragging() {
		return m, nil
	}
	id, title := lead.ID, lead.Title
	return m.askConfirm(fmt.Sprintf("Delete lead %q?", title), func() tea.Cmd {
		return m.deleteLeadCmd(id, title)
	})
}

func (m Model) handleAddColumn() (tea.Model, tea.Cmd) {
	if m.dragging() {
		return m, nil
	}
	m.columnInput.Reset()
	m.mode = AddColumnMode
	return m, m.columnInput.Focus()
}

// handleDeleteColumn asks before removing the selected column. Role and
// emptiness are checked by the board when the answer is yes.
func (m Model) handleDeleteColumn() (tea.Model, tea.Cmd) {
	c, ok := m.currentColumn(m.view())
	if !ok || m.dragging() {
		return m, nil
	}
	key, title := c.Column.Key, c.Column.Title
	return m.askConfirm(fmt.Sprintf("Delete column %q?", title), func() tea.Cmd {
		return m.deleteColumnCmd(key, title)
	})
}

func (m Model) handleEnterSearch() (tea.Model, tea.Cmd) {
	if m.dragging() {
		return m, nil
	}
	m.search.SetValue(m.query)
	m.mode = SearchMode
	return m, m.search.Focus()
}

func (m Model) handleReload() (tea.Model, tea.Cmd) {
	if m.dragging() {
		return m, nil
	}
	b := m.board
	ctx := m.ctx
	return m, func() tea.Msg {
		return opDoneMsg{err: b.Load(ctx), info: "board reloaded"}
	}
}

// ============================================================================
// SEARCH MODE HANDLERS
// ============================================================================

// handleSearchMode feeds keys to the search input; the board filters live.
func (m Model) handleSearchMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query = m.search.Value()
		m.search.Blur()
		m.mode = NormalMode
		m.clampSelection(m.view())
		return m, nil
	case "esc":
		m.query = ""
		m.search.Reset()
		m.search.Blur()
		m.mode = NormalMode
		m.clampSelection(m.view())
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.clampSelection(m.view())
	return m, cmd
}

// ============================================================================
// ADD COLUMN MODE HANDLERS
// ============================================================================

func (m Model) handleAddColumnMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := m.columnInput.Value()
		after := ""
		if c, ok := m.currentColumn(m.view()); ok {
			after = c.Column.Key
		}
		m.columnInput.Blur()
		m.mode = NormalMode
		return m, m.addColumnCmd(title, after)
	case "esc":
		m.columnInput.Blur()
		m.mode = NormalMode
		return m, nil
	}

	var cmd tea.Cmd
	m.columnInput, cmd = m.columnInput.Update(msg)
	return m, cmd
}

// ============================================================================
// LEAD FORM MODE HANDLERS
// ============================================================================

// handleLeadFormMode forwards messages to the huh form. esc discards the
// form and the save key submits it as it stands.
func (m Model) handleLeadFormMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	st := m.leadForm
	if st == nil {
		m.mode = NormalMode
		return m, nil
	}

	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "esc":
			m.closeLeadForm()
			m.info("cancelled")
			return m, nil
		case m.keys.SaveForm:
			m.closeLeadForm()
			return m, m.saveLeadCmd(st)
		}
	}

	model, cmd := st.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		st.form = f
	}

	switch st.form.State {
	case huh.StateCompleted:
		m.closeLeadForm()
		if !st.fields.Confirm {
			m.info("cancelled")
			return m, nil
		}
		return m, m.saveLeadCmd(st)
	case huh.StateAborted:
		m.closeLeadForm()
		m.info("cancelled")
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeLeadForm() {
	m.leadForm = nil
	m.mode = NormalMode
}

// ============================================================================
// CONFIRM MODE HANDLERS
// ============================================================================

func (m Model) askConfirm(prompt string, run func() tea.Cmd) (tea.Model, tea.Cmd) {
	m.confirm = &pendingConfirm{prompt: prompt, run: run}
	m.mode = ConfirmMode
	return m, nil
}

func (m Model) handleConfirmMode(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		run := m.confirm.run
		m.confirm = nil
		m.mode = NormalMode
		return m, run()
	case "n", "N", "esc":
		m.confirm = nil
		m.mode = NormalMode
		m.info("cancelled")
		return m, nil
	}
	return m, nil
}

// ============================================================================
// BOARD COMMANDS
// ============================================================================

func (m Model) addColumnCmd(title, after string) tea.Cmd {
	b, ctx, sess := m.board, m.ctx, m.sess
	return func() tea.Msg {
		col, err := b.AddColumn(ctx, sess, title, after)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: fmt.Sprintf("added column %q", col.Title)}
	}
}

func (m Model) deleteColumnCmd(key, title string) tea.Cmd {
	b, ctx, sess := m.board, m.ctx, m.sess
	return func() tea.Msg {
		err := b.DeleteColumn(ctx, sess, key, board.Confirmed(true))
		return opDoneMsg{err: err, info: fmt.Sprintf("deleted column %q", title)}
	}
}

// saveLeadCmd adds or edits the lead described by a submitted form
func (m Model) saveLeadCmd(st *leadFormState) tea.Cmd {
	lead, err := st.fields.Apply(st.base)
	if err != nil {
		return func() tea.Msg { return opDoneMsg{err: err} }
	}
	b, ctx, sess := m.board, m.ctx, m.sess

	if st.base == nil {
		return func() tea.Msg {
			added, err := b.AddCard(ctx, sess, lead)
			if err != nil {
				return opDoneMsg{err: err}
			}
			return opDoneMsg{info: fmt.Sprintf("added lead %q", added.Title), selected: added.ID}
		}
	}

	id := st.base.ID
	// an empty stage keeps whichever column the lead is in by now
	lead.Stage = ""
	return func() tea.Msg {
		updated, err := b.EditCard(ctx, sess, id, lead)
		if err != nil {
			return opDoneMsg{err: err}
		}
		return opDoneMsg{info: fmt.Sprintf("saved lead %q", updated.Title)}
	}
}

func (m Model) deleteLeadCmd(id types.LeadID, title string) tea.Cmd {
	b, ctx, sess := m.board, m.ctx, m.sess
	return func() tea.Msg {
		err := b.DeleteCard(ctx, sess, id, board.Confirmed(true))
		return opDoneMsg{err: err, info: fmt.Sprintf("deleted lead %q", title), removed: id}
	}
}
