package tui

import (
	tea "charm.land/bubbletea/v2"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.drainNotices()
		return m, tick()

	case opDoneMsg:
		if msg.err == nil {
			if msg.removed != 0 {
				delete(m.expanded, msg.removed)
			}
			if msg.info != "" {
				m.info(msg.info)
			}
			if msg.selected != 0 {
				m.selectLead(m.view(), msg.selected)
			}
		}
		m.report(msg.err)
		m.clampSelection(m.view())
		return m, nil

	case ReloadedMsg:
		if msg.Err == nil {
			m.info("board updated elsewhere")
		}
		m.report(msg.Err)
		m.clampSelection(m.view())
		return m, nil
	}

	// the form needs every message, not only key presses
	if m.mode == LeadFormMode {
		return m.handleLeadFormMode(msg)
	}

	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch m.mode {
		case SearchMode:
			return m.handleSearchMode(msg)
		case AddColumnMode:
			return m.handleAddColumnMode(msg)
		case ConfirmMode:
			return m.handleConfirmMode(msg)
		default:
			return m.handleNormalMode(msg)
		}
	}
	return m, nil
}
