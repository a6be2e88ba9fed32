package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/models"
)

const (
	minColumnWidth = 24
	maxColumnWidth = 40
	// border, header and blank line around the cards of a column
	columnOverhead = 4
	// a collapsed card: border plus title, tag, budget and score lines
	cardHeight = 6
)

// View renders the board, the active prompt and the status line.
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	v := m.view()
	parts := []string{m.renderHeader(v)}
	if m.mode == LeadFormMode && m.leadForm != nil {
		parts = append(parts, m.renderLeadForm())
	} else {
		parts = append(parts, m.renderBoard(v))
	}
	if p := m.renderPrompt(); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, m.renderStatus())

	view.Content = lipgloss.JoinVertical(lipgloss.Left, parts...)
	return view
}

func (m Model) renderHeader(v board.View) string {
	header := m.styles.title.Render("Lead pipeline")
	meta := fmt.Sprintf("  %d leads  %s (%s)", v.LeadCount(), m.sess.Name, m.sess.Role)
	if m.query != "" {
		meta += fmt.Sprintf("  filter: %q", m.query)
	}
	if n := len(m.board.Diverged()); n > 0 {
		meta += fmt.Sprintf("  %d unsaved moves", n)
	}
	return header + m.styles.subtle.Render(meta)
}

func (m Model) columnWidth(n int) int {
	if n == 0 {
		return maxColumnWidth
	}
	w := m.width/n - 2
	return min(max(w, minColumnWidth), maxColumnWidth)
}

func (m Model) renderBoard(v board.View) string {
	if len(v.Columns) == 0 {
		return m.styles.subtle.Render("No columns. Press " + m.keys.AddColumn + " to add one.")
	}

	width := m.columnWidth(len(v.Columns))
	visible := max((m.height-8-columnOverhead)/cardHeight, 1)

	rendered := make([]string, 0, len(v.Columns))
	for i, c := range v.Columns {
		selected := -1
		if i == m.col {
			selected = m.row
		}
		rendered = append(rendered, m.renderColumn(c, i == m.col, selected, width, visible))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderColumn draws a column with a window of cards that keeps the selected
// card in view.
func (m Model) renderColumn(c board.ColumnView, active bool, selected, width, visible int) string {
	header := fmt.Sprintf("%s (%d)", c.Column.Title, len(c.Leads))
	content := m.styles.title.Render(header) + "\n"

	if len(c.Leads) == 0 {
		content += m.styles.subtle.Italic(true).Render("No leads")
	} else {
		offset := 0
		if selected >= visible {
			offset = selected - visible + 1
		}
		end := min(offset+visible, len(c.Leads))
		if offset > 0 {
			content += m.styles.subtle.Render("▲ more above") + "\n"
		}
		for i, lead := range c.Leads[offset:end] {
			content += m.renderCard(lead, offset+i == selected, width-4) + "\n"
		}
		if end < len(c.Leads) {
			content += m.styles.subtle.Render("▼ more below")
		}
	}

	style := m.styles.column
	if active {
		style = m.styles.selectedColumn
	}
	return style.Width(width).Render(strings.TrimRight(content, "\n"))
}

func (m Model) renderCard(lead *models.Lead, selected bool, width int) string {
	style := m.styles.card
	switch {
	case m.drag.IsDragging(lead.ID):
		style = m.styles.draggingCard
	case selected:
		style = m.styles.selectedCard
	}

	marker := "▸ "
	if m.expanded[lead.ID] {
		marker = "▾ "
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(marker + lead.Title),
		m.renderTags(lead.Tags),
		m.styles.normal.Render(fmt.Sprintf("$%.0f", lead.Budget)) + m.styles.subtle.Render("  "+lead.Company),
		m.styles.info.Render(stars(lead.LeadScore)),
	}
	if m.expanded[lead.ID] {
		lines = append(lines, m.renderDetails(lead)...)
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// renderDetails is the expanded part of a card
func (m Model) renderDetails(lead *models.Lead) []string {
	row := func(label, value string) string {
		return m.styles.label.Render(label) + m.styles.normal.Render(value)
	}
	lines := []string{
		"",
		row("Contact", lead.Name),
		row("Email", lead.Email),
		row("Phone", lead.Phone),
		row("Source", lead.LeadSource),
		row("Status", lead.Status),
	}
	if len(lead.InterestedProducts) > 0 {
		lines = append(lines, row("Products", strings.Join(lead.InterestedProducts, ", ")))
	}
	if lead.Notes != "" {
		lines = append(lines, "", m.styles.normal.Render(lead.Notes))
	}
	return lines
}

// renderTags draws one chip per tag, or a dash when there are none
func (m Model) renderTags(tags []string) string {
	if len(tags) == 0 {
		return m.styles.subtle.Render("-")
	}
	chips := make([]string, 0, len(tags))
	for _, t := range tags {
		chips = append(chips, m.styles.tag.Render(t))
	}
	return strings.Join(chips, " ")
}

// stars renders a lead score on a five star scale; stored scores outside
// 1-5 are clamped
func stars(score int) string {
	filled := min(max(score, 0), models.MaxLeadScore)
	return strings.Repeat("★", filled) + strings.Repeat("☆", models.MaxLeadScore-filled)
}

func (m Model) renderLeadForm() string {
	width := min(max(m.width-4, minColumnWidth), 72)
	return m.styles.prompt.Width(width).Render(m.leadForm.form.View())
}

func (m Model) renderPrompt() string {
	switch m.mode {
	case SearchMode:
		return m.styles.prompt.Render(m.search.View())
	case AddColumnMode:
		return m.styles.prompt.Render(m.columnInput.View())
	case ConfirmMode:
		if m.confirm != nil {
			return m.styles.prompt.Render(m.confirm.prompt + " (y/n)")
		}
	}
	return ""
}

func (m Model) renderStatus() string {
	if len(m.status) == 0 {
		if m.mode == LeadFormMode {
			return m.styles.subtle.Render("tab next field  " + m.keys.SaveForm + " save  esc discard")
		}
		if p, ok := m.drag.Active(); ok {
			return m.styles.info.Render(fmt.Sprintf("dragging from %s: %s drop  esc cancel", p.Origin, m.keys.GrabLead))
		}
		return m.styles.subtle.Render(m.helpLine())
	}
	lines := make([]string, 0, len(m.status))
	for _, n := range m.status {
		style := m.styles.info
		if n.Level == board.LevelError {
			style = m.styles.err
		}
		lines = append(lines, style.Render(n.Message))
	}
	return strings.Join(lines, "\n")
}

func (m Model) helpLine() string {
	k := m.keys
	return strings.Join([]string{
		k.PrevColumn + "/" + k.NextColumn + " columns",
		k.PrevLead + "/" + k.NextLead + " leads",
		k.ToggleLead + " details",
		k.GrabLead + " move",
		k.AddLead + "/" + k.EditLead + " add/edit lead",
		k.Search + " search",
		k.AddColumn + " add column",
		k.DeleteColumn + " delete column",
		k.DeleteLead + " delete lead",
		k.Reload + " reload",
		k.Quit + " quit",
	}, "  ")
}
