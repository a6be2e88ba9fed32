package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/leadboard/internal/config"
)

// styles are the lipgloss styles of the board, built once from the theme
type styles struct {
	column         lipgloss.Style
	selectedColumn lipgloss.Style
	card           lipgloss.Style
	selectedCard   lipgloss.Style
	draggingCard   lipgloss.Style
	title          lipgloss.Style
	subtle         lipgloss.Style
	label          lipgloss.Style
	tag            lipgloss.Style
	normal         lipgloss.Style
	info           lipgloss.Style
	err            lipgloss.Style
	prompt         lipgloss.Style
}

func newStyles(t config.Theme) styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.ColumnBorder)).
		Padding(0, 1)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.LeadBorder)).
		Foreground(lipgloss.Color(t.Normal)).
		Padding(0, 1)

	return styles{
		column:         column,
		selectedColumn: column.BorderForeground(lipgloss.Color(t.Accent)),
		card:           card,
		selectedCard:   card.BorderForeground(lipgloss.Color(t.SelectedBorder)),
		draggingCard: card.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.DraggingBorder)),
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Title)),
		subtle: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtle)),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Subtle)).Width(9),
		tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Normal)).
			Background(lipgloss.Color(t.Accent)).
			Padding(0, 1),
		normal: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Normal)),
		info:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.InfoFg)),
		err:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ErrorFg)),
		prompt: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Accent)).
			Padding(0, 1),
	}
}
