package cli

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/config"
	"github.com/thenoetrevino/leadboard/internal/models"
)

var (
	// Card styles
	CardStyle   lipgloss.Style
	ColumnStyle lipgloss.Style
	CardWidth   = 72
	ColumnWidth = 30

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style
	ValueStyle    lipgloss.Style
)

func init() {
	InitStyles(config.DefaultTheme())
}

// InitStyles initializes all CLI styles with the given theme
func InitStyles(t config.Theme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.Accent)).
		Width(12)

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Normal))
}

// RenderBoard draws every column side by side with its lead titles
func RenderBoard(v board.View) string {
	if len(v.Columns) == 0 {
		return SubtitleStyle.Render("No columns")
	}
	cols := make([]string, 0, len(v.Columns))
	for _, c := range v.Columns {
		var b strings.Builder
		b.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%d)", c.Column.Title, len(c.Leads))))
		if len(c.Leads) == 0 {
			b.WriteString("\n" + SubtitleStyle.Italic(true).Render("No leads"))
		}
		for _, l := range c.Leads {
			fmt.Fprintf(&b, "\n#%d %s", l.ID, l.Title)
			if l.Company != "" {
				b.WriteString("\n   " + SubtitleStyle.Render(l.Company))
			}
		}
		cols = append(cols, ColumnStyle.Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// RenderLead draws a card with every field of l and its notes as markdown
func RenderLead(l *models.Lead, stageTitle string) string {
	row := func(label, value string) string {
		return LabelStyle.Render(label) + ValueStyle.Render(value)
	}
	lines := []string{
		TitleStyle.Render(fmt.Sprintf("#%d %s", l.ID, l.Title)),
		SubtitleStyle.Render(l.Company),
		"",
		row("Stage", stageTitle),
		row("Status", l.Status),
		row("Score", fmt.Sprintf("%d/%d", l.LeadScore, models.MaxLeadScore)),
		row("Budget", fmt.Sprintf("%.2f", l.Budget)),
		row("Source", l.LeadSource),
		row("Contact", l.Name),
		row("Email", l.Email),
		row("Phone", l.Phone),
	}
	if len(l.Tags) > 0 {
		lines = append(lines, row("Tags", strings.Join(l.Tags, ", ")))
	}
	if len(l.InterestedProducts) > 0 {
		lines = append(lines, row("Products", strings.Join(l.InterestedProducts, ", ")))
	}
	if l.Notes != "" {
		lines = append(lines, "", RenderMarkdown(l.Notes, CardWidth-6))
	}
	return CardStyle.Render(strings.Join(lines, "\n"))
}

// RenderMarkdown renders notes with glamour, falling back to the raw text
func RenderMarkdown(text string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := renderer.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
