package board

import (
	"strings"

	"github.com/thenoetrevino/leadboard/internal/models"
)

// Filter returns the board restricted to leads whose title or company
// contains query, ignoring case. Columns are always kept, even when empty.
func (m *Manager) Filter(query string) View {
	return FilterView(m.Snapshot(), query)
}

// FilterView applies the same match to an existing view. An empty query
// returns v unchanged; whitespace is matched like any other text.
func FilterView(v View, query string) View {
	q := strings.ToLower(query)
	if q == "" {
		return v
	}

	out := View{Columns: make([]ColumnView, 0, len(v.Columns))}
	for _, c := range v.Columns {
		cv := ColumnView{Column: c.Column, Leads: make([]*models.Lead, 0, len(c.Leads))}
		for _, l := range c.Leads {
			if strings.Contains(strings.ToLower(l.Title), q) ||
				strings.Contains(strings.ToLower(l.Company), q) {
				cv.Leads = append(cv.Leads, l)
			}
		}
		out.Columns = append(out.Columns, cv)
	}
	return out
}
