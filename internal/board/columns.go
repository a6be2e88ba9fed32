package board

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
	"github.com/thenoetrevino/leadboard/internal/types"
)

const maxColumnTitle = 50

// AddColumn creates a column titled title directly after the column keyed
// afterKey, or at the end when afterKey is empty. The key is the slug of the
// title and must not collide with an existing column.
func (m *Manager) AddColumn(ctx context.Context, sess session.Session, title, afterKey string) (models.Column, error) {
	m.ops.Lock()
	defer m.ops.Unlock()

	title = strings.TrimSpace(title)
	switch {
	case title == "":
		m.notify(LevelError, "column title is required")
		return models.Column{}, ErrEmptyTitle
	case len(title) > maxColumnTitle:
		m.notify(LevelError, ErrTitleTooLong.Error())
		return models.Column{}, ErrTitleTooLong
	}
	key := Slugify(title)
	if key == "" {
		m.notify(LevelError, ErrInvalidTitle.Error())
		return models.Column{}, ErrInvalidTitle
	}

	m.mu.RLock()
	exists := m.columnIndex(key) >= 0
	pos := len(m.columns)
	order := 0
	if pos > 0 {
		order = m.columns[pos-1].Order + 1
	}
	afterMissing := false
	if afterKey != "" {
		if i := m.columnIndex(afterKey); i >= 0 {
			pos = i + 1
			order = m.columns[i].Order + 1
		} else {
			afterMissing = true
		}
	}
	m.mu.RUnlock()

	if exists {
		m.notify(LevelError, fmt.Sprintf("column %q already exists", key))
		return models.Column{}, fmt.Errorf("%w: %s", ErrDuplicateKey, key)
	}
	if afterMissing {
		return models.Column{}, fmt.Errorf("%w: %s", ErrColumnNotFound, afterKey)
	}

	col, err := m.gateway.InsertColumn(ctx, models.Column{Key: key, Title: title, Order: order})
	if err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			m.notify(LevelError, fmt.Sprintf("column %q already exists", key))
			return models.Column{}, fmt.Errorf("%w: %s", ErrDuplicateKey, key)
		}
		m.logger.Error("failed to add column", "key", key, "error", err)
		m.notify(LevelError, "failed to add column")
		return models.Column{}, fmt.Errorf("adding column: %w", err)
	}

	m.mu.Lock()
	// storage shifted every column at or past order; mirror it
	columns := make([]models.Column, 0, len(m.columns)+1)
	for _, c := range m.columns {
		if c.Order >= col.Order {
			c.Order++
		}
		columns = append(columns, c)
	}
	m.columns = slices.Insert(columns, pos, col)
	index := cloneIndex(m.index)
	index[col.Key] = []types.LeadID{}
	m.index = index
	m.mu.Unlock()

	m.logger.Info("column added", "key", col.Key, "order", col.Order, "user", sess.Name)
	m.activity.Record(sess, "column: "+col.Title, models.ActionAdd)
	m.publish()
	return col, nil
}

// DeleteColumn removes an empty column. Only admins may delete columns and
// the caller must confirm.
func (m *Manager) DeleteColumn(ctx context.Context, sess session.Session, key string, confirm Confirmer) error {
	m.ops.Lock()
	defer m.ops.Unlock()

	if !sess.IsAdmin() {
		m.notify(LevelError, "unauthorized: only admins can delete columns")
		return ErrUnauthorized
	}

	m.mu.RLock()
	i := m.columnIndex(key)
	var col models.Column
	if i >= 0 {
		col = m.columns[i]
	}
	held := len(m.index[key])
	m.mu.RUnlock()

	if i < 0 {
		return fmt.Errorf("%w: %s", ErrColumnNotFound, key)
	}
	if key == m.defaultStage {
		m.notify(LevelError, ErrDefaultColumn.Error())
		return ErrDefaultColumn
	}
	if held == 0 {
		// a diverged move can leave storage holding leads memory has moved away
		n, err := m.gateway.CountLeadsInStage(ctx, key)
		if err != nil {
			m.logger.Error("failed to count leads in column", "key", key, "error", err)
			m.notify(LevelError, "failed to delete column")
			return fmt.Errorf("counting leads: %w", err)
		}
		held = n
	}
	if held > 0 {
		m.notify(LevelError, ErrColumnHasLeads.Error())
		return ErrColumnHasLeads
	}

	if !confirmed(ctx, confirm, fmt.Sprintf("Delete column %q?", col.Title)) {
		return ErrNotConfirmed
	}

	if err := m.gateway.DeleteColumn(ctx, key); err != nil {
		m.logger.Error("failed to delete column", "key", key, "error", err)
		m.notify(LevelError, "failed to delete column")
		return fmt.Errorf("deleting column: %w", err)
	}

	m.mu.Lock()
	m.columns = slices.DeleteFunc(slices.Clone(m.columns), func(c models.Column) bool { return c.Key == key })
	index := cloneIndex(m.index)
	delete(index, key)
	m.index = index
	m.mu.Unlock()

	m.logger.Info("column deleted", "key", key, "user", sess.Name)
	m.activity.Record(sess, "column: "+col.Title, models.ActionDelete)
	m.publish()
	return nil
}

// cloneIndex copies the map; the id slices are shared and must be replaced,
// never appended to in place
func cloneIndex(index map[string][]types.LeadID) map[string][]types.LeadID {
	out := make(map[string][]types.LeadID, len(index)+1)
	for k, v := range index {
		out[k] = v
	}
	return out
}
