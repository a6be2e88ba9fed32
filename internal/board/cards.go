package board

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// AddCard validates and persists a new lead in the default column. The
// stage on the input is ignored and the owner defaults to the acting user.
func (m *Manager) AddCard(ctx context.Context, sess session.Session, lead *models.Lead) (*models.Lead, error) {
	m.ops.Lock()
	defer m.ops.Unlock()

	in := lead.Clone()
	in.ID = 0
	in.Stage = m.defaultStage
	if in.UserID == 0 {
		in.UserID = sess.UserID
	}
	if err := in.Validate(); err != nil {
		m.notify(LevelError, err.Error())
		return nil, err
	}

	m.mu.RLock()
	_, hasDefault := m.index[in.Stage]
	m.mu.RUnlock()
	if !hasDefault {
		m.notify(LevelError, fmt.Sprintf("default column %q is missing", in.Stage))
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, in.Stage)
	}

	stored, err := m.gateway.InsertLead(ctx, in)
	if err != nil {
		m.logger.Error("failed to add lead", "title", in.Title, "error", err)
		m.notify(LevelError, "failed to add lead")
		return nil, fmt.Errorf("adding lead: %w", err)
	}

	m.mu.Lock()
	if stored.ID == 0 {
		stored.ID = m.fallbackID()
		m.logger.Warn("storage returned no lead id, using a local one", "id", stored.ID)
	}
	m.leads[stored.ID] = stored.Clone()
	index := cloneIndex(m.index)
	index[stored.Stage] = append(slices.Clone(index[stored.Stage]), stored.ID)
	m.index = index
	m.mu.Unlock()

	m.logger.Info("lead added", "id", stored.ID, "user", sess.Name)
	m.activity.Record(sess, "lead: "+stored.Title, models.ActionAdd)
	m.publish()
	return stored.Clone(), nil
}

// fallbackID derives a local id from the clock, bumped past any id in use.
// Called with mu held.
func (m *Manager) fallbackID() types.LeadID {
	id := types.LeadID(m.now().UnixMilli())
	for {
		if _, taken := m.leads[id]; !taken {
			return id
		}
		id++
	}
}

// EditCard overwrites every field of the lead with id. An empty stage on
// the patch keeps the current column; a different stage moves the lead to
// the end of that column. Pending stage writes land before the edit does.
func (m *Manager) EditCard(ctx context.Context, sess session.Session, id types.LeadID, patch *models.Lead) (*models.Lead, error) {
	m.ops.Lock()
	defer m.ops.Unlock()
	m.pending.Wait()

	m.mu.RLock()
	current, ok := m.leads[id]
	var currentStage string
	var currentOwner types.UserID
	if ok {
		currentStage, currentOwner = current.Stage, current.UserID
	}
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrLeadNotFound, id)
	}

	updated := patch.Clone()
	updated.ID = id
	if updated.Stage == "" {
		updated.Stage = currentStage
	}
	if updated.UserID == 0 {
		updated.UserID = currentOwner
	}
	if err := updated.Validate(); err != nil {
		m.notify(LevelError, err.Error())
		return nil, err
	}

	m.mu.RLock()
	_, stageExists := m.index[updated.Stage]
	m.mu.RUnlock()
	if !stageExists {
		return nil, fmt.Errorf("%w: %s", ErrColumnNotFound, updated.Stage)
	}

	if err := m.gateway.UpdateLead(ctx, updated); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrLeadNotFound, id)
		}
		m.logger.Error("failed to edit lead", "id", id, "error", err)
		m.notify(LevelError, "failed to save lead")
		return nil, fmt.Errorf("editing lead: %w", err)
	}

	m.mu.Lock()
	m.leads[id] = updated.Clone()
	if updated.Stage != currentStage {
		index := cloneIndex(m.index)
		index[currentStage] = without(index[currentStage], id)
		index[updated.Stage] = append(slices.Clone(index[updated.Stage]), id)
		m.index = index
	}
	// the full write carried the stage, so storage agrees again
	delete(m.diverged, id)
	m.mu.Unlock()

	m.logger.Info("lead edited", "id", id, "user", sess.Name)
	m.activity.Record(sess, "lead: "+updated.Title, models.ActionEdit)
	m.publish()
	return updated, nil
}

// DeleteCard removes a lead after the caller confirms
func (m *Manager) DeleteCard(ctx context.Context, sess session.Session, id types.LeadID, confirm Confirmer) error {
	m.ops.Lock()
	defer m.ops.Unlock()
	m.pending.Wait()

	lead, ok := m.Lead(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrLeadNotFound, id)
	}
	if !confirmed(ctx, confirm, fmt.Sprintf("Delete lead %q?", lead.Title)) {
		return ErrNotConfirmed
	}

	if err := m.gateway.DeleteLead(ctx, id); err != nil && !errors.Is(err, models.ErrNotFound) {
		m.logger.Error("failed to delete lead", "id", id, "error", err)
		m.notify(LevelError, "failed to delete lead")
		return fmt.Errorf("deleting lead: %w", err)
	}

	m.mu.Lock()
	delete(m.leads, id)
	delete(m.diverged, id)
	index := cloneIndex(m.index)
	for key, ids := range index {
		if slices.Contains(ids, id) {
			index[key] = without(ids, id)
		}
	}
	m.index = index
	m.mu.Unlock()

	m.logger.Info("lead deleted", "id", id, "user", sess.Name)
	m.activity.Record(sess, "lead: "+lead.Title, models.ActionDelete)
	m.publish()
	return nil
}

// MoveCard moves a lead from one column to the end of another. The board
// changes immediately; the stage write runs in the background and a failure
// is logged and reported through Diverged without undoing the move. Moving
// within the same column does nothing.
func (m *Manager) MoveCard(ctx context.Context, id types.LeadID, from, to string) error {
	if from == to {
		return nil
	}

	m.ops.Lock()
	defer m.ops.Unlock()

	m.mu.Lock()
	lead, ok := m.leads[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrLeadNotFound, id)
	}
	if _, ok := m.index[to]; !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrColumnNotFound, to)
	}
	if !slices.Contains(m.index[from], id) {
		m.mu.Unlock()
		return fmt.Errorf("%w: %d not in %s", ErrNotInColumn, id, from)
	}

	moved := lead.Clone()
	moved.Stage = to
	m.leads[id] = moved
	index := cloneIndex(m.index)
	index[from] = without(index[from], id)
	index[to] = append(slices.Clone(index[to]), id)
	m.index = index
	m.mu.Unlock()

	m.pending.Add(1)
	go m.persistStage(context.WithoutCancel(ctx), id, to)
	return nil
}

func (m *Manager) persistStage(ctx context.Context, id types.LeadID, stage string) {
	defer m.pending.Done()

	err := m.gateway.UpdateLeadStage(ctx, id, stage)

	m.mu.Lock()
	current, ok := m.leads[id]
	latest := ok && current.Stage == stage
	if err != nil && ok {
		m.diverged[id] = struct{}{}
	} else if latest {
		delete(m.diverged, id)
	}
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("failed to persist lead stage", "id", id, "stage", stage, "error", err)
		m.notify(LevelError, "failed to save move; reload to resync")
		return
	}
	m.publish()
}

func without(ids []types.LeadID, id types.LeadID) []types.LeadID {
	out := make([]types.LeadID, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
