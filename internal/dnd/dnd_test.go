package dnd

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/leadboard/internal/types"
)

type move struct {
	id       types.LeadID
	from, to string
}

type recordingMover struct {
	moves []move
	err   error
}

func (m *recordingMover) MoveCard(_ context.Context, id types.LeadID, from, to string) error {
	m.moves = append(m.moves, move{id, from, to})
	return m.err
}

func TestDropMovesAndClears(t *testing.T) {
	mover := &recordingMover{}
	c := NewCoordinator(mover)

	require.NoError(t, c.Begin(Payload{Kind: KindLead, LeadID: 7, Origin: "new"}))
	assert.True(t, c.IsDragging(7))
	assert.False(t, c.IsDragging(8))

	require.NoError(t, c.Drop(context.Background(), "won"))
	assert.Equal(t, []move{{7, "new", "won"}}, mover.moves)
	assert.False(t, c.IsDragging(7))
	_, ok := c.Active()
	assert.False(t, ok)
}

func TestSecondGestureRejected(t *testing.T) {
	c := NewCoordinator(&recordingMover{})
	require.NoError(t, c.Begin(Payload{Kind: KindLead, LeadID: 1, Origin: "new"}))

	err := c.Begin(Payload{Kind: KindLead, LeadID: 2, Origin: "new"})
	assert.ErrorIs(t, err, ErrDragInProgress)
	p, _ := c.Active()
	assert.Equal(t, types.LeadID(1), p.LeadID)
}

func TestDropClearsEvenWhenMoveFails(t *testing.T) {
	mover := &recordingMover{err: errors.New("boom")}
	c := NewCoordinator(mover)
	require.NoError(t, c.Begin(Payload{Kind: KindLead, LeadID: 1, Origin: "new"}))

	assert.Error(t, c.Drop(context.Background(), "won"))
	assert.False(t, c.IsDragging(1))
	require.NoError(t, c.Begin(Payload{Kind: KindLead, LeadID: 2, Origin: "new"}))
}

func TestCancelAndDropWithoutGesture(t *testing.T) {
	mover := &recordingMover{}
	c := NewCoordinator(mover)
	require.NoError(t, c.Begin(Payload{Kind: KindLead, LeadID: 1, Origin: "new"}))
	c.Cancel()

	assert.ErrorIs(t, c.Drop(context.Background(), "won"), ErrNoDrag)
	assert.Empty(t, mover.moves)
}

func TestOnlyLeadPayloadsDrop(t *testing.T) {
	mover := &recordingMover{}
	c := NewCoordinator(mover)
	require.NoError(t, c.Begin(Payload{Kind: "column", Origin: "new"}))

	assert.ErrorIs(t, c.Drop(context.Background(), "won"), ErrNotDroppable)
	assert.Empty(t, mover.moves)
	_, ok := c.Active()
	assert.False(t, ok)
}
