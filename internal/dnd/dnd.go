// Package dnd coordinates the single drag gesture a user can have in flight.
// A gesture starts when a card is grabbed, and ends with a drop onto a
// column or a cancel. Either way the gesture is cleared.
package dnd

import (
	"context"
	"errors"
	"sync"

	"github.com/thenoetrevino/leadboard/internal/types"
)

var (
	ErrDragInProgress = errors.New("a drag is already in progress")
	ErrNoDrag         = errors.New("no drag in progress")
	ErrNotDroppable   = errors.New("payload cannot be dropped on a column")
)

// Kind tags the payload carried by a gesture
type Kind string

// KindLead is the only kind column drop targets accept
const KindLead Kind = "lead"

// Payload is what travels with the gesture
type Payload struct {
	Kind   Kind
	LeadID types.LeadID
	Origin string // key of the column the lead was grabbed from
}

// Mover performs the move a completed gesture asks for
type Mover interface {
	MoveCard(ctx context.Context, id types.LeadID, from, to string) error
}

// Coordinator tracks the active gesture
type Coordinator struct {
	mover Mover

	mu     sync.Mutex
	active *Payload
}

func NewCoordinator(mover Mover) *Coordinator {
	return &Coordinator{mover: mover}
}

// Begin starts a gesture for p
func (c *Coordinator) Begin(p Payload) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return ErrDragInProgress
	}
	c.active = &p
	return nil
}

// Active returns the payload of the gesture in flight
func (c *Coordinator) Active() (Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == nil {
		return Payload{}, false
	}
	return *c.active, true
}

// IsDragging reports whether id is the card being dragged
func (c *Coordinator) IsDragging(id types.LeadID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != nil && c.active.LeadID == id
}

// Drop ends the gesture over the column keyed target and asks the Mover to
// move the card there. The gesture is cleared whatever the outcome.
func (c *Coordinator) Drop(ctx context.Context, target string) error {
	c.mu.Lock()
	p := c.active
	c.active = nil
	c.mu.Unlock()

	if p == nil {
		return ErrNoDrag
	}
	if p.Kind != KindLead {
		return ErrNotDroppable
	}
	return c.mover.MoveCard(ctx, p.LeadID, p.Origin, target)
}

// Cancel ends the gesture without moving anything
func (c *Coordinator) Cancel() {
	c.mu.Lock()
	c.active = nil
	c.mu.Unlock()
}
