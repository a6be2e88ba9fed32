package board

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
	"github.com/thenoetrevino/leadboard/internal/types"
)

var errStorage = errors.New("storage unavailable")

// fakeGateway is an in-memory Gateway with switchable failures
type fakeGateway struct {
	mu      sync.Mutex
	columns []models.Column
	leads   map[types.LeadID]*models.Lead
	nextID  types.LeadID

	failList   bool
	failWrites bool
	failStage  bool
	zeroIDs    bool

	// stageGate, when set, holds every stage write until it is closed
	stageGate chan struct{}

	stageCalls int
	calls      int
}

func newFakeGateway(columns ...models.Column) *fakeGateway {
	return &fakeGateway{
		columns: columns,
		leads:   map[types.LeadID]*models.Lead{},
		nextID:  1,
	}
}

func (g *fakeGateway) seed(l *models.Lead) *models.Lead {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := l.Clone()
	c.ID = g.nextID
	g.nextID++
	g.leads[c.ID] = c
	return c.Clone()
}

func (g *fakeGateway) stored(id types.LeadID) *models.Lead {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.leads[id].Clone()
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *fakeGateway) ListColumns(context.Context) ([]models.Column, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failList {
		return nil, errStorage
	}
	return slices.Clone(g.columns), nil
}

func (g *fakeGateway) InsertColumn(_ context.Context, col models.Column) (models.Column, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failWrites {
		return models.Column{}, errStorage
	}
	for i := range g.columns {
		if g.columns[i].Key == col.Key {
			return models.Column{}, models.ErrDuplicateKey
		}
		if g.columns[i].Order >= col.Order {
			g.columns[i].Order++
		}
	}
	g.columns = append(g.columns, col)
	slices.SortFunc(g.columns, func(a, b models.Column) int { return a.Order - b.Order })
	return col, nil
}

func (g *fakeGateway) DeleteColumn(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failWrites {
		return errStorage
	}
	g.columns = slices.DeleteFunc(g.columns, func(c models.Column) bool { return c.Key == key })
	return nil
}

func (g *fakeGateway) CountLeadsInStage(_ context.Context, key string) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	n := 0
	for _, l := range g.leads {
		if l.Stage == key {
			n++
		}
	}
	return n, nil
}

func (g *fakeGateway) ListLeads(context.Context) ([]*models.Lead, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failList {
		return nil, errStorage
	}
	ids := make([]types.LeadID, 0, len(g.leads))
	for id := range g.leads {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*models.Lead, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.leads[id].Clone())
	}
	return out, nil
}

func (g *fakeGateway) GetLead(_ context.Context, id types.LeadID) (*models.Lead, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	l, ok := g.leads[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return l.Clone(), nil
}

func (g *fakeGateway) InsertLead(_ context.Context, lead *models.Lead) (*models.Lead, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failWrites {
		return nil, errStorage
	}
	c := lead.Clone()
	c.ID = g.nextID
	g.nextID++
	g.leads[c.ID] = c
	out := c.Clone()
	if g.zeroIDs {
		out.ID = 0
	}
	return out, nil
}

func (g *fakeGateway) UpdateLead(_ context.Context, lead *models.Lead) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failWrites {
		return errStorage
	}
	if _, ok := g.leads[lead.ID]; !ok {
		return models.ErrNotFound
	}
	g.leads[lead.ID] = lead.Clone()
	return nil
}

func (g *fakeGateway) UpdateLeadStage(_ context.Context, id types.LeadID, stage string) error {
	g.mu.Lock()
	gate := g.stageGate
	g.mu.Unlock()
	if gate != nil {
		<-gate
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.stageCalls++
	if g.failStage {
		return errStorage
	}
	l, ok := g.leads[id]
	if !ok {
		return models.ErrNotFound
	}
	l.Stage = stage
	return nil
}

func (g *fakeGateway) DeleteLead(_ context.Context, id types.LeadID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.failWrites {
		return errStorage
	}
	delete(g.leads, id)
	return nil
}

type recordedActivity struct {
	sess     session.Session
	activity string
	action   models.Action
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []recordedActivity
}

func (r *fakeRecorder) Record(sess session.Session, activity string, action models.Action) {
	r.mu.Lock()
	r.records = append(r.records, recordedActivity{sess, activity, action})
	r.mu.Unlock()
}

func (r *fakeRecorder) all() []recordedActivity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.records)
}
