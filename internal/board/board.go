// Package board holds the in-memory projection of the lead pipeline: an
// ordered list of columns, each holding the leads whose stage matches its
// key. Structural changes are persisted before they are applied; card moves
// are applied first and persisted in the background.
package board

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/thenoetrevino/leadboard/internal/events"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// ColumnView is one column with copies of its leads in display order
type ColumnView struct {
	Column models.Column   `json:"column"`
	Leads  []*models.Lead `json:"leads"`
}

// View is a detached copy of the board. Mutating it never affects the Manager.
type View struct {
	Columns []ColumnView `json:"columns"`
}

// Column returns the column with the given key
func (v View) Column(key string) (ColumnView, bool) {
	for _, c := range v.Columns {
		if c.Column.Key == key {
			return c, true
		}
	}
	return ColumnView{}, false
}

// Find returns the lead with the given id and the key of its column
func (v View) Find(id types.LeadID) (*models.Lead, string, bool) {
	for _, c := range v.Columns {
		for _, l := range c.Leads {
			if l.ID == id {
				return l, c.Column.Key, true
			}
		}
	}
	return nil, "", false
}

// LeadCount returns the number of leads across all columns
func (v View) LeadCount() int {
	n := 0
	for _, c := range v.Columns {
		n += len(c.Leads)
	}
	return n
}

// Manager owns the board state. Leads live in one arena keyed by id; the
// columns and the per-column id lists are replaced wholesale on every change.
type Manager struct {
	gateway      Gateway
	activity     ActivityRecorder
	events       events.EventPublisher
	notifier     Notifier
	logger       *slog.Logger
	defaultStage string
	now          func() time.Time

	// ops serializes operations so guards checked before a write still
	// hold when the write is applied
	ops sync.Mutex

	mu       sync.RWMutex
	columns  []models.Column
	leads    map[types.LeadID]*models.Lead
	index    map[string][]types.LeadID
	diverged map[types.LeadID]struct{}
	orphans  int

	pending sync.WaitGroup
}

// Option configures a Manager
type Option func(*Manager)

func WithActivity(r ActivityRecorder) Option { return func(m *Manager) { m.activity = r } }

func WithEvents(p events.EventPublisher) Option { return func(m *Manager) { m.events = p } }

func WithNotifier(n Notifier) Option { return func(m *Manager) { m.notifier = n } }

func WithLogger(l *slog.Logger) Option { return func(m *Manager) { m.logger = l } }

// WithDefaultStage sets the column new leads are placed in
func WithDefaultStage(key string) Option { return func(m *Manager) { m.defaultStage = key } }

// New returns an empty board. Call Load to populate it.
func New(gateway Gateway, opts ...Option) *Manager {
	m := &Manager{
		gateway:      gateway,
		activity:     discardRecorder{},
		notifier:     discardNotifier{},
		logger:       slog.Default(),
		defaultStage: models.DefaultStage,
		now:          time.Now,
		leads:        map[types.LeadID]*models.Lead{},
		index:        map[string][]types.LeadID{},
		diverged:     map[types.LeadID]struct{}{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DefaultStage returns the key of the column new leads are placed in
func (m *Manager) DefaultStage() string {
	return m.defaultStage
}

// Load replaces the board with the persisted columns and leads. In-flight
// stage writes are awaited first so the result reflects them. Leads whose
// stage names no column are left out and counted in Orphans. On a fetch
// failure the board is left empty (or with columns only) and the error is
// returned.
func (m *Manager) Load(ctx context.Context) error {
	m.ops.Lock()
	defer m.ops.Unlock()
	m.pending.Wait()

	columns, err := m.gateway.ListColumns(ctx)
	if err != nil {
		m.replace(nil, nil)
		m.logger.Error("failed to load columns", "error", err)
		m.notify(LevelError, "failed to load board")
		return fmt.Errorf("loading columns: %w", err)
	}
	slices.SortStableFunc(columns, func(a, b models.Column) int { return a.Order - b.Order })

	leads, err := m.gateway.ListLeads(ctx)
	if err != nil {
		m.replace(columns, nil)
		m.logger.Error("failed to load leads", "error", err)
		m.notify(LevelError, "failed to load leads")
		return fmt.Errorf("loading leads: %w", err)
	}

	orphans := m.replace(columns, leads)
	if orphans > 0 {
		m.logger.Warn("leads with unknown stage left off the board", "count", orphans)
	}
	m.logger.Debug("board loaded", "columns", len(columns), "leads", len(leads)-orphans)
	return nil
}

// replace installs a fresh arena built from columns and leads and returns
// the number of leads that matched no column
func (m *Manager) replace(columns []models.Column, leads []*models.Lead) int {
	index := make(map[string][]types.LeadID, len(columns))
	for _, c := range columns {
		index[c.Key] = []types.LeadID{}
	}

	arena := make(map[types.LeadID]*models.Lead, len(leads))
	orphans := 0
	for _, l := range leads {
		ids, ok := index[l.Stage]
		if !ok {
			orphans++
			continue
		}
		arena[l.ID] = l.Clone()
		index[l.Stage] = append(ids, l.ID)
	}

	m.mu.Lock()
	m.columns = slices.Clone(columns)
	m.leads = arena
	m.index = index
	m.diverged = map[types.LeadID]struct{}{}
	m.orphans = orphans
	m.mu.Unlock()
	return orphans
}

// Snapshot returns a deep copy of the whole board
func (m *Manager) Snapshot() View {
	m.mu.RLock()
	defer m.mu.RUnlock()

	view := View{Columns: make([]ColumnView, 0, len(m.columns))}
	for _, c := range m.columns {
		ids := m.index[c.Key]
		cv := ColumnView{Column: c, Leads: make([]*models.Lead, 0, len(ids))}
		for _, id := range ids {
			cv.Leads = append(cv.Leads, m.leads[id].Clone())
		}
		view.Columns = append(view.Columns, cv)
	}
	return view
}

// Lead returns a copy of one lead and the key of the column holding it
func (m *Manager) Lead(id types.LeadID) (*models.Lead, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.leads[id]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// Diverged returns the ids of leads whose last background stage write
// failed, so memory and storage disagree until the next Load
func (m *Manager) Diverged() []types.LeadID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]types.LeadID, 0, len(m.diverged))
	for id := range m.diverged {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Orphans returns how many persisted leads the last Load left off the board
func (m *Manager) Orphans() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.orphans
}

// Wait blocks until every background stage write has finished
func (m *Manager) Wait() {
	m.pending.Wait()
}

func (m *Manager) columnIndex(key string) int {
	return slices.IndexFunc(m.columns, func(c models.Column) bool { return c.Key == key })
}

func (m *Manager) notify(level Level, msg string) {
	m.notifier.Notify(Notice{Level: level, Message: msg})
}

// publish tells other processes the board changed
func (m *Manager) publish() {
	if m.events == nil {
		return
	}
	ev := events.Event{Type: events.EventBoardChanged, Timestamp: m.now()}
	if err := events.PublishWithRetry(m.events, ev, 3); err != nil {
		m.logger.Warn("failed to publish board change", "error", err)
	}
}
