// Package tui is the terminal board: columns side by side, one card
// selected at a time, with a keyboard drag gesture to move cards.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/huh/v2"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/config"
	"github.com/thenoetrevino/leadboard/internal/dnd"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
	"github.com/thenoetrevino/leadboard/internal/tui/huhforms"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// Mode is the input mode of the board
type Mode int

const (
	NormalMode Mode = iota
	SearchMode
	AddColumnMode
	ConfirmMode
	LeadFormMode
)

// Options configures a Model
type Options struct {
	Keys    config.KeyMappings
	Theme   config.Theme
	Notices *board.Notices
}

// Model represents the application state for the TUI
type Model struct {
	ctx     context.Context
	board   *board.Manager
	drag    *dnd.Coordinator
	sess    session.Session
	notices *board.Notices
	keys    config.KeyMappings
	styles  styles
	theme   config.Theme

	mode     Mode
	col      int
	row      int
	width    int
	height   int
	expanded map[types.LeadID]bool

	search      textinput.Model
	query       string
	columnInput textinput.Model
	confirm     *pendingConfirm
	leadForm    *leadFormState

	status []board.Notice
}

// pendingConfirm is a destructive action waiting for y/n
type pendingConfirm struct {
	prompt string
	run    func() tea.Cmd
}

// leadFormState is the open add or edit form. It is shared by pointer
// because the form writes into fields.
type leadFormState struct {
	form   *huh.Form
	fields huhforms.LeadFields
	// base is the lead being edited, nil when adding
	base *models.Lead
}

// opDoneMsg reports the end of a board operation run as a command
type opDoneMsg struct {
	err      error
	info     string
	removed  types.LeadID
	selected types.LeadID
}

// ReloadedMsg is sent after the board was reloaded because another process
// changed it
type ReloadedMsg struct {
	Err error
}

type tickMsg time.Time

const maxStatus = 3

// New creates the board model. The board should already be loaded.
func New(ctx context.Context, b *board.Manager, sess session.Session, opts Options) Model {
	if opts.Notices == nil {
		opts.Notices = board.NewNotices()
	}
	if opts.Keys == (config.KeyMappings{}) {
		opts.Keys = config.DefaultKeyMappings()
	}
	if opts.Theme == (config.Theme{}) {
		opts.Theme = config.DefaultTheme()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "title or company"
	search.CharLimit = 100

	colInput := textinput.New()
	colInput.Prompt = "New column: "
	colInput.Placeholder = "title"
	colInput.CharLimit = 50

	return Model{
		ctx:         ctx,
		board:       b,
		drag:        dnd.NewCoordinator(b),
		sess:        sess,
		notices:     opts.Notices,
		keys:        opts.Keys,
		styles:      newStyles(opts.Theme),
		theme:       opts.Theme,
		expanded:    map[types.LeadID]bool{},
		search:      search,
		columnInput: colInput,
	}
}

// Init starts the notice refresh tick
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Mode returns the current input mode
func (m Model) Mode() Mode {
	return m.mode
}

// LeadForm returns the values of the open lead form, if any
func (m Model) LeadForm() (*huhforms.LeadFields, bool) {
	if m.leadForm == nil {
		return nil, false
	}
	return &m.leadForm.fields, true
}

// Status returns the notices currently shown in the status line
func (m Model) Status() []board.Notice {
	return m.status
}

// view is the board as displayed: filtered by the live search query
func (m Model) view() board.View {
	q := m.query
	if m.mode == SearchMode {
		q = m.search.Value()
	}
	return m.board.Filter(q)
}

func (m Model) currentColumn(v board.View) (board.ColumnView, bool) {
	if m.col < 0 || m.col >= len(v.Columns) {
		return board.ColumnView{}, false
	}
	return v.Columns[m.col], true
}

func (m Model) currentLead(v board.View) *models.Lead {
	c, ok := m.currentColumn(v)
	if !ok || m.row < 0 || m.row >= len(c.Leads) {
		return nil
	}
	return c.Leads[m.row]
}

// clampSelection keeps the cursor inside the board after it changed shape
func (m *Model) clampSelection(v board.View) {
	if len(v.Columns) == 0 {
		m.col, m.row = 0, 0
		return
	}
	m.col = min(max(m.col, 0), len(v.Columns)-1)
	n := len(v.Columns[m.col].Leads)
	m.row = min(max(m.row, 0), max(n-1, 0))
}

// selectLead moves the cursor onto id if it is visible
func (m *Model) selectLead(v board.View, id types.LeadID) {
	for ci, c := range v.Columns {
		for ri, l := range c.Leads {
			if l.ID == id {
				m.col, m.row = ci, ri
				return
			}
		}
	}
}

func (m *Model) info(msg string) {
	m.status = append(m.status, board.Notice{Level: board.LevelInfo, Message: msg})
}

// drainNotices moves pending board notices into the status line
func (m *Model) drainNotices() int {
	drained := m.notices.Drain()
	m.status = append(m.status, drained...)
	if len(m.status) > maxStatus {
		m.status = m.status[len(m.status)-maxStatus:]
	}
	return len(drained)
}

// report shows err unless the board already raised a notice for it
func (m *Model) report(err error) {
	if m.drainNotices() == 0 && err != nil {
		m.status = append(m.status, board.Notice{Level: board.LevelError, Message: err.Error()})
	}
}
