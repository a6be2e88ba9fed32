package board

import "sync"

// Level is the severity of a Notice
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "info"
}

// Notice is a user-visible message raised by a board operation
type Notice struct {
	Level   Level  `json:"-"`
	Message string `json:"message"`
}

// Notifier receives notices. Implementations must be safe for concurrent use
// because failed asynchronous moves report from a background goroutine.
type Notifier interface {
	Notify(Notice)
}

// Notices is an in-memory Notifier that front ends drain for display
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) Notify(notice Notice) {
	n.mu.Lock()
	n.items = append(n.items, notice)
	n.mu.Unlock()
}

// Drain returns the pending notices and clears them
func (n *Notices) Drain() []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.items
	n.items = nil
	return out
}

// Len returns the number of pending notices
func (n *Notices) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.items)
}

type discardNotifier struct{}

func (discardNotifier) Notify(Notice) {}
