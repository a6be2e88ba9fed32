package models

import "github.com/thenoetrevino/leadboard/internal/types"

// Action is the kind of structural change an activity record describes
type Action string

const (
	ActionAdd    Action = "Add"
	ActionEdit   Action = "Edit"
	ActionDelete Action = "Delete"
)

// Activity is one append-only row of the activity log.
// Date and Time are stored as display strings ("2006-01-02", "15:04:05").
type Activity struct {
	ID         types.ActivityID `json:"id"`
	Activity   string           `json:"activity"`
	Action     Action           `json:"action"`
	UserID     types.UserID     `json:"user_id"`
	ActivityBy string           `json:"activity_by"`
	Date       string           `json:"date"`
	Time       string           `json:"time"`
}
