package board

import (
	"github.com/thenoetrevino/leadboard/internal/database"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
)

// Gateway is the persistence the board needs
type Gateway interface {
	database.ColumnRepository
	database.LeadRepository
}

// ActivityRecorder receives one record per structural change
type ActivityRecorder interface {
	Record(sess session.Session, activity string, action models.Action)
}

type discardRecorder struct{}

func (discardRecorder) Record(session.Session, string, models.Action) {}
