// Package activity records structural board changes to the append-only
// activity log. Writes are fire-and-forget: failures are logged only.
package activity

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/leadboard/internal/database"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
)

// Sink writes activity records asynchronously
type Sink struct {
	repo   database.ActivityRepository
	logger *slog.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// NewSink creates a Sink backed by repo. A nil logger uses slog.Default().
func NewSink(repo database.ActivityRepository, logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{repo: repo, logger: logger, now: time.Now}
}

// Record queues one activity record for the acting session
func (s *Sink) Record(sess session.Session, activity string, action models.Action) {
	at := s.now()
	rec := models.Activity{
		Activity:   activity,
		Action:     action,
		UserID:     sess.UserID,
		ActivityBy: sess.Name,
		Date:       at.Format(time.DateOnly),
		Time:       at.Format(time.TimeOnly),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.repo.InsertActivity(context.Background(), rec); err != nil {
			s.logger.Warn("failed to record activity",
				"activity", rec.Activity,
				"action", rec.Action,
				"user_id", rec.UserID,
				"error", err)
		}
	}()
}

// Wait blocks until every queued record has been written or has failed
func (s *Sink) Wait() {
	s.wg.Wait()
}

// List returns the newest records first
func (s *Sink) List(ctx context.Context, limit int) ([]models.Activity, error) {
	return s.repo.ListActivity(ctx, limit)
}
