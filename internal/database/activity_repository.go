package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// ActivityRepo appends to and reads the activity_log table.
type ActivityRepo struct {
	db *sql.DB
}

// InsertActivity appends one record to the log
func (r *ActivityRepo) InsertActivity(ctx context.Context, a models.Activity) (models.Activity, error) {
	var userID any
	if a.UserID != 0 {
		userID = int64(a.UserID)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_log (activity, action, user_id, activity_by, date, time) VALUES (?, ?, ?, ?, ?, ?)`,
		a.Activity, string(a.Action), userID, a.ActivityBy, a.Date, a.Time,
	)
	if err != nil {
		return models.Activity{}, fmt.Errorf("inserting activity: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Activity{}, fmt.Errorf("reading activity id: %w", err)
	}
	a.ID = types.ActivityID(id)
	return a, nil
}

// ListActivity returns the newest records first; limit <= 0 means no limit
func (r *ActivityRepo) ListActivity(ctx context.Context, limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, activity, action, user_id, activity_by, date, time
		 FROM activity_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying activity: %w", err)
	}
	defer rows.Close()

	records := []models.Activity{}
	for rows.Next() {
		var (
			a      models.Activity
			action string
			userID sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.Activity, &action, &userID, &a.ActivityBy, &a.Date, &a.Time); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		a.Action = models.Action(action)
		if userID.Valid {
			a.UserID = types.UserID(userID.Int64)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activity rows: %w", err)
	}
	return records, nil
}
