package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/leadboard/internal/models"
)

// ColumnRepo handles all column (stage) database operations.
type ColumnRepo struct {
	db *sql.DB
}

// ListColumns returns every column ordered left to right by sort_order
func (r *ColumnRepo) ListColumns(ctx context.Context) ([]models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, sort_order FROM columns ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("querying columns: %w", err)
	}
	defer rows.Close()

	columns := []models.Column{}
	for rows.Next() {
		var col models.Column
		if err := rows.Scan(&col.Key, &col.Title, &col.Order); err != nil {
			return nil, fmt.Errorf("scanning column row: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}
	return columns, nil
}

// InsertColumn stores a new column at col.Order. Columns at or beyond that
// order are shifted one to the right in the same transaction so the stored
// ordering stays unique. A taken key yields models.ErrDuplicateKey.
func (r *ColumnRepo) InsertColumn(ctx context.Context, col models.Column) (models.Column, error) {
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM columns WHERE id = ?`, col.Key,
		).Scan(&exists); err != nil {
			return fmt.Errorf("checking column key: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("column %q: %w", col.Key, models.ErrDuplicateKey)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE columns SET sort_order = sort_order + 1 WHERE sort_order >= ?`, col.Order,
		); err != nil {
			return fmt.Errorf("shifting columns: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO columns (id, title, sort_order) VALUES (?, ?, ?)`,
			col.Key, col.Title, col.Order,
		); err != nil {
			return fmt.Errorf("inserting column: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Column{}, err
	}
	return col, nil
}

// DeleteColumn removes a column row. It does not touch leads; the caller
// enforces the emptiness guard.
func (r *ColumnRepo) DeleteColumn(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM columns WHERE id = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting column %q: %w", key, err)
	}
	return expectOneRow(res, fmt.Sprintf("column %q", key))
}

// CountLeadsInStage returns how many stored leads reference the stage key
func (r *ColumnRepo) CountLeadsInStage(ctx context.Context, key string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM client_leads WHERE stage = ?`, key,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting leads in stage %q: %w", key, err)
	}
	return count, nil
}
