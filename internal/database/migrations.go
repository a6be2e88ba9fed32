package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/leadboard/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL DEFAULT 'staff' CHECK (role IN ('admin', 'staff'))
);

CREATE TABLE IF NOT EXISTS columns (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	sort_order INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS client_leads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id INTEGER,
	title TEXT NOT NULL,
	budget REAL NOT NULL DEFAULT 0,
	company TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '[]',
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT NOT NULL,
	lead_source TEXT NOT NULL,
	lead_score INTEGER NOT NULL DEFAULT 1,
	interested_products TEXT NOT NULL DEFAULT '[]',
	status TEXT NOT NULL,
	stage TEXT NOT NULL,
	notes TEXT NOT NULL DEFAULT '',
	user_id INTEGER,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_client_leads_stage ON client_leads(stage);

CREATE TABLE IF NOT EXISTS activity_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	activity TEXT NOT NULL,
	action TEXT NOT NULL CHECK (action IN ('Add', 'Edit', 'Delete')),
	user_id INTEGER,
	activity_by TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL,
	time TEXT NOT NULL
);
`

// runMigrations creates the database schema and seeds default data if needed
func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}
	return seedDefaultColumns(ctx, db)
}

// seedDefaultColumns inserts the default pipeline stages if the columns table is empty
func seedDefaultColumns(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM columns").Scan(&count); err != nil {
		return err
	}

	// If columns exist, don't seed
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, col := range models.DefaultColumns {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO columns (id, title, sort_order) VALUES (?, ?, ?)",
				col.Key, col.Title, col.Order,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
