package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/types"
)

// UserRepo reads and writes the users table that backs role lookups.
type UserRepo struct {
	db *sql.DB
}

// CreateUser inserts a user with the given role
func (r *UserRepo) CreateUser(ctx context.Context, name string, role models.Role) (*models.User, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, role) VALUES (?, ?)`, name, string(role))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("user %q: %w", name, models.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading user id: %w", err)
	}
	return &models.User{ID: types.UserID(id), Name: name, Role: role}, nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepo) GetUserByID(ctx context.Context, id types.UserID) (*models.User, error) {
	u := &models.User{}
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, role FROM users WHERE id = ?`, int64(id),
	).Scan(&u.ID, &u.Name, &role)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("user %d", id))
	}
	u.Role = models.Role(role)
	return u, nil
}

// GetUserByName retrieves a user by its unique name
func (r *UserRepo) GetUserByName(ctx context.Context, name string) (*models.User, error) {
	u := &models.User{}
	var role string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, role FROM users WHERE name = ?`, name,
	).Scan(&u.ID, &u.Name, &role)
	if err != nil {
		return nil, notFound(err, fmt.Sprintf("user %q", name))
	}
	u.Role = models.Role(role)
	return u, nil
}

// ListUsers returns all users ordered by ID
func (r *UserRepo) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, role FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		var role string
		if err := rows.Scan(&u.ID, &u.Name, &role); err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		u.Role = models.Role(role)
		users = append(users, u)
	}
	return users, rows.Err()
}
