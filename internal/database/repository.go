package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes the table repositories using struct embedding.
type Repository struct {
	*ColumnRepo
	*LeadRepo
	*ActivityRepo
	*UserRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ColumnRepo:   &ColumnRepo{db: db},
		LeadRepo:     &LeadRepo{db: db},
		ActivityRepo: &ActivityRepo{db: db},
		UserRepo:     &UserRepo{db: db},
	}
}
