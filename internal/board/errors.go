package board

import "errors"

// Board errors
var (
	// Validation errors
	ErrEmptyTitle    = errors.New("title cannot be empty")
	ErrTitleTooLong  = errors.New("title cannot exceed 50 characters")
	ErrInvalidTitle  = errors.New("title must contain a letter or digit")
	ErrDuplicateKey  = errors.New("a column with this key already exists")
	ErrDefaultColumn = errors.New("the default column cannot be deleted")

	// Authorization and guard errors
	ErrUnauthorized   = errors.New("unauthorized")
	ErrColumnHasLeads = errors.New("cannot delete: contains leads")
	ErrNotConfirmed   = errors.New("action not confirmed")

	// Lookup errors
	ErrColumnNotFound = errors.New("column not found")
	ErrLeadNotFound   = errors.New("lead not found")
	ErrNotInColumn    = errors.New("lead is not in the origin column")
)
