package models

import "errors"

// Domain-specific errors shared by the gateway and the board
var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey indicates a column key is already taken
	ErrDuplicateKey = errors.New("duplicate key")
)
