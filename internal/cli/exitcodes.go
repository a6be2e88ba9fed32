package cli

import (
	"errors"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/models"
	"github.com/thenoetrevino/leadboard/internal/session"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitFailure = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, malformed ids.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Lead not found, column not found, unknown user.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty titles, bad emails, scores outside 1-5.
	ExitValidation = 5

	// ExitUnauthorized indicates the acting user lacks the required role.
	ExitUnauthorized = 6

	// ExitConflict indicates the board refused the change as it stands.
	// Use for: Deleting a column that holds leads, slug collisions.
	ExitConflict = 7
)

// ExitError carries the exit code a failed command should end the process with
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeOf returns the process exit code for an error returned by a command
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// classify maps board and gateway errors to an error code and exit code
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, models.ErrInvalidLead),
		errors.Is(err, board.ErrEmptyTitle),
		errors.Is(err, board.ErrTitleTooLong),
		errors.Is(err, board.ErrInvalidTitle):
		return "VALIDATION_ERROR", ExitValidation
	case errors.Is(err, board.ErrUnauthorized):
		return "UNAUTHORIZED", ExitUnauthorized
	case errors.Is(err, board.ErrLeadNotFound):
		return "LEAD_NOT_FOUND", ExitNotFound
	case errors.Is(err, board.ErrColumnNotFound):
		return "COLUMN_NOT_FOUND", ExitNotFound
	case errors.Is(err, session.ErrUnknownUser):
		return "UNKNOWN_USER", ExitNotFound
	case errors.Is(err, models.ErrNotFound):
		return "NOT_FOUND", ExitNotFound
	case errors.Is(err, board.ErrColumnHasLeads),
		errors.Is(err, board.ErrDuplicateKey),
		errors.Is(err, board.ErrDefaultColumn),
		errors.Is(err, board.ErrNotInColumn):
		return "CONFLICT", ExitConflict
	default:
		return "ERROR", ExitFailure
	}
}

func suggestionFor(err error) string {
	switch {
	case errors.Is(err, board.ErrUnauthorized):
		return "Only admins can delete columns"
	case errors.Is(err, board.ErrColumnHasLeads):
		return "Move its leads to another column first"
	case errors.Is(err, session.ErrUnknownUser):
		return "Create the user with: leadboard user add <name> --role admin|staff"
	}
	return ""
}
