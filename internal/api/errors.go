package api

import (
	"errors"
	"net/http"

	"github.com/thenoetrevino/leadboard/internal/board"
	"github.com/thenoetrevino/leadboard/internal/models"
)

// statusFor maps board and gateway errors to HTTP statuses
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidLead),
		errors.Is(err, board.ErrEmptyTitle),
		errors.Is(err, board.ErrTitleTooLong),
		errors.Is(err, board.ErrInvalidTitle):
		return http.StatusBadRequest
	case errors.Is(err, board.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, board.ErrLeadNotFound),
		errors.Is(err, board.ErrColumnNotFound),
		errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, board.ErrColumnHasLeads),
		errors.Is(err, board.ErrDuplicateKey),
		errors.Is(err, board.ErrDefaultColumn),
		errors.Is(err, board.ErrNotInColumn):
		return http.StatusConflict
	case errors.Is(err, board.ErrNotConfirmed):
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}
