package events

import (
	"errors"
	"os"
	"syscall"
)

// ErrorCode classifies daemon connection failures
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

// DaemonError is a daemon connection failure with a hint for the user
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
}

func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

// ClassifyDaemonError maps a dial error to a DaemonError
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return &DaemonError{
			Code:    ErrSocketNotFound,
			Message: "socket file not found",
			Hint:    "start it with: leadboard daemon",
		}
	case errors.Is(err, os.ErrPermission):
		return &DaemonError{
			Code:    ErrSocketPermission,
			Message: "permission denied",
			Hint:    "check ~/.leadboard/ permissions: chmod 700 ~/.leadboard/",
		}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &DaemonError{
			Code:    ErrConnectionRefused,
			Message: "connection refused",
			Hint:    "the daemon may have crashed; restart it with: leadboard daemon",
		}
	}

	return &DaemonError{
		Code:    ErrDaemonNotRunning,
		Message: "daemon not running",
		Hint:    "start it with: leadboard daemon",
	}
}
