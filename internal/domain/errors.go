package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrMovieNotFound indicates the requested movie does not exist
	ErrMovieNotFound = errors.New("movie not found")

	// ErrServerUnreachable indicates the catalog server did not respond
	ErrServerUnreachable = errors.New("catalog server is unreachable")

	// ErrAuthRequired indicates the session is not authenticated
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotLoggedIn indicates a member-scoped operation was attempted
	// without a loaded profile
	ErrNotLoggedIn = errors.New("no member profile loaded")

	// ErrInvalidGridMode indicates an unknown data grid mode was requested
	ErrInvalidGridMode = errors.New("invalid data grid mode")
)

// ErrorInfo is the user-facing form of any store error: a display message
// plus the underlying cause for callers that want to inspect it.
type ErrorInfo struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ErrorInfo) Error() string { return e.Message }

// Unwrap exposes the original error for errors.Is/As.
func (e *ErrorInfo) Unwrap() error { return e.Cause }
