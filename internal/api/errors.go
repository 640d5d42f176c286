package api

import (
	"errors"
	"fmt"

	"github.com/jspark-dev/cinegrid/internal/domain"
)

// ErrorKind classifies transport failures.
type ErrorKind int

const (
	// KindNoResponse: the request was sent but no response arrived
	// (network or DNS failure).
	KindNoResponse ErrorKind = iota
	// KindTimeout: the request exceeded its deadline.
	KindTimeout
	// KindHTTPError: a response arrived with status >= 400.
	KindHTTPError
)

// TransportError is the typed failure of a single HTTP exchange.
type TransportError struct {
	Kind    ErrorKind
	Status  int    // HTTP status, set for KindHTTPError
	Message string // backend-supplied message payload, if any
	Err     error  // underlying cause
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("request timed out: %v", e.Err)
	case KindNoResponse:
		return fmt.Sprintf("no response from server: %v", e.Err)
	default:
		if e.Message != "" {
			return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
		}
		return fmt.Sprintf("server returned %d", e.Status)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError reports a request rejected client-side before sending,
// e.g. a missing upload file.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// User-facing messages for the fixed status table. The backend's own
// message payload wins for 400/404/409 when present.
const (
	msgBadRequest  = "The request was invalid."
	msgAuthNeeded  = "Authentication is required."
	msgForbidden   = "You do not have permission to do that."
	msgNotFound    = "The requested resource was not found."
	msgConflict    = "The request conflicted with existing data."
	msgServerError = "The server encountered an error."
	msgNoResponse  = "Cannot reach the server. Check your network connection."
	msgUnknown     = "An unknown error occurred."
)

// UserMessage converts any error into the ErrorInfo stores expose to views.
// Transport errors map through the fixed status table; everything else
// falls back to a generic message with the original error preserved.
func UserMessage(err error) *domain.ErrorInfo {
	if err == nil {
		return nil
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return &domain.ErrorInfo{Message: verr.Error(), Cause: err}
	}

	var terr *TransportError
	if !errors.As(err, &terr) {
		return &domain.ErrorInfo{Message: msgUnknown, Cause: err}
	}

	switch terr.Kind {
	case KindNoResponse, KindTimeout:
		return &domain.ErrorInfo{Message: msgNoResponse, Cause: err}
	}

	msg := ""
	switch terr.Status {
	case 400:
		msg = orBackend(terr, msgBadRequest)
	case 401:
		msg = msgAuthNeeded
	case 403:
		msg = msgForbidden
	case 404:
		msg = orBackend(terr, msgNotFound)
	case 409:
		msg = orBackend(terr, msgConflict)
	case 500:
		msg = msgServerError
	default:
		msg = orBackend(terr, fmt.Sprintf("An error occurred. (%d)", terr.Status))
	}
	return &domain.ErrorInfo{Message: msg, Cause: err}
}

func orBackend(terr *TransportError, fallback string) string {
	if terr.Message != "" {
		return terr.Message
	}
	return fallback
}
