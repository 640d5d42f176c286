package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessageStatusTable(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "bad request without backend message",
			err:         &TransportError{Kind: KindHTTPError, Status: 400},
			wantMessage: msgBadRequest,
		},
		{
			name:        "bad request prefers backend message",
			err:         &TransportError{Kind: KindHTTPError, Status: 400, Message: "title is required"},
			wantMessage: "title is required",
		},
		{
			name:        "unauthorized ignores backend message",
			err:         &TransportError{Kind: KindHTTPError, Status: 401, Message: "nope"},
			wantMessage: msgAuthNeeded,
		},
		{
			name:        "forbidden",
			err:         &TransportError{Kind: KindHTTPError, Status: 403},
			wantMessage: msgForbidden,
		},
		{
			name:        "not found prefers backend message",
			err:         &TransportError{Kind: KindHTTPError, Status: 404, Message: "no such movie"},
			wantMessage: "no such movie",
		},
		{
			name:        "not found without backend message",
			err:         &TransportError{Kind: KindHTTPError, Status: 404},
			wantMessage: msgNotFound,
		},
		{
			name:        "conflict prefers backend message",
			err:         &TransportError{Kind: KindHTTPError, Status: 409, Message: "id already taken"},
			wantMessage: "id already taken",
		},
		{
			name:        "server error ignores backend message",
			err:         &TransportError{Kind: KindHTTPError, Status: 500, Message: "stack trace"},
			wantMessage: msgServerError,
		},
		{
			name:        "unmapped status falls back with code",
			err:         &TransportError{Kind: KindHTTPError, Status: 418},
			wantMessage: "An error occurred. (418)",
		},
		{
			name:        "no response",
			err:         &TransportError{Kind: KindNoResponse, Err: errors.New("dial tcp: refused")},
			wantMessage: msgNoResponse,
		},
		{
			name:        "timeout maps to no-response message",
			err:         &TransportError{Kind: KindTimeout, Err: errors.New("deadline exceeded")},
			wantMessage: msgNoResponse,
		},
		{
			name:        "unrecognized error",
			err:         errors.New("something else"),
			wantMessage: msgUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := UserMessage(tt.err)
			require.NotNil(t, info)
			assert.Equal(t, tt.wantMessage, info.Message)
			assert.ErrorIs(t, info.Cause, tt.err)
		})
	}
}

func TestUserMessageNil(t *testing.T) {
	assert.Nil(t, UserMessage(nil))
}

func TestUserMessageValidationError(t *testing.T) {
	err := &ValidationError{Field: "file", Reason: "no file selected"}
	info := UserMessage(err)
	require.NotNil(t, info)
	assert.Equal(t, "invalid file: no file selected", info.Message)
}

func TestUserMessagePreservesCauseThroughWrap(t *testing.T) {
	terr := &TransportError{Kind: KindHTTPError, Status: 404}
	info := UserMessage(terr)
	require.NotNil(t, info)

	var unwrapped *TransportError
	assert.True(t, errors.As(info.Cause, &unwrapped))
	assert.Equal(t, 404, unwrapped.Status)
}
