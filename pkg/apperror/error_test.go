package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorError(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "without internal error",
			err:      ErrNotFound,
			expected: "not_found: Resource not found",
		},
		{
			name:     "with internal error",
			err:      NewInternal("Something went wrong", errors.New("database connection failed")),
			expected: "internal_error: Something went wrong (database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestWithHelpersDoNotMutateSentinel(t *testing.T) {
	custom := ErrInvalidPhone.WithMessage("too short").WithDetails(map[string]any{"digits": 7})

	assert.Equal(t, "too short", custom.Message)
	assert.Equal(t, "Phone number is not a valid US number", ErrInvalidPhone.Message)
	assert.Nil(t, ErrInvalidPhone.Details)
	assert.Equal(t, 7, custom.Details["digits"])
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	inner := errors.New("unique violation")
	wrapped := fmt.Errorf("create subscription: %w", ErrDuplicateSubscription.WithInternal(inner))

	assert.ErrorIs(t, wrapped, ErrDuplicateSubscription)
	assert.ErrorIs(t, wrapped, inner)
	assert.NotErrorIs(t, wrapped, ErrConflict)
}

func TestToHTTPError(t *testing.T) {
	status, body := ToHTTPError(fmt.Errorf("wrapped: %w", ErrRateLimited))
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "rate_limited", body["error"].(map[string]any)["code"])

	status, body = ToHTTPError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", body["error"].(map[string]any)["code"])
}

func TestWriteError(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/privacy-policy/opt-in", nil)
	WriteError(rec, req, log, ErrValidation.WithDetails(map[string]any{"field": "phone"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body["error"]["code"])
	assert.Equal(t, map[string]any{"field": "phone"}, body["error"]["details"])
}

func TestWriteErrorHead(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodHead, "/missing", nil)
	WriteError(rec, req, log, ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
