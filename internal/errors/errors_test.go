package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTypesMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{ConflictError("taken"), http.StatusConflict},
		{InvalidTransitionError("terminal", "COMPLETED", "CANCELED"), http.StatusUnprocessableEntity},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{ExternalError("upstream", nil), http.StatusBadGateway},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), "type %s", tt.err.Type)
	}
}

func TestInvalidTransitionErrorCarriesStates(t *testing.T) {
	err := InvalidTransitionError("session already completed", "COMPLETED", "IN_PROGRESS")

	assert.Equal(t, "COMPLETED", err.Context["from_status"])
	assert.Equal(t, "IN_PROGRESS", err.Context["to_status"])

	resp := err.ToResponse()
	assert.Equal(t, TypeInvalidTransition, resp.Type)
	assert.Equal(t, "session already completed", resp.Error)
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("pool exhausted")
	err := InternalError("store call failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "pool exhausted")
}

func TestWithFieldChaining(t *testing.T) {
	err := NotFoundError("counselee not found").
		WithField("counselee_id", "abc").
		WithField("operation", "create_reservation")

	assert.Equal(t, "abc", err.Context["counselee_id"])
	assert.Equal(t, "create_reservation", err.Context["operation"])
}

func TestAsStructuredError(t *testing.T) {
	structured := ConflictError("slot taken")
	assert.Same(t, structured, AsStructuredError(structured))

	wrapped := fmt.Errorf("outer: %w", structured)
	assert.Same(t, structured, AsStructuredError(wrapped))

	plain := errors.New("plain failure")
	got := AsStructuredError(plain)
	require.NotNil(t, got)
	assert.Equal(t, TypeInternal, got.Type)
	assert.ErrorIs(t, got, plain)

	assert.Nil(t, AsStructuredError(nil))
}
