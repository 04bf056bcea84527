package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zomekit-dev/zome-sdk/domain/entities"
)

func TestToErrorDetail(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, ToErrorDetail(nil))
	})

	t.Run("plain error", func(t *testing.T) {
		detail := ToErrorDetail(fmt.Errorf("something broke"))
		require.NotNil(t, detail)
		assert.Equal(t, "internal", detail.Type)
		assert.Equal(t, "something broke", detail.Message)
	})

	t.Run("detailed error", func(t *testing.T) {
		detail := ToErrorDetail(&NotFoundError{What: "record", Reason: "deleted"})
		require.NotNil(t, detail)
		assert.Equal(t, "not_found", detail.Type)
		assert.True(t, detail.IsNotFound)
	})

	t.Run("wrapped detailed error", func(t *testing.T) {
		wrapped := fmt.Errorf("outer context: %w", &ValidationError{Field: "name", Reason: "empty"})
		detail := ToErrorDetail(wrapped)
		require.NotNil(t, detail)
		assert.Equal(t, "validation", detail.Type)
	})
}

func TestFromErrorDetail_InvertsToErrorDetail(t *testing.T) {
	cases := []struct {
		name string
		in   error
	}{
		{"not found", &NotFoundError{What: "record", Reason: "gone"}},
		{"unauthorized", &UnauthorizedError{Outcome: entities.ClaimSecretMismatch, Reason: "bad secret"}},
		{"validation", &ValidationError{Reason: "bad field"}},
		{"conflict", &ConflictError{Reason: "head moved"}},
		{"protocol", &ProtocolViolationError{Reason: "tag mismatch"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			back := FromErrorDetail(ToErrorDetail(tc.in))
			require.Error(t, back)
			// The mapped error must be of the same concrete type.
			assert.IsType(t, tc.in, back)
		})
	}
}

func TestFromErrorDetail_PreservesOutcome(t *testing.T) {
	detail := ToErrorDetail(&UnauthorizedError{Outcome: entities.ClaimGrantRevoked, Reason: "revoked"})

	var unauthorized *UnauthorizedError
	require.ErrorAs(t, FromErrorDetail(detail), &unauthorized)
	assert.Equal(t, entities.ClaimGrantRevoked, unauthorized.Outcome)
}

func TestFromErrorDetail_UnknownTypePassesThrough(t *testing.T) {
	detail := &entities.ErrorDetail{Type: "capability", Message: "odd"}
	err := FromErrorDetail(detail)
	require.Error(t, err)

	var back *entities.ErrorDetail
	assert.True(t, stdErrors.As(err, &back))
}

func TestProtocolViolationError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := &ProtocolViolationError{Reason: "undecodable", Err: cause}
	assert.ErrorIs(t, err, cause)
}
