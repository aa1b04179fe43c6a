package errs

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewErrorKnownCode(t *testing.T) {
	err := NewError(ErrRecipientNotFound)
	require.Equal(t, ErrRecipientNotFound, err.Code)
	require.Equal(t, "Recipient not found.", err.Message)
	require.Equal(t, http.StatusOK, err.Status)
}

func TestNewErrorUnknownCodeFallsBack(t *testing.T) {
	err := NewError(9999)
	require.Equal(t, ErrUnknown, err.Code)
	require.Equal(t, http.StatusInternalServerError, err.Status)
}

func TestNewErrorExplicitStatusPreserved(t *testing.T) {
	err := NewError(ErrRateLimitExceeded)
	require.Equal(t, http.StatusTooManyRequests, err.Status)

	err = NewError(ErrUnauthorized)
	require.Equal(t, http.StatusUnauthorized, err.Status)
}

func TestNewErrorDoesNotMutateTemplate(t *testing.T) {
	first := NewError(ErrInvalidParams)
	first.Message = "mutated"

	second := NewError(ErrInvalidParams)
	require.Equal(t, "Invalid request parameters.", second.Message)
}

func TestCustomErrorImplementsError(t *testing.T) {
	var err error = CustomError{Code: ErrUserNotFound, Message: "Account not found.", Status: http.StatusOK}
	require.Contains(t, err.Error(), "3004")
	require.Contains(t, err.Error(), "Account not found.")
}

func TestEveryCodeHasMapEntry(t *testing.T) {
	codes := []int{
		ErrInvalidParams, ErrUnsupportedMediaType, ErrInvalidJSONFormat,
		ErrExtraContentInBody, ErrRequestEntityTooLarge, ErrRateLimitExceeded,
		ErrMessageContentTooLong, ErrMessageTypeInvalid, ErrRecipientNotFound,
		ErrMessagePersistFailed, ErrFileSizeTooLarge, ErrFileTypeInvalid,
		ErrNotAuthenticated, ErrAuthenticationFailed, ErrInvalidCredentials,
		ErrUserNotFound, ErrUnauthorized, ErrTokenInvalid,
		ErrAllocationForbidden, ErrAllocationPartyNotFound,
		ErrUnknown, ErrFileStorageFailed,
	}
	for _, code := range codes {
		tmpl, ok := errorMap[code]
		require.True(t, ok, "code %d missing from errorMap", code)
		require.Equal(t, code, tmpl.Code)
		require.NotEmpty(t, tmpl.Message)
	}
}
