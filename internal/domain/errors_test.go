package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statusErr int

func (s statusErr) Error() string   { return fmt.Sprintf("status %d", int(s)) }
func (s statusErr) HTTPStatus() int { return int(s) }

func TestDomainErrorMatchesSentinelByCode(t *testing.T) {
	err := fmt.Errorf("login: %w", WrapInvalidCredentials(statusErr(401)))

	assert.True(t, errors.Is(err, ErrInvalidCredentials))
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.True(t, IsAuthenticationError(err))
	assert.Equal(t, 401, HTTPStatus(err))
}

func TestWrapNetworkKeepsCause(t *testing.T) {
	err := WrapNetwork("GET /accounts", context.DeadlineExceeded)

	assert.True(t, IsNetworkError(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, IsValidationError(err))
	assert.Equal(t, 0, HTTPStatus(err))
}

func TestValidationError(t *testing.T) {
	err := error(&ValidationError{Messages: []string{"Email already registered"}})

	require.True(t, IsValidationError(err))
	assert.Contains(t, err.Error(), "Email already registered")

	var verr *ValidationError
	require.True(t, errors.As(fmt.Errorf("register: %w", err), &verr))
	assert.Equal(t, []string{"Email already registered"}, verr.Messages)
}

func TestRowErrorUnwrap(t *testing.T) {
	cause := errors.New("invalid amount")
	err := error(&RowError{Line: 3, Err: cause})

	assert.Equal(t, "line 3: invalid amount", err.Error())
	assert.True(t, errors.Is(err, ErrImportRow))
	assert.True(t, errors.Is(err, cause))
}

func TestNotAuthenticatedIsDistinctFromExpiry(t *testing.T) {
	assert.False(t, errors.Is(ErrNotAuthenticated, ErrSessionExpired))
	assert.True(t, IsAuthenticationError(ErrNotAuthenticated))
}
