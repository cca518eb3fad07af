package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThroughWrapped(t *testing.T) {
	original := NewConflict("You have already applied for this job", nil)
	wrapped := fmt.Errorf("apply: %w", original)

	domainErr := ToDomainError(wrapped)
	require.NotNil(t, domainErr)
	assert.Equal(t, CodeConflict, domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	cause := errors.New("boom")
	domainErr := ToDomainError(cause)

	require.NotNil(t, domainErr)
	assert.Equal(t, CodeInternal, domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.ErrorIs(t, domainErr, cause)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
	assert.NoError(t, MapError(nil))
}

func TestStoreUnavailableHidesCause(t *testing.T) {
	err := NewStoreUnavailable(errors.New("dial tcp: connection refused"))
	domainErr := ToDomainError(err)

	assert.Equal(t, "internal server error", domainErr.Message)
	assert.Equal(t, CodeStoreUnavailable, domainErr.Code)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NewForbidden("nope"), CodeForbidden))
	assert.False(t, IsCode(NewForbidden("nope"), CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeForbidden))
}

func TestTokenErrorsAreDistinct(t *testing.T) {
	missing := ToDomainError(NewUnauthenticated("Access token required"))
	invalid := ToDomainError(NewInvalidToken("Invalid or expired token"))

	assert.Equal(t, http.StatusUnauthorized, missing.HTTPStatus)
	assert.Equal(t, http.StatusForbidden, invalid.HTTPStatus)
	assert.NotEqual(t, missing.Code, invalid.Code)
}
