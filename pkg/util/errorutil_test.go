package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/farm-helpdesk/pkg/util"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := apperrors.NewValidationError("title is required")
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, "title is required", domainErr.Message)
}

func TestToDomainErrorWrapped(t *testing.T) {
	err := fmt.Errorf("loading issue: %w", apperrors.NewNotFound("issue"))
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	domainErr := apperrors.ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestToDomainErrorUnknown(t *testing.T) {
	domainErr := apperrors.ToDomainError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, "internal server error", domainErr.Message, "internals never leak")
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, apperrors.IsNoRows(pgx.ErrNoRows))
	assert.True(t, apperrors.IsNoRows(fmt.Errorf("fetch: %w", pgx.ErrNoRows)))
	assert.False(t, apperrors.IsNoRows(errors.New("other")))
}
