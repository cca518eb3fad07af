package service

import (
	"errors"

	"github.com/spec-kit/job-tracker/internal/repository"
	apperrors "github.com/spec-kit/job-tracker/pkg/util/errorutil"
)

// storeError passes domain errors through and hides everything else behind STORE_UNAVAILABLE.
func storeError(err error) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return apperrors.NewStoreUnavailable(err)
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
