package service

import (
	"errors"

	"talenthub/internal/sentinel"
	dErrors "talenthub/pkg/domain-errors"
)

// storeError translates dependency errors into domain errors exactly once.
// Domain errors already produced below this layer pass through unchanged.
func storeError(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}

	var de *dErrors.Error
	if errors.As(err, &de) {
		return err
	}

	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, notFoundMsg)
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return dErrors.Wrap(err, dErrors.CodeConflict, "already exists")
	case errors.Is(err, sentinel.ErrInvalidInput):
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid input")
	default:
		// Transient persistence failures propagate immediately; no retries.
		return dErrors.Wrap(err, dErrors.CodeDatabase, "persistence failure")
	}
}
