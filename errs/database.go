package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrStorageFailure     = errors.New("storage failure")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrTransactionFailed  = errors.New("transaction failed")
)

func NewAlreadyExists(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
	}
}

func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewStorageFailure reports an I/O or encoding failure in a storage adapter.
func NewStorageFailure(operation, entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrStorageFailure,
		Details:    fmt.Sprintf("Failed to %s %s", operation, entity),
		Cause:      cause,
	}
}

// NewDatabaseError classifies a gorm/driver error raised while performing
// operation on entity.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	if cause == nil {
		return NewStorageFailure(operation, entity, nil)
	}

	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		notFound := NewNotFound(entity)
		notFound.Cause = cause
		return notFound
	case errors.Is(cause, gorm.ErrDuplicatedKey), isDuplicateKeyText(cause.Error()):
		return &ApiErr{
			StatusCode: http.StatusConflict,
			err:        fmt.Errorf("%s %w", entity, ErrAlreadyExists),
			Details:    details,
			Cause:      cause,
		}
	case strings.Contains(strings.ToLower(cause.Error()), "connection refused"),
		strings.Contains(strings.ToLower(cause.Error()), "failed to connect"):
		return &ApiErr{
			StatusCode: http.StatusInternalServerError,
			err:        fmt.Errorf("%w: %w", ErrStorageFailure, ErrDatabaseConnection),
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	return NewStorageFailure(operation, entity, cause)
}

func NewTransactionFailedError(operation string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        fmt.Errorf("%w: %w", ErrStorageFailure, ErrTransactionFailed),
		Details:    fmt.Sprintf("Transaction failed during %s", operation),
		Cause:      cause,
	}
}

func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func isDuplicateKeyText(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint failed")
}
