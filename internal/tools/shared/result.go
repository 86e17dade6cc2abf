package shared

import (
	"context"

	"atlas/pkg/errors"
)

// Tool result statuses. Tools report domain failures as structured
// results so the model can react to them; a Go error escaping a tool is
// reserved for catastrophic conditions.
const (
	StatusOK                 = "ok"
	StatusNotFound           = "not_found"
	StatusInvalidInput       = "invalid_input"
	StatusBackendUnavailable = "backend_unavailable"
)

// OK builds a success result, merging the provided data fields.
func OK(data map[string]interface{}) map[string]interface{} {
	result := map[string]interface{}{
		"status": StatusOK,
	}
	for k, v := range data {
		result[k] = v
	}
	return result
}

// Failure classifies an error into a structured tool result.
func Failure(err error) map[string]interface{} {
	return map[string]interface{}{
		"status":  ClassifyError(err),
		"message": err.Error(),
	}
}

// InvalidInput builds an invalid_input result with an explicit message.
func InvalidInput(message string) map[string]interface{} {
	return map[string]interface{}{
		"status":  StatusInvalidInput,
		"message": message,
	}
}

// ClassifyError maps an error to a tool result status.
func ClassifyError(err error) string {
	var validationErr *errors.ValidationError

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, errors.ErrInvalidInput),
		errors.Is(err, errors.ErrInvalidCollection):
		return StatusInvalidInput
	case errors.Is(err, errors.ErrNotFound):
		return StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, errors.ErrTimeout),
		errors.Is(err, errors.ErrUnavailable),
		errors.Is(err, errors.ErrMailerNotConfigured):
		return StatusBackendUnavailable
	default:
		return StatusBackendUnavailable
	}
}
