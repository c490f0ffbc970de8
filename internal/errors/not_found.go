package errors

import (
	stdErrors "errors"
	"fmt"
)

// NotFoundError is returned when a requested id has no matching row.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s ID %s not found", e.Kind, e.ID)
}

// NewNotFoundError creates a NotFoundError for the given kind ("issue", "series") and id
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFoundError reports whether err is a NotFoundError (even when wrapped).
func IsNotFoundError(err error) bool {
	var nfErr *NotFoundError
	return stdErrors.As(err, &nfErr)
}
