package errors

import (
	stdErrors "errors"
	"fmt"
)

// DataError represents malformed query input: constraint, type or range violations,
// or identifiers that cannot be interpreted.
type DataError struct {
	Source  string
	Message string
	Err     error
}

func (e *DataError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: data error: %s", e.Source, e.Message)
	}
	return "data error: " + e.Message
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError wraps err as a DataError. err may be nil.
func NewDataError(source string, err error) *DataError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &DataError{Source: source, Message: msg, Err: err}
}

// IsDataError checks if err is a DataError
func IsDataError(err error) bool {
	var dataErr *DataError
	return stdErrors.As(err, &dataErr)
}

// ConnectionError represents any database-layer fault that is not a DataError:
// unreadable files, locked databases, SQL the engine rejects.
type ConnectionError struct {
	Source  string
	Message string
	Err     error
}

func (e *ConnectionError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: database error: %s", e.Source, e.Message)
	}
	return "database error: " + e.Message
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NewConnectionError wraps err as a ConnectionError
func NewConnectionError(source string, err error) *ConnectionError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &ConnectionError{Source: source, Message: msg, Err: err}
}

// IsConnectionError checks if err is a ConnectionError
func IsConnectionError(err error) bool {
	var connErr *ConnectionError
	return stdErrors.As(err, &connErr)
}
