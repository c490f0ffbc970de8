package errors

import (
	stdErrors "errors"
	"fmt"
)

// NetworkError represents a transport failure while talking to the website,
// including request timeouts. Callers may retry; nothing in this module does.
type NetworkError struct {
	URL     string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("connection to %s timed out", e.URL)
	}
	if e.Err != nil {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("request to %s failed", e.URL)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a NetworkError for the given URL
func NewNetworkError(url string, timeout bool, err error) *NetworkError {
	return &NetworkError{URL: url, Timeout: timeout, Err: err}
}

// IsNetworkError checks if err is a NetworkError
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return stdErrors.As(err, &netErr)
}
