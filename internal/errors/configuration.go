package errors

import stdErrors "errors"

// ConfigurationError reports a missing or invalid setting, typically the GCD database path.
// It is fatal for the operation and never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// NewConfigurationError creates a ConfigurationError with the given message
func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{Message: message}
}

// IsConfigurationError checks if err is a ConfigurationError (even when wrapped)
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return stdErrors.As(err, &cfgErr)
}
