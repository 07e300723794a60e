package valyu

import (
	"errors"
	"fmt"
)

// Common errors returned by the Valyu client.
var (
	// ErrSetupRequired is returned when no API key can be resolved.
	// Callers should prompt for configuration rather than report a failure.
	ErrSetupRequired = errors.New("valyu API key not configured")

	// ErrInvalidSearchType is returned when a search preset name is unknown.
	ErrInvalidSearchType = errors.New("invalid search type")

	// ErrMissingArgument is returned when a required argument such as a task ID is empty.
	ErrMissingArgument = errors.New("required argument is empty")
)

// SetupRequiredMessage is the guidance shown when no API key is configured.
const SetupRequiredMessage = "I need your Valyu API key to proceed. You can get one at https://platform.valyu.ai. " +
	"Once you have it, just share it with me and I'll set it up for you."

// APIError is returned for any non-2xx response from the Valyu API.
// Extractable via errors.As().
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.StatusCode, e.Body)
}

// ValidationError is returned when configuration validation fails.
// Extractable via errors.As().
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// RequestError is returned when a request could not be sent or its response read.
// Extractable via errors.As(). Supports Unwrap().
type RequestError struct {
	Operation string
	Err       error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// UsageError reports missing or malformed command-line arguments.
// It is raised before any network call. When Help is set the full usage
// text follows Usage.
type UsageError struct {
	Usage string
	Help  bool
}

func (e *UsageError) Error() string {
	if e.Usage == "" {
		return "usage"
	}
	return e.Usage
}
