package llmprovider

import (
	"errors"
	"fmt"
)

var (
	ErrAllProvidersFailed    = errors.New("all providers failed")
	ErrNoProvidersConfigured = errors.New("no providers configured")
	ErrInvalidRequest        = errors.New("invalid request")
	// ErrProviderTimeout marks a chain that ran out of its overall time budget.
	ErrProviderTimeout = errors.New("provider timeout")
	// ErrEmptyResponse is returned when a provider answers without text. The
	// manager retries it like any other provider failure.
	ErrEmptyResponse = errors.New("empty response")
)

// ProviderError attributes a failure to one provider and model.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Model == "" {
		return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("provider %s (%s): %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
