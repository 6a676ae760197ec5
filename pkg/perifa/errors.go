package perifa

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrContainerNotFound indicates the host page lacks the element a
	// component renders into.
	ErrContainerNotFound = errors.New("container element not found")

	// ErrRouteNotFound indicates a navigation to an unregistered path.
	// The router recovers by redirecting home.
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidTheme indicates a theme name other than light or dark.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrNotReady indicates an operation on a component whose Init failed or
	// never ran.
	ErrNotReady = errors.New("component not initialized")
)

// ConfigurationError reports a required DOM element that is missing from the
// host page. The component that returns it stays inert for the rest of the
// page's lifetime; nothing else is affected.
type ConfigurationError struct {
	Component string // Component that failed to initialize (e.g., "router")
	ElementID string // Id of the missing element, empty when several are missing
	Err       error  // Underlying error
}

func (e *ConfigurationError) Error() string {
	if e.ElementID != "" {
		return fmt.Sprintf("perifa: %s: #%s: %v", e.Component, e.ElementID, e.Err)
	}
	return fmt.Sprintf("perifa: %s: %v", e.Component, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error for a missing element.
func NewConfigurationError(component, elementID string) *ConfigurationError {
	return &ConfigurationError{Component: component, ElementID: elementID, Err: ErrContainerNotFound}
}

// IsConfigurationError checks if an error is a configuration error.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsRouteNotFound checks if an error reports an unregistered route.
func IsRouteNotFound(err error) bool {
	return errors.Is(err, ErrRouteNotFound)
}
