package provider

import (
	"errors"
	"fmt"
)

// Common errors returned by providers.
var (
	// ErrNotFound indicates the query matched nothing.
	ErrNotFound = errors.New("no matching source found")

	// ErrAuthError indicates a missing or rejected API key.
	ErrAuthError = errors.New("provider authentication error")

	// ErrRateLimited indicates the provider's rate limit was exceeded.
	ErrRateLimited = errors.New("provider rate limit exceeded")

	// ErrNetworkError indicates a connectivity problem.
	ErrNetworkError = errors.New("network error contacting provider")

	// ErrInvalidResponse indicates an unparseable provider response.
	ErrInvalidResponse = errors.New("invalid provider response")

	// ErrUnavailable indicates the provider is not configured (e.g.
	// missing credentials) and was skipped.
	ErrUnavailable = errors.New("provider unavailable")
)

// APIError carries the HTTP-level detail of a provider failure.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// IsNotFound reports whether err means the query matched nothing.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}

// IsAuthError reports whether err is an authentication problem.
func IsAuthError(err error) bool {
	if errors.Is(err, ErrAuthError) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401 || apiErr.StatusCode == 403
	}
	return false
}

// IsRateLimited reports whether err indicates rate limiting.
func IsRateLimited(err error) bool {
	if errors.Is(err, ErrRateLimited) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 429
	}
	return false
}
