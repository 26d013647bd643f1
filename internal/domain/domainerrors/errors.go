// Package domainerrors defines the typed error taxonomy shared by the
// domain services and the provider backends. Handlers map these to HTTP
// statuses; the domain layer only cares about the category.
package domainerrors

import (
	"fmt"
	"net/http"
)

// ValidationError reports malformed constructor input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// PreconditionError reports an operation invoked against the wrong state.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// CredentialError reports a missing API key for a model that requires one.
type CredentialError struct {
	ModelDisplayName string
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.ModelDisplayName)
}

// UnsupportedProviderError reports a model that routes to no known backend.
type UnsupportedProviderError struct {
	Provider string
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported provider: %s", e.Provider)
}

// InvalidResponseError reports a well-formed HTTP response that lacks
// usable content (empty candidates, missing message, empty text).
type InvalidResponseError struct {
	Message string
}

func (e *InvalidResponseError) Error() string {
	return e.Message
}

// ContentBlockedError reports a provider refusing to return content for
// safety or recitation reasons. Deliberately distinct from
// InvalidResponseError so the UI can surface a specific message.
type ContentBlockedError struct {
	Reason string
}

func (e *ContentBlockedError) Error() string {
	return fmt.Sprintf("content generation blocked by the provider (%s)", e.Reason)
}

// ProviderErrorCategory classifies provider HTTP failures.
type ProviderErrorCategory string

const (
	ProviderErrorInvalidKey  ProviderErrorCategory = "invalid_key"
	ProviderErrorForbidden   ProviderErrorCategory = "forbidden"
	ProviderErrorRateLimited ProviderErrorCategory = "rate_limited"
	ProviderErrorBadRequest  ProviderErrorCategory = "bad_request"
	ProviderErrorUnknown     ProviderErrorCategory = "unknown"
)

// ProviderError reports a categorized non-2xx response from a provider.
type ProviderError struct {
	Category ProviderErrorCategory
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// CategorizeStatus maps an HTTP status code to a provider error category.
func CategorizeStatus(status int) ProviderErrorCategory {
	switch status {
	case http.StatusUnauthorized:
		return ProviderErrorInvalidKey
	case http.StatusForbidden:
		return ProviderErrorForbidden
	case http.StatusTooManyRequests:
		return ProviderErrorRateLimited
	case http.StatusBadRequest:
		return ProviderErrorBadRequest
	default:
		return ProviderErrorUnknown
	}
}

// StorageError wraps an adapter failure with the key that was being accessed.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
