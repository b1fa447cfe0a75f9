package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the engine.
var (
	// ErrInvalidRequest marks malformed search input, rejected before any
	// network activity.
	ErrInvalidRequest = errors.New("invalid search request")

	// ErrAllProvidersFailed means no provider, including the fallback
	// generator, produced a usable result.
	ErrAllProvidersFailed = errors.New("all flight providers failed")

	// ErrProviderTimeout marks a provider call that exceeded its budget.
	ErrProviderTimeout = errors.New("provider timed out")

	// ErrProviderUnavailable marks a provider that could not be reached.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// ProviderError wraps a single adapter's failure. The orchestrator treats it
// as non-fatal: the failing source is excluded from the merge and accounted
// for in the response's fallback metadata.
type ProviderError struct {
	// Source identifies the failing provider.
	Source Source

	// Err is the underlying cause.
	Err error

	// Retryable indicates whether the call may be retried.
	Retryable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a non-retryable ProviderError.
func NewProviderError(source Source, err error) *ProviderError {
	return &ProviderError{Source: source, Err: err}
}

// NewRetryableProviderError creates a ProviderError that may be retried.
func NewRetryableProviderError(source Source, err error) *ProviderError {
	return &ProviderError{Source: source, Err: err, Retryable: true}
}

// NewProviderTimeoutError creates a ProviderError wrapping ErrProviderTimeout.
func NewProviderTimeoutError(source Source) *ProviderError {
	return &ProviderError{Source: source, Err: ErrProviderTimeout}
}

// NewProviderUnavailableError creates a retryable ProviderError wrapping
// ErrProviderUnavailable.
func NewProviderUnavailableError(source Source) *ProviderError {
	return &ProviderError{Source: source, Err: ErrProviderUnavailable, Retryable: true}
}

// ValidationError marks a single malformed request field. It fails the search
// fast, before any provider is contacted.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is makes ValidationError match ErrInvalidRequest.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidRequest
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidRequest wraps a formatted message with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// AggregationError marks an unexpected fault inside the merge/filter/score
// pipeline itself, as opposed to a provider failure. The orchestrator
// recovers it at the outermost boundary and degrades to the generator.
type AggregationError struct {
	// Stage names the pipeline stage that faulted.
	Stage string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregation failed at %s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying error.
func (e *AggregationError) Unwrap() error {
	return e.Err
}

// NewAggregationError creates an AggregationError for the given stage.
func NewAggregationError(stage string, err error) *AggregationError {
	return &AggregationError{Stage: stage, Err: err}
}

// IsInvalidRequest reports whether err is a validation failure.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsAllProvidersFailed reports whether err means no provider succeeded.
func IsAllProvidersFailed(err error) bool {
	return errors.Is(err, ErrAllProvidersFailed)
}

// IsProviderTimeout reports whether err is a provider timeout.
func IsProviderTimeout(err error) bool {
	return errors.Is(err, ErrProviderTimeout)
}

// IsRetryable reports whether err is a retryable provider error.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}
