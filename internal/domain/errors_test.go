package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderError(t *testing.T) {
	tests := []struct {
		name          string
		source        Source
		underlying    error
		wantContains  []string
		wantRetryable bool
	}{
		{
			name:         "message includes source and cause",
			source:       SourceAmadeus,
			underlying:   errors.New("connection refused"),
			wantContains: []string{"amadeus", "connection refused"},
		},
		{
			name:         "different source",
			source:       SourceSkyScanner,
			underlying:   errors.New("bad gateway"),
			wantContains: []string{"skyscanner", "bad gateway"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewProviderError(tt.source, tt.underlying)
			for _, want := range tt.wantContains {
				assert.Contains(t, err.Error(), want)
			}
			assert.True(t, errors.Is(err, tt.underlying))
			assert.Equal(t, tt.wantRetryable, err.Retryable)
		})
	}
}

func TestNewRetryableProviderError(t *testing.T) {
	cause := errors.New("rate limit exceeded")
	err := NewRetryableProviderError(SourceSkyScanner, cause)

	assert.Contains(t, err.Error(), "skyscanner")
	assert.True(t, errors.Is(err, cause))
	assert.True(t, err.Retryable)
	assert.True(t, IsRetryable(err))
}

func TestNewProviderTimeoutError(t *testing.T) {
	err := NewProviderTimeoutError(SourceAmadeus)
	assert.Contains(t, err.Error(), "amadeus")
	assert.True(t, errors.Is(err, ErrProviderTimeout))
	assert.True(t, IsProviderTimeout(err))
}

func TestNewProviderUnavailableError(t *testing.T) {
	err := NewProviderUnavailableError(SourceSkyScanner)
	assert.Contains(t, err.Error(), "skyscanner")
	assert.True(t, errors.Is(err, ErrProviderUnavailable))
	assert.True(t, err.Retryable)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("origin", "must be a 3-letter code")

	assert.Equal(t, "origin: must be a 3-letter code", err.Error())
	assert.Equal(t, "origin", err.Field)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.True(t, IsInvalidRequest(err))
}

func TestWrapInvalidRequest(t *testing.T) {
	err := WrapInvalidRequest("%s must be between %d and %d", "adults", 1, 9)

	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.Contains(t, err.Error(), "adults must be between 1 and 9")
}

func TestAggregationError(t *testing.T) {
	cause := errors.New("slice bounds out of range")
	err := NewAggregationError("scoring", cause)

	assert.Contains(t, err.Error(), "scoring")
	assert.Contains(t, err.Error(), "slice bounds out of range")
	assert.True(t, errors.Is(err, cause))
}

func TestErrorCheckers(t *testing.T) {
	tests := []struct {
		name      string
		checkFunc func(error) bool
		err       error
		want      bool
	}{
		{name: "IsInvalidRequest sentinel", checkFunc: IsInvalidRequest, err: ErrInvalidRequest, want: true},
		{name: "IsInvalidRequest wrapped", checkFunc: IsInvalidRequest, err: WrapInvalidRequest("x"), want: true},
		{name: "IsInvalidRequest other", checkFunc: IsInvalidRequest, err: ErrAllProvidersFailed, want: false},
		{name: "IsAllProvidersFailed sentinel", checkFunc: IsAllProvidersFailed, err: ErrAllProvidersFailed, want: true},
		{name: "IsAllProvidersFailed other", checkFunc: IsAllProvidersFailed, err: ErrInvalidRequest, want: false},
		{name: "IsProviderTimeout wrapped", checkFunc: IsProviderTimeout, err: NewProviderTimeoutError(SourceKiwi), want: true},
		{name: "IsProviderTimeout other", checkFunc: IsProviderTimeout, err: ErrInvalidRequest, want: false},
		{name: "IsRetryable non-provider error", checkFunc: IsRetryable, err: errors.New("plain"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.checkFunc(tt.err))
		})
	}
}
