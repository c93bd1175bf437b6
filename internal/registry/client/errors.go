package client

import (
	"errors"
	"fmt"

	dErrors "testament/pkg/domain-errors"
)

// ErrorCategory is the normalized failure taxonomy for registry calls.
type ErrorCategory string

const (
	ErrorTimeout          ErrorCategory = "timeout"
	ErrorBadData          ErrorCategory = "bad_data"
	ErrorAuthentication   ErrorCategory = "authentication"
	ErrorProviderOutage   ErrorCategory = "provider_outage"
	ErrorContractMismatch ErrorCategory = "contract_mismatch"
	ErrorRateLimited      ErrorCategory = "rate_limited"
	ErrorInternal         ErrorCategory = "internal"
)

// ProviderError wraps a registry failure with its category.
type ProviderError struct {
	Category   ErrorCategory
	Registry   string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("registry %s [%s]: %s: %v", e.Registry, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("registry %s [%s]: %s", e.Registry, e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

func NewProviderError(category ErrorCategory, registry, message string, underlying error) *ProviderError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited
	return &ProviderError{
		Category:   category,
		Registry:   registry,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// toDomain gives a provider failure the code the will service reports.
func toDomain(err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "registry unavailable")
	}
	switch pe.Category {
	case ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "registry "+pe.Registry+" timed out")
	case ErrorProviderOutage, ErrorRateLimited:
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "registry "+pe.Registry+" unavailable")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "registry "+pe.Registry+" failed")
	}
}
