// File: internal/analyzer/errors.go
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/xkilldash9x/relic-cli/internal/llmclient"
)

// Category buckets provider failures so callers can decide whether retrying,
// waiting, or fixing credentials is the right response.
type Category string

const (
	CategoryAuth        Category = "auth"         // Invalid or missing API key.
	CategoryRateLimited Category = "rate_limited" // Quota exhausted upstream.
	CategoryOverloaded  Category = "overloaded"   // Provider is temporarily unavailable.
	CategoryBlocked     Category = "blocked"      // Safety filters refused the content.
	CategoryMalformed   Category = "malformed"    // Response could not be parsed.
	CategoryNetwork     Category = "network"      // Transport-level failure or timeout.
)

// ProviderError is the analyzer's public failure type. It carries a
// user-facing message alongside the classified category; the underlying
// cause stays reachable through Unwrap.
type ProviderError struct {
	Category Category
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("analysis provider error (%s): %s", e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Classify maps a raw client or parsing error onto a ProviderError. Errors
// that already are ProviderErrors pass through untouched.
func Classify(err error) *ProviderError {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	if errors.Is(err, llmclient.ErrContentBlocked) {
		return &ProviderError{
			Category: CategoryBlocked,
			Message:  "the provider's safety filters refused to analyze this input",
			Err:      err,
		}
	}

	var apiErr *llmclient.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &ProviderError{
				Category: CategoryAuth,
				Message:  "authentication failed; check RELIC_API_KEY",
				Err:      err,
			}
		case http.StatusTooManyRequests:
			return &ProviderError{
				Category: CategoryRateLimited,
				Message:  "provider rate limit exceeded; wait and retry",
				Err:      err,
			}
		case http.StatusInternalServerError, http.StatusServiceUnavailable:
			return &ProviderError{
				Category: CategoryOverloaded,
				Message:  "provider is temporarily overloaded; retry later",
				Err:      err,
			}
		default:
			return &ProviderError{
				Category: CategoryNetwork,
				Message:  fmt.Sprintf("provider returned unexpected status %d", apiErr.StatusCode),
				Err:      err,
			}
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &ProviderError{
			Category: CategoryNetwork,
			Message:  "request to the provider timed out or was canceled",
			Err:      err,
		}
	}

	return &ProviderError{
		Category: CategoryNetwork,
		Message:  "failed to reach the analysis provider",
		Err:      err,
	}
}
