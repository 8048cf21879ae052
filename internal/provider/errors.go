package provider

import (
	"fmt"
	"strconv"
	"time"
)

// AuthError indicates no usable credential for the selected provider, or a
// credential the provider rejected. Never retried, never silently replaced
// by another provider.
type AuthError struct {
	Provider string
	Err      error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s authentication failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s credential not configured", e.Provider)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RequestError indicates a transient transport failure (network error,
// timeout, 5xx, rate limit). Eligible for bounded retry.
type RequestError struct {
	Provider   string
	Err        error
	RetryAfter time.Duration
}

func (e *RequestError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s request failed (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// ResponseError indicates the provider answered but the payload cannot be
// used: malformed JSON, truncated output, or a non-transient rejection.
// Never retried.
type ResponseError struct {
	Provider string
	Err      error
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s returned an unusable response: %v", e.Provider, e.Err)
}

func (e *ResponseError) Unwrap() error {
	return e.Err
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

// ClassifyStatus maps a non-200 HTTP status to the provider error taxonomy.
func ClassifyStatus(providerName string, status int, body string, retryAfterHeader string) error {
	baseErr := fmt.Errorf("%s API error (status %d): %s", providerName, status, Truncate(body, 500))
	switch {
	case status == 401 || status == 403:
		return &AuthError{Provider: providerName, Err: baseErr}
	case status == 429:
		retryAfter := ParseRetryAfterHeader(retryAfterHeader)
		if retryAfter <= 0 {
			retryAfter = 60
		}
		return &RequestError{
			Provider:   providerName,
			Err:        baseErr,
			RetryAfter: time.Duration(retryAfter) * time.Second,
		}
	case status >= 500:
		return &RequestError{Provider: providerName, Err: baseErr}
	default:
		return &ResponseError{Provider: providerName, Err: baseErr}
	}
}

// Truncate shortens s to maxLen for log and error messages.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
