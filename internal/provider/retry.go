package provider

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
)

const retryBackoffBase = 500 * time.Millisecond

// DoWithRetry runs call up to maxRetries+1 times. Only *RequestError is
// retried, with exponential backoff (or the provider's Retry-After when
// longer). Auth and response-shape errors return immediately, as does
// context cancellation.
func DoWithRetry(ctx context.Context, providerName string, maxRetries int, call func(ctx context.Context) (*port.LLMResponse, error)) (*port.LLMResponse, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryBackoffBase << (attempt - 1)
			var reqErr *RequestError
			if errors.As(lastErr, &reqErr) && reqErr.RetryAfter > delay {
				delay = reqErr.RetryAfter
			}
			log.Printf("provider.DoWithRetry: %s attempt %d/%d after %s: %v",
				providerName, attempt+1, maxRetries+1, delay, lastErr)

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, &RequestError{Provider: providerName, Err: ctx.Err()}
			case <-timer.C:
			}
		}

		resp, err := call(ctx)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
	}

	return nil, lastErr
}
