package provider_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/provider"
)

func TestParseRetryAfterHeader(t *testing.T) {
	assert.Equal(t, 0, provider.ParseRetryAfterHeader(""))
	assert.Equal(t, 0, provider.ParseRetryAfterHeader("not-a-number"))
	assert.Equal(t, 0, provider.ParseRetryAfterHeader("1.5"))
	assert.Equal(t, 30, provider.ParseRetryAfterHeader("30"))
}

func TestClassifyStatus_Auth(t *testing.T) {
	for _, status := range []int{401, 403} {
		err := provider.ClassifyStatus("openai", status, "denied", "")
		var authErr *provider.AuthError
		require.ErrorAs(t, err, &authErr, "status %d", status)
		assert.Equal(t, "openai", authErr.Provider)
	}
}

func TestClassifyStatus_RateLimit(t *testing.T) {
	err := provider.ClassifyStatus("claude", 429, "slow down", "7")

	var reqErr *provider.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 7*time.Second, reqErr.RetryAfter)
}

func TestClassifyStatus_RateLimitDefaultsRetryAfter(t *testing.T) {
	err := provider.ClassifyStatus("claude", 429, "slow down", "")

	var reqErr *provider.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 60*time.Second, reqErr.RetryAfter)
}

func TestClassifyStatus_ServerError(t *testing.T) {
	err := provider.ClassifyStatus("openai", 503, "unavailable", "")

	var reqErr *provider.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.RetryAfter)
}

func TestClassifyStatus_OtherStatus(t *testing.T) {
	err := provider.ClassifyStatus("openai", 400, "bad request", "")

	var respErr *provider.ResponseError
	assert.ErrorAs(t, err, &respErr)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", provider.Truncate("short", 10))
	assert.Equal(t, "abcde...", provider.Truncate("abcdefgh", 5))
}
