package provider_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/provider"
	"github.com/KenichiNakayama/voucher-checker-dividends/mocks"
)

func TestFactory_ReturnsRegisteredClient(t *testing.T) {
	f := provider.NewFactory()
	client := new(mocks.MockLLMClient)
	f.Register(domain.ProviderOpenAI, func() (port.LLMClient, error) {
		return client, nil
	})

	got, err := f.Client(domain.ProviderOpenAI)

	require.NoError(t, err)
	assert.Same(t, client, got)
}

func TestFactory_UnknownProvider(t *testing.T) {
	f := provider.NewFactory()

	got, err := f.Client(domain.ProviderType("gemini"))

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrUnknownProvider)
}

func TestFactory_BuilderErrorPropagates(t *testing.T) {
	f := provider.NewFactory()
	f.Register(domain.ProviderClaude, func() (port.LLMClient, error) {
		return nil, &provider.AuthError{Provider: "claude"}
	})

	got, err := f.Client(domain.ProviderClaude)

	assert.Nil(t, got)
	var authErr *provider.AuthError
	assert.ErrorAs(t, err, &authErr)
}
