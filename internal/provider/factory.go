package provider

import (
	"fmt"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
)

// Builder creates an LLM client for one provider variant.
type Builder func() (port.LLMClient, error)

// Factory maps ProviderType variants to client builders. It implements
// port.ClientFactory. Adding a provider means registering a variant here,
// not branching on provider names in the extractor.
type Factory struct {
	builders map[domain.ProviderType]Builder
}

// NewFactory creates an empty Factory.
func NewFactory() *Factory {
	return &Factory{builders: make(map[domain.ProviderType]Builder)}
}

// Register adds a client builder for a provider type.
func (f *Factory) Register(p domain.ProviderType, b Builder) {
	f.builders[p] = b
}

// Client returns the client for the selected provider. An unregistered
// provider is a caller error; a registered provider without a credential
// fails with *AuthError from its builder.
func (f *Factory) Client(p domain.ProviderType) (port.LLMClient, error) {
	b, ok := f.builders[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, p)
	}
	return b()
}
