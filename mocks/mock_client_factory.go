package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
)

// MockClientFactory is a mock implementation of port.ClientFactory.
type MockClientFactory struct {
	mock.Mock
}

func (m *MockClientFactory) Client(provider domain.ProviderType) (port.LLMClient, error) {
	args := m.Called(provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(port.LLMClient), args.Error(1)
}
