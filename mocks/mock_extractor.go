package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, doc *domain.ParsedDocument, provider domain.ProviderType) (*domain.ExtractedVoucherData, error) {
	args := m.Called(ctx, doc, provider)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractedVoucherData), args.Error(1)
}
