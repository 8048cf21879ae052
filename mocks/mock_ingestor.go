package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// MockIngestor is a mock implementation of port.Ingestor.
type MockIngestor struct {
	mock.Mock
}

func (m *MockIngestor) Ingest(ctx context.Context, pdfBytes []byte) (*domain.ParsedDocument, error) {
	args := m.Called(ctx, pdfBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParsedDocument), args.Error(1)
}
