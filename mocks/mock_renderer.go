package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// MockRenderer is a mock implementation of port.Renderer.
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(originalPDF []byte, doc *domain.ParsedDocument, data *domain.ExtractedVoucherData) ([]byte, error) {
	args := m.Called(originalPDF, doc, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
