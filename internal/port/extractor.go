package port

import (
	"context"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// Extractor produces structured voucher fields from a parsed document using
// the selected AI provider.
type Extractor interface {
	Extract(ctx context.Context, doc *domain.ParsedDocument, provider domain.ProviderType) (*domain.ExtractedVoucherData, error)
}
