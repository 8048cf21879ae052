package port

import (
	"context"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// Ingestor turns raw PDF bytes into a parsed, coordinate-indexed document.
type Ingestor interface {
	Ingest(ctx context.Context, pdfBytes []byte) (*domain.ParsedDocument, error)
}
