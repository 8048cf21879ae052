package port

import (
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// Renderer produces a highlighted copy of the source document. It never
// mutates the original bytes; an empty citation set is a valid outcome and
// yields an unannotated copy.
type Renderer interface {
	Render(originalPDF []byte, doc *domain.ParsedDocument, data *domain.ExtractedVoucherData) ([]byte, error)
}
