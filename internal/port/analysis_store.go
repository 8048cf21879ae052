package port

import (
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// AnalysisStore retains analysis results for the session lifetime so the
// display layer can fetch artifacts after the analyze call.
type AnalysisStore interface {
	Save(key string, result *domain.VoucherAnalysisResult)
	Load(key string) (*domain.VoucherAnalysisResult, bool)
	Delete(key string)
	Keys() []string
}
