package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/provider"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/validator"
)

// Analyzer runs the full voucher analysis: ingest, extract, validate,
// highlight. Only ingestion is fatal; every later stage degrades into an
// entry of the result's Errors list while the earlier stages' output is
// preserved.
type Analyzer struct {
	ingestor  port.Ingestor
	extractor port.Extractor
	validator *validator.VoucherValidator
	renderer  port.Renderer
}

// NewAnalyzer wires the pipeline stages together.
func NewAnalyzer(ingestor port.Ingestor, extractor port.Extractor, v *validator.VoucherValidator, renderer port.Renderer) *Analyzer {
	return &Analyzer{
		ingestor:  ingestor,
		extractor: extractor,
		validator: v,
		renderer:  renderer,
	}
}

// Analyze processes one uploaded voucher with the selected provider. The
// returned result is always non-nil; the error is non-nil only when
// ingestion failed and nothing downstream could run.
func (a *Analyzer) Analyze(ctx context.Context, pdfBytes []byte, providerType domain.ProviderType) (*domain.VoucherAnalysisResult, error) {
	result := &domain.VoucherAnalysisResult{}

	doc, err := a.ingestor.Ingest(ctx, pdfBytes)
	if err != nil {
		log.Printf("pipeline.Analyzer: ingestion failed: %v", err)
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}

	data, err := a.extractor.Extract(ctx, doc, providerType)
	if err != nil {
		log.Printf("pipeline.Analyzer: extraction failed (provider=%s): %v", providerType, err)
		result.Errors = append(result.Errors, extractionErrorMessage(providerType, err))
		data = domain.EmptyExtraction(domain.ReasonExtractionFailed)
	}
	result.Extracted = data

	// Validation is pure and always runs, even over an empty extraction, so
	// the reviewer sees which requirements remain unmet.
	result.Validation = a.validator.Validate(data)

	rendered, err := a.renderer.Render(pdfBytes, doc, data)
	if err != nil {
		log.Printf("pipeline.Analyzer: highlight rendering failed: %v", err)
		result.Errors = append(result.Errors, err.Error())
	} else {
		result.HighlightedDocument = rendered
	}

	return result, nil
}

// extractionErrorMessage turns an extraction failure into a reviewer-facing
// message. Credential problems get a configuration hint instead of the raw
// provider error.
func extractionErrorMessage(providerType domain.ProviderType, err error) string {
	var authErr *provider.AuthError
	if errors.As(err, &authErr) {
		return fmt.Sprintf("AI provider %q is not configured: set its API key and retry", providerType)
	}
	return err.Error()
}
