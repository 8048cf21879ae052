package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/config"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/port"
)

const (
	// Confidence assigned when the provider reports none.
	defaultConfidence = 0.5
	// Multiplier applied when the reported excerpt cannot be located in the
	// document text.
	citationMissPenalty = 0.75
)

// dateLayouts are the accepted resolution-date forms, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006.01.02",
	"2006年1月2日",
	"2006年01月02日",
	"January 2, 2006",
	"2 January 2006",
}

// ResponseParseError indicates the AI payload omits the required keys
// entirely. Per-field problems never raise it.
type ResponseParseError struct {
	Err error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("unusable extraction payload: %v", e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}

// Extractor builds a provider-agnostic prompt from ingested text, invokes
// the selected AI backend, and resolves the response into typed fields with
// citations back into the document's token index.
type Extractor struct {
	clients          port.ClientFactory
	maxDocumentChars int
}

// NewExtractor creates an Extractor over a client factory.
func NewExtractor(clients port.ClientFactory, cfg *config.ExtractConfig) *Extractor {
	return &Extractor{
		clients:          clients,
		maxDocumentChars: cfg.MaxDocumentChars,
	}
}

// fieldPayload is one field entry of the provider payload.
type fieldPayload struct {
	Value      string   `json:"value"`
	Excerpt    string   `json:"excerpt"`
	Page       int      `json:"page"`
	Confidence *float64 `json:"confidence"`
}

// responsePayload is the normalized provider payload shape.
type responsePayload struct {
	Fields map[string]*fieldPayload `json:"fields"`
	Others map[string]*fieldPayload `json:"others"`
}

// Extract implements port.Extractor. Provider and schema failures abort the
// extraction; per-field coercion failures degrade that field to
// absent-with-reason instead.
func (e *Extractor) Extract(ctx context.Context, doc *domain.ParsedDocument, providerType domain.ProviderType) (*domain.ExtractedVoucherData, error) {
	client, err := e.clients.Client(providerType)
	if err != nil {
		return nil, &domain.ExtractionError{Stage: "client", Err: err}
	}

	excerpt, truncated := BuildDocumentExcerpt(doc, e.maxDocumentChars)
	if truncated {
		log.Printf("extract.Extractor: document excerpt truncated at a page boundary (budget %d chars)", e.maxDocumentChars)
	}

	resp, err := client.Extract(ctx, port.LLMRequest{
		System:   SystemPrompt,
		Document: excerpt,
		Schema:   SchemaPrompt,
	})
	if err != nil {
		return nil, &domain.ExtractionError{Stage: "provider", Err: err}
	}

	var payload responsePayload
	if err := json.Unmarshal(resp.Payload, &payload); err != nil {
		return nil, &ResponseParseError{Err: fmt.Errorf("decoding payload: %w", err)}
	}
	if payload.Fields == nil {
		return nil, &ResponseParseError{Err: fmt.Errorf("payload omits the %q key", "fields")}
	}

	data := &domain.ExtractedVoucherData{
		Title:          e.stringField(doc, payload.Fields[domain.FieldTitle]),
		CompanyName:    e.stringField(doc, payload.Fields[domain.FieldCompanyName]),
		ResolutionDate: e.dateField(doc, payload.Fields[domain.FieldResolutionDate]),
		DividendAmount: e.amountField(doc, payload.Fields[domain.FieldDividendAmount]),
	}
	for label, fp := range payload.Others {
		fv := e.stringField(doc, fp)
		if !fv.IsSet() {
			continue
		}
		if data.Others == nil {
			data.Others = make(map[string]domain.FieldValue[string])
		}
		data.Others[label] = fv
	}

	return data, nil
}

// stringField converts a payload entry into a string FieldValue with its
// citation resolved against the document.
func (e *Extractor) stringField(doc *domain.ParsedDocument, fp *fieldPayload) domain.FieldValue[string] {
	if fp == nil || strings.TrimSpace(fp.Value) == "" {
		return domain.AbsentField[string](domain.ReasonFieldNotFound)
	}

	value := strings.TrimSpace(fp.Value)
	fv := domain.NewFieldValue(value, reportedConfidence(fp), locateCitation(doc, fp))
	if fv.Citation == nil {
		// The value survives; only its provenance is missing.
		fv.Confidence *= citationMissPenalty
		fv.UnresolvedReason = domain.ReasonCitationNotFound
	}
	return fv
}

// dateField coerces a payload entry into a calendar date. An unparsable date
// keeps its citation so the reviewer can still see the offending text.
func (e *Extractor) dateField(doc *domain.ParsedDocument, fp *fieldPayload) domain.FieldValue[time.Time] {
	base := e.stringField(doc, fp)
	if !base.IsSet() {
		return domain.AbsentField[time.Time](base.UnresolvedReason)
	}

	raw := strings.TrimSpace(*base.Value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return domain.FieldValue[time.Time]{
				Value:            &t,
				Confidence:       base.Confidence,
				Citation:         base.Citation,
				UnresolvedReason: base.UnresolvedReason,
			}
		}
	}

	return domain.FieldValue[time.Time]{
		Confidence:       base.Confidence,
		Citation:         base.Citation,
		UnresolvedReason: domain.ReasonDateUnparsable,
	}
}

// amountField coerces a payload entry into a decimal amount. Currency marks
// and separators are stripped; locale-aware parsing is out of scope.
func (e *Extractor) amountField(doc *domain.ParsedDocument, fp *fieldPayload) domain.FieldValue[decimal.Decimal] {
	base := e.stringField(doc, fp)
	if !base.IsSet() {
		return domain.AbsentField[decimal.Decimal](base.UnresolvedReason)
	}

	cleaned := cleanAmount(*base.Value)
	if cleaned != "" {
		if amount, err := decimal.NewFromString(cleaned); err == nil {
			return domain.FieldValue[decimal.Decimal]{
				Value:            &amount,
				Confidence:       base.Confidence,
				Citation:         base.Citation,
				UnresolvedReason: base.UnresolvedReason,
			}
		}
	}

	return domain.FieldValue[decimal.Decimal]{
		Confidence:       base.Confidence,
		Citation:         base.Citation,
		UnresolvedReason: domain.ReasonAmountUnparsable,
	}
}

// cleanAmount strips currency marks, separators, and surrounding words from
// an amount string, keeping sign, digits, and the decimal point.
func cleanAmount(s string) string {
	s = strings.NewReplacer(",", "", "，", "", "¥", "", "￥", "", "$", "", "€", "", "円", "").Replace(s)
	s = strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsSpace(r)
	})
	return strings.TrimSpace(s)
}

// reportedConfidence normalizes the provider-reported confidence into [0,1].
func reportedConfidence(fp *fieldPayload) float64 {
	if fp.Confidence == nil {
		return defaultConfidence
	}
	c := *fp.Confidence
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// locateCitation finds the reported excerpt in the document by exact
// substring match, preferring the page the provider named. Fuzzy matching is
// deliberately not attempted.
func locateCitation(doc *domain.ParsedDocument, fp *fieldPayload) *domain.HighlightSpanRef {
	needle := strings.TrimSpace(fp.Excerpt)
	if needle == "" {
		needle = strings.TrimSpace(fp.Value)
	}
	if needle == "" {
		return nil
	}

	if page := doc.PageByNumber(fp.Page); page != nil {
		if ref := findOnPage(page, needle); ref != nil {
			return ref
		}
	}
	for i := range doc.Pages {
		if doc.Pages[i].Number == fp.Page {
			continue
		}
		if ref := findOnPage(&doc.Pages[i], needle); ref != nil {
			return ref
		}
	}
	return nil
}

func findOnPage(page *domain.Page, needle string) *domain.HighlightSpanRef {
	idx := strings.Index(page.Text, needle)
	if idx < 0 {
		return nil
	}
	return &domain.HighlightSpanRef{
		Page:  page.Number,
		Start: idx,
		End:   idx + len(needle),
	}
}
