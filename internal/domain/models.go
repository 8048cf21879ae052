package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProviderType identifies an interchangeable AI extraction backend.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderClaude ProviderType = "claude"
)

// ParseProviderType converts a user-supplied provider name to a ProviderType.
func ParseProviderType(value string) (ProviderType, error) {
	switch ProviderType(strings.ToLower(strings.TrimSpace(value))) {
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	case ProviderClaude:
		return ProviderClaude, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProvider, value)
}

// BBox is an axis-aligned bounding box in PDF user space (origin bottom-left).
type BBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Page holds the full extracted text of one PDF page plus its geometry.
type Page struct {
	Number int     `json:"number"`
	Text   string  `json:"text"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextSpan is one reading-order token: a line of page text with its exact
// character offset range [Start, End) into Page.Text and its bounding box.
type TextSpan struct {
	Page  int    `json:"page"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	BBox  BBox   `json:"bbox"`
}

// ParsedDocument is the immutable output of PDF ingestion. It is created once
// per analysis call and never shared across requests.
type ParsedDocument struct {
	Pages    []Page
	Tokens   []TextSpan
	Metadata map[string]string
}

// PageByNumber returns the page with the given 1-based number, or nil.
func (d *ParsedDocument) PageByNumber(n int) *Page {
	for i := range d.Pages {
		if d.Pages[i].Number == n {
			return &d.Pages[i]
		}
	}
	return nil
}

// PageTokens returns the tokens belonging to the given page, in reading order.
func (d *ParsedDocument) PageTokens(n int) []TextSpan {
	var out []TextSpan
	for _, t := range d.Tokens {
		if t.Page == n {
			out = append(out, t)
		}
	}
	return out
}

// HighlightSpanRef is a back-reference from an extracted field into a
// ParsedDocument: page number plus a character offset range into that page's
// text. It never owns document state; only the highlight renderer resolves it
// to geometry.
type HighlightSpanRef struct {
	Page  int `json:"page"`
	Start int `json:"start"`
	End   int `json:"end"`
}

// Unresolved-reason codes recorded on FieldValue.
const (
	ReasonFieldNotFound    = "field_not_found"
	ReasonCitationNotFound = "citation_not_found"
	ReasonDateUnparsable   = "date_unparsable"
	ReasonAmountUnparsable = "amount_unparsable"
	ReasonExtractionFailed = "extraction_failed"
)

// FieldValue holds one extracted field with provenance metadata. A nil Value
// always carries an UnresolvedReason.
type FieldValue[T any] struct {
	Value            *T                `json:"value"`
	Confidence       float64           `json:"confidence"`
	Citation         *HighlightSpanRef `json:"citation,omitempty"`
	UnresolvedReason string            `json:"unresolved_reason,omitempty"`
}

// NewFieldValue builds a present field value.
func NewFieldValue[T any](value T, confidence float64, citation *HighlightSpanRef) FieldValue[T] {
	return FieldValue[T]{Value: &value, Confidence: confidence, Citation: citation}
}

// AbsentField builds an absent field value with the given reason.
func AbsentField[T any](reason string) FieldValue[T] {
	return FieldValue[T]{UnresolvedReason: reason}
}

// IsSet reports whether the field carries a value.
func (f FieldValue[T]) IsSet() bool {
	return f.Value != nil
}

const (
	FieldTitle          = "title"
	FieldCompanyName    = "company_name"
	FieldResolutionDate = "resolution_date"
	FieldDividendAmount = "dividend_amount"
	FieldOther          = "other"
)

// RequiredFields lists the four mandatory voucher fields in report order.
var RequiredFields = []string{
	FieldTitle,
	FieldCompanyName,
	FieldResolutionDate,
	FieldDividendAmount,
}

// ExtractedVoucherData is the structured output of field extraction,
// produced once per analysis call and then immutable.
type ExtractedVoucherData struct {
	Title          FieldValue[string]            `json:"title"`
	CompanyName    FieldValue[string]            `json:"company_name"`
	ResolutionDate FieldValue[time.Time]         `json:"resolution_date"`
	DividendAmount FieldValue[decimal.Decimal]   `json:"dividend_amount"`
	Others         map[string]FieldValue[string] `json:"others,omitempty"`
}

// EmptyExtraction returns an ExtractedVoucherData with all four required
// fields absent for the given reason.
func EmptyExtraction(reason string) *ExtractedVoucherData {
	return &ExtractedVoucherData{
		Title:          AbsentField[string](reason),
		CompanyName:    AbsentField[string](reason),
		ResolutionDate: AbsentField[time.Time](reason),
		DividendAmount: AbsentField[decimal.Decimal](reason),
	}
}

// Citation pairs a field name with its span reference.
type Citation struct {
	Field string
	Ref   HighlightSpanRef
}

// Citations collects every resolvable citation, required fields first.
func (d *ExtractedVoucherData) Citations() []Citation {
	var out []Citation
	if d.Title.Citation != nil {
		out = append(out, Citation{Field: FieldTitle, Ref: *d.Title.Citation})
	}
	if d.CompanyName.Citation != nil {
		out = append(out, Citation{Field: FieldCompanyName, Ref: *d.CompanyName.Citation})
	}
	if d.ResolutionDate.Citation != nil {
		out = append(out, Citation{Field: FieldResolutionDate, Ref: *d.ResolutionDate.Citation})
	}
	if d.DividendAmount.Citation != nil {
		out = append(out, Citation{Field: FieldDividendAmount, Ref: *d.DividendAmount.Citation})
	}
	for _, fv := range d.Others {
		if fv.Citation != nil {
			out = append(out, Citation{Field: FieldOther, Ref: *fv.Citation})
		}
	}
	return out
}

// RequirementState is the outcome of a single requirement check.
type RequirementState string

const (
	RequirementPass    RequirementState = "pass"
	RequirementFail    RequirementState = "fail"
	RequirementUnknown RequirementState = "unknown"
)

// RequirementStatus is the per-requirement validation verdict.
type RequirementStatus struct {
	Status  RequirementState `json:"status"`
	Message string           `json:"message"`
}

// OverallStatus summarizes a ValidationReport.
type OverallStatus string

const (
	OverallPass    OverallStatus = "pass"
	OverallWarning OverallStatus = "warning"
	OverallFail    OverallStatus = "fail"
)

// ValidationReport maps each requirement to its status. OverallStatus is fail
// if any requirement failed, warning if none failed but at least one is
// unknown, otherwise pass.
type ValidationReport struct {
	Requirements  map[string]RequirementStatus `json:"requirements"`
	OverallStatus OverallStatus                `json:"overall_status"`
}

// VoucherAnalysisResult is the sole structure crossing the pipeline/display
// boundary. It is constructible even when a late stage fails: degraded stages
// append to Errors instead of discarding earlier output.
type VoucherAnalysisResult struct {
	Extracted           *ExtractedVoucherData `json:"extracted,omitempty"`
	Validation          *ValidationReport     `json:"validation,omitempty"`
	HighlightedDocument []byte                `json:"-"`
	Errors              []string              `json:"errors"`
}
