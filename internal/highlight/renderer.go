package highlight

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/ledongthuc/pdf"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// rgb is a fill color for one field category.
type rgb struct{ r, g, b int }

// One distinguishable color per required field, neutral for the rest.
var fieldColors = map[string]rgb{
	domain.FieldTitle:          {255, 235, 59},
	domain.FieldCompanyName:    {129, 199, 132},
	domain.FieldResolutionDate: {100, 181, 246},
	domain.FieldDividendAmount: {255, 183, 77},
	domain.FieldOther:          {189, 189, 189},
}

const (
	highlightAlpha = 0.45
	minFontSize    = 6.0
	maxFontSize    = 24.0
)

// Renderer produces a highlighted rendition of the analyzed document. The
// original bytes are never mutated; the output is a fresh PDF that redraws
// each page's token text and overlays a colored box per resolved citation.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render implements port.Renderer. A nil or citation-free extraction still
// yields a valid, unannotated copy. Fails with *domain.RenderingError when
// the original bytes cannot be reopened or a citation names a page the
// document does not have.
func (r *Renderer) Render(originalPDF []byte, doc *domain.ParsedDocument, data *domain.ExtractedVoucherData) ([]byte, error) {
	if err := reopenCheck(originalPDF); err != nil {
		return nil, &domain.RenderingError{Err: err}
	}
	if doc == nil || len(doc.Pages) == 0 {
		return nil, &domain.RenderingError{Err: fmt.Errorf("no parsed document to render")}
	}

	var citations []domain.Citation
	if data != nil {
		citations = data.Citations()
	}

	// Resolve every citation to page rectangles up front so a corrupted
	// reference fails before any drawing happens.
	rects := make(map[int][]highlightRect)
	for _, c := range citations {
		page := doc.PageByNumber(c.Ref.Page)
		if page == nil {
			return nil, &domain.RenderingError{Err: fmt.Errorf("citation for %q references page %d of a %d-page document", c.Field, c.Ref.Page, len(doc.Pages))}
		}
		for _, box := range resolveSpan(doc, c.Ref) {
			rects[page.Number] = append(rects[page.Number], highlightRect{field: c.Field, box: box})
		}
	}

	return drawDocument(doc, rects)
}

type highlightRect struct {
	field string
	box   domain.BBox
}

// resolveSpan converts a character offset range into bounding boxes, one per
// overlapped token, interpolating horizontally within partially covered
// tokens.
func resolveSpan(doc *domain.ParsedDocument, ref domain.HighlightSpanRef) []domain.BBox {
	var boxes []domain.BBox
	for _, tok := range doc.PageTokens(ref.Page) {
		if tok.Start >= ref.End || tok.End <= ref.Start {
			continue
		}
		boxes = append(boxes, clipTokenBox(tok, ref))
	}
	return boxes
}

func clipTokenBox(tok domain.TextSpan, ref domain.HighlightSpanRef) domain.BBox {
	box := tok.BBox
	length := tok.End - tok.Start
	if length <= 0 {
		return box
	}

	width := box.X1 - box.X0
	startFrac := 0.0
	if ref.Start > tok.Start {
		startFrac = float64(ref.Start-tok.Start) / float64(length)
	}
	endFrac := 1.0
	if ref.End < tok.End {
		endFrac = float64(ref.End-tok.Start) / float64(length)
	}

	return domain.BBox{
		X0: box.X0 + startFrac*width,
		Y0: box.Y0,
		X1: box.X0 + endFrac*width,
		Y1: box.Y1,
	}
}

// drawDocument redraws every page with its highlight overlays underneath
// the token text.
func drawDocument(doc *domain.ParsedDocument, rects map[int][]highlightRect) ([]byte, error) {
	first := doc.Pages[0]
	out := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: first.Width, Ht: first.Height},
	})
	out.SetFont("Helvetica", "", 10)
	tr := out.UnicodeTranslatorFromDescriptor("")

	for i := range doc.Pages {
		page := &doc.Pages[i]
		out.AddPageFormat("P", fpdf.SizeType{Wd: page.Width, Ht: page.Height})

		out.SetAlpha(highlightAlpha, "Normal")
		for _, hr := range rects[page.Number] {
			color, ok := fieldColors[hr.field]
			if !ok {
				color = fieldColors[domain.FieldOther]
			}
			out.SetFillColor(color.r, color.g, color.b)
			x, y, w, h := toPageRect(page, hr.box)
			out.Rect(x, y, w, h, "F")
		}
		out.SetAlpha(1.0, "Normal")

		out.SetTextColor(0, 0, 0)
		for _, tok := range doc.PageTokens(page.Number) {
			size := tok.BBox.Y1 - tok.BBox.Y0
			if size < minFontSize {
				size = minFontSize
			}
			if size > maxFontSize {
				size = maxFontSize
			}
			out.SetFontSize(size)
			out.Text(tok.BBox.X0, page.Height-tok.BBox.Y0, tr(tok.Text))
		}
	}

	var buf bytes.Buffer
	if err := out.Output(&buf); err != nil {
		return nil, &domain.RenderingError{Err: err}
	}
	return buf.Bytes(), nil
}

// toPageRect converts a PDF-space bounding box (origin bottom-left) into
// fpdf drawing coordinates (origin top-left).
func toPageRect(page *domain.Page, box domain.BBox) (x, y, w, h float64) {
	w = box.X1 - box.X0
	h = box.Y1 - box.Y0
	if w < 2 {
		w = 2
	}
	if h < 2 {
		h = 2
	}
	return box.X0, page.Height - box.Y1, w, h
}

// reopenCheck verifies the original bytes are still an openable PDF. The
// ingestor already validated them, but the renderer keeps its own contract
// so it stays independently testable.
func reopenCheck(originalPDF []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reopening original pdf: %v", r)
		}
	}()

	if len(originalPDF) == 0 {
		return fmt.Errorf("original pdf bytes are empty")
	}
	reader, err := pdf.NewReader(bytes.NewReader(originalPDF), int64(len(originalPDF)))
	if err != nil {
		return fmt.Errorf("reopening original pdf: %w", err)
	}
	if reader.NumPage() < 1 {
		return fmt.Errorf("original pdf has no pages")
	}
	return nil
}
