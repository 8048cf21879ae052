package ingest

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0

	// Horizontal gap between glyphs, as a fraction of the font size, beyond
	// which a word boundary is inserted.
	wordGapRatio = 0.25
)

// PDFIngestor parses PDF bytes into the internal ParsedDocument
// representation: per-page text plus line-level token spans carrying exact
// character offsets and bounding boxes.
type PDFIngestor struct{}

// NewPDFIngestor creates a PDFIngestor.
func NewPDFIngestor() *PDFIngestor {
	return &PDFIngestor{}
}

// Ingest implements port.Ingestor. It fails with *domain.IngestionError when
// the input is not a well-formed PDF or has no pages. Pages without
// extractable text (pure raster scans) still produce a page entry with an
// empty token list.
func (g *PDFIngestor) Ingest(ctx context.Context, pdfBytes []byte) (doc *domain.ParsedDocument, err error) {
	// The underlying reader panics on some malformed cross-reference and
	// content streams; treat any panic as a malformed document.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = &domain.IngestionError{Err: fmt.Errorf("malformed pdf: %v", r)}
		}
	}()

	if len(pdfBytes) == 0 {
		return nil, &domain.IngestionError{Err: domain.ErrEmptyUpload}
	}

	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return nil, &domain.IngestionError{Err: err}
	}

	numPages := reader.NumPage()
	if numPages < 1 {
		return nil, &domain.IngestionError{Err: fmt.Errorf("document contains no pages")}
	}

	doc = &domain.ParsedDocument{
		Metadata: map[string]string{"page_count": strconv.Itoa(numPages)},
	}
	if title := documentTitle(reader); title != "" {
		doc.Metadata["title"] = title
	}

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, &domain.IngestionError{Err: err}
		}

		page := reader.Page(i)
		width, height := pageSize(page)
		entry := domain.Page{Number: i, Width: width, Height: height}

		if page.V.IsNull() {
			doc.Pages = append(doc.Pages, entry)
			continue
		}

		rows, rowErr := page.GetTextByRow()
		if rowErr != nil || len(rows) == 0 {
			// Not an error: a later stage may still report "not found"
			// for this page.
			doc.Pages = append(doc.Pages, entry)
			continue
		}

		text, tokens := buildPageTokens(i, rows)
		entry.Text = text
		doc.Pages = append(doc.Pages, entry)
		doc.Tokens = append(doc.Tokens, tokens...)
	}

	return doc, nil
}

// buildPageTokens converts text rows into one token per line. The page text
// is the newline-join of the token texts, so every token's [Start, End)
// range indexes directly into it.
func buildPageTokens(pageNum int, rows pdf.Rows) (string, []domain.TextSpan) {
	var (
		tokens []domain.TextSpan
		sb     strings.Builder
		offset int
	)

	for _, row := range rows {
		if row == nil || len(row.Content) == 0 {
			continue
		}
		lineText, box := assembleLine(row.Content)
		if lineText == "" {
			continue
		}
		if offset > 0 {
			sb.WriteString("\n")
			offset++
		}
		start := offset
		sb.WriteString(lineText)
		offset += len(lineText)
		tokens = append(tokens, domain.TextSpan{
			Page:  pageNum,
			Text:  lineText,
			Start: start,
			End:   offset,
			BBox:  box,
		})
	}

	return sb.String(), tokens
}

// assembleLine joins the glyph runs of one row into a line string, inserting
// word boundaries where the horizontal gap exceeds wordGapRatio of the font
// size, and computes the union bounding box.
func assembleLine(glyphs []pdf.Text) (string, domain.BBox) {
	var sb strings.Builder
	box := domain.BBox{
		X0: glyphs[0].X,
		Y0: glyphs[0].Y,
		X1: glyphs[0].X + glyphs[0].W,
		Y1: glyphs[0].Y + glyphs[0].FontSize,
	}

	var prev *pdf.Text
	for i := range glyphs {
		g := &glyphs[i]
		if g.S == "" {
			continue
		}
		if prev != nil {
			gap := g.X - (prev.X + prev.W)
			threshold := wordGapRatio * g.FontSize
			if threshold <= 0 {
				threshold = 1.0
			}
			if gap > threshold && !strings.HasSuffix(sb.String(), " ") {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(g.S)

		if g.X < box.X0 {
			box.X0 = g.X
		}
		if g.Y < box.Y0 {
			box.Y0 = g.Y
		}
		if right := g.X + g.W; right > box.X1 {
			box.X1 = right
		}
		if top := g.Y + g.FontSize; top > box.Y1 {
			box.Y1 = top
		}
		prev = g
	}

	return strings.TrimSpace(sb.String()), box
}

// pageSize resolves the page MediaBox, walking up the page tree for
// inherited values. Falls back to US Letter when absent.
func pageSize(page pdf.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight

	mediaBox := page.V.Key("MediaBox")
	parent := page.V.Key("Parent")
	for depth := 0; mediaBox.IsNull() && !parent.IsNull() && depth < 8; depth++ {
		mediaBox = parent.Key("MediaBox")
		parent = parent.Key("Parent")
	}
	if mediaBox.Kind() != pdf.Array || mediaBox.Len() != 4 {
		return width, height
	}

	x0 := mediaBox.Index(0).Float64()
	y0 := mediaBox.Index(1).Float64()
	x1 := mediaBox.Index(2).Float64()
	y1 := mediaBox.Index(3).Float64()
	if x1 > x0 && y1 > y0 {
		width, height = x1-x0, y1-y0
	}
	return width, height
}

// documentTitle reads the Info dictionary title, if present.
func documentTitle(reader *pdf.Reader) (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	v := info.Key("Title")
	if v.Kind() != pdf.String {
		return ""
	}
	return strings.TrimSpace(v.Text())
}
