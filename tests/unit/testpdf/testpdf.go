// Package testpdf builds minimal uncompressed PDF files for tests. The
// output uses a classic xref table and literal text strings so the ingestion
// reader can parse it without any decompression.
package testpdf

import (
	"bytes"
	"fmt"
	"strings"
)

// Line is one positioned text line on a page. Coordinates are PDF user
// space, origin bottom-left.
type Line struct {
	X, Y float64
	Size float64
	Text string
}

// Build assembles a PDF with one entry per element of pages, each holding
// the given text lines on a US Letter page.
func Build(pages ...[]Line) []byte {
	var buf bytes.Buffer
	offsets := make(map[int]int)

	writeObj := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	writeObj(3, fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /FirstChar 32 /LastChar 126 /Widths [%s] >>", widths()))

	for i, lines := range pages {
		pageNum := 4 + 2*i
		contentNum := 5 + 2*i
		writeObj(pageNum, fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
			contentNum))

		stream := contentStream(lines)
		writeObj(contentNum, fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", len(stream), stream))
	}

	objCount := 3 + 2*len(pages)
	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", objCount+1)
	buf.WriteString("0000000000 65535 f \n")
	for num := 1; num <= objCount; num++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[num])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", objCount+1, xrefOffset)

	return buf.Bytes()
}

// SinglePage builds a one-page PDF with the given lines laid out top to
// bottom starting near the top margin, 12pt each.
func SinglePage(texts ...string) []byte {
	lines := make([]Line, len(texts))
	for i, t := range texts {
		lines[i] = Line{X: 72, Y: 720 - float64(i)*24, Size: 12, Text: t}
	}
	return Build(lines)
}

func contentStream(lines []Line) string {
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "BT /F1 %g Tf %g %g Td (%s) Tj ET\n", l.Size, l.X, l.Y, escape(l.Text))
	}
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(s)
}

func widths() string {
	w := make([]string, 95)
	for i := range w {
		w[i] = "500"
	}
	return strings.Join(w, " ")
}
