package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

const sheetName = "Report"

// columns defines the report header row.
var columns = []string{
	"Requirement",
	"Status",
	"Message",
	"Value",
	"Confidence",
	"Citation Page",
}

// Field labels shown in the exported report.
var fieldLabels = map[string]string{
	domain.FieldTitle:          "タイトル",
	domain.FieldCompanyName:    "会社名",
	domain.FieldResolutionDate: "決議日",
	domain.FieldDividendAmount: "配当金額",
}

// WriteReport renders an analysis result as an XLSX workbook: one row per
// requirement, then any extra extracted fields, then pipeline errors.
func WriteReport(w io.Writer, result *domain.VoucherAnalysisResult) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	f.SetSheetName("Sheet1", sheetName)

	if err := writeRow(f, 1, columns); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(columns), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}

	row := 2
	for _, field := range domain.RequiredFields {
		if err := writeRow(f, row, requirementRow(field, result)); err != nil {
			return err
		}
		row++
	}

	if result.Extracted != nil {
		for label, fv := range result.Extracted.Others {
			cells := []string{label, "", "", deref(fv.Value), confidenceCell(fv), citationCell(fv.Citation)}
			if err := writeRow(f, row, cells); err != nil {
				return err
			}
			row++
		}
	}

	if len(result.Errors) > 0 {
		row++ // blank separator row
		if err := writeRow(f, row, []string{"Errors"}); err != nil {
			return err
		}
		row++
		for _, msg := range result.Errors {
			if err := writeRow(f, row, []string{"", "", msg}); err != nil {
				return err
			}
			row++
		}
	}

	_ = f.SetColWidth(sheetName, "A", "D", 28)
	return f.Write(w)
}

// requirementRow merges one requirement's validation verdict with its
// extracted value.
func requirementRow(field string, result *domain.VoucherAnalysisResult) []string {
	label := fieldLabels[field]

	var status, message string
	if result.Validation != nil {
		if rs, ok := result.Validation.Requirements[field]; ok {
			status = string(rs.Status)
			message = rs.Message
		}
	}

	var value, confidence, page string
	if d := result.Extracted; d != nil {
		switch field {
		case domain.FieldTitle:
			value, confidence, page = deref(d.Title.Value), confidenceCell(d.Title), citationCell(d.Title.Citation)
		case domain.FieldCompanyName:
			value, confidence, page = deref(d.CompanyName.Value), confidenceCell(d.CompanyName), citationCell(d.CompanyName.Citation)
		case domain.FieldResolutionDate:
			if d.ResolutionDate.Value != nil {
				value = d.ResolutionDate.Value.Format("2006-01-02")
			}
			confidence, page = confidenceCell(d.ResolutionDate), citationCell(d.ResolutionDate.Citation)
		case domain.FieldDividendAmount:
			if d.DividendAmount.Value != nil {
				value = d.DividendAmount.Value.String()
			}
			confidence, page = confidenceCell(d.DividendAmount), citationCell(d.DividendAmount.Citation)
		}
	}

	return []string{label, status, message, value, confidence, page}
}

func writeRow(f *excelize.File, row int, cells []string) error {
	for i, cell := range cells {
		name, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, name, cell); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func confidenceCell[T any](fv domain.FieldValue[T]) string {
	if fv.Value == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", fv.Confidence)
}

func citationCell(ref *domain.HighlightSpanRef) string {
	if ref == nil {
		return ""
	}
	return fmt.Sprintf("%d", ref.Page)
}
