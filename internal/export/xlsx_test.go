package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

func sampleResult() *domain.VoucherAnalysisResult {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(500000)
	return &domain.VoucherAnalysisResult{
		Extracted: &domain.ExtractedVoucherData{
			Title:          domain.NewFieldValue("配当決議書", 0.97, &domain.HighlightSpanRef{Page: 1, Start: 0, End: 15}),
			CompanyName:    domain.NewFieldValue("株式会社Acme", 0.95, nil),
			ResolutionDate: domain.FieldValue[time.Time]{Value: &date, Confidence: 0.9},
			DividendAmount: domain.FieldValue[decimal.Decimal]{Value: &amount, Confidence: 0.92},
		},
		Validation: &domain.ValidationReport{
			Requirements: map[string]domain.RequirementStatus{
				domain.FieldTitle:          {Status: domain.RequirementPass},
				domain.FieldCompanyName:    {Status: domain.RequirementPass},
				domain.FieldResolutionDate: {Status: domain.RequirementPass},
				domain.FieldDividendAmount: {Status: domain.RequirementPass},
			},
			OverallStatus: domain.OverallPass,
		},
	}
}

func readSheet(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	return rows
}

func TestWriteReport_RequirementRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleResult()))

	rows := readSheet(t, &buf)
	require.GreaterOrEqual(t, len(rows), 5)

	assert.Equal(t, columns, rows[0][:len(columns)])

	// One row per required field, in report order.
	assert.Equal(t, "タイトル", rows[1][0])
	assert.Equal(t, "pass", rows[1][1])
	assert.Equal(t, "配当決議書", rows[1][3])
	assert.Equal(t, "0.97", rows[1][4])
	assert.Equal(t, "1", rows[1][5])

	assert.Equal(t, "決議日", rows[3][0])
	assert.Equal(t, "2024-03-01", rows[3][3])

	assert.Equal(t, "配当金額", rows[4][0])
	assert.Equal(t, "500000", rows[4][3])
}

func TestWriteReport_FailedRequirementCarriesMessage(t *testing.T) {
	result := sampleResult()
	result.Extracted.Title = domain.AbsentField[string](domain.ReasonFieldNotFound)
	result.Validation.Requirements[domain.FieldTitle] = domain.RequirementStatus{
		Status:  domain.RequirementFail,
		Message: "配当決議書のタイトルが確認できません",
	}
	result.Validation.OverallStatus = domain.OverallFail

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, result))

	rows := readSheet(t, &buf)
	assert.Equal(t, "fail", rows[1][1])
	assert.Equal(t, "配当決議書のタイトルが確認できません", rows[1][2])
	if len(rows[1]) > 3 {
		assert.Empty(t, rows[1][3])
	}
}

func TestWriteReport_ErrorsSection(t *testing.T) {
	result := &domain.VoucherAnalysisResult{
		Extracted:  domain.EmptyExtraction(domain.ReasonExtractionFailed),
		Validation: &domain.ValidationReport{OverallStatus: domain.OverallFail},
		Errors:     []string{"extraction failed at provider: rate limited"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, result))

	rows := readSheet(t, &buf)
	var found bool
	for _, row := range rows {
		for _, cell := range row {
			if cell == "extraction failed at provider: rate limited" {
				found = true
			}
		}
	}
	assert.True(t, found, "pipeline errors must appear in the report")
}

func TestWriteReport_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, &domain.VoucherAnalysisResult{}))

	rows := readSheet(t, &buf)
	require.GreaterOrEqual(t, len(rows), 5, "header plus a row per requirement")
}
