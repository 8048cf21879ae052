package validator_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/validator"
)

func completeExtraction() *domain.ExtractedVoucherData {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.NewFromInt(500000)
	return &domain.ExtractedVoucherData{
		Title:          domain.NewFieldValue("配当決議書", 0.95, nil),
		CompanyName:    domain.NewFieldValue("株式会社Acme", 0.9, nil),
		ResolutionDate: domain.FieldValue[time.Time]{Value: &date, Confidence: 0.9},
		DividendAmount: domain.FieldValue[decimal.Decimal]{Value: &amount, Confidence: 0.9},
	}
}

func TestValidate_AllRequirementsMet(t *testing.T) {
	v := validator.NewVoucherValidator()

	report := v.Validate(completeExtraction())

	assert.Equal(t, domain.OverallPass, report.OverallStatus)
	require.Len(t, report.Requirements, 4)
	for field, rs := range report.Requirements {
		assert.Equal(t, domain.RequirementPass, rs.Status, "field %s", field)
		assert.Empty(t, rs.Message, "field %s", field)
	}
}

func TestValidate_MissingFieldsFail(t *testing.T) {
	v := validator.NewVoucherValidator()

	report := v.Validate(domain.EmptyExtraction(domain.ReasonFieldNotFound))

	assert.Equal(t, domain.OverallFail, report.OverallStatus)
	for field, rs := range report.Requirements {
		assert.Equal(t, domain.RequirementFail, rs.Status, "field %s", field)
		assert.NotEmpty(t, rs.Message, "field %s", field)
	}
	assert.Equal(t, "配当決議書のタイトルが確認できません", report.Requirements[domain.FieldTitle].Message)
}

func TestValidate_UnparsableDateIsUnknown(t *testing.T) {
	v := validator.NewVoucherValidator()
	data := completeExtraction()
	data.ResolutionDate = domain.AbsentField[time.Time](domain.ReasonDateUnparsable)

	report := v.Validate(data)

	rs := report.Requirements[domain.FieldResolutionDate]
	assert.Equal(t, domain.RequirementUnknown, rs.Status)
	assert.Equal(t, "日付形式が不正です (YYYY-MM-DD)", rs.Message)
	assert.Equal(t, domain.OverallWarning, report.OverallStatus)
}

func TestValidate_UnparsableAmountIsUnknown(t *testing.T) {
	v := validator.NewVoucherValidator()
	data := completeExtraction()
	data.DividendAmount = domain.AbsentField[decimal.Decimal](domain.ReasonAmountUnparsable)

	report := v.Validate(data)

	rs := report.Requirements[domain.FieldDividendAmount]
	assert.Equal(t, domain.RequirementUnknown, rs.Status)
	assert.Equal(t, "金額の形式が不正です", rs.Message)
	assert.Equal(t, domain.OverallWarning, report.OverallStatus)
}

func TestValidate_FailDominatesUnknown(t *testing.T) {
	v := validator.NewVoucherValidator()
	data := completeExtraction()
	data.Title = domain.AbsentField[string](domain.ReasonFieldNotFound)
	data.ResolutionDate = domain.AbsentField[time.Time](domain.ReasonDateUnparsable)

	report := v.Validate(data)

	assert.Equal(t, domain.OverallFail, report.OverallStatus)
}

func TestValidate_CitationMissStillPasses(t *testing.T) {
	v := validator.NewVoucherValidator()
	data := completeExtraction()
	// Value present but its excerpt could not be located.
	data.CompanyName.UnresolvedReason = domain.ReasonCitationNotFound
	data.CompanyName.Confidence = 0.6

	report := v.Validate(data)

	assert.Equal(t, domain.RequirementPass, report.Requirements[domain.FieldCompanyName].Status)
	assert.Equal(t, domain.OverallPass, report.OverallStatus)
}

func TestOverall_Fold(t *testing.T) {
	mk := func(states ...domain.RequirementState) map[string]domain.RequirementStatus {
		reqs := make(map[string]domain.RequirementStatus, len(states))
		for i, s := range states {
			reqs[domain.RequiredFields[i]] = domain.RequirementStatus{Status: s}
		}
		return reqs
	}

	pass, fail, unknown := domain.RequirementPass, domain.RequirementFail, domain.RequirementUnknown

	assert.Equal(t, domain.OverallPass, validator.Overall(mk(pass, pass, pass, pass)))
	assert.Equal(t, domain.OverallWarning, validator.Overall(mk(pass, unknown, pass, pass)))
	assert.Equal(t, domain.OverallFail, validator.Overall(mk(fail, pass, pass, pass)))
	assert.Equal(t, domain.OverallFail, validator.Overall(mk(fail, unknown, unknown, pass)))
	assert.Equal(t, domain.OverallWarning, validator.Overall(mk(unknown, unknown, unknown, unknown)))
	assert.Equal(t, domain.OverallPass, validator.Overall(nil))
}

// Exhaustive check of the fold over every combination of the four
// requirement states.
func TestOverall_Exhaustive(t *testing.T) {
	states := []domain.RequirementState{
		domain.RequirementPass,
		domain.RequirementFail,
		domain.RequirementUnknown,
	}

	for _, a := range states {
		for _, b := range states {
			for _, c := range states {
				for _, d := range states {
					combo := []domain.RequirementState{a, b, c, d}
					reqs := make(map[string]domain.RequirementStatus, 4)
					hasFail, hasUnknown := false, false
					for i, s := range combo {
						reqs[domain.RequiredFields[i]] = domain.RequirementStatus{Status: s}
						hasFail = hasFail || s == domain.RequirementFail
						hasUnknown = hasUnknown || s == domain.RequirementUnknown
					}

					want := domain.OverallPass
					if hasFail {
						want = domain.OverallFail
					} else if hasUnknown {
						want = domain.OverallWarning
					}

					assert.Equal(t, want, validator.Overall(reqs), "combo %v", combo)
				}
			}
		}
	}
}
