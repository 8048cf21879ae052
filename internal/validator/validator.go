package validator

import (
	"github.com/KenichiNakayama/voucher-checker-dividends/internal/domain"
)

// Messages shown to reviewers when a requirement is not met.
const (
	msgTitleMissing    = "配当決議書のタイトルが確認できません"
	msgCompanyMissing  = "配当決議の会社名が確認できません"
	msgDateMissing     = "配当決議日が確認できません"
	msgAmountMissing   = "配当金額が確認できません"
	msgDateAmbiguous   = "日付形式が不正です (YYYY-MM-DD)"
	msgAmountAmbiguous = "金額の形式が不正です"
)

// VoucherValidator checks extracted voucher fields against the fixed
// business requirements. Validate is a pure function: no I/O, always returns
// a report, never an error.
type VoucherValidator struct{}

// NewVoucherValidator creates a VoucherValidator.
func NewVoucherValidator() *VoucherValidator {
	return &VoucherValidator{}
}

// Validate maps each of the four required fields to pass, fail, or unknown
// and folds the overall status: fail if any requirement failed, warning if
// none failed but at least one is unknown, pass otherwise.
func (v *VoucherValidator) Validate(data *domain.ExtractedVoucherData) *domain.ValidationReport {
	report := &domain.ValidationReport{
		Requirements: map[string]domain.RequirementStatus{
			domain.FieldTitle:          requirementStatus(data.Title.Value != nil, data.Title.UnresolvedReason, msgTitleMissing),
			domain.FieldCompanyName:    requirementStatus(data.CompanyName.Value != nil, data.CompanyName.UnresolvedReason, msgCompanyMissing),
			domain.FieldResolutionDate: requirementStatus(data.ResolutionDate.Value != nil, data.ResolutionDate.UnresolvedReason, msgDateMissing),
			domain.FieldDividendAmount: requirementStatus(data.DividendAmount.Value != nil, data.DividendAmount.UnresolvedReason, msgAmountMissing),
		},
	}
	report.OverallStatus = Overall(report.Requirements)
	return report
}

// requirementStatus derives one requirement's verdict. A present value
// passes. An absent value is unknown when it was found but could not be
// coerced (parse ambiguity), and a structural failure otherwise.
func requirementStatus(present bool, reason, missingMsg string) domain.RequirementStatus {
	if present {
		return domain.RequirementStatus{Status: domain.RequirementPass}
	}
	switch reason {
	case domain.ReasonDateUnparsable:
		return domain.RequirementStatus{Status: domain.RequirementUnknown, Message: msgDateAmbiguous}
	case domain.ReasonAmountUnparsable:
		return domain.RequirementStatus{Status: domain.RequirementUnknown, Message: msgAmountAmbiguous}
	default:
		return domain.RequirementStatus{Status: domain.RequirementFail, Message: missingMsg}
	}
}

// Overall folds requirement statuses into the report-level status.
func Overall(requirements map[string]domain.RequirementStatus) domain.OverallStatus {
	overall := domain.OverallPass
	for _, rs := range requirements {
		switch rs.Status {
		case domain.RequirementFail:
			return domain.OverallFail
		case domain.RequirementUnknown:
			overall = domain.OverallWarning
		}
	}
	return overall
}
