package employee

import (
	"context"

	"go-estateflow/internal/store"
	"go-estateflow/internal/validation"
)

const (
	RuleHRVerifierRequired    = "employee_profile.hr_verifier.required"
	RuleAdminApproverRequired = "employee_profile.admin_approver.required"
	RuleUserExists            = "employee_profile.user.exists"
	RuleCompanyExists         = "employee_profile.company.exists"
	RuleHRVerifierExists      = "employee_profile.hr_verifier.exists"
	RuleAdminApproverExists   = "employee_profile.admin_approver.exists"
)

type Validator struct{}

func (Validator) Validate(ctx context.Context, p, _ *EmployeeProfile, lookups validation.Lookups) (validation.Violations, error) {
	var v validation.Violations

	switch p.VerificationStatus {
	case StatusHRVerified:
		if p.VerifiedByHR == nil {
			v.Add(RuleHRVerifierRequired, "verifiedByHR", "HR verifier is required when status is HR_VERIFIED")
		}
	case StatusAdminApproved:
		if p.ApprovedByAdmin == nil {
			v.Add(RuleAdminApproverRequired, "approvedByAdmin", "Admin approver is required when status is ADMIN_APPROVED")
		}
	}

	if err := validation.RequireRef(ctx, lookups, &v, store.KindUser, &p.UserID, RuleUserExists, "userId"); err != nil {
		return v, err
	}
	if err := validation.RequireRef(ctx, lookups, &v, store.KindCompany, &p.CompanyID, RuleCompanyExists, "companyId"); err != nil {
		return v, err
	}
	if err := validation.RequireRef(ctx, lookups, &v, store.KindUser, p.VerifiedByHR, RuleHRVerifierExists, "verifiedByHR"); err != nil {
		return v, err
	}
	err := validation.RequireRef(ctx, lookups, &v, store.KindUser, p.ApprovedByAdmin, RuleAdminApproverExists, "approvedByAdmin")
	return v, err
}
