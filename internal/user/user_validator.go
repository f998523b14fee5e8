package user

import (
	"context"

	"go-estateflow/internal/store"
	"go-estateflow/internal/validation"
)

const (
	RuleSuperAdminCompany     = "user.super_admin.company"
	RuleCompanyRequired       = "user.company.required"
	RuleCredentialRequired    = "user.credential.required"
	RuleCompanyExists         = "user.company.exists"
	RuleEmployeeProfileExists = "user.employee_profile.exists"
)

type Validator struct{}

func (Validator) Validate(ctx context.Context, u, _ *User, lookups validation.Lookups) (validation.Violations, error) {
	var v validation.Violations

	switch {
	case u.Role == RolePlatformSuperAdmin && u.CompanyID != nil:
		v.Add(RuleSuperAdminCompany, "companyId", "Platform super admin cannot belong to a company")
	case requiresCompany(u.Role) && u.CompanyID == nil:
		v.Add(RuleCompanyRequired, "companyId", "companyId is required for role "+string(u.Role))
	}

	if !u.HasCredential() {
		v.Add(RuleCredentialRequired, "password", "Either password or googleId is required")
	}

	if err := validation.RequireRef(ctx, lookups, &v, store.KindCompany, u.CompanyID, RuleCompanyExists, "companyId"); err != nil {
		return v, err
	}
	err := validation.RequireRef(ctx, lookups, &v, store.KindEmployeeProfile, u.EmployeeProfileID, RuleEmployeeProfileExists, "employeeProfileId")
	return v, err
}

// requiresCompany is true for tenant roles other than the company admin,
// who may register before the company exists.
func requiresCompany(r Role) bool {
	return r != RoleCompanyAdmin && r != RolePlatformSuperAdmin
}
