package project

import (
	"context"

	"go-estateflow/internal/store"
	"go-estateflow/internal/validation"
)

const (
	RuleCompletionRequiresStart = "project.completion.requires_start"
	RuleExpectedCompletionOrder = "project.expected_completion.order"
	RuleCompanyExists           = "project.company.exists"
	RuleCreatedByExists         = "project.created_by.exists"
	RuleProjectManagerExists    = "project.project_manager.exists"
)

type Validator struct{}

func (Validator) Validate(ctx context.Context, p, _ *Project, lookups validation.Lookups) (validation.Violations, error) {
	var v validation.Violations

	if p.ActualCompletionDate != nil && p.StartDate == nil {
		v.Add(RuleCompletionRequiresStart, "actualCompletionDate", "actualCompletionDate requires startDate")
	}
	if p.StartDate != nil && p.ExpectedCompletionDate != nil && p.ExpectedCompletionDate.Before(*p.StartDate) {
		v.Add(RuleExpectedCompletionOrder, "expectedCompletionDate", "expectedCompletionDate must not precede startDate")
	}

	if err := validation.RequireRef(ctx, lookups, &v, store.KindCompany, &p.CompanyID, RuleCompanyExists, "companyId"); err != nil {
		return v, err
	}
	if err := validation.RequireRef(ctx, lookups, &v, store.KindUser, p.CreatedBy, RuleCreatedByExists, "createdBy"); err != nil {
		return v, err
	}
	err := validation.RequireRef(ctx, lookups, &v, store.KindUser, p.ProjectManager, RuleProjectManagerExists, "projectManager")
	return v, err
}
