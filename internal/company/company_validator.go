package company

import (
	"context"

	"go-estateflow/internal/store"
	"go-estateflow/internal/validation"
)

const (
	RuleEmailsRequired     = "company.emails.required"
	RuleEmailsPrimary      = "company.emails.primary"
	RuleSubscriptionWindow = "company.subscription.window"
	RuleCreatedByExists    = "company.created_by.exists"
)

type Validator struct{}

func (Validator) Validate(ctx context.Context, c, _ *Company, lookups validation.Lookups) (validation.Violations, error) {
	var v validation.Violations

	checkEmails(c, &v)
	checkSubscriptionWindow(c, &v)

	err := validation.RequireRef(ctx, lookups, &v, store.KindUser, c.CreatedBy, RuleCreatedByExists, "createdBy")
	return v, err
}

func checkEmails(c *Company, v *validation.Violations) {
	if len(c.Emails) == 0 {
		v.Add(RuleEmailsRequired, "emails", "At least one email is required")
		return
	}
	if c.PrimaryEmail() == "" {
		v.Add(RuleEmailsPrimary, "emails", "A PRIMARY email is required")
	}
}

func checkSubscriptionWindow(c *Company, v *validation.Violations) {
	sub := c.Subscription
	if sub.TrialEndsAt == nil || sub.SubscriptionEndsAt == nil {
		return
	}
	if sub.SubscriptionEndsAt.Before(*sub.TrialEndsAt) {
		v.Add(RuleSubscriptionWindow, "subscription.subscriptionEndsAt", "subscriptionEndsAt must not precede trialEndsAt")
	}
}
