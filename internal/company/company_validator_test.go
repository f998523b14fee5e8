package company

import (
	"context"
	"testing"
	"time"

	"go-estateflow/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCompany() *Company {
	return &Company{
		CompanyName:   "Acme Estates",
		LegalName:     "Acme Estates Pvt Ltd",
		Emails:        []CompanyEmail{{Type: EmailPrimary, Email: "a@x.com"}},
		CreatedByRole: CreatedBySelfRegistered,
	}
}

func TestValidator_Emails(t *testing.T) {
	ctx := context.Background()
	lookups := store.NewMemoryStore()

	tests := []struct {
		name   string
		emails []CompanyEmail
		want   []string
	}{
		{"no emails", nil, []string{RuleEmailsRequired}},
		{"empty emails", []CompanyEmail{}, []string{RuleEmailsRequired}},
		{"no primary", []CompanyEmail{{Type: EmailBilling, Email: "b@x.com"}}, []string{RuleEmailsPrimary}},
		{
			"primary among others",
			[]CompanyEmail{{Type: EmailSupport, Email: "s@x.com"}, {Type: EmailPrimary, Email: "a@x.com"}},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCompany()
			c.Emails = tt.emails

			v, err := Validator{}.Validate(ctx, c, nil, lookups)

			require.NoError(t, err)
			if tt.want == nil {
				assert.True(t, v.Empty(), v.Error())
				return
			}
			assert.Equal(t, tt.want, v.Rules())
		})
	}
}

func TestValidator_AddingPrimaryFixesCompany(t *testing.T) {
	c := validCompany()
	c.Emails = []CompanyEmail{{Type: EmailSecondary, Email: "b@x.com"}}

	v, err := Validator{}.Validate(context.Background(), c, nil, store.NewMemoryStore())
	require.NoError(t, err)
	assert.True(t, v.Has(RuleEmailsPrimary))

	c.Emails = append(c.Emails, CompanyEmail{Type: EmailPrimary, Email: "a@x.com"})

	v, err = Validator{}.Validate(context.Background(), c, nil, store.NewMemoryStore())
	require.NoError(t, err)
	assert.True(t, v.Empty())
}

func TestValidator_SubscriptionWindowAndCreator(t *testing.T) {
	trial := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	early := trial.Add(-time.Hour)
	creator := uuid.New()

	c := validCompany()
	c.Emails = nil
	c.Subscription.TrialEndsAt = &trial
	c.Subscription.SubscriptionEndsAt = &early
	c.CreatedBy = &creator

	v, err := Validator{}.Validate(context.Background(), c, nil, store.NewMemoryStore())

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{RuleEmailsRequired, RuleSubscriptionWindow, RuleCreatedByExists}, v.Rules())
}
