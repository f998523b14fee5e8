package company

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompany_Normalize(t *testing.T) {
	c := &Company{
		CompanyName: "  Acme ",
		Emails:      []CompanyEmail{{Type: "primary", Email: " A@X.COM "}},
		RegistrationDetails: RegistrationDetails{
			GSTNumber: " 27abcde1234f1z5",
			PANNumber: "abcde1234f",
		},
	}

	c.Normalize()

	assert.Equal(t, "Acme", c.CompanyName)
	assert.Equal(t, EmailPrimary, c.Emails[0].Type)
	assert.Equal(t, "a@x.com", c.Emails[0].Email)
	assert.Equal(t, "27ABCDE1234F1Z5", c.RegistrationDetails.GSTNumber)
	assert.Equal(t, "ABCDE1234F", c.RegistrationDetails.PANNumber)
}

func TestCompany_ApplyDefaults(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty subscription", func(t *testing.T) {
		c := &Company{}
		c.ApplyDefaults(now)

		assert.Equal(t, PlanBasic, c.Subscription.Plan)
		assert.Equal(t, SubscriptionTrial, c.Subscription.Status)
		assert.Equal(t, DefaultMaxUsers, c.Subscription.MaxUsers)
		assert.Equal(t, DefaultMaxProjects, c.Subscription.MaxProjects)
		require.NotNil(t, c.Subscription.TrialEndsAt)
		assert.Equal(t, now.Add(TrialPeriod), *c.Subscription.TrialEndsAt)
		assert.False(t, *c.Policies.AllowProjectDeletion)
		assert.False(t, *c.Policies.AllowUserDeletion)
		assert.True(t, *c.Policies.AllowDataExport)
		assert.True(t, c.IsActive)
	})

	t.Run("explicit values survive", func(t *testing.T) {
		no := false
		c := &Company{
			Subscription: Subscription{Plan: PlanPro, Status: SubscriptionActive, MaxUsers: 50},
			Policies:     Policies{AllowDataExport: &no},
		}
		c.ApplyDefaults(now)

		assert.Equal(t, PlanPro, c.Subscription.Plan)
		assert.Equal(t, 50, c.Subscription.MaxUsers)
		assert.Nil(t, c.Subscription.TrialEndsAt, "only trials get a trial window")
		assert.False(t, *c.Policies.AllowDataExport)
	})
}

func TestCompany_CloneIsDeep(t *testing.T) {
	yes := true
	c := &Company{Emails: []CompanyEmail{{Type: EmailPrimary, Email: "a@x.com"}}, Policies: Policies{AllowDataExport: &yes}}

	cp := c.Clone()
	cp.Emails[0].Email = "b@x.com"
	*cp.Policies.AllowDataExport = false

	assert.Equal(t, "a@x.com", c.Emails[0].Email)
	assert.True(t, *c.Policies.AllowDataExport)
}
