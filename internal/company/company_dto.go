package company

import (
	"time"

	"go-estateflow/internal/lifecycle"

	"github.com/google/uuid"
)

// CreateCompanyRequest is decoded without binding rules; every check runs
// in the lifecycle so the caller gets the complete list at once.
type CreateCompanyRequest struct {
	CompanyName         string              `json:"companyName"`
	LegalName           string              `json:"legalName"`
	Emails              []CompanyEmail      `json:"emails"`
	CountryCode         string              `json:"countryCode"`
	Phone               string              `json:"phone"`
	Address             Address             `json:"address"`
	RegistrationDetails RegistrationDetails `json:"registrationDetails"`
	CompanyType         CompanyType         `json:"companyType"`
	Industry            Industry            `json:"industry"`
	Subscription        *Subscription       `json:"subscription"`
	Policies            *Policies           `json:"policies"`
	CreatedByRole       CreatedByRole       `json:"createdByRole"`
	CreatedBy           *uuid.UUID          `json:"createdBy"`
}

type UpdateCompanyRequest struct {
	CompanyName         *string              `json:"companyName"`
	LegalName           *string              `json:"legalName"`
	Emails              *[]CompanyEmail      `json:"emails"`
	CountryCode         *string              `json:"countryCode"`
	Phone               *string              `json:"phone"`
	Address             *Address             `json:"address"`
	RegistrationDetails *RegistrationDetails `json:"registrationDetails"`
	CompanyType         *CompanyType         `json:"companyType"`
	Industry            *Industry            `json:"industry"`
	Subscription        *SubscriptionPatch   `json:"subscription"`
	Policies            *Policies            `json:"policies"`
	IsVerified          *bool                `json:"isVerified"`
	IsActive            *bool                `json:"isActive"`
	CreatedBy           *uuid.UUID           `json:"createdBy"`
}

// SubscriptionPatch updates only the subscription fields it carries.
type SubscriptionPatch struct {
	Plan               *SubscriptionPlan   `json:"plan"`
	Status             *SubscriptionStatus `json:"status"`
	MaxUsers           *int                `json:"maxUsers"`
	MaxProjects        *int                `json:"maxProjects"`
	TrialEndsAt        *time.Time          `json:"trialEndsAt"`
	SubscriptionEndsAt *time.Time          `json:"subscriptionEndsAt"`
}

type CompanyResponse struct {
	ID                  string              `json:"id"`
	CompanyName         string              `json:"companyName"`
	LegalName           string              `json:"legalName"`
	Emails              []CompanyEmail      `json:"emails"`
	CountryCode         string              `json:"countryCode,omitempty"`
	Phone               string              `json:"phone,omitempty"`
	Address             Address             `json:"address"`
	RegistrationDetails RegistrationDetails `json:"registrationDetails"`
	CompanyType         CompanyType         `json:"companyType,omitempty"`
	Industry            Industry            `json:"industry,omitempty"`
	Subscription        Subscription        `json:"subscription"`
	Policies            Policies            `json:"policies"`
	CreatedByRole       CreatedByRole       `json:"createdByRole"`
	IsVerified          bool                `json:"isVerified"`
	IsActive            bool                `json:"isActive"`
	CreatedBy           *uuid.UUID          `json:"createdBy,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

func (r CreateCompanyRequest) toEntity() *Company {
	c := &Company{
		CompanyName:         r.CompanyName,
		LegalName:           r.LegalName,
		Emails:              r.Emails,
		CountryCode:         r.CountryCode,
		Phone:               r.Phone,
		Address:             r.Address,
		RegistrationDetails: r.RegistrationDetails,
		CompanyType:         r.CompanyType,
		Industry:            r.Industry,
		CreatedByRole:       r.CreatedByRole,
		CreatedBy:           r.CreatedBy,
	}
	if r.Subscription != nil {
		c.Subscription = *r.Subscription
	}
	if r.Policies != nil {
		c.Policies = *r.Policies
	}
	return c
}

func (r UpdateCompanyRequest) applyTo(c *Company, changed lifecycle.FieldSet) {
	lifecycle.Assign(changed, "companyName", &c.CompanyName, r.CompanyName)
	lifecycle.Assign(changed, "legalName", &c.LegalName, r.LegalName)
	lifecycle.Assign(changed, "emails", &c.Emails, r.Emails)
	lifecycle.Assign(changed, "countryCode", &c.CountryCode, r.CountryCode)
	lifecycle.Assign(changed, "phone", &c.Phone, r.Phone)
	lifecycle.Assign(changed, "address", &c.Address, r.Address)
	lifecycle.Assign(changed, "registrationDetails", &c.RegistrationDetails, r.RegistrationDetails)
	lifecycle.Assign(changed, "companyType", &c.CompanyType, r.CompanyType)
	lifecycle.Assign(changed, "industry", &c.Industry, r.Industry)
	lifecycle.Assign(changed, "isVerified", &c.IsVerified, r.IsVerified)
	lifecycle.Assign(changed, "isActive", &c.IsActive, r.IsActive)
	lifecycle.AssignRef(changed, "createdBy", &c.CreatedBy, r.CreatedBy)

	// Subscription and policies merge per field; an omitted field keeps its value.
	if changed.Has("subscription") && r.Subscription != nil {
		r.Subscription.applyTo(&c.Subscription)
	}

	if changed.Has("policies") && r.Policies != nil {
		if r.Policies.AllowProjectDeletion != nil {
			c.Policies.AllowProjectDeletion = cloneBool(r.Policies.AllowProjectDeletion)
		}
		if r.Policies.AllowUserDeletion != nil {
			c.Policies.AllowUserDeletion = cloneBool(r.Policies.AllowUserDeletion)
		}
		if r.Policies.AllowDataExport != nil {
			c.Policies.AllowDataExport = cloneBool(r.Policies.AllowDataExport)
		}
	}
}

func (p SubscriptionPatch) applyTo(s *Subscription) {
	if p.Plan != nil {
		s.Plan = *p.Plan
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.MaxUsers != nil {
		s.MaxUsers = *p.MaxUsers
	}
	if p.MaxProjects != nil {
		s.MaxProjects = *p.MaxProjects
	}
	if p.TrialEndsAt != nil {
		s.TrialEndsAt = cloneTime(p.TrialEndsAt)
	}
	if p.SubscriptionEndsAt != nil {
		s.SubscriptionEndsAt = cloneTime(p.SubscriptionEndsAt)
	}
}

func mapToResponse(c *Company) CompanyResponse {
	return CompanyResponse{
		ID:                  c.ID.String(),
		CompanyName:         c.CompanyName,
		LegalName:           c.LegalName,
		Emails:              c.Emails,
		CountryCode:         c.CountryCode,
		Phone:               c.Phone,
		Address:             c.Address,
		RegistrationDetails: c.RegistrationDetails,
		CompanyType:         c.CompanyType,
		Industry:            c.Industry,
		Subscription:        c.Subscription,
		Policies:            c.Policies,
		CreatedByRole:       c.CreatedByRole,
		IsVerified:          c.IsVerified,
		IsActive:            c.IsActive,
		CreatedBy:           c.CreatedBy,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}
