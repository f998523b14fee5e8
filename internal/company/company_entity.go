package company

import (
	"strings"
	"time"

	"go-estateflow/internal/store"
	"go-estateflow/internal/validation"

	"github.com/google/uuid"
)

type EmailType string

const (
	EmailPrimary   EmailType = "PRIMARY"
	EmailSecondary EmailType = "SECONDARY"
	EmailBilling   EmailType = "BILLING"
	EmailSupport   EmailType = "SUPPORT"
)

type CompanyType string

const (
	TypePrivateLimited CompanyType = "PRIVATE_LIMITED"
	TypePublicLimited  CompanyType = "PUBLIC_LIMITED"
	TypeLLP            CompanyType = "LLP"
	TypePartnership    CompanyType = "PARTNERSHIP"
	TypeProprietorship CompanyType = "PROPRIETORSHIP"
)

type Industry string

const (
	IndustryRealEstate         Industry = "REAL_ESTATE"
	IndustryConstruction       Industry = "CONSTRUCTION"
	IndustryPropertyManagement Industry = "PROPERTY_MANAGEMENT"
	IndustryInfrastructure     Industry = "INFRASTRUCTURE"
	IndustryOther              Industry = "OTHER"
)

type SubscriptionPlan string

const (
	PlanBasic      SubscriptionPlan = "BASIC"
	PlanPro        SubscriptionPlan = "PRO"
	PlanEnterprise SubscriptionPlan = "ENTERPRISE"
)

type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "TRIAL"
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionSuspended SubscriptionStatus = "SUSPENDED"
)

type CreatedByRole string

const (
	CreatedBySuperAdmin     CreatedByRole = "SUPER_ADMIN"
	CreatedBySelfRegistered CreatedByRole = "SELF_REGISTERED"
)

const (
	DefaultMaxUsers    = 10
	DefaultMaxProjects = 3
	TrialPeriod        = 14 * 24 * time.Hour
)

type CompanyEmail struct {
	Type       EmailType `json:"type" bson:"type" validate:"required,oneof=PRIMARY SECONDARY BILLING SUPPORT"`
	Email      string    `json:"email" bson:"email" validate:"required,emailshape"`
	IsVerified bool      `json:"isVerified" bson:"is_verified"`
}

type Address struct {
	Street   string `json:"street,omitempty" bson:"street,omitempty"`
	City     string `json:"city,omitempty" bson:"city,omitempty"`
	State    string `json:"state,omitempty" bson:"state,omitempty"`
	Country  string `json:"country,omitempty" bson:"country,omitempty"`
	Pincode  string `json:"pincode,omitempty" bson:"pincode,omitempty"`
	Landmark string `json:"landmark,omitempty" bson:"landmark,omitempty"`
}

type RegistrationDetails struct {
	GSTNumber string `json:"gstNumber,omitempty" bson:"gst_number,omitempty" validate:"omitempty,gstin"`
	PANNumber string `json:"panNumber,omitempty" bson:"pan_number,omitempty" validate:"omitempty,pan"`
	CINNumber string `json:"cinNumber,omitempty" bson:"cin_number,omitempty" validate:"omitempty,cin"`
	TaxID     string `json:"taxId,omitempty" bson:"tax_id,omitempty"`
}

type Subscription struct {
	Plan               SubscriptionPlan   `json:"plan" bson:"plan" validate:"oneof=BASIC PRO ENTERPRISE"`
	Status             SubscriptionStatus `json:"status" bson:"status" validate:"oneof=TRIAL ACTIVE EXPIRED SUSPENDED"`
	MaxUsers           int                `json:"maxUsers" bson:"max_users" validate:"min=1"`
	MaxProjects        int                `json:"maxProjects" bson:"max_projects" validate:"min=1"`
	TrialEndsAt        *time.Time         `json:"trialEndsAt,omitempty" bson:"trial_ends_at,omitempty"`
	SubscriptionEndsAt *time.Time         `json:"subscriptionEndsAt,omitempty" bson:"subscription_ends_at,omitempty"`
}

// Policies are nil until defaulted so an explicit false survives create.
type Policies struct {
	AllowProjectDeletion *bool `json:"allowProjectDeletion" bson:"allow_project_deletion"`
	AllowUserDeletion    *bool `json:"allowUserDeletion" bson:"allow_user_deletion"`
	AllowDataExport      *bool `json:"allowDataExport" bson:"allow_data_export"`
}

// Company is the tenant root.
type Company struct {
	ID                  uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	CompanyName         string              `json:"companyName" gorm:"type:varchar(150);not null" bson:"company_name" validate:"required"`
	LegalName           string              `json:"legalName" gorm:"type:varchar(200);not null" bson:"legal_name" validate:"required"`
	Emails              []CompanyEmail      `json:"emails" gorm:"serializer:json;type:jsonb" bson:"emails" validate:"dive"`
	CountryCode         string              `json:"countryCode,omitempty" gorm:"type:varchar(5)" bson:"country_code,omitempty" validate:"omitempty,max=5"`
	Phone               string              `json:"phone,omitempty" gorm:"type:varchar(20)" bson:"phone,omitempty"`
	Address             Address             `json:"address" gorm:"embedded;embeddedPrefix:address_" bson:"address"`
	RegistrationDetails RegistrationDetails `json:"registrationDetails" gorm:"embedded;embeddedPrefix:reg_" bson:"registration_details"`
	CompanyType         CompanyType         `json:"companyType,omitempty" gorm:"type:varchar(30)" bson:"company_type,omitempty" validate:"omitempty,oneof=PRIVATE_LIMITED PUBLIC_LIMITED LLP PARTNERSHIP PROPRIETORSHIP"`
	Industry            Industry            `json:"industry,omitempty" gorm:"type:varchar(30)" bson:"industry,omitempty" validate:"omitempty,oneof=REAL_ESTATE CONSTRUCTION PROPERTY_MANAGEMENT INFRASTRUCTURE OTHER"`
	Subscription        Subscription        `json:"subscription" gorm:"embedded;embeddedPrefix:subscription_" bson:"subscription"`
	Policies            Policies            `json:"policies" gorm:"embedded;embeddedPrefix:policy_" bson:"policies"`
	CreatedByRole       CreatedByRole       `json:"createdByRole" gorm:"type:varchar(20);not null" bson:"created_by_role" validate:"required,oneof=SUPER_ADMIN SELF_REGISTERED"`
	IsVerified          bool                `json:"isVerified" gorm:"not null;default:false" bson:"is_verified"`
	IsActive            bool                `json:"isActive" gorm:"not null;default:true" bson:"is_active"`
	IsDeleted           bool                `json:"isDeleted" gorm:"not null;default:false;index" bson:"is_deleted"`
	CreatedBy           *uuid.UUID          `json:"createdBy,omitempty" gorm:"type:uuid" bson:"created_by,omitempty"`
	CreatedAt           time.Time           `json:"createdAt" gorm:"not null" bson:"created_at"`
	UpdatedAt           time.Time           `json:"updatedAt" gorm:"not null" bson:"updated_at"`
}

func (Company) TableName() string {
	return "companies"
}

func (c *Company) Kind() store.Kind    { return store.KindCompany }
func (c *Company) GetID() uuid.UUID    { return c.ID }
func (c *Company) SetID(id uuid.UUID)  { c.ID = id }
func (c *Company) IsSoftDeleted() bool { return c.IsDeleted }
func (c *Company) MarkDeleted()        { c.IsDeleted = true }
func (c *Company) TenantID() string    { return c.ID.String() }

func (c *Company) UniqueFields() []store.UniqueField {
	return nil
}

func (c *Company) Touch(now time.Time) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
}

func (c *Company) Clone() *Company {
	cp := *c
	cp.Emails = append([]CompanyEmail(nil), c.Emails...)
	cp.Subscription.TrialEndsAt = cloneTime(c.Subscription.TrialEndsAt)
	cp.Subscription.SubscriptionEndsAt = cloneTime(c.Subscription.SubscriptionEndsAt)
	cp.Policies = Policies{
		AllowProjectDeletion: cloneBool(c.Policies.AllowProjectDeletion),
		AllowUserDeletion:    cloneBool(c.Policies.AllowUserDeletion),
		AllowDataExport:      cloneBool(c.Policies.AllowDataExport),
	}
	if c.CreatedBy != nil {
		id := *c.CreatedBy
		cp.CreatedBy = &id
	}
	return &cp
}

func (c *Company) CloneRecord() store.Record { return c.Clone() }

func (c *Company) Normalize() {
	c.CompanyName = validation.NormalizeText(c.CompanyName)
	c.LegalName = validation.NormalizeText(c.LegalName)
	c.CountryCode = strings.TrimSpace(c.CountryCode)
	c.Phone = strings.TrimSpace(c.Phone)
	for i := range c.Emails {
		c.Emails[i].Email = validation.NormalizeEmail(c.Emails[i].Email)
		c.Emails[i].Type = EmailType(validation.NormalizeCode(string(c.Emails[i].Type)))
	}

	reg := &c.RegistrationDetails
	reg.GSTNumber = validation.NormalizeCode(reg.GSTNumber)
	reg.PANNumber = validation.NormalizeCode(reg.PANNumber)
	reg.CINNumber = validation.NormalizeCode(reg.CINNumber)
	reg.TaxID = strings.TrimSpace(reg.TaxID)
}

// ApplyDefaults runs on create only. New companies start active and, when
// on trial, get a trial window ending TrialPeriod from now.
func (c *Company) ApplyDefaults(now time.Time) {
	sub := &c.Subscription
	if sub.Plan == "" {
		sub.Plan = PlanBasic
	}
	if sub.Status == "" {
		sub.Status = SubscriptionTrial
	}
	if sub.MaxUsers == 0 {
		sub.MaxUsers = DefaultMaxUsers
	}
	if sub.MaxProjects == 0 {
		sub.MaxProjects = DefaultMaxProjects
	}
	if sub.Status == SubscriptionTrial && sub.TrialEndsAt == nil {
		ends := now.Add(TrialPeriod)
		sub.TrialEndsAt = &ends
	}

	p := &c.Policies
	if p.AllowProjectDeletion == nil {
		p.AllowProjectDeletion = boolPtr(false)
	}
	if p.AllowUserDeletion == nil {
		p.AllowUserDeletion = boolPtr(false)
	}
	if p.AllowDataExport == nil {
		p.AllowDataExport = boolPtr(true)
	}

	c.IsActive = true
}

func (c *Company) PrimaryEmail() string {
	for _, e := range c.Emails {
		if e.Type == EmailPrimary {
			return e.Email
		}
	}
	return ""
}

func boolPtr(b bool) *bool { return &b }

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	return boolPtr(*b)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
