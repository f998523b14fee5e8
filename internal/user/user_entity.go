package user

import (
	"strings"
	"time"

	"go-estateflow/internal/store"
	"go-estateflow/internal/tenant"
	"go-estateflow/internal/validation"

	"github.com/google/uuid"
)

type Role string

const (
	RolePlatformSuperAdmin Role = tenant.PlatformRole
	RoleCompanyAdmin       Role = "COMPANY_ADMIN"
	RoleHRManager          Role = "HR_MANAGER"
	RoleProjectManager     Role = "PROJECT_MANAGER"
	RoleEmployee           Role = "EMPLOYEE"
)

type Status string

const (
	StatusInvited   Status = "INVITED"
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// User is an identity record. Password only ever holds a raw value in
// flight; the lifecycle replaces it with PasswordHash before persisting.
type User struct {
	ID                uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	FirstName         string     `json:"firstName" gorm:"type:varchar(100);not null" bson:"first_name" validate:"required,min=2"`
	LastName          string     `json:"lastName,omitempty" gorm:"type:varchar(100)" bson:"last_name,omitempty"`
	Email             string     `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email" bson:"email" validate:"required,emailshape"`
	Password          string     `json:"password,omitempty" gorm:"-" bson:"-" validate:"omitempty,min=6,max=72"`
	PasswordHash      string     `json:"-" gorm:"type:varchar(100)" bson:"password_hash,omitempty"`
	GoogleID          string     `json:"googleId,omitempty" gorm:"type:varchar(255)" bson:"google_id,omitempty"`
	Role              Role       `json:"role" gorm:"type:varchar(30);not null" bson:"role" validate:"required,oneof=PLATFORM_SUPER_ADMIN COMPANY_ADMIN HR_MANAGER PROJECT_MANAGER EMPLOYEE"`
	CompanyID         *uuid.UUID `json:"companyId,omitempty" gorm:"type:uuid;index" bson:"company_id,omitempty"`
	EmployeeProfileID *uuid.UUID `json:"employeeProfileId,omitempty" gorm:"type:uuid;uniqueIndex:uq_users_employee_profile_id" bson:"employee_profile_id,omitempty"`
	Status            Status     `json:"status" gorm:"type:varchar(20);not null" bson:"status" validate:"oneof=INVITED ACTIVE SUSPENDED"`
	IsEmailVerified   bool       `json:"isEmailVerified" gorm:"not null;default:false" bson:"is_email_verified"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty" bson:"last_login_at,omitempty"`
	PasswordChangedAt *time.Time `json:"passwordChangedAt,omitempty" bson:"password_changed_at,omitempty"`
	IsDeleted         bool       `json:"isDeleted" gorm:"not null;default:false;index" bson:"is_deleted"`
	CreatedAt         time.Time  `json:"createdAt" gorm:"not null" bson:"created_at"`
	UpdatedAt         time.Time  `json:"updatedAt" gorm:"not null" bson:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) Kind() store.Kind   { return store.KindUser }
func (u *User) GetID() uuid.UUID   { return u.ID }
func (u *User) SetID(id uuid.UUID) { u.ID = id }
func (u *User) MarkDeleted()       { u.IsDeleted = true }

func (u *User) IsSoftDeleted() bool {
	return u.IsDeleted
}

func (u *User) TenantID() string {
	if u.CompanyID == nil {
		return ""
	}
	return u.CompanyID.String()
}

func (u *User) UniqueFields() []store.UniqueField {
	fields := []store.UniqueField{{Field: "email", Column: "email", Value: u.Email}}
	if u.EmployeeProfileID != nil {
		fields = append(fields, store.UniqueField{
			Field:  "employeeProfileId",
			Column: "employee_profile_id",
			Value:  u.EmployeeProfileID.String(),
		})
	}
	return fields
}

func (u *User) Touch(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

func (u *User) Clone() *User {
	cp := *u
	cp.CompanyID = cloneID(u.CompanyID)
	cp.EmployeeProfileID = cloneID(u.EmployeeProfileID)
	cp.LastLoginAt = cloneTime(u.LastLoginAt)
	cp.PasswordChangedAt = cloneTime(u.PasswordChangedAt)
	return &cp
}

func (u *User) CloneRecord() store.Record { return u.Clone() }

func (u *User) Normalize() {
	u.FirstName = validation.NormalizeText(u.FirstName)
	u.LastName = validation.NormalizeText(u.LastName)
	u.Email = validation.NormalizeEmail(u.Email)
	u.GoogleID = strings.TrimSpace(u.GoogleID)
	if u.CompanyID != nil && *u.CompanyID == uuid.Nil {
		u.CompanyID = nil
	}
	if u.EmployeeProfileID != nil && *u.EmployeeProfileID == uuid.Nil {
		u.EmployeeProfileID = nil
	}
}

func (u *User) ApplyDefaults(time.Time) {
	if u.Status == "" {
		u.Status = StatusInvited
	}
}

func (u *User) HasCredential() bool {
	return u.Password != "" || u.PasswordHash != "" || u.GoogleID != ""
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
