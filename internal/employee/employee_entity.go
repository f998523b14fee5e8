package employee

import (
	"strings"
	"time"

	"go-estateflow/internal/store"
	"go-estateflow/internal/validation"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// VerificationStatus moves PENDING -> HR_VERIFIED -> ADMIN_APPROVED.
type VerificationStatus string

const (
	StatusPending       VerificationStatus = "PENDING"
	StatusHRVerified    VerificationStatus = "HR_VERIFIED"
	StatusAdminApproved VerificationStatus = "ADMIN_APPROVED"
)

type BankDetails struct {
	BankName      string `json:"bankName,omitempty" bson:"bank_name,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty" bson:"account_number,omitempty"`
	IFSCCode      string `json:"ifscCode,omitempty" bson:"ifsc_code,omitempty" validate:"omitempty,ifsc"`
}

type SalaryStructure struct {
	Basic         float64 `json:"basic" bson:"basic" validate:"min=0"`
	HRA           float64 `json:"hra" bson:"hra" validate:"min=0"`
	Allowances    float64 `json:"allowances" bson:"allowances" validate:"min=0"`
	PFApplicable  bool    `json:"pfApplicable" bson:"pf_applicable"`
	ESIApplicable bool    `json:"esiApplicable" bson:"esi_applicable"`
}

type Address struct {
	CurrentAddress   string `json:"currentAddress,omitempty" bson:"current_address,omitempty"`
	PermanentAddress string `json:"permanentAddress,omitempty" bson:"permanent_address,omitempty"`
}

type EmergencyContact struct {
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Relation string `json:"relation,omitempty" bson:"relation,omitempty"`
}

type EmployeeProfile struct {
	ID                 uuid.UUID          `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	UserID             uuid.UUID          `json:"userId" gorm:"type:uuid;not null;uniqueIndex:uq_employee_profiles_user_id" bson:"user_id" validate:"required"`
	CompanyID          uuid.UUID          `json:"companyId" gorm:"type:uuid;not null;index" bson:"company_id" validate:"required"`
	EmployeeCode       string             `json:"employeeCode" gorm:"type:varchar(50);not null;uniqueIndex:uq_employee_profiles_employee_code" bson:"employee_code" validate:"required"`
	DateOfBirth        *time.Time         `json:"dateOfBirth,omitempty" bson:"date_of_birth,omitempty" validate:"omitempty,pastdate"`
	Gender             Gender             `json:"gender,omitempty" gorm:"type:varchar(10)" bson:"gender,omitempty" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	PANNumber          string             `json:"panNumber,omitempty" gorm:"type:varchar(10)" bson:"pan_number,omitempty" validate:"omitempty,pan"`
	UANNumber          string             `json:"uanNumber,omitempty" gorm:"type:varchar(12)" bson:"uan_number,omitempty" validate:"omitempty,digits12"`
	AadhaarNumber      string             `json:"aadhaarNumber,omitempty" gorm:"type:varchar(12)" bson:"aadhaar_number,omitempty" validate:"omitempty,digits12"`
	BankDetails        BankDetails        `json:"bankDetails" gorm:"embedded;embeddedPrefix:bank_" bson:"bank_details"`
	SalaryStructure    SalaryStructure    `json:"salaryStructure" gorm:"embedded;embeddedPrefix:salary_" bson:"salary_structure"`
	Address            Address            `json:"address" gorm:"embedded;embeddedPrefix:address_" bson:"address"`
	EmergencyContact   EmergencyContact   `json:"emergencyContact" gorm:"embedded;embeddedPrefix:emergency_" bson:"emergency_contact"`
	VerificationStatus VerificationStatus `json:"verificationStatus" gorm:"type:varchar(20);not null" bson:"verification_status" validate:"oneof=PENDING HR_VERIFIED ADMIN_APPROVED"`
	VerifiedByHR       *uuid.UUID         `json:"verifiedByHR,omitempty" gorm:"type:uuid;column:verified_by_hr" bson:"verified_by_hr,omitempty"`
	ApprovedByAdmin    *uuid.UUID         `json:"approvedByAdmin,omitempty" gorm:"type:uuid" bson:"approved_by_admin,omitempty"`
	IsDeleted          bool               `json:"isDeleted" gorm:"not null;default:false;index" bson:"is_deleted"`
	CreatedAt          time.Time          `json:"createdAt" gorm:"not null" bson:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" gorm:"not null" bson:"updated_at"`
}

func (EmployeeProfile) TableName() string {
	return "employee_profiles"
}

func (p *EmployeeProfile) Kind() store.Kind {
	return store.KindEmployeeProfile
}

func (p *EmployeeProfile) GetID() uuid.UUID {
	return p.ID
}

func (p *EmployeeProfile) SetID(id uuid.UUID) {
	p.ID = id
}

func (p *EmployeeProfile) IsSoftDeleted() bool {
	return p.IsDeleted
}

func (p *EmployeeProfile) MarkDeleted() {
	p.IsDeleted = true
}

func (p *EmployeeProfile) TenantID() string {
	return p.CompanyID.String()
}

func (p *EmployeeProfile) UniqueFields() []store.UniqueField {
	fields := []store.UniqueField{{Field: "employeeCode", Column: "employee_code", Value: p.EmployeeCode}}
	if p.UserID != uuid.Nil {
		fields = append(fields, store.UniqueField{Field: "userId", Column: "user_id", Value: p.UserID.String()})
	}
	return fields
}

func (p *EmployeeProfile) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (p *EmployeeProfile) Clone() *EmployeeProfile {
	cp := *p
	if p.DateOfBirth != nil {
		dob := *p.DateOfBirth
		cp.DateOfBirth = &dob
	}
	cp.VerifiedByHR = cloneID(p.VerifiedByHR)
	cp.ApprovedByAdmin = cloneID(p.ApprovedByAdmin)
	return &cp
}

func (p *EmployeeProfile) CloneRecord() store.Record { return p.Clone() }

func (p *EmployeeProfile) Normalize() {
	p.EmployeeCode = strings.TrimSpace(p.EmployeeCode)
	p.PANNumber = validation.NormalizeCode(p.PANNumber)
	p.UANNumber = strings.TrimSpace(p.UANNumber)
	p.AadhaarNumber = strings.TrimSpace(p.AadhaarNumber)
	p.BankDetails.BankName = strings.TrimSpace(p.BankDetails.BankName)
	p.BankDetails.AccountNumber = strings.TrimSpace(p.BankDetails.AccountNumber)
	p.BankDetails.IFSCCode = validation.NormalizeCode(p.BankDetails.IFSCCode)
	if p.VerifiedByHR != nil && *p.VerifiedByHR == uuid.Nil {
		p.VerifiedByHR = nil
	}
	if p.ApprovedByAdmin != nil && *p.ApprovedByAdmin == uuid.Nil {
		p.ApprovedByAdmin = nil
	}
}

func (p *EmployeeProfile) ApplyDefaults(time.Time) {
	if p.VerificationStatus == "" {
		p.VerificationStatus = StatusPending
	}
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}
