package employee

import (
	"time"

	"go-estateflow/internal/lifecycle"

	"github.com/google/uuid"
)

type CreateEmployeeProfileRequest struct {
	UserID           uuid.UUID        `json:"userId"`
	CompanyID        uuid.UUID        `json:"companyId"`
	EmployeeCode     string           `json:"employeeCode"`
	DateOfBirth      *time.Time       `json:"dateOfBirth"`
	Gender           Gender           `json:"gender"`
	PANNumber        string           `json:"panNumber"`
	UANNumber        string           `json:"uanNumber"`
	AadhaarNumber    string           `json:"aadhaarNumber"`
	BankDetails      BankDetails      `json:"bankDetails"`
	SalaryStructure  SalaryStructure  `json:"salaryStructure"`
	Address          Address          `json:"address"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

type UpdateEmployeeProfileRequest struct {
	EmployeeCode       *string             `json:"employeeCode"`
	DateOfBirth        *time.Time          `json:"dateOfBirth"`
	Gender             *Gender             `json:"gender"`
	PANNumber          *string             `json:"panNumber"`
	UANNumber          *string             `json:"uanNumber"`
	AadhaarNumber      *string             `json:"aadhaarNumber"`
	BankDetails        *BankDetails        `json:"bankDetails"`
	SalaryStructure    *SalaryStructure    `json:"salaryStructure"`
	Address            *Address            `json:"address"`
	EmergencyContact   *EmergencyContact   `json:"emergencyContact"`
	VerificationStatus *VerificationStatus `json:"verificationStatus"`
	VerifiedByHR       *uuid.UUID          `json:"verifiedByHR"`
	ApprovedByAdmin    *uuid.UUID          `json:"approvedByAdmin"`
}

type EmployeeProfileResponse struct {
	ID                 string             `json:"id"`
	UserID             string             `json:"userId"`
	CompanyID          string             `json:"companyId"`
	EmployeeCode       string             `json:"employeeCode"`
	DateOfBirth        *time.Time         `json:"dateOfBirth,omitempty"`
	Gender             Gender             `json:"gender,omitempty"`
	PANNumber          string             `json:"panNumber,omitempty"`
	UANNumber          string             `json:"uanNumber,omitempty"`
	AadhaarNumber      string             `json:"aadhaarNumber,omitempty"`
	BankDetails        BankDetails        `json:"bankDetails"`
	SalaryStructure    SalaryStructure    `json:"salaryStructure"`
	Address            Address            `json:"address"`
	EmergencyContact   EmergencyContact   `json:"emergencyContact"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerifiedByHR       *uuid.UUID         `json:"verifiedByHR,omitempty"`
	ApprovedByAdmin    *uuid.UUID         `json:"approvedByAdmin,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

func (r CreateEmployeeProfileRequest) toEntity() *EmployeeProfile {
	return &EmployeeProfile{
		UserID:           r.UserID,
		CompanyID:        r.CompanyID,
		EmployeeCode:     r.EmployeeCode,
		DateOfBirth:      r.DateOfBirth,
		Gender:           r.Gender,
		PANNumber:        r.PANNumber,
		UANNumber:        r.UANNumber,
		AadhaarNumber:    r.AadhaarNumber,
		BankDetails:      r.BankDetails,
		SalaryStructure:  r.SalaryStructure,
		Address:          r.Address,
		EmergencyContact: r.EmergencyContact,
	}
}

func (r UpdateEmployeeProfileRequest) applyTo(p *EmployeeProfile, changed lifecycle.FieldSet) {
	lifecycle.Assign(changed, "employeeCode", &p.EmployeeCode, r.EmployeeCode)
	lifecycle.AssignRef(changed, "dateOfBirth", &p.DateOfBirth, r.DateOfBirth)
	lifecycle.Assign(changed, "gender", &p.Gender, r.Gender)
	lifecycle.Assign(changed, "panNumber", &p.PANNumber, r.PANNumber)
	lifecycle.Assign(changed, "uanNumber", &p.UANNumber, r.UANNumber)
	lifecycle.Assign(changed, "aadhaarNumber", &p.AadhaarNumber, r.AadhaarNumber)
	lifecycle.Assign(changed, "bankDetails", &p.BankDetails, r.BankDetails)
	lifecycle.Assign(changed, "salaryStructure", &p.SalaryStructure, r.SalaryStructure)
	lifecycle.Assign(changed, "address", &p.Address, r.Address)
	lifecycle.Assign(changed, "emergencyContact", &p.EmergencyContact, r.EmergencyContact)
	lifecycle.Assign(changed, "verificationStatus", &p.VerificationStatus, r.VerificationStatus)
	lifecycle.AssignRef(changed, "verifiedByHR", &p.VerifiedByHR, r.VerifiedByHR)
	lifecycle.AssignRef(changed, "approvedByAdmin", &p.ApprovedByAdmin, r.ApprovedByAdmin)
}

func mapToResponse(p *EmployeeProfile) EmployeeProfileResponse {
	return EmployeeProfileResponse{
		ID:                 p.ID.String(),
		UserID:             p.UserID.String(),
		CompanyID:          p.CompanyID.String(),
		EmployeeCode:       p.EmployeeCode,
		DateOfBirth:        p.DateOfBirth,
		Gender:             p.Gender,
		PANNumber:          p.PANNumber,
		UANNumber:          p.UANNumber,
		AadhaarNumber:      p.AadhaarNumber,
		BankDetails:        p.BankDetails,
		SalaryStructure:    p.SalaryStructure,
		Address:            p.Address,
		EmergencyContact:   p.EmergencyContact,
		VerificationStatus: p.VerificationStatus,
		VerifiedByHR:       p.VerifiedByHR,
		ApprovedByAdmin:    p.ApprovedByAdmin,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
