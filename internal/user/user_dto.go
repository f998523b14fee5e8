package user

import (
	"time"

	"go-estateflow/internal/lifecycle"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	Password          string     `json:"password"`
	GoogleID          string     `json:"googleId"`
	Role              Role       `json:"role"`
	CompanyID         *uuid.UUID `json:"companyId"`
	EmployeeProfileID *uuid.UUID `json:"employeeProfileId"`
	Status            Status     `json:"status"`
}

type UpdateUserRequest struct {
	FirstName         *string    `json:"firstName"`
	LastName          *string    `json:"lastName"`
	Email             *string    `json:"email"`
	Password          *string    `json:"password"`
	GoogleID          *string    `json:"googleId"`
	Role              *Role      `json:"role"`
	CompanyID         *uuid.UUID `json:"companyId"`
	EmployeeProfileID *uuid.UUID `json:"employeeProfileId"`
	Status            *Status    `json:"status"`
	IsEmailVerified   *bool      `json:"isEmailVerified"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

type UserResponse struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName,omitempty"`
	FullName          string     `json:"fullName"`
	Email             string     `json:"email"`
	Role              Role       `json:"role"`
	CompanyID         *uuid.UUID `json:"companyId,omitempty"`
	EmployeeProfileID *uuid.UUID `json:"employeeProfileId,omitempty"`
	Status            Status     `json:"status"`
	IsEmailVerified   bool       `json:"isEmailVerified"`
	HasGoogleLogin    bool       `json:"hasGoogleLogin"`
	LastLoginAt       *time.Time `json:"lastLoginAt,omitempty"`
	PasswordChangedAt *time.Time `json:"passwordChangedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func (r CreateUserRequest) toEntity() *User {
	return &User{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		Password:          r.Password,
		GoogleID:          r.GoogleID,
		Role:              r.Role,
		CompanyID:         r.CompanyID,
		EmployeeProfileID: r.EmployeeProfileID,
		Status:            r.Status,
	}
}

func (r UpdateUserRequest) applyTo(u *User, changed lifecycle.FieldSet) {
	lifecycle.Assign(changed, "firstName", &u.FirstName, r.FirstName)
	lifecycle.Assign(changed, "lastName", &u.LastName, r.LastName)
	lifecycle.Assign(changed, "email", &u.Email, r.Email)
	lifecycle.Assign(changed, "password", &u.Password, r.Password)
	if changed.Has("password") && u.Password == "" {
		// Clearing the password drops the stored credential too.
		u.PasswordHash = ""
		u.PasswordChangedAt = nil
	}
	lifecycle.Assign(changed, "googleId", &u.GoogleID, r.GoogleID)
	lifecycle.Assign(changed, "role", &u.Role, r.Role)
	lifecycle.AssignRef(changed, "companyId", &u.CompanyID, r.CompanyID)
	lifecycle.AssignRef(changed, "employeeProfileId", &u.EmployeeProfileID, r.EmployeeProfileID)
	lifecycle.Assign(changed, "status", &u.Status, r.Status)
	lifecycle.Assign(changed, "isEmailVerified", &u.IsEmailVerified, r.IsEmailVerified)
}

func mapToResponse(u *User) UserResponse {
	return UserResponse{
		ID:                u.ID.String(),
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		FullName:          u.FullName(),
		Email:             u.Email,
		Role:              u.Role,
		CompanyID:         u.CompanyID,
		EmployeeProfileID: u.EmployeeProfileID,
		Status:            u.Status,
		IsEmailVerified:   u.IsEmailVerified,
		HasGoogleLogin:    u.GoogleID != "",
		LastLoginAt:       u.LastLoginAt,
		PasswordChangedAt: u.PasswordChangedAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
