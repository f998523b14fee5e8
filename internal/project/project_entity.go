package project

import (
	"strings"
	"time"

	"go-estateflow/internal/store"
	"go-estateflow/internal/validation"

	"github.com/google/uuid"
)

type Type string

const (
	TypeResidential    Type = "RESIDENTIAL"
	TypeCommercial     Type = "COMMERCIAL"
	TypeMixedUse       Type = "MIXED_USE"
	TypeInfrastructure Type = "INFRASTRUCTURE"
)

type Status string

const (
	StatusPlanning  Status = "PLANNING"
	StatusActive    Status = "ACTIVE"
	StatusOnHold    Status = "ON_HOLD"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

type Location struct {
	Address string `json:"address,omitempty" bson:"address,omitempty"`
	City    string `json:"city,omitempty" bson:"city,omitempty"`
	State   string `json:"state,omitempty" bson:"state,omitempty"`
	Country string `json:"country,omitempty" bson:"country,omitempty"`
	Pincode string `json:"pincode,omitempty" bson:"pincode,omitempty"`
}

type Structure struct {
	TotalTowers int `json:"totalTowers" bson:"total_towers" validate:"min=0"`
	TotalFloors int `json:"totalFloors" bson:"total_floors" validate:"min=0"`
	TotalUnits  int `json:"totalUnits" bson:"total_units" validate:"min=0"`
}

type Project struct {
	ID                     uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey" bson:"_id"`
	CompanyID              uuid.UUID  `json:"companyId" gorm:"type:uuid;not null;index" bson:"company_id" validate:"required"`
	Name                   string     `json:"name" gorm:"type:varchar(150);not null" bson:"name" validate:"required"`
	Code                   string     `json:"code" gorm:"type:varchar(50);not null;uniqueIndex:uq_projects_code" bson:"code" validate:"required"`
	Description            string     `json:"description,omitempty" gorm:"type:text" bson:"description,omitempty"`
	ProjectType            Type       `json:"projectType" gorm:"type:varchar(20);not null" bson:"project_type" validate:"required,oneof=RESIDENTIAL COMMERCIAL MIXED_USE INFRASTRUCTURE"`
	Status                 Status     `json:"status" gorm:"type:varchar(20);not null" bson:"status" validate:"oneof=PLANNING ACTIVE ON_HOLD COMPLETED CANCELLED"`
	StartDate              *time.Time `json:"startDate,omitempty" bson:"start_date,omitempty"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate,omitempty" bson:"expected_completion_date,omitempty"`
	ActualCompletionDate   *time.Time `json:"actualCompletionDate,omitempty" bson:"actual_completion_date,omitempty"`
	EstimatedBudget        float64    `json:"estimatedBudget" gorm:"type:numeric(18,2);not null;default:0" bson:"estimated_budget" validate:"min=0"`
	ActualCost             float64    `json:"actualCost" gorm:"type:numeric(18,2);not null;default:0" bson:"actual_cost" validate:"min=0"`
	Location               Location   `json:"location" gorm:"embedded;embeddedPrefix:location_" bson:"location"`
	Structure              Structure  `json:"structure" gorm:"embedded;embeddedPrefix:structure_" bson:"structure"`
	ProjectManager         *uuid.UUID `json:"projectManager,omitempty" gorm:"type:uuid" bson:"project_manager,omitempty"`
	CreatedBy              *uuid.UUID `json:"createdBy" gorm:"type:uuid;not null" bson:"created_by" validate:"required"`
	IsDeleted              bool       `json:"isDeleted" gorm:"not null;default:false;index" bson:"is_deleted"`
	CreatedAt              time.Time  `json:"createdAt" gorm:"not null" bson:"created_at"`
	UpdatedAt              time.Time  `json:"updatedAt" gorm:"not null" bson:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) Kind() store.Kind    { return store.KindProject }
func (p *Project) GetID() uuid.UUID    { return p.ID }
func (p *Project) SetID(id uuid.UUID)  { p.ID = id }
func (p *Project) IsSoftDeleted() bool { return p.IsDeleted }
func (p *Project) MarkDeleted()        { p.IsDeleted = true }
func (p *Project) TenantID() string    { return p.CompanyID.String() }

func (p *Project) UniqueFields() []store.UniqueField {
	return []store.UniqueField{{Field: "code", Column: "code", Value: p.Code}}
}

func (p *Project) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (p *Project) Clone() *Project {
	cp := *p
	cp.StartDate = cloneTime(p.StartDate)
	cp.ExpectedCompletionDate = cloneTime(p.ExpectedCompletionDate)
	cp.ActualCompletionDate = cloneTime(p.ActualCompletionDate)
	cp.ProjectManager = cloneID(p.ProjectManager)
	cp.CreatedBy = cloneID(p.CreatedBy)
	return &cp
}

func (p *Project) CloneRecord() store.Record { return p.Clone() }

func (p *Project) Normalize() {
	p.Name = validation.NormalizeText(p.Name)
	p.Code = strings.TrimSpace(p.Code)
	p.Description = strings.TrimSpace(p.Description)
	if p.ProjectManager != nil && *p.ProjectManager == uuid.Nil {
		p.ProjectManager = nil
	}
	if p.CreatedBy != nil && *p.CreatedBy == uuid.Nil {
		p.CreatedBy = nil
	}
}

func (p *Project) ApplyDefaults(time.Time) {
	if p.Status == "" {
		p.Status = StatusPlanning
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func cloneID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}
