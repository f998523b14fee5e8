package project

import (
	"time"

	"go-estateflow/internal/lifecycle"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	CompanyID              uuid.UUID  `json:"companyId"`
	Name                   string     `json:"name"`
	Code                   string     `json:"code"`
	Description            string     `json:"description"`
	ProjectType            Type       `json:"projectType"`
	Status                 Status     `json:"status"`
	StartDate              *time.Time `json:"startDate"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate"`
	ActualCompletionDate   *time.Time `json:"actualCompletionDate"`
	EstimatedBudget        float64    `json:"estimatedBudget"`
	ActualCost             float64    `json:"actualCost"`
	Location               Location   `json:"location"`
	Structure              Structure  `json:"structure"`
	ProjectManager         *uuid.UUID `json:"projectManager"`
	CreatedBy              *uuid.UUID `json:"createdBy"`
}

type UpdateProjectRequest struct {
	Name                   *string    `json:"name"`
	Code                   *string    `json:"code"`
	Description            *string    `json:"description"`
	ProjectType            *Type      `json:"projectType"`
	Status                 *Status    `json:"status"`
	StartDate              *time.Time `json:"startDate"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate"`
	ActualCompletionDate   *time.Time `json:"actualCompletionDate"`
	EstimatedBudget        *float64   `json:"estimatedBudget"`
	ActualCost             *float64   `json:"actualCost"`
	Location               *Location  `json:"location"`
	Structure              *Structure `json:"structure"`
	ProjectManager         *uuid.UUID `json:"projectManager"`
}

type ProjectResponse struct {
	ID                     string     `json:"id"`
	CompanyID              string     `json:"companyId"`
	Name                   string     `json:"name"`
	Code                   string     `json:"code"`
	Description            string     `json:"description,omitempty"`
	ProjectType            Type       `json:"projectType"`
	Status                 Status     `json:"status"`
	StartDate              *time.Time `json:"startDate,omitempty"`
	ExpectedCompletionDate *time.Time `json:"expectedCompletionDate,omitempty"`
	ActualCompletionDate   *time.Time `json:"actualCompletionDate,omitempty"`
	EstimatedBudget        float64    `json:"estimatedBudget"`
	ActualCost             float64    `json:"actualCost"`
	Location               Location   `json:"location"`
	Structure              Structure  `json:"structure"`
	ProjectManager         *uuid.UUID `json:"projectManager,omitempty"`
	CreatedBy              *uuid.UUID `json:"createdBy"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

func (r CreateProjectRequest) toEntity() *Project {
	return &Project{
		CompanyID:              r.CompanyID,
		Name:                   r.Name,
		Code:                   r.Code,
		Description:            r.Description,
		ProjectType:            r.ProjectType,
		Status:                 r.Status,
		StartDate:              r.StartDate,
		ExpectedCompletionDate: r.ExpectedCompletionDate,
		ActualCompletionDate:   r.ActualCompletionDate,
		EstimatedBudget:        r.EstimatedBudget,
		ActualCost:             r.ActualCost,
		Location:               r.Location,
		Structure:              r.Structure,
		ProjectManager:         r.ProjectManager,
		CreatedBy:              r.CreatedBy,
	}
}

func (r UpdateProjectRequest) applyTo(p *Project, changed lifecycle.FieldSet) {
	lifecycle.Assign(changed, "name", &p.Name, r.Name)
	lifecycle.Assign(changed, "code", &p.Code, r.Code)
	lifecycle.Assign(changed, "description", &p.Description, r.Description)
	lifecycle.Assign(changed, "projectType", &p.ProjectType, r.ProjectType)
	lifecycle.Assign(changed, "status", &p.Status, r.Status)
	lifecycle.AssignRef(changed, "startDate", &p.StartDate, r.StartDate)
	lifecycle.AssignRef(changed, "expectedCompletionDate", &p.ExpectedCompletionDate, r.ExpectedCompletionDate)
	lifecycle.AssignRef(changed, "actualCompletionDate", &p.ActualCompletionDate, r.ActualCompletionDate)
	lifecycle.Assign(changed, "estimatedBudget", &p.EstimatedBudget, r.EstimatedBudget)
	lifecycle.Assign(changed, "actualCost", &p.ActualCost, r.ActualCost)
	lifecycle.Assign(changed, "location", &p.Location, r.Location)
	lifecycle.Assign(changed, "structure", &p.Structure, r.Structure)
	lifecycle.AssignRef(changed, "projectManager", &p.ProjectManager, r.ProjectManager)
}

func mapToResponse(p *Project) ProjectResponse {
	return ProjectResponse{
		ID:                     p.ID.String(),
		CompanyID:              p.CompanyID.String(),
		Name:                   p.Name,
		Code:                   p.Code,
		Description:            p.Description,
		ProjectType:            p.ProjectType,
		Status:                 p.Status,
		StartDate:              p.StartDate,
		ExpectedCompletionDate: p.ExpectedCompletionDate,
		ActualCompletionDate:   p.ActualCompletionDate,
		EstimatedBudget:        p.EstimatedBudget,
		ActualCost:             p.ActualCost,
		Location:               p.Location,
		Structure:              p.Structure,
		ProjectManager:         p.ProjectManager,
		CreatedBy:              p.CreatedBy,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}
