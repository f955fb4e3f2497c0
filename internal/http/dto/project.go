package dto

import (
	"time"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

type CreateProjectRequest struct {
	BrandID            int64             `json:"brand_id,string" binding:"required"`
	Name               string            `json:"name"`
	ProjectType        model.ProjectType `json:"project_type"`
	EstimatedCreatives int32             `json:"estimated_creatives"`
	TemplateID         *int64            `json:"template_id,string,omitempty"`
}

func (r CreateProjectRequest) ToParams() service.CreateProjectParams {
	return service.CreateProjectParams{
		BrandID:            r.BrandID,
		Name:               r.Name,
		ProjectType:        r.ProjectType,
		EstimatedCreatives: r.EstimatedCreatives,
		TemplateID:         r.TemplateID,
	}
}

type ChangeStatusRequest struct {
	Status  model.ProjectStatus `json:"status" binding:"required"`
	Comment *string             `json:"comment,omitempty"`
}

type ApproveRequest struct {
	Comment *string `json:"comment,omitempty"`
}

type RequestRevisionRequest struct {
	Comment string `json:"comment"`
}

type ProjectResponse struct {
	ID                 int64                 `json:"id,string"`
	OrganizationID     int64                 `json:"organization_id,string"`
	BrandID            int64                 `json:"brand_id,string"`
	TemplateID         *int64                `json:"template_id,string,omitempty"`
	Name               string                `json:"name"`
	Status             model.ProjectStatus   `json:"status"`
	StatusLabel        string                `json:"status_label"`
	StatusVariant      model.StatusVariant   `json:"status_variant"`
	NextStatuses       []model.ProjectStatus `json:"next_statuses"`
	ProjectType        model.ProjectType     `json:"project_type"`
	EstimatedCreatives int32                 `json:"estimated_creatives"`
	TotalCreatives     int32                 `json:"total_creatives"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

func ToProjectResponse(p *model.Project) ProjectResponse {
	info, _ := p.Status.Info()
	next := info.Next
	if next == nil {
		next = []model.ProjectStatus{}
	}
	return ProjectResponse{
		ID:                 p.ID,
		OrganizationID:     p.OrganizationID,
		BrandID:            p.BrandID,
		TemplateID:         p.TemplateID,
		Name:               p.Name,
		Status:             p.Status,
		StatusLabel:        p.Status.Label(),
		StatusVariant:      info.Variant,
		NextStatuses:       next,
		ProjectType:        p.ProjectType,
		EstimatedCreatives: p.EstimatedCreatives,
		TotalCreatives:     p.TotalCreatives,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

func ToProjectResponses(projects []model.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i := range projects {
		out[i] = ToProjectResponse(&projects[i])
	}
	return out
}

type ApproveResponse struct {
	Project  ProjectResponse `json:"project"`
	Template *model.Template `json:"template,omitempty"`
}

func ToApproveResponse(res *service.ApproveResult) ApproveResponse {
	return ApproveResponse{
		Project:  ToProjectResponse(res.Project),
		Template: res.Template,
	}
}
