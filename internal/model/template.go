package model

import "time"

type TemplateStatus string

const (
	TemplateStatusPending  TemplateStatus = "pending"
	TemplateStatusApproved TemplateStatus = "approved"
	TemplateStatusRejected TemplateStatus = "rejected"
)

// PlaceholderTemplateImage is the reference image of a template promoted
// from a project that holds no creatives.
const PlaceholderTemplateImage = "/placeholder-template.jpg"

type Template struct {
	ID             int64          `json:"id,string"`
	BrandID        int64          `json:"brand_id,string"`
	ProjectID      *int64         `json:"project_id,string,omitempty"`
	Name           string         `json:"name"`
	Description    *string        `json:"description,omitempty"`
	ImageURL       string         `json:"image_url"`
	Category       *string        `json:"category,omitempty"`
	Platforms      []string       `json:"platforms"`
	Formats        []string       `json:"formats"`
	TemplateStatus TemplateStatus `json:"template_status"`
	IsActive       bool           `json:"is_active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
