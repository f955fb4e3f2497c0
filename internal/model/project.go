package model

import "time"

type ProjectStatus string

const (
	ProjectStatusDraft        ProjectStatus = "draft"
	ProjectStatusInProduction ProjectStatus = "in_production"
	ProjectStatusReady        ProjectStatus = "ready"
	ProjectStatusApproved     ProjectStatus = "approved"
	ProjectStatusRevision     ProjectStatus = "revision"
)

type ProjectType string

const (
	ProjectTypeStandard         ProjectType = "standard"
	ProjectTypeTemplateCreation ProjectType = "template_creation"
)

// StatusVariant is the presentation hint a UI uses to render a status badge.
type StatusVariant string

const (
	StatusVariantSecondary   StatusVariant = "secondary"
	StatusVariantDefault     StatusVariant = "default"
	StatusVariantDestructive StatusVariant = "destructive"
)

// StatusInfo describes one lifecycle status. The table below is the single
// definition of the lifecycle graph; the transition validator, the HTTP
// metadata endpoint and trackerctl all read from it.
type StatusInfo struct {
	Status  ProjectStatus `json:"status"`
	Label   string        `json:"label"`
	Variant StatusVariant `json:"variant"`
	// Next lists the statuses reachable in one step. Empty means terminal.
	Next []ProjectStatus `json:"next"`
	// RequiresCreatives is set on statuses that may only be entered, or
	// kept, while the project holds at least one creative.
	RequiresCreatives bool `json:"requires_creatives"`
}

var projectStatuses = []StatusInfo{
	{
		Status:  ProjectStatusDraft,
		Label:   "Draft",
		Variant: StatusVariantSecondary,
		Next:    []ProjectStatus{ProjectStatusInProduction},
	},
	{
		Status:            ProjectStatusInProduction,
		Label:             "In production",
		Variant:           StatusVariantDefault,
		Next:              []ProjectStatus{ProjectStatusReady, ProjectStatusDraft},
		RequiresCreatives: true,
	},
	{
		Status:            ProjectStatusReady,
		Label:             "Ready",
		Variant:           StatusVariantDefault,
		Next:              []ProjectStatus{ProjectStatusApproved, ProjectStatusRevision, ProjectStatusInProduction},
		RequiresCreatives: true,
	},
	{
		Status:  ProjectStatusApproved,
		Label:   "Approved",
		Variant: StatusVariantDefault,
	},
	{
		Status:  ProjectStatusRevision,
		Label:   "In revision",
		Variant: StatusVariantDestructive,
		Next:    []ProjectStatus{ProjectStatusInProduction},
	},
}

// ProjectStatuses returns the lifecycle table in display order. The returned
// slice is a copy.
func ProjectStatuses() []StatusInfo {
	out := make([]StatusInfo, len(projectStatuses))
	for i, info := range projectStatuses {
		info.Next = append([]ProjectStatus(nil), info.Next...)
		out[i] = info
	}
	return out
}

// Info returns the table entry for s.
func (s ProjectStatus) Info() (StatusInfo, bool) {
	for _, info := range projectStatuses {
		if info.Status == s {
			return info, true
		}
	}
	return StatusInfo{}, false
}

func (s ProjectStatus) IsValid() bool {
	_, ok := s.Info()
	return ok
}

func (s ProjectStatus) IsTerminal() bool {
	info, ok := s.Info()
	return ok && len(info.Next) == 0
}

// CanTransitionTo reports whether to is one step away from s.
func (s ProjectStatus) CanTransitionTo(to ProjectStatus) bool {
	info, ok := s.Info()
	if !ok {
		return false
	}
	for _, next := range info.Next {
		if next == to {
			return true
		}
	}
	return false
}

func (s ProjectStatus) Label() string {
	if info, ok := s.Info(); ok {
		return info.Label
	}
	return string(s)
}

func (t ProjectType) IsValid() bool {
	return t == ProjectTypeStandard || t == ProjectTypeTemplateCreation
}

type Project struct {
	ID                 int64         `json:"id,string"`
	OrganizationID     int64         `json:"organization_id,string"`
	BrandID            int64         `json:"brand_id,string"`
	TemplateID         *int64        `json:"template_id,string,omitempty"`
	Name               string        `json:"name"`
	Status             ProjectStatus `json:"status"`
	ProjectType        ProjectType   `json:"project_type"`
	EstimatedCreatives int32         `json:"estimated_creatives"`
	TotalCreatives     int32         `json:"total_creatives"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
