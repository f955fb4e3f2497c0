package dto

import (
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

type CreateBrandRequest struct {
	OrganizationID int64   `json:"organization_id,string" binding:"required"`
	Name           string  `json:"name"`
	LogoURL        *string `json:"logo_url,omitempty"`
	ToneOfVoice    *string `json:"tone_of_voice,omitempty"`
}

func (r CreateBrandRequest) ToParams() service.CreateBrandParams {
	return service.CreateBrandParams{
		OrganizationID: r.OrganizationID,
		Name:           r.Name,
		LogoURL:        r.LogoURL,
		ToneOfVoice:    r.ToneOfVoice,
	}
}

type CreateTemplateRequest struct {
	BrandID        int64                 `json:"brand_id,string" binding:"required"`
	Name           string                `json:"name"`
	Description    *string               `json:"description,omitempty"`
	ImageURL       string                `json:"image_url"`
	Category       *string               `json:"category,omitempty"`
	Platforms      []string              `json:"platforms"`
	Formats        []string              `json:"formats"`
	TemplateStatus *model.TemplateStatus `json:"template_status,omitempty"`
	IsActive       *bool                 `json:"is_active,omitempty"`
}

func (r CreateTemplateRequest) ToParams() service.CreateTemplateParams {
	return service.CreateTemplateParams{
		BrandID:        r.BrandID,
		Name:           r.Name,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		Category:       r.Category,
		Platforms:      r.Platforms,
		Formats:        r.Formats,
		TemplateStatus: r.TemplateStatus,
		IsActive:       r.IsActive,
	}
}

type AddCommentRequest struct {
	Content string `json:"content"`
}

type QuotaResponse struct {
	OrganizationID     int64 `json:"organization_id,string"`
	Creatives          int64 `json:"creatives"`
	MaxCreatives       int32 `json:"max_creatives"`
	RemainingCreatives int64 `json:"remaining_creatives"`
	Brands             int64 `json:"brands"`
	MaxBrands          int32 `json:"max_brands"`
	RemainingBrands    int64 `json:"remaining_brands"`
}

func ToQuotaResponse(u model.Usage) QuotaResponse {
	return QuotaResponse{
		OrganizationID:     u.OrganizationID,
		Creatives:          u.Creatives,
		MaxCreatives:       u.MaxCreatives,
		RemainingCreatives: u.RemainingCreatives(),
		Brands:             u.Brands,
		MaxBrands:          u.MaxBrands,
		RemainingBrands:    u.RemainingBrands(),
	}
}

type SignUploadRequest struct {
	OrganizationID int64  `json:"organization_id,string" binding:"required"`
	Kind           string `json:"kind" binding:"required,oneof=creative template logo"`
	Filename       string `json:"filename" binding:"required,max=255"`
	ContentType    string `json:"content_type" binding:"required"`
}
