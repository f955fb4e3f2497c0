package dto

import (
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

type CreativeItem struct {
	Name         string  `json:"name"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	Format       string  `json:"format"`
	Width        *int32  `json:"width,omitempty"`
	Height       *int32  `json:"height,omitempty"`
	Lista        *string `json:"lista,omitempty"`
	Modelo       *string `json:"modelo,omitempty"`
}

type IngestCreativesRequest struct {
	IdempotencyKey *string        `json:"idempotency_key,omitempty"`
	Items          []CreativeItem `json:"items"`
}

func (r IngestCreativesRequest) ToParams(projectID int64) service.IngestCreativesParams {
	items := make([]service.CreativeInput, len(r.Items))
	for i, item := range r.Items {
		items[i] = service.CreativeInput{
			Name:         item.Name,
			URL:          item.URL,
			ThumbnailURL: item.ThumbnailURL,
			Format:       item.Format,
			Width:        item.Width,
			Height:       item.Height,
			Lista:        item.Lista,
			Modelo:       item.Modelo,
		}
	}
	return service.IngestCreativesParams{
		ProjectID:      projectID,
		IdempotencyKey: r.IdempotencyKey,
		Items:          items,
	}
}

type IngestCreativesResponse struct {
	Project    ProjectResponse  `json:"project"`
	Creatives  []model.Creative `json:"creatives"`
	Duplicated bool             `json:"duplicated"`
}

func ToIngestCreativesResponse(res *service.IngestResult) IngestCreativesResponse {
	creatives := res.Creatives
	if creatives == nil {
		creatives = []model.Creative{}
	}
	return IngestCreativesResponse{
		Project:    ToProjectResponse(res.Project),
		Creatives:  creatives,
		Duplicated: res.Duplicated,
	}
}
