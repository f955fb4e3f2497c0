package model

import "time"

type Creative struct {
	ID           int64     `json:"id,string"`
	ProjectID    int64     `json:"project_id,string"`
	BatchID      *int64    `json:"batch_id,string,omitempty"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	Format       string    `json:"format"`
	Width        *int32    `json:"width,omitempty"`
	Height       *int32    `json:"height,omitempty"`
	Lista        *string   `json:"lista,omitempty"`
	Modelo       *string   `json:"modelo,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreativeBatch records one keyed ingestion so a retried request can be
// answered with the creatives it originally produced.
type CreativeBatch struct {
	ID             int64     `json:"id,string"`
	ProjectID      int64     `json:"project_id,string"`
	IdempotencyKey string    `json:"idempotency_key"`
	CreativeCount  int32     `json:"creative_count"`
	CreatedAt      time.Time `json:"created_at"`
}
