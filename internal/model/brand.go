package model

import "time"

type Brand struct {
	ID             int64     `json:"id,string"`
	OrganizationID int64     `json:"organization_id,string"`
	Name           string    `json:"name"`
	LogoURL        *string   `json:"logo_url,omitempty"`
	ToneOfVoice    *string   `json:"tone_of_voice,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
