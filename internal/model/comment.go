package model

import "time"

type Comment struct {
	ID        int64     `json:"id,string"`
	ProjectID int64     `json:"project_id,string"`
	AuthorID  int64     `json:"author_id,string"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
