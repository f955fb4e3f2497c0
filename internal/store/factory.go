package store

import (
	"adflow.app/tracker/core/db/sqlc"
)

type Stores struct {
	queries *sqlc.Queries
}

func NewStores(queries *sqlc.Queries) *Stores {
	return &Stores{queries: queries}
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.queries)
}

func (s *Stores) Brands() BrandStore {
	return newBrandStore(s.queries)
}

func (s *Stores) Projects() ProjectStore {
	return newProjectStore(s.queries)
}

func (s *Stores) Creatives() CreativeStore {
	return newCreativeStore(s.queries)
}

func (s *Stores) Templates() TemplateStore {
	return newTemplateStore(s.queries)
}

func (s *Stores) Comments() CommentStore {
	return newCommentStore(s.queries)
}

func (s *Stores) ActivityLogs() ActivityLogStore {
	return newActivityLogStore(s.queries)
}
