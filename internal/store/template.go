package store

import (
	"context"
	"errors"

	"adflow.app/tracker/core/db"
	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/model"
	"github.com/jackc/pgx/v5"
)

type templateStore struct {
	queries *sqlc.Queries
}

func newTemplateStore(queries *sqlc.Queries) TemplateStore {
	return &templateStore{queries: queries}
}

func (s *templateStore) GetByID(ctx context.Context, id int64) (*model.Template, error) {
	row, err := s.queries.GetTemplate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toTemplateModel(row), nil
}

func (s *templateStore) Create(ctx context.Context, tmpl *model.Template) error {
	platforms := tmpl.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	formats := tmpl.Formats
	if formats == nil {
		formats = []string{}
	}

	row, err := s.queries.CreateTemplate(ctx, sqlc.CreateTemplateParams{
		ID:             tmpl.ID,
		BrandID:        tmpl.BrandID,
		ProjectID:      tmpl.ProjectID,
		Name:           tmpl.Name,
		Description:    tmpl.Description,
		ImageUrl:       tmpl.ImageURL,
		Category:       tmpl.Category,
		Platforms:      platforms,
		Formats:        formats,
		TemplateStatus: string(tmpl.TemplateStatus),
		IsActive:       tmpl.IsActive,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	*tmpl = *toTemplateModel(row)
	return nil
}

func (s *templateStore) ListActiveByBrand(ctx context.Context, brandID int64) ([]model.Template, error) {
	rows, err := s.queries.ListActiveTemplatesByBrand(ctx, brandID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Template, len(rows))
	for i, row := range rows {
		result[i] = *toTemplateModel(row)
	}
	return result, nil
}

func toTemplateModel(row sqlc.Template) *model.Template {
	return &model.Template{
		ID:             row.ID,
		BrandID:        row.BrandID,
		ProjectID:      row.ProjectID,
		Name:           row.Name,
		Description:    row.Description,
		ImageURL:       row.ImageUrl,
		Category:       row.Category,
		Platforms:      row.Platforms,
		Formats:        row.Formats,
		TemplateStatus: model.TemplateStatus(row.TemplateStatus),
		IsActive:       row.IsActive,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
