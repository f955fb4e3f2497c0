package store

import (
	"context"
	"errors"

	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/model"
	"github.com/jackc/pgx/v5"
)

type brandStore struct {
	queries *sqlc.Queries
}

func newBrandStore(queries *sqlc.Queries) BrandStore {
	return &brandStore{queries: queries}
}

func (s *brandStore) GetByID(ctx context.Context, id int64) (*model.Brand, error) {
	row, err := s.queries.GetBrand(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toBrandModel(row), nil
}

func (s *brandStore) Create(ctx context.Context, brand *model.Brand) error {
	row, err := s.queries.CreateBrand(ctx, sqlc.CreateBrandParams{
		ID:             brand.ID,
		OrganizationID: brand.OrganizationID,
		Name:           brand.Name,
		LogoUrl:        brand.LogoURL,
		ToneOfVoice:    brand.ToneOfVoice,
	})
	if err != nil {
		return err
	}
	*brand = *toBrandModel(row)
	return nil
}

func (s *brandStore) List(ctx context.Context, orgIDs []int64) ([]model.Brand, error) {
	rows, err := s.queries.ListBrands(ctx, orgIDs)
	if err != nil {
		return nil, err
	}
	result := make([]model.Brand, len(rows))
	for i, row := range rows {
		result[i] = *toBrandModel(row)
	}
	return result, nil
}

func toBrandModel(row sqlc.Brand) *model.Brand {
	return &model.Brand{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		Name:           row.Name,
		LogoURL:        row.LogoUrl,
		ToneOfVoice:    row.ToneOfVoice,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
