package store

import (
	"context"
	"errors"

	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/model"
	"github.com/jackc/pgx/v5"
)

type organizationStore struct {
	queries *sqlc.Queries
}

func newOrganizationStore(queries *sqlc.Queries) OrganizationStore {
	return &organizationStore{queries: queries}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.GetOrganization(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) Lock(ctx context.Context, id int64) (*model.Organization, error) {
	row, err := s.queries.LockOrganization(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toOrganizationModel(row), nil
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row, err := s.queries.CreateOrganization(ctx, sqlc.CreateOrganizationParams{
		ID:            org.ID,
		Name:          org.Name,
		Plan:          string(org.Plan),
		MaxCreatives:  org.MaxCreatives,
		MaxBrands:     org.MaxBrands,
		PaymentStatus: string(org.PaymentStatus),
	})
	if err != nil {
		return err
	}
	*org = *toOrganizationModel(row)
	return nil
}

func (s *organizationStore) CountBrands(ctx context.Context, orgID int64) (int64, error) {
	return s.queries.CountBrandsByOrganization(ctx, orgID)
}

func (s *organizationStore) CountCreatives(ctx context.Context, orgID int64) (int64, error) {
	return s.queries.CountCreativesByOrganization(ctx, orgID)
}

func toOrganizationModel(row sqlc.Organization) *model.Organization {
	return &model.Organization{
		ID:            row.ID,
		Name:          row.Name,
		Plan:          model.Plan(row.Plan),
		MaxCreatives:  row.MaxCreatives,
		MaxBrands:     row.MaxBrands,
		PaymentStatus: model.PaymentStatus(row.PaymentStatus),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
