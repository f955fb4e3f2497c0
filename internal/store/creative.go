package store

import (
	"context"
	"errors"

	"adflow.app/tracker/core/db"
	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/model"
	"github.com/jackc/pgx/v5"
)

type creativeStore struct {
	queries *sqlc.Queries
}

func newCreativeStore(queries *sqlc.Queries) CreativeStore {
	return &creativeStore{queries: queries}
}

func (s *creativeStore) GetByID(ctx context.Context, id int64) (*model.Creative, error) {
	row, err := s.queries.GetCreative(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toCreativeModel(row), nil
}

func (s *creativeStore) Create(ctx context.Context, creative *model.Creative) error {
	row, err := s.queries.CreateCreative(ctx, sqlc.CreateCreativeParams{
		ID:           creative.ID,
		ProjectID:    creative.ProjectID,
		BatchID:      creative.BatchID,
		Name:         creative.Name,
		Url:          creative.URL,
		ThumbnailUrl: creative.ThumbnailURL,
		Format:       creative.Format,
		Width:        creative.Width,
		Height:       creative.Height,
		Lista:        creative.Lista,
		Modelo:       creative.Modelo,
	})
	if err != nil {
		return err
	}
	*creative = *toCreativeModel(row)
	return nil
}

func (s *creativeStore) Delete(ctx context.Context, id int64) error {
	return s.queries.DeleteCreative(ctx, id)
}

func (s *creativeStore) ListByProject(ctx context.Context, projectID int64) ([]model.Creative, error) {
	rows, err := s.queries.ListCreativesByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return toCreativeModels(rows), nil
}

func (s *creativeStore) ListByBatch(ctx context.Context, batchID int64) ([]model.Creative, error) {
	rows, err := s.queries.ListCreativesByBatch(ctx, &batchID)
	if err != nil {
		return nil, err
	}
	return toCreativeModels(rows), nil
}

func (s *creativeStore) Earliest(ctx context.Context, projectID int64) (*model.Creative, error) {
	row, err := s.queries.GetEarliestCreative(ctx, projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toCreativeModel(row), nil
}

func (s *creativeStore) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	return s.queries.CountCreativesByProject(ctx, projectID)
}

func (s *creativeStore) GetBatch(ctx context.Context, projectID int64, idempotencyKey string) (*model.CreativeBatch, error) {
	row, err := s.queries.GetCreativeBatch(ctx, sqlc.GetCreativeBatchParams{
		ProjectID:      projectID,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toCreativeBatchModel(row), nil
}

func (s *creativeStore) CreateBatch(ctx context.Context, batch *model.CreativeBatch) error {
	row, err := s.queries.CreateCreativeBatch(ctx, sqlc.CreateCreativeBatchParams{
		ID:             batch.ID,
		ProjectID:      batch.ProjectID,
		IdempotencyKey: batch.IdempotencyKey,
		CreativeCount:  batch.CreativeCount,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrConflict
		}
		return err
	}
	*batch = *toCreativeBatchModel(row)
	return nil
}

func toCreativeModel(row sqlc.Creative) *model.Creative {
	return &model.Creative{
		ID:           row.ID,
		ProjectID:    row.ProjectID,
		BatchID:      row.BatchID,
		Name:         row.Name,
		URL:          row.Url,
		ThumbnailURL: row.ThumbnailUrl,
		Format:       row.Format,
		Width:        row.Width,
		Height:       row.Height,
		Lista:        row.Lista,
		Modelo:       row.Modelo,
		CreatedAt:    row.CreatedAt.Time,
	}
}

func toCreativeModels(rows []sqlc.Creative) []model.Creative {
	result := make([]model.Creative, len(rows))
	for i, row := range rows {
		result[i] = *toCreativeModel(row)
	}
	return result
}

func toCreativeBatchModel(row sqlc.CreativeBatch) *model.CreativeBatch {
	return &model.CreativeBatch{
		ID:             row.ID,
		ProjectID:      row.ProjectID,
		IdempotencyKey: row.IdempotencyKey,
		CreativeCount:  row.CreativeCount,
		CreatedAt:      row.CreatedAt.Time,
	}
}
