package store

import (
	"context"
	"errors"

	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/model"
	"github.com/jackc/pgx/v5"
)

const defaultProjectPageSize = 50

type projectStore struct {
	queries *sqlc.Queries
}

func newProjectStore(queries *sqlc.Queries) ProjectStore {
	return &projectStore{queries: queries}
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row, err := s.queries.GetProject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectModel(row.Project, row.OrganizationID), nil
}

func (s *projectStore) Lock(ctx context.Context, id int64) (*model.Project, error) {
	row, err := s.queries.LockProject(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toProjectModel(row.Project, row.OrganizationID), nil
}

func (s *projectStore) Create(ctx context.Context, project *model.Project) error {
	row, err := s.queries.CreateProject(ctx, sqlc.CreateProjectParams{
		ID:                 project.ID,
		BrandID:            project.BrandID,
		TemplateID:         project.TemplateID,
		Name:               project.Name,
		Status:             string(project.Status),
		ProjectType:        string(project.ProjectType),
		EstimatedCreatives: project.EstimatedCreatives,
	})
	if err != nil {
		return err
	}
	*project = *toProjectModel(row, project.OrganizationID)
	return nil
}

func (s *projectStore) UpdateStatus(ctx context.Context, project *model.Project) error {
	row, err := s.queries.UpdateProjectStatus(ctx, sqlc.UpdateProjectStatusParams{
		ID:     project.ID,
		Status: string(project.Status),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*project = *toProjectModel(row, project.OrganizationID)
	return nil
}

func (s *projectStore) SyncTotalCreatives(ctx context.Context, project *model.Project) error {
	row, err := s.queries.SyncProjectTotalCreatives(ctx, project.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	*project = *toProjectModel(row, project.OrganizationID)
	return nil
}

func (s *projectStore) List(ctx context.Context, filter ProjectFilter) ([]model.Project, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultProjectPageSize
	}

	var status *string
	if filter.Status != nil {
		v := string(*filter.Status)
		status = &v
	}

	rows, err := s.queries.ListProjects(ctx, sqlc.ListProjectsParams{
		OrganizationIds: filter.OrganizationIDs,
		Status:          status,
		BrandID:         filter.BrandID,
		RowLimit:        limit,
		RowOffset:       filter.Offset,
	})
	if err != nil {
		return nil, err
	}

	result := make([]model.Project, len(rows))
	for i, row := range rows {
		result[i] = *toProjectModel(row.Project, row.OrganizationID)
	}
	return result, nil
}

func toProjectModel(row sqlc.Project, orgID int64) *model.Project {
	return &model.Project{
		ID:                 row.ID,
		OrganizationID:     orgID,
		BrandID:            row.BrandID,
		TemplateID:         row.TemplateID,
		Name:               row.Name,
		Status:             model.ProjectStatus(row.Status),
		ProjectType:        model.ProjectType(row.ProjectType),
		EstimatedCreatives: row.EstimatedCreatives,
		TotalCreatives:     row.TotalCreatives,
		CreatedAt:          row.CreatedAt.Time,
		UpdatedAt:          row.UpdatedAt.Time,
	}
}
