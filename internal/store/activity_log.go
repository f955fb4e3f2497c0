package store

import (
	"context"

	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/model"
)

const maxActivityPageSize = 200

type activityLogStore struct {
	queries *sqlc.Queries
}

func newActivityLogStore(queries *sqlc.Queries) ActivityLogStore {
	return &activityLogStore{queries: queries}
}

func (s *activityLogStore) Create(ctx context.Context, log *model.ActivityLog) error {
	row, err := s.queries.CreateActivityLog(ctx, sqlc.CreateActivityLogParams{
		ID:             log.ID,
		OrganizationID: log.OrganizationID,
		ActorID:        log.ActorID,
		Action:         string(log.Action),
		Description:    log.Description,
	})
	if err != nil {
		return err
	}
	*log = toActivityLogModel(row)
	return nil
}

func (s *activityLogStore) ListByOrganization(ctx context.Context, orgID int64, limit, offset int32) ([]model.ActivityLog, error) {
	if limit <= 0 || limit > maxActivityPageSize {
		limit = maxActivityPageSize
	}
	rows, err := s.queries.ListActivityLogsByOrganization(ctx, sqlc.ListActivityLogsByOrganizationParams{
		OrganizationID: orgID,
		Limit:          limit,
		Offset:         offset,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.ActivityLog, len(rows))
	for i, row := range rows {
		result[i] = toActivityLogModel(row)
	}
	return result, nil
}

func toActivityLogModel(row sqlc.ActivityLog) model.ActivityLog {
	return model.ActivityLog{
		ID:             row.ID,
		OrganizationID: row.OrganizationID,
		ActorID:        row.ActorID,
		Action:         model.ActivityAction(row.Action),
		Description:    row.Description,
		CreatedAt:      row.CreatedAt.Time,
	}
}
