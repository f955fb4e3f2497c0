package store

import (
	"context"

	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/model"
)

type commentStore struct {
	queries *sqlc.Queries
}

func newCommentStore(queries *sqlc.Queries) CommentStore {
	return &commentStore{queries: queries}
}

func (s *commentStore) Create(ctx context.Context, comment *model.Comment) error {
	row, err := s.queries.CreateComment(ctx, sqlc.CreateCommentParams{
		ID:        comment.ID,
		ProjectID: comment.ProjectID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
	})
	if err != nil {
		return err
	}
	*comment = toCommentModel(row)
	return nil
}

func (s *commentStore) ListByProject(ctx context.Context, projectID int64) ([]model.Comment, error) {
	rows, err := s.queries.ListCommentsByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	result := make([]model.Comment, len(rows))
	for i, row := range rows {
		result[i] = toCommentModel(row)
	}
	return result, nil
}

func toCommentModel(row sqlc.Comment) model.Comment {
	return model.Comment{
		ID:        row.ID,
		ProjectID: row.ProjectID,
		AuthorID:  row.AuthorID,
		Content:   row.Content,
		CreatedAt: row.CreatedAt.Time,
	}
}
