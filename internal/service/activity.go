package service

import (
	"context"
	"fmt"

	"adflow.app/tracker/common/id"
	"adflow.app/tracker/internal/model"
)

// ActivityRecorder appends audit rows through the caller's transaction. A
// failed write fails the operation being audited.
type ActivityRecorder interface {
	Record(ctx context.Context, sp StoreProvider, orgID, actorID int64, action model.ActivityAction, description string) (*model.ActivityLog, error)
}

type activityRecorder struct{}

func NewActivityRecorder() ActivityRecorder {
	return activityRecorder{}
}

func (activityRecorder) Record(ctx context.Context, sp StoreProvider, orgID, actorID int64, action model.ActivityAction, description string) (*model.ActivityLog, error) {
	entry := &model.ActivityLog{
		ID:             id.New(),
		OrganizationID: orgID,
		ActorID:        actorID,
		Action:         action,
		Description:    description,
	}
	if err := sp.ActivityLogs().Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("recording %s activity: %w", action, err)
	}
	return entry, nil
}
