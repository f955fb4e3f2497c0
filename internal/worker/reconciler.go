package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/store"
)

// Reconciler repairs a project's denormalized creative total from the live
// creative rows.
type Reconciler struct {
	txRunner TxRunner
}

func NewReconciler(txRunner TxRunner) *Reconciler {
	return &Reconciler{txRunner: txRunner}
}

// ReconcileProject re-syncs total_creatives under the project row lock and
// reports whether the stored value had drifted. A deleted project returns
// nil, false, nil.
func (r *Reconciler) ReconcileProject(ctx context.Context, projectID int64) (*model.Project, bool, error) {
	var (
		project *model.Project
		drifted bool
	)
	err := r.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		p, err := sp.Projects().Lock(ctx, projectID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("locking project: %w", err)
		}

		before := p.TotalCreatives
		if err := sp.Projects().SyncTotalCreatives(ctx, p); err != nil {
			return fmt.Errorf("syncing creative total: %w", err)
		}

		drifted = before != p.TotalCreatives
		project = p
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if project == nil {
		slog.InfoContext(ctx, "project no longer exists, nothing to reconcile", "project_id", projectID)
		return nil, false, nil
	}
	if drifted {
		slog.WarnContext(ctx, "creative total drifted, corrected",
			"project_id", projectID,
			"total_creatives", project.TotalCreatives)
	}
	return project, drifted, nil
}
