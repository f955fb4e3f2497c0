package service

import (
	"context"

	"adflow.app/tracker/core/db"
	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/store"
)

// StoreProvider exposes the stores an operation works with. Inside WithTx
// every store is bound to the same transaction.
type StoreProvider interface {
	Organizations() store.OrganizationStore
	Brands() store.BrandStore
	Projects() store.ProjectStore
	Creatives() store.CreativeStore
	Templates() store.TemplateStore
	Comments() store.CommentStore
	ActivityLogs() store.ActivityLogStore
}

// TxRunner runs functions within a transaction and provides stores bound to that transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner builds a TxRunner backed by the core DB.
func NewTxRunner(db *db.DB) TxRunner {
	return &dbTxRunner{db: db}
}

func (r *dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
