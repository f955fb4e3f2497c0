package worker

import (
	"context"

	"adflow.app/tracker/core/db"
	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/queue"
	"adflow.app/tracker/internal/store"
)

// Consumer is the slice of queue.RedisConsumer the worker drives.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, reason string) error
	SendDLQ(ctx context.Context, msg queue.Message, reason string) error
}

// StoreProvider is the project slice of service.StoreProvider. It is
// redeclared here so the worker does not import the service layer.
type StoreProvider interface {
	Projects() store.ProjectStore
}

type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores StoreProvider) error) error
}

type dbTxRunner struct {
	db *db.DB
}

// NewTxRunner binds the reconciler's stores to transactions on database.
func NewTxRunner(database *db.DB) TxRunner {
	return dbTxRunner{db: database}
}

func (r dbTxRunner) WithTx(ctx context.Context, fn func(stores StoreProvider) error) error {
	return r.db.WithTx(ctx, func(q *sqlc.Queries) error {
		return fn(store.NewStores(q))
	})
}
