package service

import (
	"adflow.app/tracker/internal/queue"
	"adflow.app/tracker/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	events   queue.Producer
	quota    QuotaEnforcer
}

func NewServices(stores *store.Stores, txRunner TxRunner, events queue.Producer) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		events:   events,
		quota:    NewQuotaEnforcer(),
	}
}

func (s *Services) Lifecycle() LifecycleService {
	return NewLifecycleService(
		s.txRunner,
		s.quota,
		NewTemplatePromoter(),
		NewActivityRecorder(),
		s.events,
	)
}

func (s *Services) Catalog() CatalogService {
	return NewCatalogService(s.stores, s.quota)
}
