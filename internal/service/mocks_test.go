package service_test

import (
	"context"
	"sync"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/queue"
	"adflow.app/tracker/internal/service"
	"adflow.app/tracker/internal/store"
)

type mockOrganizationStore struct {
	countBrandsFn    func(ctx context.Context, orgID int64) (int64, error)
	countCreativesFn func(ctx context.Context, orgID int64) (int64, error)
}

func (m *mockOrganizationStore) GetByID(context.Context, int64) (*model.Organization, error) {
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Lock(context.Context, int64) (*model.Organization, error) {
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(context.Context, *model.Organization) error {
	return nil
}

func (m *mockOrganizationStore) CountBrands(ctx context.Context, orgID int64) (int64, error) {
	if m.countBrandsFn != nil {
		return m.countBrandsFn(ctx, orgID)
	}
	return 0, nil
}

func (m *mockOrganizationStore) CountCreatives(ctx context.Context, orgID int64) (int64, error) {
	if m.countCreativesFn != nil {
		return m.countCreativesFn(ctx, orgID)
	}
	return 0, nil
}

// mockStoreProvider serves everything from a memDB except the stores that
// are overridden.
type mockStoreProvider struct {
	*memDB
	org store.OrganizationStore
}

func (m *mockStoreProvider) Organizations() store.OrganizationStore {
	if m.org != nil {
		return m.org
	}
	return m.memDB.Organizations()
}

type mockTxRunner struct {
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return nil
}

type mockProducer struct {
	mu        sync.Mutex
	publishFn func(ctx context.Context, event queue.LifecycleEvent) error
	events    []queue.LifecycleEvent
}

func (m *mockProducer) Publish(ctx context.Context, event queue.LifecycleEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	if m.publishFn != nil {
		return m.publishFn(ctx, event)
	}
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}

func (m *mockProducer) published() []queue.LifecycleEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]queue.LifecycleEvent(nil), m.events...)
}

func strPtr(s string) *string {
	return &s
}

func int32Ptr(i int32) *int32 {
	return &i
}
