package worker_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/queue"
	"adflow.app/tracker/internal/store"
	"adflow.app/tracker/internal/worker"
)

type mockConsumer struct {
	acked        []string
	requeued     []string
	deadLettered []string
	ackErr       error
}

func (m *mockConsumer) Read(context.Context) ([]queue.Message, error) {
	return nil, nil
}

func (m *mockConsumer) Ack(_ context.Context, msg queue.Message) error {
	m.acked = append(m.acked, msg.ID)
	return m.ackErr
}

func (m *mockConsumer) Requeue(_ context.Context, msg queue.Message, _ string) error {
	m.requeued = append(m.requeued, msg.ID)
	return nil
}

func (m *mockConsumer) SendDLQ(_ context.Context, msg queue.Message, _ string) error {
	m.deadLettered = append(m.deadLettered, msg.ID)
	return nil
}

// mockProjectStore implements only what the reconciler touches.
type mockProjectStore struct {
	store.ProjectStore
	lockFn      func(ctx context.Context, id int64) (*model.Project, error)
	syncFn      func(ctx context.Context, p *model.Project) error
	lockedIDs   []int64
	syncedCount int
}

func (m *mockProjectStore) Lock(ctx context.Context, id int64) (*model.Project, error) {
	m.lockedIDs = append(m.lockedIDs, id)
	return m.lockFn(ctx, id)
}

func (m *mockProjectStore) SyncTotalCreatives(ctx context.Context, p *model.Project) error {
	m.syncedCount++
	if m.syncFn != nil {
		return m.syncFn(ctx, p)
	}
	return nil
}

type mockStoreProvider struct {
	projects *mockProjectStore
}

func (m *mockStoreProvider) Projects() store.ProjectStore {
	return m.projects
}

type mockTxRunner struct {
	sp *mockStoreProvider
}

func (m *mockTxRunner) WithTx(_ context.Context, fn func(stores worker.StoreProvider) error) error {
	return fn(m.sp)
}

func int64Ptr(i int64) *int64 {
	return &i
}

var _ = Describe("Worker", func() {
	var (
		ctx      context.Context
		consumer *mockConsumer
		projects *mockProjectStore
		w        *worker.Worker
	)

	BeforeEach(func() {
		ctx = context.Background()
		consumer = &mockConsumer{}
		projects = &mockProjectStore{
			lockFn: func(_ context.Context, id int64) (*model.Project, error) {
				return &model.Project{ID: id, TotalCreatives: 2}, nil
			},
			syncFn: func(_ context.Context, p *model.Project) error {
				p.TotalCreatives = 5
				return nil
			},
		}
		reconciler := worker.NewReconciler(&mockTxRunner{sp: &mockStoreProvider{projects: projects}})
		w = worker.New(consumer, reconciler, worker.Config{MaxAttempts: 3})
	})

	It("reconciles the project after a creative upload", func() {
		msg := queue.Message{ID: "1-0", EventType: "creatives_uploaded", OrganizationID: 1, ProjectID: int64Ptr(100), Attempt: 1}

		Expect(w.HandleMessage(ctx, msg)).To(Succeed())
		Expect(projects.lockedIDs).To(Equal([]int64{100}))
		Expect(projects.syncedCount).To(Equal(1))
		Expect(consumer.acked).To(Equal([]string{"1-0"}))
	})

	It("acks events that need no reconciliation", func() {
		msg := queue.Message{ID: "2-0", EventType: "comment_added", OrganizationID: 1, ProjectID: int64Ptr(100), Attempt: 1}

		Expect(w.HandleMessage(ctx, msg)).To(Succeed())
		Expect(projects.lockedIDs).To(BeEmpty())
		Expect(consumer.acked).To(Equal([]string{"2-0"}))
	})

	It("acks events without a project", func() {
		msg := queue.Message{ID: "3-0", EventType: "creative_deleted", OrganizationID: 1, Attempt: 1}

		Expect(w.HandleMessage(ctx, msg)).To(Succeed())
		Expect(projects.lockedIDs).To(BeEmpty())
		Expect(consumer.acked).To(Equal([]string{"3-0"}))
	})

	It("treats a deleted project as done", func() {
		projects.lockFn = func(context.Context, int64) (*model.Project, error) {
			return nil, store.ErrNotFound
		}
		msg := queue.Message{ID: "4-0", EventType: "creative_deleted", OrganizationID: 1, ProjectID: int64Ptr(100), Attempt: 1}

		Expect(w.HandleMessage(ctx, msg)).To(Succeed())
		Expect(projects.syncedCount).To(BeZero())
		Expect(consumer.acked).To(Equal([]string{"4-0"}))
	})

	It("requeues a failed reconciliation", func() {
		projects.syncFn = func(context.Context, *model.Project) error {
			return errors.New("connection reset")
		}
		msg := queue.Message{ID: "5-0", EventType: "creatives_uploaded", OrganizationID: 1, ProjectID: int64Ptr(100), Attempt: 1}

		Expect(w.HandleMessage(ctx, msg)).To(MatchError(ContainSubstring("connection reset")))
		Expect(consumer.acked).To(BeEmpty())
		Expect(consumer.requeued).To(Equal([]string{"5-0"}))
		Expect(consumer.deadLettered).To(BeEmpty())
	})

	It("dead-letters after the last attempt", func() {
		projects.syncFn = func(context.Context, *model.Project) error {
			return errors.New("connection reset")
		}
		msg := queue.Message{ID: "6-0", EventType: "creatives_uploaded", OrganizationID: 1, ProjectID: int64Ptr(100), Attempt: 3}

		Expect(w.HandleMessage(ctx, msg)).To(HaveOccurred())
		Expect(consumer.requeued).To(BeEmpty())
		Expect(consumer.deadLettered).To(Equal([]string{"6-0"}))
	})

	It("turns a panic into a retry", func() {
		projects.lockFn = func(context.Context, int64) (*model.Project, error) {
			panic("boom")
		}
		msg := queue.Message{ID: "7-0", EventType: "creatives_uploaded", OrganizationID: 1, ProjectID: int64Ptr(100), Attempt: 1}

		Expect(w.HandleMessage(ctx, msg)).To(MatchError(ContainSubstring("panic: boom")))
		Expect(consumer.requeued).To(Equal([]string{"7-0"}))
	})

	Describe("Stop", func() {
		It("returns when Run was never started", func() {
			stopped := make(chan struct{})
			go func() {
				defer close(stopped)
				w.Stop()
				w.Stop()
			}()
			Eventually(stopped).Should(BeClosed())
		})

		It("ends a running loop and tolerates a second call", func() {
			runErr := make(chan error, 1)
			go func() { runErr <- w.Run(ctx) }()

			w.Stop()
			Eventually(runErr).Should(Receive(BeNil()))
			Expect(w.Stop).NotTo(Panic())
		})
	})
})

var _ = Describe("Reclaimer", func() {
	It("can be stopped before and after running", func() {
		r := worker.NewReclaimer(nil, worker.ReclaimerConfig{Stream: "lifecycle", Interval: time.Hour}, &mockConsumer{}, nil)
		Expect(r.Stop).NotTo(Panic())

		r = worker.NewReclaimer(nil, worker.ReclaimerConfig{Stream: "lifecycle", Interval: time.Hour}, &mockConsumer{}, nil)
		returned := make(chan struct{})
		go func() {
			defer close(returned)
			r.Run(context.Background())
		}()
		r.Stop()
		Eventually(returned).Should(BeClosed())
		Expect(r.Stop).NotTo(Panic())
	})
})

var _ = Describe("Reconciler", func() {
	It("reports drift between the stored and live totals", func() {
		projects := &mockProjectStore{
			lockFn: func(_ context.Context, id int64) (*model.Project, error) {
				return &model.Project{ID: id, TotalCreatives: 4}, nil
			},
			syncFn: func(_ context.Context, p *model.Project) error {
				p.TotalCreatives = 4
				return nil
			},
		}
		r := worker.NewReconciler(&mockTxRunner{sp: &mockStoreProvider{projects: projects}})

		p, drifted, err := r.ReconcileProject(context.Background(), 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(drifted).To(BeFalse())
		Expect(p.TotalCreatives).To(Equal(int32(4)))
	})
})
