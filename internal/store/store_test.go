package store_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"adflow.app/tracker/common/id"
	"adflow.app/tracker/core/db/sqlc"
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/store"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Postgres stores", func() {
	var (
		stores *store.Stores
		org    *model.Organization
		brand  *model.Brand
	)

	BeforeEach(func(ctx context.Context) {
		requireDB(ctx)
		stores = store.NewStores(testDB.Queries())

		org = &model.Organization{
			ID:            id.New(),
			Name:          "Acme",
			Plan:          model.PlanStarter,
			MaxCreatives:  10,
			MaxBrands:     1,
			PaymentStatus: model.PaymentStatusActive,
		}
		Expect(stores.Organizations().Create(ctx, org)).To(Succeed())

		brand = &model.Brand{ID: id.New(), OrganizationID: org.ID, Name: "Acme Shoes"}
		Expect(stores.Brands().Create(ctx, brand)).To(Succeed())
	})

	newProject := func(ctx context.Context, projectType model.ProjectType) *model.Project {
		p := &model.Project{
			ID:             id.New(),
			OrganizationID: org.ID,
			BrandID:        brand.ID,
			Name:           "Summer launch",
			Status:         model.ProjectStatusDraft,
			ProjectType:    projectType,
		}
		Expect(stores.Projects().Create(ctx, p)).To(Succeed())
		return p
	}

	Describe("ProjectStore", func() {
		It("returns the owning organization with the project", func(ctx context.Context) {
			p := newProject(ctx, model.ProjectTypeStandard)

			got, err := stores.Projects().GetByID(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.OrganizationID).To(Equal(org.ID))
			Expect(got.Status).To(Equal(model.ProjectStatusDraft))
		})

		It("maps missing rows to ErrNotFound", func(ctx context.Context) {
			_, err := stores.Projects().GetByID(ctx, id.New())
			Expect(err).To(MatchError(store.ErrNotFound))
		})

		It("filters listings by organization scope and status", func(ctx context.Context) {
			p := newProject(ctx, model.ProjectTypeStandard)
			p.Status = model.ProjectStatusInProduction
			Expect(stores.Projects().UpdateStatus(ctx, p)).To(Succeed())
			newProject(ctx, model.ProjectTypeStandard)

			status := model.ProjectStatusInProduction
			got, err := stores.Projects().List(ctx, store.ProjectFilter{Status: &status})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].ID).To(Equal(p.ID))

			none, err := stores.Projects().List(ctx, store.ProjectFilter{OrganizationIDs: []int64{}})
			Expect(err).NotTo(HaveOccurred())
			Expect(none).To(BeEmpty())
		})

		It("syncs total_creatives with the live count", func(ctx context.Context) {
			p := newProject(ctx, model.ProjectTypeStandard)
			for i := 0; i < 3; i++ {
				c := &model.Creative{ID: id.New(), ProjectID: p.ID, Name: "c", URL: "https://cdn.test/c.png", Format: "png"}
				Expect(stores.Creatives().Create(ctx, c)).To(Succeed())
			}

			Expect(stores.Projects().SyncTotalCreatives(ctx, p)).To(Succeed())
			Expect(p.TotalCreatives).To(Equal(int32(3)))
			Expect(p.OrganizationID).To(Equal(org.ID))
		})
	})

	Describe("CreativeStore", func() {
		It("returns the first delivered creative as earliest", func(ctx context.Context) {
			p := newProject(ctx, model.ProjectTypeTemplateCreation)

			_, err := stores.Creatives().Earliest(ctx, p.ID)
			Expect(err).To(MatchError(store.ErrNotFound))

			first := &model.Creative{ID: id.New(), ProjectID: p.ID, Name: "kv.png", URL: "https://cdn.test/kv.png", Format: "png"}
			Expect(stores.Creatives().Create(ctx, first)).To(Succeed())
			second := &model.Creative{ID: id.New(), ProjectID: p.ID, Name: "story.png", URL: "https://cdn.test/story.png", Format: "png"}
			Expect(stores.Creatives().Create(ctx, second)).To(Succeed())

			got, err := stores.Creatives().Earliest(ctx, p.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(first.ID))

			count, err := stores.Organizations().CountCreatives(ctx, org.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})

		It("rejects a reused idempotency key with ErrConflict", func(ctx context.Context) {
			p := newProject(ctx, model.ProjectTypeStandard)

			batch := &model.CreativeBatch{ID: id.New(), ProjectID: p.ID, IdempotencyKey: "upload-1", CreativeCount: 1}
			Expect(stores.Creatives().CreateBatch(ctx, batch)).To(Succeed())

			again := &model.CreativeBatch{ID: id.New(), ProjectID: p.ID, IdempotencyKey: "upload-1", CreativeCount: 1}
			Expect(stores.Creatives().CreateBatch(ctx, again)).To(MatchError(store.ErrConflict))

			got, err := stores.Creatives().GetBatch(ctx, p.ID, "upload-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(batch.ID))
		})
	})

	Describe("ActivityLogStore", func() {
		It("lists newest first", func(ctx context.Context) {
			for _, action := range []model.ActivityAction{model.ActivityBrandCreated, model.ActivityProjectCreated} {
				log := &model.ActivityLog{ID: id.New(), OrganizationID: org.ID, ActorID: 7, Action: action, Description: string(action)}
				Expect(stores.ActivityLogs().Create(ctx, log)).To(Succeed())
			}

			logs, err := stores.ActivityLogs().ListByOrganization(ctx, org.ID, 10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(logs).To(HaveLen(2))
			Expect(logs[0].Action).To(Equal(model.ActivityProjectCreated))
		})
	})

	Describe("organization row lock", func() {
		It("serializes transactions that lock the same organization", func(ctx context.Context) {
			locked := make(chan struct{})
			release := make(chan struct{})
			var order []string
			var mu sync.Mutex
			record := func(s string) {
				mu.Lock()
				defer mu.Unlock()
				order = append(order, s)
			}

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				err := testDB.WithTx(ctx, func(q *sqlc.Queries) error {
					if _, err := store.NewStores(q).Organizations().Lock(ctx, org.ID); err != nil {
						return err
					}
					close(locked)
					<-release
					record("first")
					return nil
				})
				Expect(err).NotTo(HaveOccurred())
			}()

			<-locked
			go func() {
				defer GinkgoRecover()
				defer wg.Done()
				err := testDB.WithTx(ctx, func(q *sqlc.Queries) error {
					_, err := store.NewStores(q).Organizations().Lock(ctx, org.ID)
					record("second")
					return err
				})
				Expect(err).NotTo(HaveOccurred())
			}()

			time.Sleep(100 * time.Millisecond)
			close(release)
			wg.Wait()

			Expect(order).To(Equal([]string{"first", "second"}))
		})

		It("reports a missing organization as ErrNotFound", func(ctx context.Context) {
			err := testDB.WithTx(ctx, func(q *sqlc.Queries) error {
				_, err := store.NewStores(q).Organizations().Lock(ctx, id.New())
				return err
			})
			Expect(errors.Is(err, store.ErrNotFound)).To(BeTrue())
		})
	})
})
