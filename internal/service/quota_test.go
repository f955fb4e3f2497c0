package service_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

var _ = Describe("QuotaEnforcer", func() {
	var (
		ctx      context.Context
		enforcer service.QuotaEnforcer
		orgStore *mockOrganizationStore
		sp       *mockStoreProvider
		org      *model.Organization
	)

	BeforeEach(func() {
		ctx = context.Background()
		enforcer = service.NewQuotaEnforcer()
		orgStore = &mockOrganizationStore{}
		sp = &mockStoreProvider{memDB: newMemDB(), org: orgStore}
		org = &model.Organization{ID: 1, MaxCreatives: 10, MaxBrands: 1}
	})

	It("returns the room left after the request", func() {
		orgStore.countCreativesFn = func(_ context.Context, orgID int64) (int64, error) {
			Expect(orgID).To(Equal(int64(1)))
			return 4, nil
		}

		left, err := enforcer.CheckCreativeQuota(ctx, sp, org, 6)
		Expect(err).NotTo(HaveOccurred())
		Expect(left).To(BeZero())
	})

	It("reports available and requested when the request does not fit", func() {
		orgStore.countCreativesFn = func(context.Context, int64) (int64, error) { return 8, nil }

		_, err := enforcer.CheckCreativeQuota(ctx, sp, org, 11)
		Expect(err).To(MatchError(service.ErrQuotaExceeded))

		var qerr *service.QuotaError
		Expect(errors.As(err, &qerr)).To(BeTrue())
		Expect(qerr.Resource).To(Equal(service.QuotaResourceCreatives))
		Expect(qerr.Available).To(Equal(int64(2)))
		Expect(qerr.Requested).To(Equal(int64(11)))
	})

	It("never reports negative availability for an over-limit organization", func() {
		orgStore.countCreativesFn = func(context.Context, int64) (int64, error) { return 12, nil }

		_, err := enforcer.CheckCreativeQuota(ctx, sp, org, 1)
		var qerr *service.QuotaError
		Expect(errors.As(err, &qerr)).To(BeTrue())
		Expect(qerr.Available).To(BeZero())
	})

	It("rejects a second brand on a single-brand plan", func() {
		orgStore.countBrandsFn = func(context.Context, int64) (int64, error) { return 1, nil }

		_, err := enforcer.CheckBrandQuota(ctx, sp, org)
		var qerr *service.QuotaError
		Expect(errors.As(err, &qerr)).To(BeTrue())
		Expect(qerr.Resource).To(Equal(service.QuotaResourceBrands))
		Expect(qerr.Available).To(BeZero())
		Expect(qerr.Requested).To(Equal(int64(1)))
	})

	It("wraps store failures", func() {
		orgStore.countCreativesFn = func(context.Context, int64) (int64, error) { return 0, errors.New("connection reset") }

		_, err := enforcer.CheckCreativeQuota(ctx, sp, org, 1)
		Expect(err).To(MatchError(ContainSubstring("connection reset")))
		Expect(err).NotTo(MatchError(service.ErrQuotaExceeded))
	})

	It("reports usage against the organization limits", func() {
		orgStore.countCreativesFn = func(context.Context, int64) (int64, error) { return 7, nil }
		orgStore.countBrandsFn = func(context.Context, int64) (int64, error) { return 1, nil }

		usage, err := enforcer.Usage(ctx, sp, org)
		Expect(err).NotTo(HaveOccurred())
		Expect(usage.Creatives).To(Equal(int64(7)))
		Expect(usage.RemainingCreatives()).To(Equal(int64(3)))
		Expect(usage.RemainingBrands()).To(BeZero())
	})
})

var _ = Describe("TemplatePromoter", func() {
	var (
		ctx      context.Context
		db       *memDB
		promoter service.TemplatePromoter
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = newMemDB()
		promoter = service.NewTemplatePromoter()
		db.seedOrg(1, 100, 3)
		db.seedBrand(10, 1, "Acme")
	})

	It("ignores standard projects", func() {
		p := db.seedProject(100, 10, model.ProjectStatusApproved, model.ProjectTypeStandard)

		tmpl, err := promoter.MaybePromote(ctx, db, &p)
		Expect(err).NotTo(HaveOccurred())
		Expect(tmpl).To(BeNil())
		Expect(db.templateRows()).To(BeEmpty())
	})

	It("ignores template projects that are not approved", func() {
		p := db.seedProject(100, 10, model.ProjectStatusReady, model.ProjectTypeTemplateCreation)

		tmpl, err := promoter.MaybePromote(ctx, db, &p)
		Expect(err).NotTo(HaveOccurred())
		Expect(tmpl).To(BeNil())
	})

	It("uses the earliest creative as the reference image", func() {
		p := db.seedProject(100, 10, model.ProjectStatusApproved, model.ProjectTypeTemplateCreation)
		db.seedCreative(1002, 100, "first.png", "https://cdn.example.com/first.png")
		db.seedCreative(1001, 100, "second.png", "https://cdn.example.com/second.png")

		tmpl, err := promoter.MaybePromote(ctx, db, &p)
		Expect(err).NotTo(HaveOccurred())
		Expect(tmpl.ImageURL).To(Equal("https://cdn.example.com/first.png"))
		Expect(tmpl.Name).To(Equal(p.Name))
		Expect(tmpl.BrandID).To(Equal(int64(10)))
		Expect(*tmpl.ProjectID).To(Equal(int64(100)))
		Expect(*tmpl.Description).To(Equal(`Template created from project "Summer campaign"`))
		Expect(tmpl.TemplateStatus).To(Equal(model.TemplateStatusApproved))
		Expect(tmpl.IsActive).To(BeTrue())
	})

	It("falls back to the placeholder image without creatives", func() {
		p := db.seedProject(100, 10, model.ProjectStatusApproved, model.ProjectTypeTemplateCreation)

		tmpl, err := promoter.MaybePromote(ctx, db, &p)
		Expect(err).NotTo(HaveOccurred())
		Expect(tmpl.ImageURL).To(Equal(model.PlaceholderTemplateImage))
	})
})
