package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"adflow.app/tracker/internal/http/handler"
	"adflow.app/tracker/internal/http/middleware"
	"adflow.app/tracker/internal/model"
	"adflow.app/tracker/internal/service"
)

var _ = Describe("Catalog handlers", func() {
	var (
		router    *gin.Engine
		lifecycle *mockLifecycleService
		catalog   *mockCatalogService
	)

	BeforeEach(func() {
		router = gin.New()
		router.Use(middleware.Identity(""))
		lifecycle = &mockLifecycleService{}
		catalog = &mockCatalogService{}

		brands := handler.NewBrandHandler(lifecycle, catalog)
		router.GET("/brands", brands.List)
		router.POST("/brands", brands.Create)
		router.GET("/brands/:id/templates", brands.ListTemplates)

		templates := handler.NewTemplateHandler(lifecycle)
		router.POST("/templates", templates.Create)

		comments := handler.NewCommentHandler(lifecycle, catalog)
		router.GET("/projects/:id/comments", comments.List)
		router.POST("/projects/:id/comments", comments.Add)

		orgs := handler.NewOrganizationHandler(catalog)
		router.GET("/organizations/:id/quota", orgs.Quota)
		router.GET("/organizations/:id/activity", orgs.Activity)

		router.GET("/project-statuses", handler.NewStatusHandler().List)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("serves the lifecycle table", func() {
		w := serve(memberRequest(http.MethodGet, "/project-statuses", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		statuses := decodeBody(w)["statuses"]
		Expect(statuses).To(HaveLen(5))
		Expect(statuses).To(ContainElement(And(
			HaveKeyWithValue("status", "ready"),
			HaveKeyWithValue("next", ConsistOf("approved", "revision", "in_production")),
			HaveKeyWithValue("requires_creatives", true),
		)))
	})

	Describe("brands", func() {
		It("creates a brand", func() {
			lifecycle.createBrandFn = func(_ context.Context, _ model.Caller, params service.CreateBrandParams) (*model.Brand, error) {
				Expect(params.OrganizationID).To(Equal(int64(1)))
				return &model.Brand{ID: 10, OrganizationID: 1, Name: params.Name}, nil
			}

			w := serve(memberRequest(http.MethodPost, "/brands", map[string]any{"organization_id": "1", "name": "Acme"}))

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(decodeBody(w)["name"]).To(Equal("Acme"))
		})

		It("returns 422 when the brand quota is spent", func() {
			lifecycle.createBrandFn = func(context.Context, model.Caller, service.CreateBrandParams) (*model.Brand, error) {
				return nil, &service.QuotaError{Resource: service.QuotaResourceBrands, Available: 0, Requested: 1}
			}

			w := serve(memberRequest(http.MethodPost, "/brands", map[string]any{"organization_id": "1", "name": "Acme"}))

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(decodeBody(w)["resource"]).To(Equal("brands"))
		})

		It("lists brands and templates", func() {
			catalog.listBrandsFn = func(context.Context, model.Caller) ([]model.Brand, error) {
				return []model.Brand{{ID: 10, OrganizationID: 1, Name: "Acme"}}, nil
			}
			catalog.listTemplatesFn = func(_ context.Context, _ model.Caller, brandID int64) ([]model.Template, error) {
				Expect(brandID).To(Equal(int64(10)))
				return []model.Template{{ID: 7, BrandID: 10, Name: "Carousel", IsActive: true}}, nil
			}

			w := serve(memberRequest(http.MethodGet, "/brands", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)["brands"]).To(HaveLen(1))

			w = serve(memberRequest(http.MethodGet, "/brands/10/templates", nil))
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)["templates"]).To(ConsistOf(HaveKeyWithValue("name", "Carousel")))
		})
	})

	It("returns 403 when a member creates a template", func() {
		lifecycle.createTemplateFn = func(context.Context, model.Caller, service.CreateTemplateParams) (*model.Template, error) {
			return nil, service.ErrForbidden
		}

		w := serve(memberRequest(http.MethodPost, "/templates", map[string]any{"brand_id": "10", "name": "Carousel", "image_url": "/t.png"}))

		Expect(w.Code).To(Equal(http.StatusForbidden))
	})

	Describe("comments", func() {
		It("adds a comment as the caller", func() {
			lifecycle.addCommentFn = func(_ context.Context, caller model.Caller, params service.AddCommentParams) (*model.Comment, error) {
				return &model.Comment{ID: 1, ProjectID: params.ProjectID, AuthorID: caller.ActorID, Content: params.Content}, nil
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/comments", map[string]any{"content": "Nice"}))

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decodeBody(w)
			Expect(resp["author_id"]).To(Equal("500"))
			Expect(resp["project_id"]).To(Equal("100"))
		})

		It("lists comments", func() {
			catalog.listCommentsFn = func(context.Context, model.Caller, int64) ([]model.Comment, error) {
				return []model.Comment{{ID: 1, ProjectID: 100, AuthorID: 500, Content: "Nice"}}, nil
			}

			w := serve(memberRequest(http.MethodGet, "/projects/100/comments", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)["comments"]).To(HaveLen(1))
		})
	})

	Describe("organizations", func() {
		It("reports quota with remaining room", func() {
			catalog.getQuotaFn = func(_ context.Context, _ model.Caller, orgID int64) (model.Usage, error) {
				return model.Usage{OrganizationID: orgID, Creatives: 298, MaxCreatives: 300, Brands: 1, MaxBrands: 1}, nil
			}

			w := serve(memberRequest(http.MethodGet, "/organizations/1/quota", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeBody(w)
			Expect(resp["remaining_creatives"]).To(BeNumerically("==", 2))
			Expect(resp["remaining_brands"]).To(BeNumerically("==", 0))
		})

		It("pages activity", func() {
			catalog.listActivityFn = func(_ context.Context, _ model.Caller, orgID int64, limit, offset int32) ([]model.ActivityLog, error) {
				Expect(orgID).To(Equal(int64(1)))
				Expect(limit).To(Equal(int32(20)))
				Expect(offset).To(Equal(int32(40)))
				return []model.ActivityLog{{ID: 1, OrganizationID: 1, ActorID: 500, Action: model.ActivityProjectApproved}}, nil
			}

			w := serve(memberRequest(http.MethodGet, "/organizations/1/activity?limit=20&offset=40", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)["activity"]).To(ConsistOf(HaveKeyWithValue("action", "project_approved")))
		})

		It("returns 403 for another organization", func() {
			catalog.getQuotaFn = func(context.Context, model.Caller, int64) (model.Usage, error) {
				return model.Usage{}, service.ErrForbidden
			}

			w := serve(memberRequest(http.MethodGet, "/organizations/2/quota", nil))
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})
	})
})
