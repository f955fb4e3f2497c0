package handler_test

import (
	"context"
	"errors"
	"fmt"
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

var _ = Describe("ProjectHandler", func() {
	var (
		router    *gin.Engine
		lifecycle *mockLifecycleService
		catalog   *mockCatalogService
	)

	BeforeEach(func() {
		router = gin.New()
		lifecycle = &mockLifecycleService{}
		catalog = &mockCatalogService{}
		h := handler.NewProjectHandler(lifecycle, catalog)

		projects := router.Group("/projects")
		projects.Use(middleware.Identity(""))
		{
			projects.GET("", h.List)
			projects.POST("", h.Create)
			projects.GET("/:id", h.Get)
			projects.POST("/:id/status", h.ChangeStatus)
			projects.POST("/:id/approve", h.Approve)
			projects.POST("/:id/revision", h.RequestRevision)
		}
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("Create", func() {
		It("returns 201 with the new project", func() {
			var got service.CreateProjectParams
			lifecycle.createProjectFn = func(_ context.Context, caller model.Caller, params service.CreateProjectParams) (*model.Project, error) {
				Expect(caller.ActorID).To(Equal(int64(500)))
				Expect(caller.OrganizationIDs).To(Equal([]int64{1}))
				got = params
				return draftProject(100), nil
			}

			w := serve(memberRequest(http.MethodPost, "/projects", map[string]any{
				"brand_id":            "10",
				"name":                "Summer campaign",
				"estimated_creatives": 12,
			}))

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got.BrandID).To(Equal(int64(10)))
			Expect(got.EstimatedCreatives).To(Equal(int32(12)))

			resp := decodeBody(w)
			Expect(resp["id"]).To(Equal("100"))
			Expect(resp["status"]).To(Equal("draft"))
			Expect(resp["status_label"]).To(Equal("Draft"))
			Expect(resp["status_variant"]).To(Equal("secondary"))
			Expect(resp["next_statuses"]).To(ConsistOf("in_production"))
		})

		It("returns 400 without a brand", func() {
			w := serve(memberRequest(http.MethodPost, "/projects", map[string]any{"name": "x"}))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 422 with quota details when the organization is full", func() {
			lifecycle.createProjectFn = func(context.Context, model.Caller, service.CreateProjectParams) (*model.Project, error) {
				return nil, &service.QuotaError{Resource: service.QuotaResourceCreatives, Available: 3, Requested: 12}
			}

			w := serve(memberRequest(http.MethodPost, "/projects", map[string]any{"brand_id": "10", "name": "x"}))

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			resp := decodeBody(w)
			Expect(resp["code"]).To(Equal("quota_exceeded"))
			Expect(resp["resource"]).To(Equal("creatives"))
			Expect(resp["available"]).To(BeNumerically("==", 3))
			Expect(resp["requested"]).To(BeNumerically("==", 12))
		})
	})

	Describe("Get", func() {
		It("returns 404 for a missing project", func() {
			catalog.getProjectFn = func(context.Context, model.Caller, int64) (*model.Project, error) {
				return nil, fmt.Errorf("project %w", service.ErrNotFound)
			}

			w := serve(memberRequest(http.MethodGet, "/projects/404", nil))
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 403 for another tenant's project", func() {
			catalog.getProjectFn = func(context.Context, model.Caller, int64) (*model.Project, error) {
				return nil, service.ErrForbidden
			}

			w := serve(memberRequest(http.MethodGet, "/projects/200", nil))
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("returns 400 for a malformed id", func() {
			w := serve(memberRequest(http.MethodGet, "/projects/abc", nil))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 401 without identity headers", func() {
			w := serve(httptest.NewRequest(http.MethodGet, "/projects/100", nil))
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 503 and hides store faults", func() {
			catalog.getProjectFn = func(context.Context, model.Caller, int64) (*model.Project, error) {
				return nil, fmt.Errorf("%w: %w", service.ErrUnavailable, errors.New("dial tcp 10.0.0.3:5432"))
			}

			w := serve(memberRequest(http.MethodGet, "/projects/100", nil))
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(w.Body.String()).NotTo(ContainSubstring("10.0.0.3"))
		})
	})

	Describe("List", func() {
		It("passes filters and paging through", func() {
			var got service.ListProjectsParams
			catalog.listProjectsFn = func(_ context.Context, _ model.Caller, params service.ListProjectsParams) ([]model.Project, error) {
				got = params
				return []model.Project{*draftProject(100)}, nil
			}

			w := serve(memberRequest(http.MethodGet, "/projects?status=ready&brand_id=10&limit=5&offset=10", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(*got.Status).To(Equal(model.ProjectStatusReady))
			Expect(*got.BrandID).To(Equal(int64(10)))
			Expect(got.Limit).To(Equal(int32(5)))
			Expect(got.Offset).To(Equal(int32(10)))
			Expect(decodeBody(w)["projects"]).To(HaveLen(1))
		})

		It("defaults the page size", func() {
			var got service.ListProjectsParams
			catalog.listProjectsFn = func(_ context.Context, _ model.Caller, params service.ListProjectsParams) ([]model.Project, error) {
				got = params
				return nil, nil
			}

			w := serve(memberRequest(http.MethodGet, "/projects", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(got.Limit).To(Equal(int32(50)))
			Expect(got.Status).To(BeNil())
		})

		It("rejects a malformed limit", func() {
			w := serve(memberRequest(http.MethodGet, "/projects?limit=many", nil))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("ChangeStatus", func() {
		It("returns the moved project", func() {
			lifecycle.changeStatusFn = func(_ context.Context, _ model.Caller, params service.ChangeStatusParams) (*model.Project, error) {
				Expect(params.ProjectID).To(Equal(int64(100)))
				Expect(params.Status).To(Equal(model.ProjectStatusInProduction))
				p := draftProject(100)
				p.Status = params.Status
				return p, nil
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/status", map[string]any{"status": "in_production"}))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)["status"]).To(Equal("in_production"))
		})

		DescribeTable("maps transition rejections",
			func(from, to model.ProjectStatus, creatives int64, status int, code string) {
				lifecycle.changeStatusFn = func(context.Context, model.Caller, service.ChangeStatusParams) (*model.Project, error) {
					return nil, service.ValidateTransition(from, to, creatives)
				}

				w := serve(memberRequest(http.MethodPost, "/projects/100/status", map[string]any{"status": string(to)}))

				Expect(w.Code).To(Equal(status))
				resp := decodeBody(w)
				Expect(resp["code"]).To(Equal(code))
				Expect(resp["from"]).To(Equal(string(from)))
				Expect(resp["to"]).To(Equal(string(to)))
			},
			Entry("missing edge", model.ProjectStatusDraft, model.ProjectStatusApproved, int64(1), http.StatusConflict, "invalid_transition"),
			Entry("approved project", model.ProjectStatusApproved, model.ProjectStatusRevision, int64(1), http.StatusConflict, "terminal_state"),
			Entry("no creatives", model.ProjectStatusDraft, model.ProjectStatusInProduction, int64(0), http.StatusUnprocessableEntity, "precondition_failed"),
		)

		It("returns 400 for an unknown status", func() {
			lifecycle.changeStatusFn = func(context.Context, model.Caller, service.ChangeStatusParams) (*model.Project, error) {
				return nil, service.ValidateTransition(model.ProjectStatusDraft, "archived", 1)
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/status", map[string]any{"status": "archived"}))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(decodeBody(w)["fields"]).To(ConsistOf(HaveKeyWithValue("field", "status")))
		})

		It("returns 400 without a status", func() {
			w := serve(memberRequest(http.MethodPost, "/projects/100/status", map[string]any{}))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Approve", func() {
		It("accepts an empty body and returns the promoted template", func() {
			lifecycle.approveFn = func(_ context.Context, _ model.Caller, params service.ApproveParams) (*service.ApproveResult, error) {
				Expect(params.Comment).To(BeNil())
				p := draftProject(100)
				p.Status = model.ProjectStatusApproved
				p.ProjectType = model.ProjectTypeTemplateCreation
				projectID := p.ID
				return &service.ApproveResult{
					Project:  p,
					Template: &model.Template{ID: 7, BrandID: 10, ProjectID: &projectID, Name: "Summer campaign - Template"},
				}, nil
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/approve", nil))

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeBody(w)
			Expect(resp["project"]).To(HaveKeyWithValue("status", "approved"))
			Expect(resp["project"]).To(HaveKeyWithValue("next_statuses", BeEmpty()))
			Expect(resp["template"]).To(HaveKeyWithValue("name", "Summer campaign - Template"))
		})

		It("omits the template for standard projects", func() {
			lifecycle.approveFn = func(_ context.Context, _ model.Caller, params service.ApproveParams) (*service.ApproveResult, error) {
				Expect(*params.Comment).To(Equal("Looks great"))
				p := draftProject(100)
				p.Status = model.ProjectStatusApproved
				return &service.ApproveResult{Project: p}, nil
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/approve", map[string]any{"comment": "Looks great"}))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)).NotTo(HaveKey("template"))
		})
	})

	Describe("RequestRevision", func() {
		It("returns field errors from validation", func() {
			lifecycle.requestRevisionFn = func(context.Context, model.Caller, service.RequestRevisionParams) (*model.Project, error) {
				return nil, &service.ValidationError{Fields: []service.FieldError{{Field: "comment", Message: "is required"}}}
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/revision", map[string]any{"comment": ""}))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			resp := decodeBody(w)
			Expect(resp["code"]).To(Equal("validation_failed"))
			Expect(resp["fields"]).To(ConsistOf(And(
				HaveKeyWithValue("field", "comment"),
				HaveKeyWithValue("message", "is required"),
			)))
		})

		It("forwards the comment", func() {
			lifecycle.requestRevisionFn = func(_ context.Context, _ model.Caller, params service.RequestRevisionParams) (*model.Project, error) {
				Expect(params.Comment).To(Equal("Logo too small"))
				p := draftProject(100)
				p.Status = model.ProjectStatusRevision
				return p, nil
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/revision", map[string]any{"comment": "Logo too small"}))

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(decodeBody(w)["status_variant"]).To(Equal("destructive"))
		})
	})
})
