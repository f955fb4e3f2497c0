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

var _ = Describe("CreativeHandler", func() {
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
		h := handler.NewCreativeHandler(lifecycle, catalog)

		router.GET("/projects/:id/creatives", h.List)
		router.POST("/projects/:id/creatives", h.Ingest)
		router.DELETE("/creatives/:id", h.Delete)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	items := []map[string]any{
		{"name": "hero.png", "url": "https://cdn.example.com/hero.png", "format": "png", "width": 1080, "height": 1080},
		{"name": "story.mp4", "url": "https://cdn.example.com/story.mp4", "format": "mp4"},
	}

	Describe("Ingest", func() {
		It("returns 201 for a new batch", func() {
			lifecycle.ingestFn = func(_ context.Context, _ model.Caller, params service.IngestCreativesParams) (*service.IngestResult, error) {
				Expect(params.ProjectID).To(Equal(int64(100)))
				Expect(params.IdempotencyKey).To(BeNil())
				Expect(params.Items).To(HaveLen(2))
				Expect(*params.Items[0].Width).To(Equal(int32(1080)))
				p := draftProject(100)
				p.TotalCreatives = 2
				return &service.IngestResult{
					Project: p,
					Creatives: []model.Creative{
						{ID: 1, ProjectID: 100, Name: "hero.png", Format: "png"},
						{ID: 2, ProjectID: 100, Name: "story.mp4", Format: "mp4"},
					},
				}, nil
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/creatives", map[string]any{"items": items}))

			Expect(w.Code).To(Equal(http.StatusCreated))
			resp := decodeBody(w)
			Expect(resp["creatives"]).To(HaveLen(2))
			Expect(resp["duplicated"]).To(BeFalse())
			Expect(resp["project"]).To(HaveKeyWithValue("total_creatives", BeNumerically("==", 2)))
		})

		It("reads the idempotency key from the header and answers a replay with 200", func() {
			lifecycle.ingestFn = func(_ context.Context, _ model.Caller, params service.IngestCreativesParams) (*service.IngestResult, error) {
				Expect(*params.IdempotencyKey).To(Equal("batch-42"))
				return &service.IngestResult{Project: draftProject(100), Duplicated: true}, nil
			}

			req := memberRequest(http.MethodPost, "/projects/100/creatives", map[string]any{"items": items})
			req.Header.Set(handler.IdempotencyKeyHeader, "batch-42")
			w := serve(req)

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeBody(w)
			Expect(resp["duplicated"]).To(BeTrue())
			Expect(resp["creatives"]).To(BeEmpty())
		})

		It("prefers the key in the body", func() {
			lifecycle.ingestFn = func(_ context.Context, _ model.Caller, params service.IngestCreativesParams) (*service.IngestResult, error) {
				Expect(*params.IdempotencyKey).To(Equal("from-body"))
				return &service.IngestResult{Project: draftProject(100)}, nil
			}

			req := memberRequest(http.MethodPost, "/projects/100/creatives", map[string]any{"idempotency_key": "from-body", "items": items})
			req.Header.Set(handler.IdempotencyKeyHeader, "from-header")

			Expect(serve(req).Code).To(Equal(http.StatusCreated))
		})

		It("returns 409 for an approved project", func() {
			lifecycle.ingestFn = func(context.Context, model.Caller, service.IngestCreativesParams) (*service.IngestResult, error) {
				return nil, service.ErrTerminalState
			}

			w := serve(memberRequest(http.MethodPost, "/projects/100/creatives", map[string]any{"items": items}))

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(decodeBody(w)["code"]).To(Equal("terminal_state"))
		})

		It("returns 400 for a malformed body", func() {
			req := memberRequest(http.MethodPost, "/projects/100/creatives", map[string]any{"items": "hero.png"})
			Expect(serve(req).Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("lists creatives", func() {
		catalog.listCreativesFn = func(_ context.Context, _ model.Caller, projectID int64) ([]model.Creative, error) {
			return []model.Creative{{ID: 1, ProjectID: projectID, Name: "hero.png"}}, nil
		}

		w := serve(memberRequest(http.MethodGet, "/projects/100/creatives", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decodeBody(w)["creatives"]).To(ConsistOf(HaveKeyWithValue("project_id", "100")))
	})

	It("deletes a creative and returns the updated project", func() {
		lifecycle.deleteCreativeFn = func(_ context.Context, _ model.Caller, creativeID int64) (*model.Project, error) {
			Expect(creativeID).To(Equal(int64(1)))
			return draftProject(100), nil
		}

		w := serve(memberRequest(http.MethodDelete, "/creatives/1", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(decodeBody(w)["project"]).To(HaveKeyWithValue("id", "100"))
	})
})
