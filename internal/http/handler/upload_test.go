package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"adflow.app/tracker/internal/blob"
	"adflow.app/tracker/internal/http/handler"
	"adflow.app/tracker/internal/http/middleware"
)

var _ = Describe("UploadHandler", func() {
	var (
		router *gin.Engine
		signer *mockSigner
	)

	body := map[string]any{
		"organization_id": "1",
		"kind":            "creative",
		"filename":        "hero.png",
		"content_type":    "image/png",
	}

	BeforeEach(func() {
		router = gin.New()
		router.Use(middleware.Identity(""))
		signer = &mockSigner{}
		router.POST("/uploads/sign", handler.NewUploadHandler(signer).Sign)
		router.POST("/disabled/sign", handler.NewUploadHandler(nil).Sign)
	})

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("returns a presigned ticket", func() {
		signer.signFn = func(_ context.Context, req blob.UploadRequest) (*blob.UploadTicket, error) {
			Expect(req.Kind).To(Equal(blob.KindCreative))
			return &blob.UploadTicket{
				Key:       "orgs/1/creatives/1-hero.png",
				UploadURL: "https://bucket.s3.amazonaws.com/orgs/1/creatives/1-hero.png?X-Amz-Signature=abc",
				ObjectURL: "https://cdn.example.com/orgs/1/creatives/1-hero.png",
				ExpiresAt: time.Now().Add(15 * time.Minute),
			}, nil
		}

		w := serve(memberRequest(http.MethodPost, "/uploads/sign", body))

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(decodeBody(w)["object_url"]).To(Equal("https://cdn.example.com/orgs/1/creatives/1-hero.png"))
	})

	It("refuses organizations outside the caller's scope", func() {
		other := map[string]any{"organization_id": "2", "kind": "logo", "filename": "a.png", "content_type": "image/png"}
		Expect(serve(memberRequest(http.MethodPost, "/uploads/sign", other)).Code).To(Equal(http.StatusForbidden))
	})

	It("returns 400 for an unsupported content type", func() {
		signer.signFn = func(_ context.Context, req blob.UploadRequest) (*blob.UploadTicket, error) {
			return nil, fmt.Errorf("%w: %q", blob.ErrUnsupportedContentType, req.ContentType)
		}

		Expect(serve(memberRequest(http.MethodPost, "/uploads/sign", body)).Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 400 for an unknown kind", func() {
		bad := map[string]any{"organization_id": "1", "kind": "video", "filename": "a.mp4", "content_type": "video/mp4"}
		Expect(serve(memberRequest(http.MethodPost, "/uploads/sign", bad)).Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 503 when storage is not configured", func() {
		Expect(serve(memberRequest(http.MethodPost, "/disabled/sign", body)).Code).To(Equal(http.StatusServiceUnavailable))
	})
})
