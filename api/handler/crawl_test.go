package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proplens/proplens/cache"
	"github.com/proplens/proplens/config"
	"github.com/proplens/proplens/extractor"
	"github.com/proplens/proplens/models"
	"github.com/proplens/proplens/scraper"
	"github.com/proplens/proplens/session"
	"github.com/proplens/proplens/storage"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Load()
	reg := session.NewRegistry()
	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	cc := cache.New(10)
	coord := scraper.NewCoordinator(reg, cfg.Crawler, cfg.Browser, extractor.DefaultProfile())

	r := gin.New()
	r.POST("/api/v1/crawl", PostCrawl(coord, reg, store, cc, cfg.Webhook))
	r.GET("/api/v1/results/:session", GetResults(store, cc))
	return r
}

func TestPostCrawl_RejectsMissingURLs(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crawl", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Body.String(), models.ErrCodeInvalidInput) {
		t.Errorf("body missing %s: %s", models.ErrCodeInvalidInput, w.Body.String())
	}
}

func TestPostCrawl_RejectsEmptyURLList(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crawl", strings.NewReader(`{"urls":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestPostCrawl_RejectsMalformedURL(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crawl",
		strings.NewReader(`{"urls":["not a url"]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestPostCrawl_RejectsOutOfRangeConcurrency(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/crawl",
		strings.NewReader(`{"urls":["https://example.com/a"],"options":{"concurrency":99}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetResults_ServesPersistedArtifact(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	store, err := storage.New(dir)
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	cc := cache.New(10)

	artifact := &storage.Artifact{
		SessionID:   "crawl-test1",
		CompletedAt: time.Now().UTC(),
		URLCount:    1,
		Result: &models.BatchResult{
			Results:   []models.CrawlResult{{URL: "https://example.com/a", Success: true}},
			Succeeded: 1,
		},
	}
	if _, err := store.Write(artifact); err != nil {
		t.Fatalf("store.Write: %v", err)
	}

	r := gin.New()
	r.GET("/api/v1/results/:session", GetResults(store, cc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/crawl-test1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "https://example.com/a") {
		t.Errorf("body missing persisted result: %s", w.Body.String())
	}

	// Second fetch should come from cache even if the file is removed.
	if err := os.Remove(filepath.Join(dir, "crawl-test1.json")); err != nil {
		t.Fatalf("remove artifact: %v", err)
	}
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/results/crawl-test1", nil))
	if w2.Code != http.StatusOK {
		t.Errorf("cached status = %d, want %d", w2.Code, http.StatusOK)
	}
}

func TestGetResults_UnknownSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store, err := storage.New(t.TempDir())
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}

	r := gin.New()
	r.GET("/api/v1/results/:session", GetResults(store, cache.New(10)))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/crawl-nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
