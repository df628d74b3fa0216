package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vkarasev/catalog-media/internal/adapter/handler"
	"github.com/vkarasev/catalog-media/internal/infrastructure/cache"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
	"github.com/vkarasev/catalog-media/internal/infrastructure/storage"
	"github.com/vkarasev/catalog-media/internal/pkg/imagepath"
	"github.com/vkarasev/catalog-media/internal/usecase/delivery"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// cdnEnv wires the CDN handler over a real local backend and edge cache
// so the serve path is exercised end to end.
type cdnEnv struct {
	router  *gin.Engine
	backend *storage.LocalDisk
	root    string
}

func newCDNEnv(t *testing.T) *cdnEnv {
	t.Helper()

	root := t.TempDir()
	backend, err := storage.NewLocalDisk(config.LocalStorageConfig{Root: root, BaseURL: "/api/v1/cdn/file"})
	require.NoError(t, err)

	edgeCache, err := cache.NewEdgeCache(config.CacheConfig{Dir: t.TempDir(), TTL: time.Hour}, zap.NewNop())
	require.NoError(t, err)

	deliverySvc := delivery.NewService(backend, edgeCache, config.CDNConfig{})
	h := handler.NewCDNHandler(deliverySvc, edgeCache)

	router := setupRouter()
	router.GET("/cdn/file/*path", h.ServeFile)
	router.GET("/cdn/stats/cache", h.CacheStats)
	router.POST("/cdn/cache/clear", h.ClearCache)
	router.GET("/cdn/health", h.Health)

	return &cdnEnv{router: router, backend: backend, root: root}
}

func (e *cdnEnv) seed(t *testing.T, path, content string) {
	t.Helper()
	err := e.backend.Save(context.Background(), path, strings.NewReader(content), "image/jpeg", int64(len(content)))
	require.NoError(t, err)
}

func (e *cdnEnv) get(url string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestCDNHandler_ServeFile(t *testing.T) {
	t.Run("serves file with miss then hit", func(t *testing.T) {
		env := newCDNEnv(t)
		path := "products/3f2a9c1b/prod-1/ab12cd34_shoe.jpg"
		env.seed(t, path, "jpeg bytes")

		first := env.get("/cdn/file/" + path)
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
		assert.Equal(t, "public, max-age=3600", first.Header().Get("Cache-Control"))
		assert.Equal(t, "jpeg bytes", first.Body.String())
		assert.Contains(t, first.Header().Get("Content-Type"), "image/jpeg")

		second := env.get("/cdn/file/" + path)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
		assert.Equal(t, "jpeg bytes", second.Body.String())
	})

	t.Run("serves size variants", func(t *testing.T) {
		env := newCDNEnv(t)
		path := "products/3f2a9c1b/prod-1/ab12cd34_shoe.jpg"
		env.seed(t, path, "original bytes")
		env.seed(t, imagepath.VariantPath(path, "thumb"), "thumb bytes")

		w := env.get("/cdn/file/" + path + "?size=thumb")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "thumb bytes", w.Body.String())
	})

	t.Run("rejects unknown size", func(t *testing.T) {
		env := newCDNEnv(t)

		w := env.get("/cdn/file/products/x/y.jpg?size=huge")

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]any
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "VALIDATION_ERROR", resp["code"])
	})

	t.Run("returns 404 for missing file", func(t *testing.T) {
		env := newCDNEnv(t)

		w := env.get("/cdn/file/products/x/missing.jpg")

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp map[string]any
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "NOT_FOUND", resp["code"])
		assert.Equal(t, "file not found", resp["error"])
	})

	t.Run("returns 404 for traversal attempts", func(t *testing.T) {
		env := newCDNEnv(t)

		w := env.get("/cdn/file/../../etc/passwd")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 500 when the file cannot be read", func(t *testing.T) {
		env := newCDNEnv(t)
		require.NoError(t, os.MkdirAll(filepath.Join(env.root, "products", "broken", "dir.jpg"), 0o755))

		w := env.get("/cdn/file/products/broken/dir.jpg")

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp map[string]any
		err := json.Unmarshal(w.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "READ_ERROR", resp["code"])
		assert.Equal(t, "error reading file", resp["error"])
	})
}

func TestCDNHandler_CacheStats(t *testing.T) {
	t.Run("reports hit and miss counts", func(t *testing.T) {
		env := newCDNEnv(t)
		path := "products/3f2a9c1b/prod-1/ab12cd34_shoe.jpg"
		env.seed(t, path, "jpeg bytes")

		env.get("/cdn/file/" + path)
		env.get("/cdn/file/" + path)

		w := env.get("/cdn/stats/cache")
		assert.Equal(t, http.StatusOK, w.Code)

		var stats cache.Stats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Equal(t, 1, stats.TotalFiles)
		assert.Equal(t, int64(1), stats.Hits)
		assert.Equal(t, int64(1), stats.Misses)
		assert.InDelta(t, 50.0, stats.HitRate, 0.01)
	})
}

func TestCDNHandler_ClearCache(t *testing.T) {
	t.Run("clears cached files and counters", func(t *testing.T) {
		env := newCDNEnv(t)
		path := "products/3f2a9c1b/prod-1/ab12cd34_shoe.jpg"
		env.seed(t, path, "jpeg bytes")
		env.get("/cdn/file/" + path)

		req := httptest.NewRequest(http.MethodPost, "/cdn/cache/clear", nil)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "cache cleared successfully", resp["message"])

		stats := env.get("/cdn/stats/cache")
		var snapshot cache.Stats
		require.NoError(t, json.Unmarshal(stats.Body.Bytes(), &snapshot))
		assert.Equal(t, 0, snapshot.TotalFiles)
		assert.Equal(t, int64(0), snapshot.Hits)

		// The backend still has the object, so the next request refills.
		refill := env.get("/cdn/file/" + path)
		assert.Equal(t, "MISS", refill.Header().Get("X-Cache"))
	})
}

func TestCDNHandler_Health(t *testing.T) {
	t.Run("reports healthy with cache stats", func(t *testing.T) {
		env := newCDNEnv(t)

		w := env.get("/cdn/health")

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp["status"])
		assert.Contains(t, resp, "cache_stats")
	})
}
