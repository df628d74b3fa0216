package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/vkarasev/catalog-media/internal/adapter/handler"
	pgRepo "github.com/vkarasev/catalog-media/internal/adapter/repository/postgres"
	"github.com/vkarasev/catalog-media/internal/infrastructure/cache"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
	"github.com/vkarasev/catalog-media/internal/infrastructure/database"
	"github.com/vkarasev/catalog-media/internal/infrastructure/server"
	"github.com/vkarasev/catalog-media/internal/infrastructure/storage"
	"github.com/vkarasev/catalog-media/internal/usecase/delivery"
	imageUC "github.com/vkarasev/catalog-media/internal/usecase/image"
	"github.com/vkarasev/catalog-media/internal/usecase/processing"
)

const (
	testDBUser     = "testuser"
	testDBPassword = "testpass"
	testDBName     = "testdb"
	apiBasePath    = "/api/v1"
)

type TestApp struct {
	Server      *httptest.Server
	Pool        *pgxpool.Pool
	Container   testcontainers.Container
	BaseURL     string
	StorageRoot string
	processor   *processing.Processor
	httpClient  *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	// Start PostgreSQL container
	pgContainer, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Run migrations
	migrationsPath := getMigrationsPath()
	err = database.RunMigrations(ctx, pool, migrationsPath)
	require.NoError(t, err)

	logger, _ := zap.NewDevelopment()

	// Repositories
	imageRepo := pgRepo.NewImageRepo(pool)

	// Real local-disk backend and edge cache on temp dirs
	storageRoot := t.TempDir()
	backend, err := storage.NewLocalDisk(config.LocalStorageConfig{
		Root:    storageRoot,
		BaseURL: apiBasePath + "/cdn/file",
	})
	require.NoError(t, err)

	edgeCache, err := cache.NewEdgeCache(config.CacheConfig{
		Dir: t.TempDir(),
		TTL: time.Hour,
	}, logger)
	require.NoError(t, err)

	extractor := storage.NewMetadataExtractor()
	variants := storage.NewVariantGenerator()

	// Background processing with a short poll so tests settle fast
	processor := processing.NewProcessor(imageRepo, backend, extractor, variants, config.ProcessingConfig{
		Workers:     2,
		PollTimeout: 50 * time.Millisecond,
	}, logger)

	// Use cases
	validator := imageUC.NewValidator(10 << 20)
	imageSvc := imageUC.NewService(imageRepo, backend, processor, edgeCache, validator)
	deliverySvc := delivery.NewService(backend, edgeCache, config.CDNConfig{})

	// Handlers
	imageHandler := handler.NewImageHandler(imageSvc, processor, deliverySvc)
	cdnHandler := handler.NewCDNHandler(deliverySvc, edgeCache)

	// Create router
	router := server.NewRouter(server.RouterConfig{
		ImageHandler: imageHandler,
		CDNHandler:   cdnHandler,
		Logger:       logger,
		Environment:  "test",
	})

	processor.Start()

	// Create test server
	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:      ts,
		Pool:        pool,
		Container:   pgContainer,
		BaseURL:     ts.URL,
		StorageRoot: storageRoot,
		processor:   processor,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.processor.Stop(stopCtx); err != nil {
		t.Logf("failed to stop processor: %v", err)
	}

	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	fullPath := apiBasePath + path
	req, err := http.NewRequest(method, app.BaseURL+fullPath, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) put(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPut, path, body, headers)
}

func (app *TestApp) delete(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodDelete, path, nil, headers)
}

// rawUpload posts a multipart upload without asserting the outcome, so
// rejection cases can inspect the response.
func (app *TestApp) rawUpload(t *testing.T, productID, filename, contentType string, fileContent []byte, fields map[string]string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		partHeader.Set("Content-Type", contentType)
	}
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write(fileContent)
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	url := app.BaseURL + apiBasePath + "/products/" + productID + "/images"
	req, err := http.NewRequest(http.MethodPost, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.httpClient.Do(req)
	require.NoError(t, err)
	return resp
}

// uploadImage uploads a 640x480 JPEG and returns the created record.
func (app *TestApp) uploadImage(t *testing.T, productID, filename string, fields map[string]string) map[string]any {
	t.Helper()

	resp := app.rawUpload(t, productID, filename, "image/jpeg", jpegBytes(t, 640, 480), fields)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var imageResp map[string]any
	parseResponse(t, resp, &imageResp)
	return imageResp
}

// waitUntilStatus polls the image endpoint until the record reaches the
// wanted status, then returns the final response body.
func (app *TestApp) waitUntilStatus(t *testing.T, imageID, want string) map[string]any {
	t.Helper()

	var imageResp map[string]any
	require.Eventually(t, func() bool {
		resp, err := app.get("/images/"+imageID, nil)
		if err != nil {
			return false
		}
		defer resp.Body.Close()

		var body map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false
		}
		if body["status"] != want {
			return false
		}
		imageResp = body
		return true
	}, 5*time.Second, 50*time.Millisecond, "image %s never reached status %q", imageID, want)
	return imageResp
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// getMigrationsPath returns the absolute path to the migrations directory
func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	return filepath.Join(testDir, "..", "..", "migrations")
}
