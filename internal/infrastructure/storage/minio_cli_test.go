package storage_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
	"github.com/vkarasev/catalog-media/internal/infrastructure/storage"
)

type fakeRunner struct {
	calls  [][]string
	stdout []byte
	stderr []byte
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.stdout, f.stderr, f.err
}

func minioCLIConfig() config.MinIOCLIConfig {
	return config.MinIOCLIConfig{
		Binary:      "mc",
		Alias:       "myminio",
		Bucket:      "product-images",
		ShareExpiry: time.Hour,
	}
}

func TestMinIOCLI_Save(t *testing.T) {
	t.Run("copies staged file with content type", func(t *testing.T) {
		runner := &fakeRunner{}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		err := backend.Save(context.Background(), "products/ab/prod-1/photo.jpg", bytes.NewReader([]byte("data")), "image/jpeg", 4)
		require.NoError(t, err)

		require.Len(t, runner.calls, 1)
		call := runner.calls[0]
		assert.Equal(t, "mc", call[0])
		assert.Equal(t, "cp", call[1])
		assert.Equal(t, "--attr", call[2])
		assert.Equal(t, "Content-Type=image/jpeg", call[3])
		assert.Equal(t, "myminio/product-images/products/ab/prod-1/photo.jpg", call[len(call)-1])

		stagedPath := call[len(call)-2]
		_, statErr := os.Stat(stagedPath)
		assert.True(t, os.IsNotExist(statErr), "staged temp file should be removed")
	})

	t.Run("removes temp file when mc fails", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("mc: <ERROR> Unable to copy"), err: errors.New("exit status 1")}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		err := backend.Save(context.Background(), "p/photo.jpg", bytes.NewReader([]byte("data")), "image/jpeg", 4)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)

		require.Len(t, runner.calls, 1)
		stagedPath := runner.calls[0][len(runner.calls[0])-2]
		_, statErr := os.Stat(stagedPath)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("bridges through docker when containerized", func(t *testing.T) {
		cfg := minioCLIConfig()
		cfg.Container = "shop-minio"
		runner := &fakeRunner{}
		backend := storage.NewMinIOCLIWithRunner(cfg, runner)

		err := backend.Save(context.Background(), "p/photo.jpg", bytes.NewReader([]byte("data")), "image/jpeg", 4)
		require.NoError(t, err)

		require.Len(t, runner.calls, 3)
		assert.Equal(t, []string{"docker", "cp"}, runner.calls[0][:2])
		assert.True(t, strings.HasPrefix(runner.calls[0][3], "shop-minio:/tmp/"))
		assert.Equal(t, []string{"docker", "exec", "shop-minio", "mc", "cp"}, runner.calls[1][:5])
		assert.Equal(t, []string{"docker", "exec", "shop-minio", "rm", "-f"}, runner.calls[2][:5])
	})
}

func TestMinIOCLI_Read(t *testing.T) {
	t.Run("returns cat output", func(t *testing.T) {
		runner := &fakeRunner{stdout: []byte("image bytes")}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		data, err := backend.Read(context.Background(), "p/photo.jpg")
		require.NoError(t, err)
		assert.Equal(t, []byte("image bytes"), data)
		assert.Equal(t, []string{"mc", "cat", "myminio/product-images/p/photo.jpg"}, runner.calls[0])
	})

	t.Run("maps missing object", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("mc: <ERROR> Object does not exist."), err: errors.New("exit status 1")}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		_, err := backend.Read(context.Background(), "p/missing.jpg")
		assert.ErrorIs(t, err, domain.ErrFileNotFound)
	})
}

func TestMinIOCLI_Stat(t *testing.T) {
	runner := &fakeRunner{stdout: []byte(`{"status":"success","size":2048,"lastModified":"2025-06-01T10:00:00.000Z","metadata":{"Content-Type":"image/png"}}`)}
	backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

	info, err := backend.Stat(context.Background(), "p/photo.png")
	require.NoError(t, err)
	assert.Equal(t, int64(2048), info.Size)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, 2025, info.LastModified.Year())
	assert.Equal(t, []string{"mc", "stat", "--json", "myminio/product-images/p/photo.png"}, runner.calls[0])
}

func TestMinIOCLI_URL(t *testing.T) {
	t.Run("parses share link", func(t *testing.T) {
		runner := &fakeRunner{stdout: []byte(`{"status":"success","url":"http://localhost:9000/product-images/p/photo.jpg","share":"http://localhost:9000/product-images/p/photo.jpg?X-Amz-Signature=abc","expire":"1h0m0s"}`)}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		url, err := backend.URL(context.Background(), "p/photo.jpg")
		require.NoError(t, err)
		assert.Contains(t, url, "X-Amz-Signature")
		assert.Equal(t, []string{"mc", "share", "download", "--expire", "1h0m0s", "--json", "myminio/product-images/p/photo.jpg"}, runner.calls[0])
	})

	t.Run("fails on empty share", func(t *testing.T) {
		runner := &fakeRunner{stdout: []byte(`{"status":"success"}`)}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		_, err := backend.URL(context.Background(), "p/photo.jpg")
		assert.Error(t, err)
	})
}

func TestMinIOCLI_Delete(t *testing.T) {
	runner := &fakeRunner{}
	backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

	require.NoError(t, backend.Delete(context.Background(), "p/photo.jpg"))
	assert.Equal(t, []string{"mc", "rm", "myminio/product-images/p/photo.jpg"}, runner.calls[0])
}

func TestMinIOCLI_Exists(t *testing.T) {
	t.Run("false for missing object", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("mc: <ERROR> Object does not exist."), err: errors.New("exit status 1")}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		exists, err := backend.Exists(context.Background(), "p/missing.jpg")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("propagates access denied", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("mc: <ERROR> Access Denied."), err: errors.New("exit status 1")}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		_, err := backend.Exists(context.Background(), "p/photo.jpg")
		assert.ErrorIs(t, err, domain.ErrAccessDenied)
		assert.ErrorIs(t, err, domain.ErrBackendUnavailable)
	})

	t.Run("maps missing bucket", func(t *testing.T) {
		runner := &fakeRunner{stderr: []byte("mc: <ERROR> Bucket does not exist."), err: errors.New("exit status 1")}
		backend := storage.NewMinIOCLIWithRunner(minioCLIConfig(), runner)

		_, err := backend.Exists(context.Background(), "p/photo.jpg")
		assert.ErrorIs(t, err, domain.ErrBucketNotFound)
	})
}
