package e2e_test

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkarasev/catalog-media/internal/pkg/imagepath"
)

func TestE2E_Images_UploadAndProcess(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	uploaded := app.uploadImage(t, "prod-100", "shoe.jpg", map[string]string{
		"is_primary": "true",
		"alt_text":   "red shoe",
	})
	imageID := uploaded["id"].(string)

	t.Run("upload returns a pending record", func(t *testing.T) {
		assert.Equal(t, "prod-100", uploaded["product_id"])
		assert.Equal(t, "uploading", uploaded["status"])
		assert.Equal(t, true, uploaded["is_primary"])
		assert.Equal(t, "red shoe", uploaded["alt_text"])

		path := uploaded["path"].(string)
		assert.True(t, strings.HasPrefix(path, "products/"))
		assert.Contains(t, path, "/prod-100/")
		assert.NotContains(t, uploaded, "variants")
	})

	t.Run("worker pool processes the upload", func(t *testing.T) {
		imageResp := app.waitUntilStatus(t, imageID, "ready")

		assert.Equal(t, "image/jpeg", imageResp["mime_type"])
		assert.Equal(t, float64(640), imageResp["width"])
		assert.Equal(t, float64(480), imageResp["height"])
		assert.NotEmpty(t, imageResp["processed_at"])

		variants := imageResp["variants"].(map[string]any)
		assert.Len(t, variants, 4)
		for _, name := range []string{"thumb", "small", "medium", "large"} {
			assert.Contains(t, variants, name)
		}

		urls := imageResp["urls"].(map[string]any)
		assert.Len(t, urls, 5)
	})

	t.Run("list shows the processed image", func(t *testing.T) {
		resp, err := app.get("/products/prod-100/images", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var listResp map[string]any
		parseResponse(t, resp, &listResp)

		assert.Equal(t, float64(1), listResp["count"])
		images := listResp["images"].([]any)
		require.Len(t, images, 1)
		assert.Equal(t, "ready", images[0].(map[string]any)["status"])
	})
}

func TestE2E_Images_PrimaryInvariant(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	first := app.uploadImage(t, "prod-200", "front.jpg", map[string]string{"is_primary": "true"})
	second := app.uploadImage(t, "prod-200", "side.jpg", map[string]string{"is_primary": "true", "sort_order": "1"})
	third := app.uploadImage(t, "prod-200", "back.jpg", map[string]string{"sort_order": "2"})

	firstID := first["id"].(string)
	secondID := second["id"].(string)
	thirdID := third["id"].(string)

	listImages := func(t *testing.T) []any {
		t.Helper()
		resp, err := app.get("/products/prod-200/images", nil)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var listResp map[string]any
		parseResponse(t, resp, &listResp)
		return listResp["images"].([]any)
	}

	countPrimaries := func(images []any) int {
		n := 0
		for _, raw := range images {
			if raw.(map[string]any)["is_primary"] == true {
				n++
			}
		}
		return n
	}

	t.Run("upload with is_primary demotes the previous primary", func(t *testing.T) {
		images := listImages(t)
		require.Len(t, images, 3)

		head := images[0].(map[string]any)
		assert.Equal(t, secondID, head["id"])
		assert.Equal(t, true, head["is_primary"])
		assert.Equal(t, 1, countPrimaries(images))
	})

	t.Run("set primary promotes and demotes in one step", func(t *testing.T) {
		resp, err := app.post("/images/"+thirdID+"/primary", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var imageResp map[string]any
		parseResponse(t, resp, &imageResp)
		assert.Equal(t, true, imageResp["is_primary"])

		images := listImages(t)
		require.Len(t, images, 3)
		assert.Equal(t, thirdID, images[0].(map[string]any)["id"])
		assert.Equal(t, 1, countPrimaries(images))
	})

	t.Run("deleting the primary hands off to the next by sort order", func(t *testing.T) {
		resp, err := app.delete("/images/"+thirdID, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()

		images := listImages(t)
		require.Len(t, images, 2)

		head := images[0].(map[string]any)
		assert.Equal(t, firstID, head["id"])
		assert.Equal(t, true, head["is_primary"])
		assert.Equal(t, 1, countPrimaries(images))
	})
}

func TestE2E_Images_UpdateAndDelete(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	uploaded := app.uploadImage(t, "prod-300", "lamp.jpg", nil)
	imageID := uploaded["id"].(string)
	ready := app.waitUntilStatus(t, imageID, "ready")
	imagePath := ready["path"].(string)

	t.Run("update changes alt text and sort order", func(t *testing.T) {
		resp, err := app.put("/images/"+imageID, map[string]any{
			"alt_text":   "desk lamp",
			"sort_order": 3,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var imageResp map[string]any
		parseResponse(t, resp, &imageResp)
		assert.Equal(t, "desk lamp", imageResp["alt_text"])
		assert.Equal(t, float64(3), imageResp["sort_order"])
	})

	t.Run("delete removes the record and the stored files", func(t *testing.T) {
		resp, err := app.delete("/images/"+imageID, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var delResp map[string]any
		parseResponse(t, resp, &delResp)
		assert.Equal(t, "image deleted successfully", delResp["message"])
		assert.NotContains(t, delResp, "orphaned_paths")

		resp, err = app.get("/images/"+imageID, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()

		assert.NoFileExists(t, filepath.Join(app.StorageRoot, imagePath))
		assert.NoFileExists(t, filepath.Join(app.StorageRoot, imagepath.VariantPath(imagePath, "thumb")))
	})
}

func TestE2E_Images_UploadValidation(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	tests := []struct {
		name        string
		filename    string
		contentType string
		content     []byte
	}{
		{
			name:        "disallowed extension",
			filename:    "report.pdf",
			contentType: "application/pdf",
			content:     []byte("%PDF-1.4"),
		},
		{
			name:        "empty file",
			filename:    "empty.jpg",
			contentType: "image/jpeg",
			content:     nil,
		},
		{
			name:        "mismatched content type",
			filename:    "photo.jpg",
			contentType: "text/plain",
			content:     []byte("plain text"),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := app.rawUpload(t, "prod-400", tc.filename, tc.contentType, tc.content, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var errResp map[string]any
			parseResponse(t, resp, &errResp)
			assert.Equal(t, "VALIDATION_ERROR", errResp["code"])
		})
	}
}

func TestE2E_Images_FailureAndReprocess(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	// Passes upload validation but cannot be decoded by the pipeline.
	resp := app.rawUpload(t, "prod-500", "broken.jpg", "image/jpeg", []byte("definitely not a jpeg"), nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var uploaded map[string]any
	parseResponse(t, resp, &uploaded)
	imageID := uploaded["id"].(string)

	t.Run("undecodable upload lands in error state", func(t *testing.T) {
		imageResp := app.waitUntilStatus(t, imageID, "error")
		assert.Contains(t, imageResp["error_message"], "not decodable")
		assert.NotContains(t, imageResp, "variants")
	})

	t.Run("queue endpoint counts the failure", func(t *testing.T) {
		resp, err := app.get("/processor/queue", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var queueResp map[string]any
		parseResponse(t, resp, &queueResp)

		records := queueResp["records"].(map[string]any)
		assert.Equal(t, float64(1), records["error"])
		assert.Equal(t, float64(0), records["ready"])
	})

	t.Run("reprocess re-queues every failed image", func(t *testing.T) {
		resp, err := app.post("/processor/reprocess-failed", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var reprocessResp map[string]any
		parseResponse(t, resp, &reprocessResp)
		assert.Equal(t, float64(1), reprocessResp["count"])

		// The bytes are still broken, so the record settles back in error.
		imageResp := app.waitUntilStatus(t, imageID, "error")
		assert.NotEmpty(t, imageResp["error_message"])
	})
}

func TestE2E_Images_ResolveURL(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	uploaded := app.uploadImage(t, "prod-700", "sofa.jpg", nil)
	imageID := uploaded["id"].(string)
	ready := app.waitUntilStatus(t, imageID, "ready")
	imagePath := ready["path"].(string)

	t.Run("returns backend and cdn urls", func(t *testing.T) {
		resp, err := app.get("/images/"+imageID+"/url", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var urlResp map[string]any
		parseResponse(t, resp, &urlResp)
		assert.Equal(t, apiBasePath+"/cdn/file/"+imagePath, urlResp["url"])

		cdnURL := urlResp["cdn_url"].(string)
		assert.True(t, strings.HasPrefix(cdnURL, apiBasePath+"/cdn/file/"+imagePath+"?v="))
	})

	t.Run("variant urls rewrite the path", func(t *testing.T) {
		resp, err := app.get("/images/"+imageID+"/url?variant=thumb", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var urlResp map[string]any
		parseResponse(t, resp, &urlResp)
		assert.Contains(t, urlResp["url"], "_thumb")
		assert.Contains(t, urlResp["cdn_url"], "_thumb")
	})

	t.Run("rejects unknown variants", func(t *testing.T) {
		resp, err := app.get("/images/"+imageID+"/url?variant=gigantic", nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestE2E_Processor_Status(t *testing.T) {
	app := setupTestApp(t)
	defer app.cleanup(t)

	resp, err := app.get("/processor/status", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var statusResp map[string]any
	parseResponse(t, resp, &statusResp)
	assert.Equal(t, true, statusResp["is_running"])
	assert.Equal(t, float64(2), statusResp["worker_count"])
}
