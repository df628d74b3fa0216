package response

import (
	"time"

	"github.com/google/uuid"

	"github.com/vkarasev/catalog-media/internal/domain/entity"
)

type ImageResponse struct {
	ID           uuid.UUID         `json:"id"`
	ProductID    string            `json:"product_id"`
	Path         string            `json:"path"`
	Filename     string            `json:"filename"`
	Status       string            `json:"status"`
	IsPrimary    bool              `json:"is_primary"`
	SortOrder    int               `json:"sort_order"`
	FileSize     int64             `json:"file_size"`
	MimeType     string            `json:"mime_type,omitempty"`
	Width        int               `json:"width,omitempty"`
	Height       int               `json:"height,omitempty"`
	AltText      string            `json:"alt_text,omitempty"`
	Variants     map[string]string `json:"variants,omitempty"`
	URL          string            `json:"url,omitempty"`
	URLs         map[string]string `json:"urls,omitempty"`
	UploadedAt   time.Time         `json:"uploaded_at"`
	ProcessedAt  *time.Time        `json:"processed_at,omitempty"`
	ErrorMessage string            `json:"error_message,omitempty"`
}

// ImageFromEntity maps the entity; urls may be nil when the caller
// asked to skip URL resolution.
func ImageFromEntity(img *entity.Image, urls map[string]string) ImageResponse {
	resp := ImageResponse{
		ID:           img.ID,
		ProductID:    img.ProductID,
		Path:         img.Path,
		Filename:     img.Filename,
		Status:       string(img.Status),
		IsPrimary:    img.IsPrimary,
		SortOrder:    img.SortOrder,
		FileSize:     img.FileSize,
		MimeType:     img.MimeType,
		Width:        img.Width,
		Height:       img.Height,
		AltText:      img.AltText,
		Variants:     img.Variants,
		UploadedAt:   img.UploadedAt,
		ProcessedAt:  img.ProcessedAt,
		ErrorMessage: img.ErrorMessage,
	}
	if urls != nil {
		resp.URL = urls["original"]
		resp.URLs = urls
	}
	return resp
}

type ImagesListResponse struct {
	Images []ImageResponse `json:"images"`
	Count  int             `json:"count"`
}

type DeleteImageResponse struct {
	Message       string   `json:"message"`
	OrphanedPaths []string `json:"orphaned_paths,omitempty"`
}

type ImageURLResponse struct {
	URL    string `json:"url"`
	CDNURL string `json:"cdn_url"`
}

type QueueResponse struct {
	QueueSize   int            `json:"queue_size"`
	IsRunning   bool           `json:"is_running"`
	WorkerCount int            `json:"worker_count"`
	Records     map[string]int `json:"records"`
}

type ReprocessResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
