package entity

import (
	"time"

	"github.com/google/uuid"
)

type ImageStatus string

const (
	StatusUploading  ImageStatus = "uploading"
	StatusProcessing ImageStatus = "processing"
	StatusReady      ImageStatus = "ready"
	StatusError      ImageStatus = "error"
)

// CanTransition reports whether moving to the given status is a legal
// lifecycle step. The only path out of error is an explicit reprocess;
// ready images may re-enter processing when explicitly re-enqueued.
func (s ImageStatus) CanTransition(to ImageStatus) bool {
	switch s {
	case StatusUploading:
		return to == StatusProcessing
	case StatusProcessing:
		return to == StatusReady || to == StatusError
	case StatusReady:
		return to == StatusProcessing
	case StatusError:
		return to == StatusProcessing
	default:
		return false
	}
}

type Image struct {
	ID           uuid.UUID
	ProductID    string
	Path         string
	Filename     string
	Status       ImageStatus
	IsPrimary    bool
	SortOrder    int
	FileSize     int64
	MimeType     string
	Width        int
	Height       int
	AltText      string
	Variants     map[string]string
	UploadedAt   time.Time
	ProcessedAt  *time.Time
	ErrorMessage string
}

func NewImage(productID, path, filename string, fileSize int64, isPrimary bool, sortOrder int, altText string) *Image {
	return &Image{
		ID:         uuid.New(),
		ProductID:  productID,
		Path:       path,
		Filename:   filename,
		Status:     StatusUploading,
		IsPrimary:  isPrimary,
		SortOrder:  sortOrder,
		FileSize:   fileSize,
		AltText:    altText,
		Variants:   map[string]string{},
		UploadedAt: time.Now().UTC(),
	}
}
