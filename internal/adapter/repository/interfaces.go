package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/vkarasev/catalog-media/internal/domain/entity"
)

type ImageRepository interface {
	// Create inserts the record. When image.IsPrimary is set, existing
	// siblings are demoted in the same transaction.
	Create(ctx context.Context, image *entity.Image) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Image, error)
	// ListByProduct returns the product's images ordered primary first,
	// then sort_order, then id.
	ListByProduct(ctx context.Context, productID string) ([]entity.Image, error)
	Update(ctx context.Context, image *entity.Image) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ImageStatus) error
	// UpdateProcessingResult persists the worker's output: dimensions,
	// mime type, variants and processed_at, moving the record to ready.
	UpdateProcessingResult(ctx context.Context, image *entity.Image) error
	MarkError(ctx context.Context, id uuid.UUID, message string) error
	// SetPrimary promotes the image and demotes its siblings atomically.
	SetPrimary(ctx context.Context, id uuid.UUID) error
	// ClearPrimary demotes a single image without promoting another.
	ClearPrimary(ctx context.Context, id uuid.UUID) error
	// Delete removes the record; if it held primary, the next sibling by
	// sort order inherits it within the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByStatus(ctx context.Context, status entity.ImageStatus) ([]entity.Image, error)
	CountByStatus(ctx context.Context) (map[entity.ImageStatus]int, error)
}
