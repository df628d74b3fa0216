package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/vkarasev/catalog-media/internal/domain/entity"
	"github.com/vkarasev/catalog-media/internal/infrastructure/cache"
	"github.com/vkarasev/catalog-media/internal/usecase/delivery"
	"github.com/vkarasev/catalog-media/internal/usecase/image"
	"github.com/vkarasev/catalog-media/internal/usecase/processing"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/handler_mocks.go -package=mocks

type ImageService interface {
	Upload(ctx context.Context, input image.UploadInput) (*entity.Image, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Image, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.Image, error)
	Update(ctx context.Context, id uuid.UUID, input image.UpdateInput) (*entity.Image, error)
	SetPrimary(ctx context.Context, id uuid.UUID) (*entity.Image, error)
	Delete(ctx context.Context, id uuid.UUID) (*image.DeleteResult, error)
	CountByStatus(ctx context.Context) (map[entity.ImageStatus]int, error)
}

type ProcessorControl interface {
	Status() processing.Status
	ReprocessFailed(ctx context.Context) (int, error)
}

type DeliveryService interface {
	ResolveURL(ctx context.Context, path, variant string) (string, error)
	CDNURL(ctx context.Context, path, variant string) (string, error)
	URLMap(ctx context.Context, path string) map[string]string
	ReadFile(ctx context.Context, path string) (*delivery.File, error)
}

type CacheControl interface {
	Stats() cache.Stats
	Clear() error
}
