package image

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/vkarasev/catalog-media/internal/adapter/repository"
	"github.com/vkarasev/catalog-media/internal/adapter/storage"
	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/domain/entity"
	"github.com/vkarasev/catalog-media/internal/pkg/imagepath"
)

// Enqueuer hands an accepted upload to the background processor.
type Enqueuer interface {
	Enqueue(imageID uuid.UUID)
}

// CacheInvalidator drops edge-cache entries for paths whose backend
// objects are gone.
type CacheInvalidator interface {
	Invalidate(path string)
}

type Service struct {
	repo      repository.ImageRepository
	backend   storage.Backend
	queue     Enqueuer
	cache     CacheInvalidator
	validator *Validator
}

func NewService(
	repo repository.ImageRepository,
	backend storage.Backend,
	queue Enqueuer,
	cache CacheInvalidator,
	validator *Validator,
) *Service {
	return &Service{
		repo:      repo,
		backend:   backend,
		queue:     queue,
		cache:     cache,
		validator: validator,
	}
}

type UploadInput struct {
	ProductID   string
	File        io.Reader
	Filename    string
	ContentType string
	Size        int64
	IsPrimary   bool
	SortOrder   int
	AltText     string
}

func (s *Service) Upload(ctx context.Context, input UploadInput) (*entity.Image, error) {
	if err := s.validator.Validate(input.Filename, input.Size, input.ContentType); err != nil {
		return nil, err
	}

	filename := uniqueFilename(input.Filename)
	objectPath := imagepath.ObjectPath(input.ProductID, filename)

	if err := s.backend.Save(ctx, objectPath, input.File, input.ContentType, input.Size); err != nil {
		return nil, fmt.Errorf("saving upload: %w", err)
	}

	image := entity.NewImage(
		input.ProductID, objectPath, filename,
		input.Size, input.IsPrimary, input.SortOrder, input.AltText,
	)

	if err := s.repo.Create(ctx, image); err != nil {
		_ = s.backend.Delete(ctx, objectPath)
		return nil, fmt.Errorf("creating image record: %w", err)
	}

	s.queue.Enqueue(image.ID)
	return image, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Image, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByProduct(ctx context.Context, productID string) ([]entity.Image, error) {
	return s.repo.ListByProduct(ctx, productID)
}

func (s *Service) CountByStatus(ctx context.Context) (map[entity.ImageStatus]int, error) {
	return s.repo.CountByStatus(ctx)
}

type UpdateInput struct {
	AltText   *string
	SortOrder *int
	IsPrimary *bool
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*entity.Image, error) {
	image, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AltText != nil {
		image.AltText = *input.AltText
	}
	if input.SortOrder != nil {
		image.SortOrder = *input.SortOrder
	}
	if input.AltText != nil || input.SortOrder != nil {
		if err := s.repo.Update(ctx, image); err != nil {
			return nil, fmt.Errorf("updating image: %w", err)
		}
	}

	if input.IsPrimary != nil && *input.IsPrimary != image.IsPrimary {
		if *input.IsPrimary {
			err = s.repo.SetPrimary(ctx, id)
		} else {
			err = s.repo.ClearPrimary(ctx, id)
		}
		if err != nil {
			return nil, fmt.Errorf("changing primary flag: %w", err)
		}
		image.IsPrimary = *input.IsPrimary
	}

	return image, nil
}

func (s *Service) SetPrimary(ctx context.Context, id uuid.UUID) (*entity.Image, error) {
	if err := s.repo.SetPrimary(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

type DeleteResult struct {
	OrphanedPaths []string
}

// Delete removes the record first, then best-effort deletes the backend
// objects. Paths that could not be removed come back as orphans instead
// of failing the operation.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*DeleteResult, error) {
	image, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("deleting image record: %w", err)
	}

	// All variant paths are derivable from the original; a crash between
	// variant save and manifest persist can leave files the manifest
	// never recorded.
	paths := []string{image.Path}
	for _, variant := range imagepath.VariantNames() {
		paths = append(paths, imagepath.VariantPath(image.Path, variant))
	}

	result := &DeleteResult{}
	for _, p := range paths {
		if err := s.backend.Delete(ctx, p); err != nil && !errors.Is(err, domain.ErrFileNotFound) {
			result.OrphanedPaths = append(result.OrphanedPaths, p)
		}
		s.cache.Invalidate(p)
	}
	return result, nil
}

// uniqueFilename prefixes the sanitized upload name with 8 hex chars so
// repeated uploads of the same file never collide on path.
func uniqueFilename(original string) string {
	id := uuid.New()
	return hex.EncodeToString(id[:4]) + "_" + sanitizeFilename(original)
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
