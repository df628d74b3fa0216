package delivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vkarasev/catalog-media/internal/adapter/storage"
	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/infrastructure/cache"
	"github.com/vkarasev/catalog-media/internal/infrastructure/config"
	"github.com/vkarasev/catalog-media/internal/pkg/imagepath"
)

// Cache is the edge-cache surface delivery needs; *cache.EdgeCache
// satisfies it.
type Cache interface {
	Get(path string) ([]byte, string, bool)
	Put(path string, content []byte, contentType string, lastModified time.Time) error
	Version(path string) (string, bool)
}

// Service resolves image URLs and serves file bytes through the edge
// cache.
type Service struct {
	backend storage.Backend
	cache   Cache
	baseURL string
}

func NewService(backend storage.Backend, edgeCache Cache, cfg config.CDNConfig) *Service {
	return &Service{
		backend: backend,
		cache:   edgeCache,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// ResolveURL returns the backend URL for the image, rewritten to the
// requested variant when one is named. The variant file is not verified
// to exist; a not-yet-processed variant resolves to a dead URL rather
// than an error.
func (s *Service) ResolveURL(ctx context.Context, path, variant string) (string, error) {
	if variant != "" {
		if !imagepath.IsVariant(variant) {
			return "", domain.NewValidationError("unknown variant %q", variant)
		}
		path = imagepath.VariantPath(path, variant)
	}
	return s.backend.URL(ctx, path)
}

// URLMap builds the response urls block: the original plus every
// variant. Entries whose URL cannot be built are left out.
func (s *Service) URLMap(ctx context.Context, path string) map[string]string {
	urls := make(map[string]string, len(imagepath.VariantNames())+1)
	if u, err := s.backend.URL(ctx, path); err == nil {
		urls["original"] = u
	}
	for _, variant := range imagepath.VariantNames() {
		if u, err := s.backend.URL(ctx, imagepath.VariantPath(path, variant)); err == nil {
			urls[variant] = u
		}
	}
	return urls
}

// CDNURL builds the local CDN route URL with a cache-busting version
// parameter. Freshness is TTL-governed; the token only changes the URL
// when the backend object changes.
func (s *Service) CDNURL(ctx context.Context, path, variant string) (string, error) {
	if variant != "" {
		if !imagepath.IsVariant(variant) {
			return "", domain.NewValidationError("unknown variant %q", variant)
		}
		path = imagepath.VariantPath(path, variant)
	}

	version, ok := s.cache.Version(path)
	if !ok {
		version = cache.VersionToken(path, time.Time{})
		if info, err := s.backend.Stat(ctx, path); err == nil {
			version = cache.VersionToken(path, info.LastModified)
		} else if !errors.Is(err, domain.ErrFileNotFound) {
			return "", fmt.Errorf("resolving version token: %w", err)
		}
	}
	return fmt.Sprintf("%s/api/v1/cdn/file/%s?v=%s", s.baseURL, path, version), nil
}

type File struct {
	Data        []byte
	ContentType string
	Hit         bool
}

// ReadFile serves bytes through the edge cache: hits come from disk,
// misses fall through to the backend and fill the cache best-effort.
func (s *Service) ReadFile(ctx context.Context, path string) (*File, error) {
	if data, contentType, ok := s.cache.Get(path); ok {
		return &File{Data: data, ContentType: contentType, Hit: true}, nil
	}

	data, err := s.backend.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	contentType := ""
	lastModified := time.Time{}
	if info, err := s.backend.Stat(ctx, path); err == nil {
		contentType = info.ContentType
		lastModified = info.LastModified
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	_ = s.cache.Put(path, data, contentType, lastModified)

	return &File{Data: data, ContentType: contentType, Hit: false}, nil
}
