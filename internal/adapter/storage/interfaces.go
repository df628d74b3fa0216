package storage

import (
	"context"
	"io"
	"time"
)

type ObjectInfo struct {
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Backend abstracts the object store holding originals and generated
// variants. Implementations map domain sentinels onto their native
// failures: ErrFileNotFound for missing objects, ErrBackendUnavailable
// (optionally wrapping ErrBucketNotFound or ErrAccessDenied) for
// infrastructure faults.
type Backend interface {
	Save(ctx context.Context, path string, reader io.Reader, contentType string, size int64) error
	Read(ctx context.Context, path string) ([]byte, error)
	Stat(ctx context.Context, path string) (ObjectInfo, error)
	URL(ctx context.Context, path string) (string, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
}

type ImageMeta struct {
	Width    int
	Height   int
	MimeType string
}

type MetadataExtractor interface {
	Extract(data []byte) (ImageMeta, error)
}

type VariantGenerator interface {
	// Variants lists the variant names in ascending size order.
	Variants() []string
	Generate(data []byte, variant string) ([]byte, error)
}
