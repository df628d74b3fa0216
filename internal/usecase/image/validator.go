package image

import (
	"path"
	"strings"

	"github.com/vkarasev/catalog-media/internal/domain"
)

var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

var allowedContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
	"image/gif":  {},
}

// Validator rejects uploads before any byte reaches storage. It checks
// the declared filename, size and content type only; sniffing the actual
// bytes is the metadata extractor's job during processing.
type Validator struct {
	maxFileSize int64
}

func NewValidator(maxFileSize int64) *Validator {
	return &Validator{maxFileSize: maxFileSize}
}

func (v *Validator) Validate(filename string, size int64, contentType string) error {
	if strings.TrimSpace(filename) == "" {
		return domain.NewValidationError("filename is required")
	}

	ext := strings.ToLower(path.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return domain.NewValidationError("file type not allowed: %q", ext)
	}

	if size <= 0 {
		return domain.NewValidationError("file is empty")
	}
	if size > v.maxFileSize {
		return domain.NewValidationError("file size %d exceeds limit of %d bytes", size, v.maxFileSize)
	}

	if contentType != "" {
		if _, ok := allowedContentTypes[contentType]; !ok {
			return domain.NewValidationError("content type not allowed: %q", contentType)
		}
	}
	return nil
}
