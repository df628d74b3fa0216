package storage

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	adapterStorage "github.com/vkarasev/catalog-media/internal/adapter/storage"
	"github.com/vkarasev/catalog-media/internal/domain"
)

// MetadataExtractorImpl reads dimensions and mime type from the image
// header without decoding pixel data.
type MetadataExtractorImpl struct{}

func NewMetadataExtractor() *MetadataExtractorImpl {
	return &MetadataExtractorImpl{}
}

func (e *MetadataExtractorImpl) Extract(data []byte) (adapterStorage.ImageMeta, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return adapterStorage.ImageMeta{}, fmt.Errorf("%w: %v", domain.ErrCorruptImage, err)
	}

	return adapterStorage.ImageMeta{
		Width:    cfg.Width,
		Height:   cfg.Height,
		MimeType: "image/" + format,
	}, nil
}
