package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/pkg/imagepath"
)

const JPEGQuality = 85

// variantSizes are bounding boxes; images are fitted inside them with
// aspect ratio preserved and never upscaled.
var variantSizes = map[string]int{
	imagepath.VariantThumb:  150,
	imagepath.VariantSmall:  300,
	imagepath.VariantMedium: 600,
	imagepath.VariantLarge:  1200,
}

type VariantGeneratorImpl struct {
	quality int
}

func NewVariantGenerator() *VariantGeneratorImpl {
	return &VariantGeneratorImpl{quality: JPEGQuality}
}

func (g *VariantGeneratorImpl) Variants() []string {
	return imagepath.VariantNames()
}

func (g *VariantGeneratorImpl) Generate(data []byte, variant string) ([]byte, error) {
	size, ok := variantSizes[variant]
	if !ok {
		return nil, fmt.Errorf("unknown variant %q", variant)
	}

	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptImage, err)
	}

	fitted := imaging.Fit(src, size, size, imaging.Lanczos)

	// Transparency flattens onto white before the JPEG encode.
	bg := imaging.New(fitted.Bounds().Dx(), fitted.Bounds().Dy(), color.White)
	flat := imaging.Overlay(bg, fitted, image.Point{}, 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(g.quality)); err != nil {
		return nil, fmt.Errorf("encoding variant: %w", err)
	}
	return buf.Bytes(), nil
}
