// Package imagepath derives backend object paths for product images and
// their size variants. Originals live under
// products/{shard}/{product_id}/{filename}, where shard is a hash prefix
// that spreads products across directories; variant paths insert the
// variant name before the file extension.
package imagepath

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
)

const (
	VariantThumb  = "thumb"
	VariantSmall  = "small"
	VariantMedium = "medium"
	VariantLarge  = "large"
)

// VariantNames lists the configured variants in ascending size order.
func VariantNames() []string {
	return []string{VariantThumb, VariantSmall, VariantMedium, VariantLarge}
}

// IsVariant reports whether name is a known variant name.
func IsVariant(name string) bool {
	switch name {
	case VariantThumb, VariantSmall, VariantMedium, VariantLarge:
		return true
	}
	return false
}

// ObjectPath builds the backend path for an original upload.
func ObjectPath(productID, filename string) string {
	sum := md5.Sum([]byte(productID))
	shard := hex.EncodeToString(sum[:])[:8]
	return fmt.Sprintf("products/%s/%s/%s", shard, productID, filename)
}

// VariantPath rewrites p to point at the named variant, inserting
// "_{variant}" before the extension. An existing variant suffix is
// replaced rather than stacked.
func VariantPath(p, variant string) string {
	dir, file := path.Split(p)
	ext := path.Ext(file)
	stem := strings.TrimSuffix(file, ext)

	for _, name := range VariantNames() {
		if cut, ok := strings.CutSuffix(stem, "_"+name); ok {
			stem = cut
			break
		}
	}

	return dir + stem + "_" + variant + ext
}
