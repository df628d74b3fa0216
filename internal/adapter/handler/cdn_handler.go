package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/pkg/httputil"
	"github.com/vkarasev/catalog-media/internal/pkg/imagepath"
)

const cacheControlValue = "public, max-age=3600"

type CDNHandler struct {
	deliverySvc DeliveryService
	cache       CacheControl
}

func NewCDNHandler(deliverySvc DeliveryService, cacheCtl CacheControl) *CDNHandler {
	return &CDNHandler{deliverySvc: deliverySvc, cache: cacheCtl}
}

// ServeFile godoc
//
//	@Summary		Serve a stored image through the edge cache
//	@Description	Returns object bytes, filling the cache on miss
//	@Tags			cdn
//	@Param			path	path		string	true	"Object path"
//	@Param			size	query		string	false	"Variant name (thumb, small, medium, large)"
//	@Success		200		{file}		binary
//	@Failure		404		{object}	httputil.ErrorResponse
//	@Router			/cdn/file/{path} [get]
func (h *CDNHandler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "file not found")
		return
	}

	if size := c.Query("size"); size != "" {
		if !imagepath.IsVariant(size) {
			httputil.ErrorWithCode(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown size "+size)
			return
		}
		path = imagepath.VariantPath(path, size)
	}

	file, err := h.deliverySvc.ReadFile(c.Request.Context(), path)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFileNotFound), errors.Is(err, domain.ErrInvalidPath):
			httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "file not found")
		default:
			httputil.ErrorWithCode(c, http.StatusInternalServerError, "READ_ERROR", "error reading file")
		}
		return
	}

	if file.Hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Header("Cache-Control", cacheControlValue)
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

func (h *CDNHandler) CacheStats(c *gin.Context) {
	httputil.OK(c, h.cache.Stats())
}

func (h *CDNHandler) ClearCache(c *gin.Context) {
	if err := h.cache.Clear(); err != nil {
		httputil.InternalError(c)
		return
	}
	httputil.OK(c, gin.H{"message": "cache cleared successfully"})
}

func (h *CDNHandler) Health(c *gin.Context) {
	httputil.OK(c, gin.H{
		"status":      "healthy",
		"cache_stats": h.cache.Stats(),
	})
}
