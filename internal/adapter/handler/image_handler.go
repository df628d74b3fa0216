package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vkarasev/catalog-media/internal/adapter/handler/dto/request"
	"github.com/vkarasev/catalog-media/internal/adapter/handler/dto/response"
	"github.com/vkarasev/catalog-media/internal/domain"
	"github.com/vkarasev/catalog-media/internal/domain/entity"
	"github.com/vkarasev/catalog-media/internal/pkg/httputil"
	"github.com/vkarasev/catalog-media/internal/usecase/image"
)

type ImageHandler struct {
	imageSvc    ImageService
	processor   ProcessorControl
	deliverySvc DeliveryService
}

func NewImageHandler(imageSvc ImageService, processor ProcessorControl, deliverySvc DeliveryService) *ImageHandler {
	return &ImageHandler{
		imageSvc:    imageSvc,
		processor:   processor,
		deliverySvc: deliverySvc,
	}
}

// Upload godoc
//
//	@Summary		Upload a product image
//	@Description	Validate and store an image, then queue background processing
//	@Tags			images
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			product_id	path		string	true	"Product ID"
//	@Param			file		formData	file	true	"Image file"
//	@Param			is_primary	formData	bool	false	"Make this the product's primary image"
//	@Param			sort_order	formData	int		false	"Position within the product gallery"
//	@Param			alt_text	formData	string	false	"Accessibility text"
//	@Success		201			{object}	response.ImageResponse
//	@Failure		400			{object}	httputil.ErrorResponse
//	@Failure		502			{object}	httputil.ErrorResponse	"Storage backend unavailable"
//	@Router			/products/{product_id}/images [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "product id is required")
		return
	}

	var req request.UploadImageRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_FILE", "file is required")
		return
	}
	defer file.Close()

	img, err := h.imageSvc.Upload(c.Request.Context(), image.UploadInput{
		ProductID:   productID,
		File:        file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		IsPrimary:   req.IsPrimary,
		SortOrder:   req.SortOrder,
		AltText:     req.AltText,
	})
	if err != nil {
		h.handleImageError(c, err)
		return
	}

	urls := h.deliverySvc.URLMap(c.Request.Context(), img.Path)
	httputil.Created(c, response.ImageFromEntity(img, urls))
}

func (h *ImageHandler) Get(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid image id")
		return
	}

	img, err := h.imageSvc.Get(c.Request.Context(), imageID)
	if err != nil {
		h.handleImageError(c, err)
		return
	}

	var urls map[string]string
	if includeURLs(c) {
		urls = h.deliverySvc.URLMap(c.Request.Context(), img.Path)
	}
	httputil.OK(c, response.ImageFromEntity(img, urls))
}

func (h *ImageHandler) ListByProduct(c *gin.Context) {
	productID := strings.TrimSpace(c.Param("product_id"))
	if productID == "" {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "product id is required")
		return
	}

	images, err := h.imageSvc.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		httputil.InternalError(c)
		return
	}

	withURLs := includeURLs(c)
	resp := response.ImagesListResponse{
		Images: make([]response.ImageResponse, 0, len(images)),
		Count:  len(images),
	}
	for i := range images {
		var urls map[string]string
		if withURLs {
			urls = h.deliverySvc.URLMap(c.Request.Context(), images[i].Path)
		}
		resp.Images = append(resp.Images, response.ImageFromEntity(&images[i], urls))
	}
	httputil.OK(c, resp)
}

func (h *ImageHandler) Update(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid image id")
		return
	}

	var req request.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.ValidationError(c, err)
		return
	}

	img, err := h.imageSvc.Update(c.Request.Context(), imageID, image.UpdateInput{
		AltText:   req.AltText,
		SortOrder: req.SortOrder,
		IsPrimary: req.IsPrimary,
	})
	if err != nil {
		h.handleImageError(c, err)
		return
	}

	urls := h.deliverySvc.URLMap(c.Request.Context(), img.Path)
	httputil.OK(c, response.ImageFromEntity(img, urls))
}

func (h *ImageHandler) SetPrimary(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid image id")
		return
	}

	img, err := h.imageSvc.SetPrimary(c.Request.Context(), imageID)
	if err != nil {
		h.handleImageError(c, err)
		return
	}

	urls := h.deliverySvc.URLMap(c.Request.Context(), img.Path)
	httputil.OK(c, response.ImageFromEntity(img, urls))
}

func (h *ImageHandler) Delete(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid image id")
		return
	}

	result, err := h.imageSvc.Delete(c.Request.Context(), imageID)
	if err != nil {
		h.handleImageError(c, err)
		return
	}

	httputil.OK(c, response.DeleteImageResponse{
		Message:       "image deleted successfully",
		OrphanedPaths: result.OrphanedPaths,
	})
}

func (h *ImageHandler) ResolveURL(c *gin.Context) {
	imageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.ErrorWithCode(c, http.StatusBadRequest, "INVALID_ID", "invalid image id")
		return
	}
	variant := c.Query("variant")

	img, err := h.imageSvc.Get(c.Request.Context(), imageID)
	if err != nil {
		h.handleImageError(c, err)
		return
	}

	url, err := h.deliverySvc.ResolveURL(c.Request.Context(), img.Path, variant)
	if err != nil {
		h.handleImageError(c, err)
		return
	}

	cdnURL, err := h.deliverySvc.CDNURL(c.Request.Context(), img.Path, variant)
	if err != nil {
		h.handleImageError(c, err)
		return
	}

	httputil.OK(c, response.ImageURLResponse{URL: url, CDNURL: cdnURL})
}

func (h *ImageHandler) ProcessorStatus(c *gin.Context) {
	httputil.OK(c, h.processor.Status())
}

func (h *ImageHandler) ProcessorQueue(c *gin.Context) {
	counts, err := h.imageSvc.CountByStatus(c.Request.Context())
	if err != nil {
		httputil.InternalError(c)
		return
	}

	records := make(map[string]int, len(counts))
	for status, count := range counts {
		records[string(status)] = count
	}
	// Every status appears, even at zero.
	for _, status := range []entity.ImageStatus{
		entity.StatusUploading, entity.StatusProcessing, entity.StatusReady, entity.StatusError,
	} {
		if _, ok := records[string(status)]; !ok {
			records[string(status)] = 0
		}
	}

	status := h.processor.Status()
	httputil.OK(c, response.QueueResponse{
		QueueSize:   status.QueueSize,
		IsRunning:   status.IsRunning,
		WorkerCount: status.WorkerCount,
		Records:     records,
	})
}

func (h *ImageHandler) ReprocessFailed(c *gin.Context) {
	count, err := h.processor.ReprocessFailed(c.Request.Context())
	if err != nil {
		httputil.InternalError(c)
		return
	}

	httputil.OK(c, response.ReprocessResponse{
		Message: "reprocessing queued",
		Count:   count,
	})
}

func (h *ImageHandler) handleImageError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		httputil.ErrorWithCode(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, domain.ErrImageNotFound):
		httputil.ErrorWithCode(c, http.StatusNotFound, "NOT_FOUND", "image not found")
	case errors.Is(err, domain.ErrBackendUnavailable):
		httputil.ErrorWithCode(c, http.StatusBadGateway, "STORAGE_UNAVAILABLE", "storage backend unavailable")
	default:
		httputil.InternalError(c)
	}
}

func includeURLs(c *gin.Context) bool {
	return c.DefaultQuery("include_urls", "true") != "false"
}
