package server

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/vkarasev/catalog-media/internal/adapter/handler"
	"github.com/vkarasev/catalog-media/internal/infrastructure/middleware"
)

type Router struct {
	engine       *gin.Engine
	imageHandler *handler.ImageHandler
	cdnHandler   *handler.CDNHandler
	rateLimiter  *middleware.RateLimiter
	logger       *zap.Logger
}

type RouterConfig struct {
	ImageHandler *handler.ImageHandler
	CDNHandler   *handler.CDNHandler
	RateLimiter  *middleware.RateLimiter
	Logger       *zap.Logger
	Environment  string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:       engine,
		imageHandler: cfg.ImageHandler,
		cdnHandler:   cfg.CDNHandler,
		rateLimiter:  cfg.RateLimiter,
		logger:       cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")
	{
		products := api.Group("/products")
		r.applyRateLimit(products)
		{
			products.POST("/:product_id/images", r.imageHandler.Upload)
			products.GET("/:product_id/images", r.imageHandler.ListByProduct)
		}

		images := api.Group("/images")
		r.applyRateLimit(images)
		{
			images.GET("/:id", r.imageHandler.Get)
			images.PUT("/:id", r.imageHandler.Update)
			images.DELETE("/:id", r.imageHandler.Delete)
			images.POST("/:id/primary", r.imageHandler.SetPrimary)
			images.GET("/:id/url", r.imageHandler.ResolveURL)
		}

		processor := api.Group("/processor")
		r.applyRateLimit(processor)
		{
			processor.GET("/status", r.imageHandler.ProcessorStatus)
			processor.GET("/queue", r.imageHandler.ProcessorQueue)
			processor.POST("/reprocess-failed", r.imageHandler.ReprocessFailed)
		}

		// File delivery stays outside the rate limit so cached reads
		// never burn API quota.
		cdn := api.Group("/cdn")
		{
			cdn.GET("/file/*path", r.cdnHandler.ServeFile)
			cdn.GET("/stats/cache", r.cdnHandler.CacheStats)
			cdn.POST("/cache/clear", r.cdnHandler.ClearCache)
			cdn.GET("/health", r.cdnHandler.Health)
		}
	}
}

func (r *Router) applyRateLimit(group *gin.RouterGroup) {
	if r.rateLimiter != nil {
		group.Use(r.rateLimiter.Limit())
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
