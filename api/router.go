package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/proplens/proplens/api/handler"
	"github.com/proplens/proplens/api/middleware"
	"github.com/proplens/proplens/cache"
	"github.com/proplens/proplens/config"
	"github.com/proplens/proplens/scraper"
	"github.com/proplens/proplens/session"
	"github.com/proplens/proplens/storage"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(coord *scraper.Coordinator, reg *session.Registry, store *storage.Store, cc *cache.Cache, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health — no auth required.
	v1.GET("/health", handler.Health(cfg.Crawler, startTime))

	// Protected group — auth + rate limit.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Crawl — SSE stream of progress events followed by the batch result.
	protected.POST("/crawl", handler.PostCrawl(coord, reg, store, cc, cfg.Webhook))

	// Results — re-fetch a persisted batch by session id.
	protected.GET("/results/:session", handler.GetResults(store, cc))

	return r
}
