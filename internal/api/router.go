package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abubakar1702/techgeek/internal/cache"
	"github.com/abubakar1702/techgeek/internal/db"
	"github.com/abubakar1702/techgeek/pkg/config"
	"github.com/abubakar1702/techgeek/pkg/logging"
)

// Router sets up API routes
type Router struct {
	handler *Handler
	db      *db.DB
	cache   *cache.Cache
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(database *db.DB, redisCache *cache.Cache, cfg *config.Config) *Router {
	return &Router{
		handler: NewHandler(database.DB, redisCache),
		db:      database,
		cache:   redisCache,
		cfg:     cfg,
		logger:  logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(RequestLogger())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     r.cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(AuthMiddleware(r.cfg.Auth.JWTSecret))

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	api := engine.Group("/api")
	{
		// Public reads; liked and bookmarked resolve for signed-in
		// viewers through the same routes
		api.GET("/blogs", r.handler.ListPosts)
		api.GET("/blogs/top-stories", r.handler.TopStories)
		api.GET("/blogs/search", r.handler.SearchPosts)
		api.GET("/blogs/filter", r.handler.FilterPosts)
		api.GET("/blogs/slug/:slug", r.handler.GetPost)
		api.GET("/blogs/:id", r.handler.GetPostByID)
		api.GET("/users/:id", r.handler.GetUser)

		protected := api.Group("")
		protected.Use(RequireAuth())
		{
			protected.POST("/blogs", r.handler.CreatePost)
			protected.PUT("/blogs/:id", r.handler.UpdatePost)
			protected.DELETE("/blogs/:id", r.handler.DeletePost)
			protected.POST("/blogs/:id/like", r.handler.ToggleLike)
			protected.POST("/blogs/:id/bookmark", r.handler.ToggleBookmark)

			protected.POST("/comments", r.handler.CreateComment)
			protected.PUT("/comments/:id", r.handler.UpdateComment)
			protected.DELETE("/comments/:id", r.handler.DeleteComment)
			protected.POST("/comments/:id/like", r.handler.ToggleCommentLike)

			protected.GET("/notifications", r.handler.ListNotifications)
			protected.GET("/notifications/unread", r.handler.UnreadCount)
			protected.POST("/notifications/:id/read", r.handler.MarkNotificationRead)

			protected.GET("/user/info", r.handler.GetUserInfo)
			protected.GET("/user/drafts", r.handler.ListDrafts)
			protected.GET("/user/bookmarks", r.handler.ListBookmarks)
		}
	}
}

// healthHandler handles health check requests. Redis is optional, so
// a missing cache only shows up in the payload, never as a failure.
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	code := http.StatusOK

	if err := r.db.Health(c.Request.Context()); err != nil {
		r.logger.Error("database health check failed", zap.Error(err))
		status = "DEGRADED"
		code = http.StatusServiceUnavailable
	}

	cacheStatus := "OK"
	if err := r.cache.Health(c.Request.Context()); err != nil {
		cacheStatus = "DISABLED"
		if err != cache.ErrCacheDisabled {
			r.logger.Warn("cache health check failed", zap.Error(err))
			cacheStatus = "DEGRADED"
		}
	}

	c.JSON(code, gin.H{
		"status":  status,
		"cache":   cacheStatus,
		"service": "techgeek-api",
	})
}
