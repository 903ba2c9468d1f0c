package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/config"
	"github.com/stemsi/kinderbook/internal/handler"
	"github.com/stemsi/kinderbook/internal/middleware"
	"github.com/stemsi/kinderbook/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Command *handler.CommandHandler
	Person  *handler.PersonHandler
	Subject *handler.SubjectHandler
	WS      *handler.WSHandler
	System  *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	handlers *Handlers,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.System.Health)

	// ─── 1. Address book API ───────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.NoStore())
	{
		api.POST("/commands", limiter.Middleware(), handlers.Command.Execute)

		api.GET("/persons", handlers.Person.List)
		api.GET("/persons/:id/scores", handlers.Person.Scores)

		api.GET("/subjects", handlers.Subject.GetAll)
		api.GET("/subjects/:name/scores", handlers.Subject.Scores)
	}

	// ─── 2. Live score stream ──────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/scores", handlers.WS.ScoreStream)
	}

	return router
}
