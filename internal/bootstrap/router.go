package bootstrap

import (
	"log"
	"net/http"

	"github.com/RachelRYuan/Blogen/internal/authz"
	"github.com/RachelRYuan/Blogen/internal/config"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/middleware"
	"github.com/RachelRYuan/Blogen/internal/store"
	"github.com/RachelRYuan/Blogen/internal/token"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	tokens *token.Provider,
	h handlerSet,
	rec metrics.Recorder,
) *gin.Engine {
	// Setup Gin mode
	setupGinMode(cfg)
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetricsMiddleware(rec))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.IPMiddleware())

	// Setup session middleware (OAuth2 state handshake only)
	setupSessionMiddleware(r, cfg)

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg)

	// Setup rate limiting
	rateLimiters := setupRateLimiting(cfg)

	// Setup all routes
	setupAllRoutes(r, tokens, h, rec, rateLimiters)

	// Log server startup info
	logServerStartup(cfg)

	return r
}

// setupSessionMiddleware configures session handling middleware
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("oauth_session", sessionStore))
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	tokens *token.Provider,
	h handlerSet,
	rec metrics.Recorder,
	rateLimiters rateLimitMiddlewares,
) {
	// Login routes (public)
	r.POST("/login/form", rateLimiters.login, h.login.FormLogin)
	r.GET("/login/oauth2/:provider", h.login.RedirectToProvider)
	r.GET("/login/oauth2/callback/:provider", h.login.ProviderCallback)

	// Public API routes
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/signup", rateLimiters.signup, h.auth.Signup)
		authGroup.GET("/latestPosts", h.auth.LatestPosts)
		authGroup.GET("/username/:name", h.auth.UserNameExists)
	}

	// Protected API routes (valid token carrying the API scope)
	api := r.Group("/api/v1")
	api.Use(middleware.RequestGate(tokens, rec), middleware.RequireAuthority(authz.AuthorityAPI))
	{
		api.GET("/users", h.user.List)
		api.GET("/users/:id", h.user.Get)
		api.PUT("/users/:id", h.user.Update)
		api.PUT("/users/:id/password", h.user.ChangePassword)
		api.GET("/users/:id/posts", h.user.Posts)

		api.GET("/categories", h.category.List)
		api.GET("/categories/:id", h.category.Get)

		api.GET("/posts", h.post.List)
		api.GET("/posts/:id", h.post.Get)
		api.POST("/posts", h.post.Create)
		api.POST("/posts/:id", h.post.CreateChild)
		api.PUT("/posts/:id", h.post.Update)
		api.DELETE("/posts/:id", h.post.Delete)
		api.GET("/posts/search/:text", h.post.Search)

		api.GET("/userPrefs/avatars", h.avatar.List)
	}

	// Admin API routes (category management)
	admin := r.Group("/api/v1")
	admin.Use(
		middleware.RequestGate(tokens, rec),
		middleware.RequireAuthority(authz.AuthorityAPI),
		middleware.RequireAuthority(authz.AuthorityAdmin),
	)
	{
		admin.POST("/categories", h.category.Create)
		admin.PUT("/categories/:id", h.category.Update)
	}
}

// createHealthCheckHandler creates health check endpoint handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch err := db.Health(); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction]
	gin.SetMode(mode)
	log.Printf("Gin mode: %s", ginModeLogMessage[cfg.IsProduction])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config) {
	log.Printf("Blogen API server starting on %s", cfg.ServerAddr)
	log.Printf("Base URL: %s", cfg.BaseURL)
	log.Printf("Default user: admin (check logs for password if first run)")
}
