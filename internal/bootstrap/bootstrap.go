package bootstrap

import (
	"net/http"

	"github.com/RachelRYuan/Blogen/internal/cache"
	"github.com/RachelRYuan/Blogen/internal/config"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/models"
	"github.com/RachelRYuan/Blogen/internal/services"
	"github.com/RachelRYuan/Blogen/internal/store"
	"github.com/RachelRYuan/Blogen/internal/token"

	"github.com/gin-gonic/gin"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB                *store.Store
	Tokens            *token.Provider
	MetricsRecorder   metrics.Recorder
	UserCache         cache.Cache[models.User]
	UserCacheCloser   func() error
	CountsCache       cache.CacheWithFetch[int64]
	CountsCacheCloser func() error

	// Services
	AuthorizationService *services.AuthorizationService
	OAuth2LoginService   *services.OAuth2LoginService
	UserService          *services.UserService
	PostService          *services.PostService
	CategoryService      *services.CategoryService
	AvatarService        *services.AvatarService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{
		Config: cfg,
	}

	// Phase 1: Validate configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 4: Initialize HTTP layer
	if err := app.initializeHTTPLayer(); err != nil {
		return err
	}

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, signing keys, metrics and caches
func (app *Application) initializeInfrastructure() error {
	var err error

	// Database
	app.DB, err = initializeDatabase(app.Config)
	if err != nil {
		return err
	}

	// Token signing keys
	app.Tokens, err = initializeTokenProvider(app.Config)
	if err != nil {
		return err
	}

	// Metrics
	app.MetricsRecorder = initializeMetrics(app.Config)

	// Caches
	app.UserCache, app.UserCacheCloser, err = initializeUserCache(app.Config)
	if err != nil {
		return err
	}
	app.CountsCache, app.CountsCacheCloser, err = initializeCountsCache(app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() {
	app.AuthorizationService,
		app.OAuth2LoginService,
		app.UserService,
		app.PostService,
		app.CategoryService,
		app.AvatarService = initializeServices(
		app.Config,
		app.DB,
		app.Tokens,
		app.UserCache,
		app.MetricsRecorder,
	)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() error {
	// OAuth2 setup
	oauthProviders := initializeOAuthProviders(app.Config)
	logOAuthProvidersStatus(oauthProviders)
	oauthHTTPClient, err := createOAuthHTTPClient(app.Config)
	if err != nil {
		return err
	}

	// Handlers
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.AuthorizationService,
		app.OAuth2LoginService,
		app.UserService,
		app.PostService,
		app.CategoryService,
		app.AvatarService,
		oauthProviders,
		oauthHTTPClient,
		app.MetricsRecorder,
	)

	// Router
	app.Router = setupRouter(
		app.Config,
		app.DB,
		app.Tokens,
		app.HandlerSet,
		app.MetricsRecorder,
	)

	// HTTP Server
	app.Server = createHTTPServer(app.Config, app.Router)
	return nil
}
