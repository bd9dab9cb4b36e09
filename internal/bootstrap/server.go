package bootstrap

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/RachelRYuan/Blogen/internal/cache"
	"github.com/RachelRYuan/Blogen/internal/config"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/store"

	"github.com/appleboy/graceful"
)

// createHTTPServer creates the HTTP server instance
func createHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// startWithGracefulShutdown runs the server until a shutdown signal arrives
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server)
	addMetricsGaugeUpdateJob(m, app.Config, app.DB, app.MetricsRecorder, app.CountsCache)
	addServerShutdownJob(m, app.Server)
	addCacheCleanupJob(m, "user cache", app.UserCacheCloser)
	addCacheCleanupJob(m, "metrics cache", app.CountsCacheCloser)
	addDatabaseShutdownJob(m, app.DB)

	<-m.Done()
}

// addServerRunningJob adds the HTTP server running job
func addServerRunningJob(m *graceful.Manager, srv *http.Server) {
	m.AddRunningJob(func(ctx context.Context) error {
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatalf("Failed to start server: %v", err)
			}
		}()
		<-ctx.Done()
		return nil
	})
}

// addServerShutdownJob adds HTTP server shutdown handler
func addServerShutdownJob(m *graceful.Manager, srv *http.Server) {
	m.AddShutdownJob(func() error {
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
			return err
		}

		log.Println("Server exited")
		return nil
	})
}

// addCacheCleanupJob adds cache cleanup on shutdown
func addCacheCleanupJob(m *graceful.Manager, name string, closer func() error) {
	if closer == nil {
		return
	}

	m.AddShutdownJob(func() error {
		if err := closer(); err != nil {
			log.Printf("Error closing %s: %v", name, err)
		} else {
			log.Printf("Closed %s", name)
		}
		return nil
	})
}

// addDatabaseShutdownJob adds database connection cleanup on shutdown
func addDatabaseShutdownJob(m *graceful.Manager, db *store.Store) {
	m.AddShutdownJob(func() error {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
			return err
		}
		log.Println("Database connection closed")
		return nil
	})
}

// addMetricsGaugeUpdateJob adds periodic metrics gauge update job
func addMetricsGaugeUpdateJob(
	m *graceful.Manager,
	cfg *config.Config,
	db *store.Store,
	rec metrics.Recorder,
	countsCache cache.CacheWithFetch[int64],
) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled || countsCache == nil {
		return
	}

	m.AddRunningJob(func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.MetricsGaugeUpdateInterval)
		defer ticker.Stop()

		counts := metrics.NewCountsCache(db, countsCache)

		// Update immediately on startup
		updateGaugeMetrics(ctx, counts, rec, cfg.MetricsGaugeUpdateInterval)

		for {
			select {
			case <-ticker.C:
				updateGaugeMetrics(ctx, counts, rec, cfg.MetricsGaugeUpdateInterval)
			case <-ctx.Done():
				return nil
			}
		}
	})
}

// errorLogger handles rate-limited error logging
type errorLogger struct {
	lastErrorTimes  map[string]time.Time
	rateLimitWindow time.Duration
}

// newErrorLogger creates a new error logger with rate limiting
func newErrorLogger() *errorLogger {
	return &errorLogger{
		lastErrorTimes:  make(map[string]time.Time),
		rateLimitWindow: 5 * time.Minute, // Log at most once per 5 minutes per operation
	}
}

// logIfNeeded logs an error only if rate limit allows
func (e *errorLogger) logIfNeeded(operation string, err error) {
	now := time.Now()
	lastTime, exists := e.lastErrorTimes[operation]

	if !exists || now.Sub(lastTime) >= e.rateLimitWindow {
		log.Printf("Database query failed for %s: %v (further errors will be suppressed for %v)",
			operation, err, e.rateLimitWindow)
		e.lastErrorTimes[operation] = now
	}
}

var gaugeErrorLogger = newErrorLogger()

// updateGaugeMetrics refreshes the user and post count gauges through a
// cache-backed store. The cache TTL matches the update interval so that
// multi-instance deployments share a single database round trip.
func updateGaugeMetrics(
	ctx context.Context,
	counts *metrics.CountsCache,
	rec metrics.Recorder,
	cacheTTL time.Duration,
) {
	users, err := counts.GetUsersCount(ctx, cacheTTL)
	if err != nil {
		rec.RecordDatabaseQueryError("count_users")
		gaugeErrorLogger.logIfNeeded("count_users", err)
	} else {
		rec.SetUsersCount(users)
	}

	posts, err := counts.GetPostsCount(ctx, cacheTTL)
	if err != nil {
		rec.RecordDatabaseQueryError("count_posts")
		gaugeErrorLogger.logIfNeeded("count_posts", err)
	} else {
		rec.SetPostsCount(posts)
	}
}
