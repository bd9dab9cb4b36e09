package bootstrap

import (
	"log"

	"github.com/RachelRYuan/Blogen/internal/config"
	"github.com/RachelRYuan/Blogen/internal/middleware"

	"github.com/gin-gonic/gin"
)

// rateLimitMiddlewares holds rate limiting middlewares for the
// credential-accepting endpoints
type rateLimitMiddlewares struct {
	login  gin.HandlerFunc
	signup gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration
func setupRateLimiting(cfg *config.Config) rateLimitMiddlewares {
	// Return no-op middlewares when rate limiting is disabled
	noOpMiddleware := func(c *gin.Context) { c.Next() }

	if !cfg.EnableRateLimit {
		return rateLimitMiddlewares{
			login:  noOpMiddleware,
			signup: noOpMiddleware,
		}
	}

	return createRateLimiters(cfg)
}

// createRateLimiters creates rate limiting middlewares for all endpoints
func createRateLimiters(cfg *config.Config) rateLimitMiddlewares {
	log.Printf("Rate limiting enabled (store: %s)", cfg.RateLimitStore)

	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)

	if storeType == middleware.RateLimitStoreRedis {
		log.Printf("Redis rate limiting configured (addr: %s)", cfg.RedisAddr)
	} else {
		log.Printf("In-memory rate limiting configured (single instance only)")
	}

	createLimiter := func(requestsPerMinute int, endpoint string) gin.HandlerFunc {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
			StoreType:         storeType,
			RedisAddr:         cfg.RedisAddr,
			RedisPassword:     cfg.RedisPassword,
			RedisDB:           cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to create rate limiter for %s: %v", endpoint, err)
		}
		return limiter
	}

	return rateLimitMiddlewares{
		login:  createLimiter(cfg.LoginRateLimit, "/login/form"),
		signup: createLimiter(cfg.SignupRateLimit, "/api/v1/auth/signup"),
	}
}
