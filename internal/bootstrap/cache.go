package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/RachelRYuan/Blogen/internal/cache"
	"github.com/RachelRYuan/Blogen/internal/config"
	"github.com/RachelRYuan/Blogen/internal/metrics"
	"github.com/RachelRYuan/Blogen/internal/models"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) metrics.Recorder {
	rec := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return rec
}

// initializeUserCache initializes the user read cache (always enabled,
// defaults to memory)
func initializeUserCache(cfg *config.Config) (cache.Cache[models.User], func() error, error) {
	switch cfg.UserCacheType {
	case config.CacheTypeRedisAside:
		c, err := cache.NewRueidisAsideCache[models.User](
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			"blogen:users:",
			cfg.UserCacheClientTTL,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis-aside user cache: %w", err)
		}
		log.Printf("User cache: redis-aside (addr=%s, db=%d, client_ttl=%s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.UserCacheClientTTL)
		return c, c.Close, nil

	case config.CacheTypeRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c, err := cache.NewRueidisCache[models.User](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			"blogen:users:",
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis user cache: %w", err)
		}
		log.Printf("User cache: redis (addr=%s, db=%d)", cfg.RedisAddr, cfg.RedisDB)
		return c, c.Close, nil

	default: // memory
		c := cache.NewMemoryCache[models.User]()
		log.Println("User cache: memory (single instance only)")
		return c, c.Close, nil
	}
}

// initializeCountsCache initializes the cache backing the user/post
// count gauges. Nil when gauge updates are disabled.
func initializeCountsCache(cfg *config.Config) (cache.CacheWithFetch[int64], func() error, error) {
	if !cfg.MetricsEnabled || !cfg.MetricsGaugeUpdateEnabled {
		return nil, nil, nil
	}

	switch cfg.UserCacheType {
	case config.CacheTypeRedisAside, config.CacheTypeRedis:
		c, err := cache.NewRueidisAsideCache[int64](
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			"blogen:metrics:",
			cfg.MetricsGaugeUpdateInterval,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize counts cache: %w", err)
		}
		log.Printf("Counts cache: redis-aside (addr=%s, db=%d)", cfg.RedisAddr, cfg.RedisDB)
		return c, c.Close, nil

	default:
		c := cache.NewMemoryCache[int64]()
		log.Println("Counts cache: memory (single instance only)")
		return c, c.Close, nil
	}
}
