package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Cache backend constants for the user read cache
const (
	CacheTypeMemory     = "memory"
	CacheTypeRedis      = "redis"
	CacheTypeRedisAside = "redis-aside"
)

// Rate limit store constants
const (
	RateLimitStoreMemory = "memory"
	RateLimitStoreRedis  = "redis"
)

type Config struct {
	// Server settings
	ServerAddr   string
	BaseURL      string
	IsProduction bool

	// SPA entry page returned by the OAuth2 login success response
	IndexFile string

	// Token settings. Keys are RSA PEM blocks, either inline or loaded
	// from *_FILE paths. In development both may be empty; an ephemeral
	// keypair is generated at startup.
	JWTPrivateKeyPEM string
	JWTPublicKeyPEM  string
	JWTIssuer        string
	JWTExpiration    time.Duration
	JWTClockSkew     time.Duration

	// Session settings (OAuth2 state handshake only)
	SessionSecret string
	SessionMaxAge int

	// Database
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string

	// Seed settings
	DefaultAdminPassword string // empty = random, logged once at first boot
	DefaultAvatar        string

	// GitHub OAuth2
	GitHubOAuthEnabled     bool
	GitHubClientID         string
	GitHubClientSecret     string
	GitHubOAuthRedirectURL string
	GitHubOAuthScopes      []string

	// Google OAuth2
	GoogleOAuthEnabled     bool
	GoogleClientID         string
	GoogleClientSecret     string
	GoogleOAuthRedirectURL string
	GoogleOAuthScopes      []string

	// OAuth2 HTTP client settings
	OAuthTimeout            time.Duration
	OAuthInsecureSkipVerify bool

	// Rate limiting
	EnableRateLimit          bool
	LoginRateLimit           int // requests per minute per client
	SignupRateLimit          int
	RateLimitStore           string // "memory" or "redis"
	RateLimitCleanupInterval time.Duration

	// Redis (rate limit store and user cache)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// User read cache
	UserCacheType      string
	UserCacheTTL       time.Duration
	UserCacheClientTTL time.Duration

	// Metrics
	MetricsEnabled             bool
	MetricsToken               string
	MetricsGaugeUpdateEnabled  bool
	MetricsGaugeUpdateInterval time.Duration

	// Pagination defaults
	LatestPostsLimit int
}

func Load() *Config {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	return &Config{
		ServerAddr:   getEnv("SERVER_ADDR", ":8080"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		IsProduction: getEnvBool("PRODUCTION", false),
		IndexFile:    getEnv("INDEX_FILE", "public/index.html"),

		JWTPrivateKeyPEM: getEnvPEM("JWT_PRIVATE_KEY"),
		JWTPublicKeyPEM:  getEnvPEM("JWT_PUBLIC_KEY"),
		JWTIssuer:        getEnv("JWT_ISSUER", "blogen"),
		JWTExpiration:    getEnvDuration("JWT_EXPIRATION", time.Hour),
		JWTClockSkew:     getEnvDuration("JWT_CLOCK_SKEW", 0),

		SessionSecret: getEnv("SESSION_SECRET", "session-secret-change-in-production"),
		SessionMaxAge: getEnvInt("SESSION_MAX_AGE", 600),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "blogen.db"),

		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", ""),
		DefaultAvatar:        getEnv("DEFAULT_AVATAR", "avatar0.jpg"),

		GitHubOAuthEnabled:     getEnvBool("GITHUB_OAUTH_ENABLED", false),
		GitHubClientID:         getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret:     getEnv("GITHUB_CLIENT_SECRET", ""),
		GitHubOAuthRedirectURL: getEnv("GITHUB_OAUTH_REDIRECT_URL", ""),
		GitHubOAuthScopes:      getEnvSlice("GITHUB_OAUTH_SCOPES", []string{"read:user", "user:email"}),

		GoogleOAuthEnabled:     getEnvBool("GOOGLE_OAUTH_ENABLED", false),
		GoogleClientID:         getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:     getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleOAuthRedirectURL: getEnv("GOOGLE_OAUTH_REDIRECT_URL", ""),
		GoogleOAuthScopes:      getEnvSlice("GOOGLE_OAUTH_SCOPES", []string{"openid", "profile", "email"}),

		OAuthTimeout:            getEnvDuration("OAUTH_TIMEOUT", 15*time.Second),
		OAuthInsecureSkipVerify: getEnvBool("OAUTH_INSECURE_SKIP_VERIFY", false),

		EnableRateLimit:          getEnvBool("ENABLE_RATE_LIMIT", true),
		LoginRateLimit:           getEnvInt("LOGIN_RATE_LIMIT", 10),
		SignupRateLimit:          getEnvInt("SIGNUP_RATE_LIMIT", 10),
		RateLimitStore:           getEnv("RATE_LIMIT_STORE", RateLimitStoreMemory),
		RateLimitCleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		UserCacheType:      getEnv("USER_CACHE_TYPE", CacheTypeMemory),
		UserCacheTTL:       getEnvDuration("USER_CACHE_TTL", 5*time.Minute),
		UserCacheClientTTL: getEnvDuration("USER_CACHE_CLIENT_TTL", 30*time.Second),

		MetricsEnabled:             getEnvBool("METRICS_ENABLED", true),
		MetricsToken:               getEnv("METRICS_TOKEN", ""),
		MetricsGaugeUpdateEnabled:  getEnvBool("METRICS_GAUGE_UPDATE_ENABLED", true),
		MetricsGaugeUpdateInterval: getEnvDuration("METRICS_GAUGE_UPDATE_INTERVAL", time.Minute),

		LatestPostsLimit: getEnvInt("LATEST_POSTS_LIMIT", 9),
	}
}

// Validate checks configuration consistency. Key material validation is done
// by the token package when the provider is constructed.
func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return errors.New("SERVER_ADDR must not be empty")
	}
	if c.DatabaseDriver != "sqlite" && c.DatabaseDriver != "postgres" {
		return fmt.Errorf("invalid DATABASE_DRIVER: %s (must be: sqlite, postgres)", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if c.JWTExpiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	if c.JWTClockSkew < 0 {
		return errors.New("JWT_CLOCK_SKEW must not be negative")
	}
	if c.IsProduction {
		if c.JWTPrivateKeyPEM == "" || c.JWTPublicKeyPEM == "" {
			return errors.New("JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required in production")
		}
		if c.SessionSecret == "" || c.SessionSecret == "session-secret-change-in-production" {
			return errors.New("SESSION_SECRET must be set in production")
		}
	}
	if c.GitHubOAuthEnabled && (c.GitHubClientID == "" || c.GitHubClientSecret == "") {
		return errors.New("GITHUB_CLIENT_ID and GITHUB_CLIENT_SECRET are required when GitHub OAuth2 is enabled")
	}
	if c.GoogleOAuthEnabled && (c.GoogleClientID == "" || c.GoogleClientSecret == "") {
		return errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required when Google OAuth2 is enabled")
	}
	switch c.RateLimitStore {
	case RateLimitStoreMemory, RateLimitStoreRedis:
	default:
		return fmt.Errorf("invalid RATE_LIMIT_STORE: %s (must be: memory, redis)", c.RateLimitStore)
	}
	switch c.UserCacheType {
	case CacheTypeMemory, CacheTypeRedis, CacheTypeRedisAside:
	default:
		return fmt.Errorf(
			"invalid USER_CACHE_TYPE: %s (must be: memory, redis, redis-aside)",
			c.UserCacheType,
		)
	}
	return nil
}

// getEnvPEM reads a PEM block from KEY, or from the file named by KEY_FILE.
// Inline values take precedence.
func getEnvPEM(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data)
		}
	}
	return ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
