package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Ensure Metrics implements Recorder interface at compile time
var _ Recorder = (*Metrics)(nil)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// Authentication Metrics
	LoginTotal          *prometheus.CounterVec
	SignupTotal         *prometheus.CounterVec
	OAuthCallbackTotal  *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec

	// Token Metrics
	TokensIssuedTotal       *prometheus.CounterVec
	TokenGenerationDuration *prometheus.HistogramVec
	TokenValidationTotal    *prometheus.CounterVec
	TokenValidationDuration prometheus.Histogram

	// Content Metrics
	PostsCreatedTotal *prometheus.CounterVec
	PostsDeletedTotal prometheus.Counter
	UsersCount        prometheus.Gauge
	PostsCount        prometheus.Gauge

	// HTTP Request Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Database Query Metrics
	DatabaseQueryErrorsTotal *prometheus.CounterVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// Init initializes metrics based on enabled flag
// If enabled=true, returns Prometheus-based Metrics
// If enabled=false, returns NoopMetrics (zero overhead)
// Uses sync.Once to ensure Prometheus metrics are only registered once
func Init(enabled bool) Recorder {
	if !enabled {
		return NewNoopMetrics()
	}

	once.Do(func() {
		defaultMetrics = initMetrics()
	})
	return defaultMetrics
}

// initMetrics creates and registers all Prometheus metrics
func initMetrics() *Metrics {
	m := &Metrics{
		// Authentication Metrics
		LoginTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogen_login_total",
				Help: "Total number of login attempts",
			},
			[]string{"method", "result"}, // method: form, github, google; result: success, failure
		),
		SignupTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogen_signup_total",
				Help: "Total number of signup attempts",
			},
			[]string{"result"}, // success, error
		),
		OAuthCallbackTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogen_oauth_callback_total",
				Help: "Total number of OAuth2 callback attempts",
			},
			[]string{"provider", "result"}, // provider: github, google; result: success, error
		),
		ExternalAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blogen_external_api_duration_seconds",
				Help:    "Time taken for identity provider API calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"}, // github, google
		),

		// Token Metrics
		TokensIssuedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogen_tokens_issued_total",
				Help: "Total number of access tokens issued",
			},
			[]string{"method"}, // form, github, google
		),
		TokenGenerationDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "blogen_token_generation_duration_seconds",
				Help:    "Time taken to sign access tokens",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		TokenValidationTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogen_token_validation_total",
				Help: "Total number of token validations",
			},
			[]string{"result"}, // valid, expired, invalid
		),
		TokenValidationDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "blogen_token_validation_duration_seconds",
				Help:    "Time taken to verify access tokens",
				Buckets: prometheus.DefBuckets,
			},
		),

		// Content Metrics
		PostsCreatedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blogen_posts_created_total",
				Help: "Total number of posts created",
			},
			[]string{"kind"}, // post, reply
		),
		PostsDeletedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "blogen_posts_deleted_total",
				Help: "Total number of posts deleted",
			},
		),
		UsersCount: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "blogen_users",
				Help: "Current number of registered users",
			},
		),
		PostsCount: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "blogen_posts",
				Help: "Current number of posts",
			},
		),

		// HTTP Request Metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				Buckets: []float64{
					0.001,
					0.005,
					0.010,
					0.025,
					0.050,
					0.100,
					0.250,
					0.500,
					1.0,
					2.5,
					5.0,
					10.0,
				},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Current number of HTTP requests being served",
			},
		),

		// Database Query Metrics
		DatabaseQueryErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "database_query_errors_total",
				Help: "Total number of database query errors during metric collection",
			},
			[]string{"operation"}, // count_users, count_posts
		),
	}

	return m
}

// RecordLogin records a login attempt
func (m *Metrics) RecordLogin(method string, success bool) {
	result := resultSuccess
	if !success {
		result = resultFailure
	}
	m.LoginTotal.WithLabelValues(method, result).Inc()
}

// RecordSignup records a signup attempt
func (m *Metrics) RecordSignup(success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.SignupTotal.WithLabelValues(result).Inc()
}

// RecordOAuthCallback records an OAuth2 callback
func (m *Metrics) RecordOAuthCallback(provider string, success bool) {
	result := resultSuccess
	if !success {
		result = resultError
	}
	m.OAuthCallbackTotal.WithLabelValues(provider, result).Inc()
}

// RecordExternalAPICall records an identity provider API call duration
func (m *Metrics) RecordExternalAPICall(provider string, duration time.Duration) {
	m.ExternalAPIDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordTokenIssued records a token issuance
func (m *Metrics) RecordTokenIssued(method string, generationTime time.Duration) {
	m.TokensIssuedTotal.WithLabelValues(method).Inc()
	m.TokenGenerationDuration.WithLabelValues(method).Observe(generationTime.Seconds())
}

// RecordTokenValidation records a token validation
func (m *Metrics) RecordTokenValidation(result string, duration time.Duration) {
	// result: valid, expired, invalid
	m.TokenValidationTotal.WithLabelValues(result).Inc()
	m.TokenValidationDuration.Observe(duration.Seconds())
}

// RecordPostCreated records a post creation
func (m *Metrics) RecordPostCreated(kind string) {
	// kind: post, reply
	m.PostsCreatedTotal.WithLabelValues(kind).Inc()
}

// RecordPostDeleted records a post deletion
func (m *Metrics) RecordPostDeleted() {
	m.PostsDeletedTotal.Inc()
}

// SetUsersCount sets the current count of registered users (for periodic updates)
func (m *Metrics) SetUsersCount(count int64) {
	m.UsersCount.Set(float64(count))
}

// SetPostsCount sets the current count of posts (for periodic updates)
func (m *Metrics) SetPostsCount(count int64) {
	m.PostsCount.Set(float64(count))
}

// RecordDatabaseQueryError records a database query error during metric collection
func (m *Metrics) RecordDatabaseQueryError(operation string) {
	m.DatabaseQueryErrorsTotal.WithLabelValues(operation).Inc()
}
