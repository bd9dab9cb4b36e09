package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

// Authentication - noop implementations
func (n *NoopMetrics) RecordLogin(method string, success bool)                       {}
func (n *NoopMetrics) RecordSignup(success bool)                                     {}
func (n *NoopMetrics) RecordOAuthCallback(provider string, success bool)             {}
func (n *NoopMetrics) RecordExternalAPICall(provider string, duration time.Duration) {}

// Tokens - noop implementations
func (n *NoopMetrics) RecordTokenIssued(method string, generationTime time.Duration)  {}
func (n *NoopMetrics) RecordTokenValidation(result string, duration time.Duration)    {}

// Content - noop implementations
func (n *NoopMetrics) RecordPostCreated(kind string) {}
func (n *NoopMetrics) RecordPostDeleted()            {}

// Gauge Setters - noop implementations
func (n *NoopMetrics) SetUsersCount(count int64) {}
func (n *NoopMetrics) SetPostsCount(count int64) {}

// Database Operations - noop implementations
func (n *NoopMetrics) RecordDatabaseQueryError(operation string) {}
