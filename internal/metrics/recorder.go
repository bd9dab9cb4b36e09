package metrics

import "time"

// Recorder abstracts metric recording so callers do not depend on the
// Prometheus implementation. A no-op recorder is used when metrics are
// disabled.
type Recorder interface {
	// Authentication
	RecordLogin(method string, success bool)
	RecordSignup(success bool)
	RecordOAuthCallback(provider string, success bool)
	RecordExternalAPICall(provider string, duration time.Duration)

	// Tokens
	RecordTokenIssued(method string, generationTime time.Duration)
	RecordTokenValidation(result string, duration time.Duration)

	// Content
	RecordPostCreated(kind string)
	RecordPostDeleted()

	// Gauges (updated periodically from the database)
	SetUsersCount(count int64)
	SetPostsCount(count int64)

	// Database
	RecordDatabaseQueryError(operation string)
}
