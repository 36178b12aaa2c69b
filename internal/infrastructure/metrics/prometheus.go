// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "viewly"

var (
	// AuthOperationsTotal tracks token lifecycle operations.
	// Labels:
	//   - operation: login, refresh, logout, register
	//   - status: success, unauthorized, error
	AuthOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_operations_total",
			Help:      "Total number of auth operations",
		},
		[]string{"operation", "status"},
	)

	// EngagementTogglesTotal tracks toggle outcomes.
	// Labels:
	//   - kind: VIDEO_LIKE, COMMENT_LIKE, TWEET_LIKE, CHANNEL_SUBSCRIPTION
	//   - result: activated, deactivated, already_active
	EngagementTogglesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engagement_toggles_total",
			Help:      "Total number of engagement toggles",
		},
		[]string{"kind", "result"},
	)

	// CacheOperationsTotal tracks cache operations (get, set, delete).
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	//   - cache_type: redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// DBQueriesTotal tracks database queries.
	// Labels:
	//   - query_type: select, insert, update, delete
	//   - table: users, engagements, videos, comments, tweets
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_queries_total",
			Help:      "Total number of database queries",
		},
		[]string{"query_type", "table"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)
)

// Auth operation constants.
const (
	AuthOpLogin    = "login"
	AuthOpRefresh  = "refresh"
	AuthOpLogout   = "logout"
	AuthOpRegister = "register"
)

// Auth status constants.
const (
	AuthStatusSuccess      = "success"
	AuthStatusUnauthorized = "unauthorized"
	AuthStatusError        = "error"
)

// Toggle result constants.
const (
	ToggleActivated     = "activated"
	ToggleDeactivated   = "deactivated"
	ToggleAlreadyActive = "already_active"
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Cache type constants.
const (
	CacheTypeRedis = "redis"
)

// DB query type constants.
const (
	DBQuerySelect = "select"
	DBQueryInsert = "insert"
	DBQueryUpdate = "update"
	DBQueryDelete = "delete"
)

// Table name constants.
const (
	TableUsers       = "users"
	TableEngagements = "engagements"
	TableVideos      = "videos"
	TableComments    = "comments"
	TableTweets      = "tweets"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)
