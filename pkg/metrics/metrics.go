package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP metrics (inbound, collected by the gin middleware)
// =============================================================================

// HttpRequestsTotal counts all inbound HTTP requests.
// Labels: service, method, path, status
// Example PromQL: rate(http_requests_total{service="posts-gateway"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration is the inbound latency histogram.
// Example: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight is the number of requests currently being handled.
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Spot API metrics (outbound calls to the spot-discovery server)
// =============================================================================

// SpotAPIRequestDuration times each outbound call to the spot API.
// operation: create_list, add_spot, create_community_post,
// create_review_post, create_list_post
var SpotAPIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "spot_api_request_duration_seconds",
		Help:    "Duration of outbound spot API calls in seconds",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"operation"},
)

// SpotAPIErrors counts failed outbound spot API calls.
var SpotAPIErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "spot_api_errors_total",
		Help: "Total number of failed spot API calls",
	},
	[]string{"operation"},
)

// =============================================================================
// Posts business metrics
// =============================================================================

// PostsCreated counts successfully created posts by kind.
var PostsCreated = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "posts_created_total",
		Help: "Total number of posts created",
	},
	[]string{"type"}, // community, review, list
)

// PostStageFailures counts community-post flows that stopped at a stage.
var PostStageFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "post_stage_failures_total",
		Help: "Total number of post creation flows failed, by stage",
	},
	[]string{"stage"}, // create_list, attach_spots, create_post
)

// PostValidationRejections counts requests rejected before any network call.
var PostValidationRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "post_validation_rejections_total",
		Help: "Total number of post requests rejected by client-side validation",
	},
	[]string{"type"},
)

// ReviewRatings tracks the distribution of submitted review ratings.
var ReviewRatings = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "review_post_rating",
		Help:    "Distribution of submitted review ratings",
		Buckets: []float64{1, 2, 3, 4, 5},
	},
)

// =============================================================================
// Kafka metrics (post event stream)
// =============================================================================

// KafkaMessagesProduced counts published post events.
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration times event publishing.
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors counts failed publishes.
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Redis metrics (idempotency key store)
// =============================================================================

// IdempotencyReplays counts requests short-circuited by a seen key.
var IdempotencyReplays = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "idempotency_replays_total",
		Help: "Total number of requests rejected as idempotency-key replays",
	},
)

// RedisErrors counts Redis failures in the idempotency store.
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)
