package metrics

import (
	"time"
)

// SpotAPIOperation names an outbound spot API call for metric labels.
type SpotAPIOperation string

const (
	SpotAPIOpCreateList          SpotAPIOperation = "create_list"
	SpotAPIOpAddSpot             SpotAPIOperation = "add_spot"
	SpotAPIOpCreateCommunityPost SpotAPIOperation = "create_community_post"
	SpotAPIOpCreateReviewPost    SpotAPIOperation = "create_review_post"
	SpotAPIOpCreateListPost      SpotAPIOperation = "create_list_post"
)

// SpotAPITimer observes the duration of one outbound call.
type SpotAPITimer struct {
	operation SpotAPIOperation
	start     time.Time
}

func NewSpotAPITimer(op SpotAPIOperation) *SpotAPITimer {
	return &SpotAPITimer{
		operation: op,
		start:     time.Now(),
	}
}

func (t *SpotAPITimer) ObserveDuration() {
	SpotAPIRequestDuration.WithLabelValues(string(t.operation)).Observe(time.Since(t.start).Seconds())
}

func RecordSpotAPIError(op SpotAPIOperation) {
	SpotAPIErrors.WithLabelValues(string(op)).Inc()
}

// KafkaProduceTimer wraps the produce metrics for one message.
type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}

func RecordRedisError(service, operation string) {
	RedisErrors.WithLabelValues(service, operation).Inc()
}
