package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8084", cfg.Server.Address())
	assert.Equal(t, "http://localhost:8080", cfg.SpotAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.SpotAPI.Timeout)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.Equal(t, "post_events", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Redis.IdempotencyTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SPOT_API_BASE_URL", "https://spots.example.com")
	t.Setenv("SPOT_API_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092 ,")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Address())
	assert.Equal(t, "https://spots.example.com", cfg.SpotAPI.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.SpotAPI.Timeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("SPOT_API_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.SpotAPI.Timeout)
}
