package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Server  ServerConfig
	SpotAPI SpotAPIConfig
	Kafka   KafkaConfig
	Redis   RedisConfig
	JWT     JWTConfig
}

type ServerConfig struct {
	Host string // bind address (default 0.0.0.0)
	Port string // server port (default 8084)
}

type SpotAPIConfig struct {
	BaseURL string        // base URL of the spot-discovery server
	Token   string        // bearer token for spot API calls
	Timeout time.Duration // per-request timeout
}

type KafkaConfig struct {
	Brokers []string // broker list (host:port); empty disables event publishing
	Topic   string   // topic for POST_CREATED events
}

type RedisConfig struct {
	Addr           string        // empty disables the idempotency middleware
	IdempotencyTTL time.Duration // how long a seen Idempotency-Key is remembered
}

type JWTConfig struct {
	Secret string // must match the auth service issuing the tokens
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8084"),
		},
		SpotAPI: SpotAPIConfig{
			BaseURL: getEnv("SPOT_API_BASE_URL", "http://localhost:8080"),
			Token:   getEnv("SPOT_API_TOKEN", ""),
			Timeout: getEnvDuration("SPOT_API_TIMEOUT", 10*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "post_events"),
		},
		Redis: RedisConfig{
			Addr:           getEnv("REDIS_ADDR", ""),
			IdempotencyTTL: getEnvDuration("IDEMPOTENCY_TTL", 24*time.Hour),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitNonEmpty(value string) []string {
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
