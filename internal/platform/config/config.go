package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	PostgresURL string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// RequestRetention bounds how long public blood requests stay visible.
	RequestRetention time.Duration
	// CleanupInterval is how often the retention worker sweeps expired requests.
	CleanupInterval time.Duration
}

// RedisConfig captures Redis connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig captures broker settings for the urgent-request broadcast.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LIFELINE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	topic := os.Getenv("LIFELINE_KAFKA_TOPIC")
	if topic == "" {
		topic = "lifeline.urgent-requests"
	}

	var brokers []string
	if raw := os.Getenv("LIFELINE_KAFKA_BROKERS"); raw != "" {
		brokers = splitAndTrim(raw)
	}

	return Server{
		Addr:        addr,
		PostgresURL: os.Getenv("LIFELINE_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("LIFELINE_REDIS_URL"),
			PoolSize:     envInt("LIFELINE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("LIFELINE_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   topic,
		},
		RequestRetention: envDuration("LIFELINE_REQUEST_RETENTION", 24*time.Hour),
		CleanupInterval:  envDuration("LIFELINE_CLEANUP_INTERVAL", time.Hour),
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
