// Package config builds the process configuration from environment variables
// so main stays lean. Every knob has a development default; production
// deployments override via the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	platformstrings "cidreg/pkg/platform/strings"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
	JWTSigningKey   string
	AdminSecretHash string
}

// Postgres captures the relational store configuration. An empty URL selects
// the in-memory stores.
type Postgres struct {
	URL string
}

// Redis captures the resolve cache configuration. An empty URL disables the
// cache.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// Kafka captures the event sink configuration. An empty broker list disables
// the sink.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Registry captures the admin-controlled registry parameters' initial values.
type Registry struct {
	Enabled      bool
	BasePrice    uint64
	Treasury     string
	CIDTypeLabel string
	VaultAddress string
}

// Config is the full process configuration.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Registry Registry
}

// FromEnv builds the configuration from CIDREG_* environment variables.
func FromEnv() (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:            envOr("CIDREG_ADDR", ":8080"),
			ShutdownTimeout: envDuration("CIDREG_SHUTDOWN_TIMEOUT", 15*time.Second),
			LogLevel:        envOr("CIDREG_LOG_LEVEL", "info"),
			LogFormat:       envOr("CIDREG_LOG_FORMAT", "json"),
			JWTSigningKey:   envOr("CIDREG_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			AdminSecretHash: os.Getenv("CIDREG_ADMIN_SECRET_HASH"),
		},
		Postgres: Postgres{
			URL: os.Getenv("CIDREG_POSTGRES_URL"),
		},
		Redis: Redis{
			URL:          os.Getenv("CIDREG_REDIS_URL"),
			PoolSize:     envInt("CIDREG_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("CIDREG_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("CIDREG_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("CIDREG_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("CIDREG_REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     envDuration("CIDREG_RESOLVE_CACHE_TTL", 5*time.Minute),
		},
		Kafka: Kafka{
			Brokers: splitList(os.Getenv("CIDREG_KAFKA_BROKERS")),
			Topic:   envOr("CIDREG_KAFKA_TOPIC", "cidreg.lifecycle"),
		},
		Registry: Registry{
			Enabled:      envBool("CIDREG_REGISTRY_ENABLED", true),
			Treasury:     envOr("CIDREG_TREASURY_ADDRESS", "treasury"),
			CIDTypeLabel: envOr("CIDREG_CID_TYPE_LABEL", "cid"),
			VaultAddress: envOr("CIDREG_ISSUER_VAULT_ADDRESS", "issuer-vault"),
		},
	}

	basePrice, err := envUint64("CIDREG_BASE_PRICE", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.Registry.BasePrice = basePrice
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envUint64(key string, fallback uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return parsed, nil
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	out := platformstrings.DedupeAndTrim(strings.Split(v, ","))
	if len(out) == 0 {
		return nil
	}
	return out
}
