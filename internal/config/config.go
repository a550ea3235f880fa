package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP
	HTTPPort string

	// TimescaleDB
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBMaxConns int32

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Pipeline channels
	DBChannelSize    int
	StateChannelSize int
	AlertChannelSize int

	// Batch writer tuning
	DBBatchSize       int
	DBFlushIntervalMS int

	// Worker counts
	DBWriterWorkers    int
	StateWriterWorkers int
	AlertWorkers       int

	// Auth
	AuthCacheTTLSeconds int
	ValidAPIKeys        []string

	// Kafka alert stream, disabled when no brokers are set
	KafkaBrokers    []string
	KafkaAlertTopic string

	// Live feed
	FeedEnabled  bool
	FeedInterval time.Duration
	FeedSeed     uint64

	// Generators
	ProfilesPath  string
	GeneratorSeed uint64

	// Inspections
	InspectionDelay time.Duration
	InspectionTTL   time.Duration

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8001"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "guardian_user"),
		DBPassword:          getEnv("DB_PASSWORD", "guardian_password"),
		DBName:              getEnv("DB_NAME", "predictive_guardian"),
		DBMaxConns:          int32(getEnvInt("DB_MAX_CONNS", 15)),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		RedisDB:             getEnvInt("REDIS_DB", 0),
		DBChannelSize:       getEnvInt("DB_CHANNEL_SIZE", 1000),
		StateChannelSize:    getEnvInt("STATE_CHANNEL_SIZE", 1000),
		AlertChannelSize:    getEnvInt("ALERT_CHANNEL_SIZE", 500),
		DBBatchSize:         getEnvInt("DB_BATCH_SIZE", 100),
		DBFlushIntervalMS:   getEnvInt("DB_FLUSH_INTERVAL_MS", 500),
		DBWriterWorkers:     getEnvInt("DB_WRITER_WORKERS", 2),
		StateWriterWorkers:  getEnvInt("STATE_WRITER_WORKERS", 2),
		AlertWorkers:        getEnvInt("ALERT_WORKERS", 1),
		AuthCacheTTLSeconds: getEnvInt("AUTH_CACHE_TTL_SECONDS", 300),
		ValidAPIKeys:        getEnvList("VALID_API_KEYS"),
		KafkaBrokers:        getEnvList("KAFKA_BROKERS"),
		KafkaAlertTopic:     getEnv("KAFKA_ALERT_TOPIC", "guardian.alerts"),
		FeedEnabled:         getEnvBool("FEED_ENABLED", true),
		FeedInterval:        getEnvDuration("FEED_INTERVAL", 2*time.Second),
		FeedSeed:            uint64(getEnvInt("FEED_SEED", 0)),
		ProfilesPath:        getEnv("PROFILES_PATH", ""),
		GeneratorSeed:       uint64(getEnvInt("GENERATOR_SEED", 0)),
		InspectionDelay:     getEnvDuration("INSPECTION_DELAY", 2500*time.Millisecond),
		InspectionTTL:       getEnvDuration("INSPECTION_TTL", time.Hour),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "text"),
	}
}

// Validate rejects settings the workers cannot run with.
func (c *Config) Validate() error {
	var errs []error
	positive := map[string]int{
		"DB_CHANNEL_SIZE":      c.DBChannelSize,
		"STATE_CHANNEL_SIZE":   c.StateChannelSize,
		"ALERT_CHANNEL_SIZE":   c.AlertChannelSize,
		"DB_BATCH_SIZE":        c.DBBatchSize,
		"DB_FLUSH_INTERVAL_MS": c.DBFlushIntervalMS,
		"DB_WRITER_WORKERS":    c.DBWriterWorkers,
		"STATE_WRITER_WORKERS": c.StateWriterWorkers,
		"ALERT_WORKERS":        c.AlertWorkers,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	if c.FeedInterval <= 0 {
		errs = append(errs, fmt.Errorf("FEED_INTERVAL must be positive, got %s", c.FeedInterval))
	}
	if c.InspectionDelay < 0 {
		errs = append(errs, fmt.Errorf("INSPECTION_DELAY must not be negative, got %s", c.InspectionDelay))
	}
	if c.InspectionTTL <= 0 {
		errs = append(errs, fmt.Errorf("INSPECTION_TTL must be positive, got %s", c.InspectionTTL))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaAlertTopic == "" {
		errs = append(errs, errors.New("KAFKA_ALERT_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DatabaseURL is the pgx connection string for the TimescaleDB settings.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?pool_max_conns=%d",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBMaxConns,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
