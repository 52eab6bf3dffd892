package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores relay service and worker settings.
type Config struct {
	Port         int
	LogLevel     string
	Backend      Backend
	StatusRetry  StatusRetry
	Availability Availability
	Tariff       Tariff
	Cache        Cache
	Kafka        Kafka
	RateLimit    RateLimit
	Pprof        Pprof
}

// Backend is the commerce REST backend.
type Backend struct {
	BaseURL string
	Timeout time.Duration
	// TokenFile holds the bearer token of the current session; it is re-read
	// on every call. Token is used when the file is absent.
	TokenFile string
	Token     string
}

// StatusRetry is the retry policy of direct status updates.
type StatusRetry struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Availability configures courier polling.
type Availability struct {
	PollInterval time.Duration
	DefaultLat   float64
	DefaultLon   float64
	DemoCouriers bool
	// SessionIdleTTL closes assignment sessions nobody has read for that long.
	SessionIdleTTL time.Duration
}

// Tariff configures checkout estimates.
type Tariff struct {
	FreeShippingThreshold float64
	FlatFee               float64
}

// Cache configures the query cache. Redis is used when RedisAddr is set.
type Cache struct {
	TTL            time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisNamespace string
}

// Kafka configures the status event consumer.
type Kafka struct {
	Brokers []string
	GroupID string
	Topic   string
}

// RateLimit configures the per-client HTTP limiter.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Pprof configures the profiling endpoints.
type Pprof struct {
	Enabled bool
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Config{
		Port:         defaultPort,
		LogLevel:     defaultLogLevel,
		Backend:      defaultBackend,
		StatusRetry:  defaultStatusRetry,
		Availability: defaultAvailability,
		Tariff:       defaultTariff,
		Cache:        defaultCache,
		RateLimit:    defaultRateLimit,
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)

	cfg.Backend.BaseURL = envString("BACKEND_BASE_URL", cfg.Backend.BaseURL)
	if cfg.Backend.Timeout, err = envDuration("BACKEND_TIMEOUT", cfg.Backend.Timeout); err != nil {
		return nil, err
	}
	cfg.Backend.TokenFile = envString("TOKEN_FILE", cfg.Backend.TokenFile)
	cfg.Backend.Token = envString("BACKEND_TOKEN", cfg.Backend.Token)

	if cfg.StatusRetry.MaxAttempts, err = envInt("STATUS_RETRY_ATTEMPTS", cfg.StatusRetry.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.StatusRetry.BaseDelay, err = envDuration("STATUS_RETRY_BASE_DELAY", cfg.StatusRetry.BaseDelay); err != nil {
		return nil, err
	}
	if cfg.StatusRetry.MaxDelay, err = envDuration("STATUS_RETRY_MAX_DELAY", cfg.StatusRetry.MaxDelay); err != nil {
		return nil, err
	}

	if cfg.Availability.PollInterval, err = envDuration("POLL_INTERVAL", cfg.Availability.PollInterval); err != nil {
		return nil, err
	}
	if cfg.Availability.DefaultLat, err = envFloat("DEFAULT_LAT", cfg.Availability.DefaultLat); err != nil {
		return nil, err
	}
	if cfg.Availability.DefaultLon, err = envFloat("DEFAULT_LON", cfg.Availability.DefaultLon); err != nil {
		return nil, err
	}
	if cfg.Availability.DemoCouriers, err = envBool("DEMO_COURIERS", cfg.Availability.DemoCouriers); err != nil {
		return nil, err
	}
	if cfg.Availability.SessionIdleTTL, err = envDuration("SESSION_IDLE_TTL", cfg.Availability.SessionIdleTTL); err != nil {
		return nil, err
	}

	if cfg.Tariff.FreeShippingThreshold, err = envFloat("FREE_SHIPPING_THRESHOLD", cfg.Tariff.FreeShippingThreshold); err != nil {
		return nil, err
	}
	if cfg.Tariff.FlatFee, err = envFloat("FLAT_SHIPPING_FEE", cfg.Tariff.FlatFee); err != nil {
		return nil, err
	}

	if cfg.Cache.TTL, err = envDuration("CACHE_TTL", cfg.Cache.TTL); err != nil {
		return nil, err
	}
	cfg.Cache.RedisAddr = envString("REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = envString("REDIS_PASSWORD", cfg.Cache.RedisPassword)
	if cfg.Cache.RedisDB, err = envInt("REDIS_DB", cfg.Cache.RedisDB); err != nil {
		return nil, err
	}

	cfg.Kafka.Brokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.Kafka.GroupID = envString("KAFKA_GROUP_ID", "delivery-relay")
	cfg.Kafka.Topic = envString("KAFKA_TOPIC", "")

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}

	if cfg.Pprof.Enabled, err = envBool("PPROF_ENABLED", cfg.Pprof.Enabled); err != nil {
		return nil, err
	}
	cfg.Pprof.User = envString("PPROF_USER", "")
	cfg.Pprof.Pass = envString("PPROF_PASS", "")

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Backend.BaseURL, "backend-url", cfg.Backend.BaseURL, "commerce backend base URL")
	pflag.DurationVar(&cfg.Availability.PollInterval, "poll-interval", cfg.Availability.PollInterval, "courier availability poll interval")
	pflag.BoolVar(&cfg.Availability.DemoCouriers, "demo-couriers", cfg.Availability.DemoCouriers, "offer demo couriers when none are available")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid BACKEND_BASE_URL: %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("invalid BACKEND_TIMEOUT: %s", c.Backend.Timeout)
	}
	if c.StatusRetry.MaxAttempts < 1 {
		return fmt.Errorf("invalid STATUS_RETRY_ATTEMPTS: %d", c.StatusRetry.MaxAttempts)
	}
	if c.Availability.PollInterval <= 0 {
		return fmt.Errorf("invalid POLL_INTERVAL: %s", c.Availability.PollInterval)
	}
	if c.Availability.SessionIdleTTL <= 0 {
		return fmt.Errorf("invalid SESSION_IDLE_TTL: %s", c.Availability.SessionIdleTTL)
	}
	if c.Availability.DefaultLat < -90 || c.Availability.DefaultLat > 90 ||
		c.Availability.DefaultLon < -180 || c.Availability.DefaultLon > 180 {
		return fmt.Errorf("invalid default origin: %v,%v", c.Availability.DefaultLat, c.Availability.DefaultLon)
	}
	if c.Tariff.FreeShippingThreshold < 0 || c.Tariff.FlatFee < 0 {
		return fmt.Errorf("invalid tariff settings")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Rate <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("invalid rate limit: rate=%v burst=%d", c.RateLimit.Rate, c.RateLimit.Burst)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
