// Package config loads service configuration from the environment, reading
// an optional .env file first.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	TrustedProxies []string
	RateLimit      int
	LogLevel       string
	LogFormat      string
	LogDir         string
	Environment    string
	Version        string
	Locale         string

	Storage           string
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	AccountCacheSize  int
	AccountCacheTTL   time.Duration

	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string

	ClickPayoutPolicy string
	ClickCooldown     time.Duration
	CasinoRevealDelay time.Duration
	CaseRevealDelay   time.Duration
	DevMode           bool

	WorkerCount             int
	WorkerQueueSize         int
	MetricsSnapshotInterval time.Duration
	EventMaxRetries         int
	EventRetryDelay         time.Duration
	DeadLetterPath          string
	EventLogRetention       time.Duration
	EventLogCleanupInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables may be set instead
	_ = godotenv.Load()

	cfg := &Config{
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
		RateLimit:      getEnvAsInt("RATE_LIMIT_REQUESTS", DefaultRateLimitRequests),

		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:      getEnv("LOG_DIR", DefaultLogDir),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:     getEnv("VERSION", "dev"),
		Locale:      getEnv("LOCALE", DefaultLocale),

		Storage:           strings.ToLower(getEnv("STORAGE", DefaultStorage)),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "mineclicker"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		AccountCacheSize:  getEnvAsInt("ACCOUNT_CACHE_SIZE", DefaultAccountCacheSize),
		AccountCacheTTL:   getEnvAsDuration("ACCOUNT_CACHE_TTL", DefaultAccountCacheTTL),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTTTL:        getEnvAsDuration("JWT_TTL", DefaultJWTTTL),
		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		ClickPayoutPolicy: strings.ToLower(getEnv("CLICK_PAYOUT_POLICY", DefaultClickPayoutPolicy)),
		ClickCooldown:     getEnvAsDuration("CLICK_COOLDOWN", 0),
		CasinoRevealDelay: getEnvAsDuration("CASINO_REVEAL_DELAY", 0),
		CaseRevealDelay:   getEnvAsDuration("CASE_REVEAL_DELAY", 0),
		DevMode:           getEnvAsBool("DEV_MODE", false),

		WorkerCount:             getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
		WorkerQueueSize:         getEnvAsInt("WORKER_QUEUE_SIZE", DefaultWorkerQueueSize),
		MetricsSnapshotInterval: getEnvAsDuration("METRICS_SNAPSHOT_INTERVAL", DefaultMetricsSnapshotInterval),
		EventMaxRetries:         getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:         getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		DeadLetterPath:          getEnv("EVENT_DEADLETTER_PATH", DefaultDeadLetterPath),
		EventLogRetention:       getEnvAsDuration("EVENT_LOG_RETENTION", DefaultEventLogRetention),
		EventLogCleanupInterval: getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultEventLogCleanupInterval),
	}

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(DefaultPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable must be set")
	}
	if cfg.Storage != StorageMemory && cfg.Storage != StoragePostgres {
		return nil, fmt.Errorf("invalid STORAGE value %q: want %s or %s", cfg.Storage, StorageMemory, StoragePostgres)
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping empty entries
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns defaultValue when the variable is unset or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration returns defaultValue when the variable is unset or not a
// Go duration string
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// UsesPostgres reports whether the Postgres backend is selected
func (c *Config) UsesPostgres() bool {
	return c.Storage == StoragePostgres
}
