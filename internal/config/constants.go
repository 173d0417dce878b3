package config

import "time"

// Storage backends
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Defaults
const (
	DefaultPort                    = 8080
	DefaultRateLimitRequests       = 3000
	DefaultLogLevel                = "info"
	DefaultLogFormat               = "text"
	DefaultLogDir                  = "logs"
	DefaultEnvironment             = "dev"
	DefaultLocale                  = "ru"
	DefaultStorage                 = StorageMemory
	DefaultDBMaxConns              = 10
	DefaultDBMaxConnIdleTime       = 5 * time.Minute
	DefaultDBMaxConnLifetime       = 30 * time.Minute
	DefaultJWTTTL                  = 24 * time.Hour
	DefaultClickPayoutPolicy       = "random"
	DefaultWorkerCount             = 4
	DefaultWorkerQueueSize         = 256
	DefaultAccountCacheSize        = 1024
	DefaultAccountCacheTTL         = 30 * time.Second
	DefaultMetricsSnapshotInterval = 30 * time.Second
	DefaultEventMaxRetries         = 3
	DefaultEventRetryDelay         = 500 * time.Millisecond
	DefaultDeadLetterPath          = "logs/deadletter.jsonl"
	DefaultEventLogRetention       = 30 * 24 * time.Hour
	DefaultEventLogCleanupInterval = time.Hour
)

// Example values shipped in .env.example that must never reach production
const (
	ExampleDBPassword    = "change_this_secure_password"
	ExampleJWTSecret     = "generate_with_openssl_rand_hex_32"
	ExampleAdminPassword = "change_this_admin_password"
)
