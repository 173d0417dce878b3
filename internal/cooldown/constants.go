package cooldown

import "time"

const (
	// DefaultCooldownDuration is the fallback cooldown when no specific duration is configured
	DefaultCooldownDuration = time.Second
)

// =============================================================================
// Hash Constants
// =============================================================================

const (
	// HashSeparator is the separator used when combining identity and action for advisory lock hashing
	HashSeparator = ":"

	// HashMaskPositiveInt64 keeps advisory lock keys positive
	HashMaskPositiveInt64 = 0x7FFFFFFFFFFFFFFF
)

// =============================================================================
// SQL Query Constants
// =============================================================================

const (
	SQLAdvisoryLock = "SELECT pg_advisory_xact_lock($1)"

	SQLSelectLastUsed = `
		SELECT last_used_at
		FROM account_cooldowns
		WHERE account_id = $1 AND action_name = $2
	`

	SQLDeleteCooldown = `DELETE FROM account_cooldowns WHERE account_id = $1 AND action_name = $2`

	SQLUpsertCooldown = `
		INSERT INTO account_cooldowns (account_id, action_name, last_used_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, action_name) DO UPDATE
		SET last_used_at = EXCLUDED.last_used_at
	`
)

// =============================================================================
// Error Message Constants
// =============================================================================

const (
	ErrMsgCheckCooldownFailed     = "failed to check cooldown: %w"
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgAcquireLockFailed       = "failed to acquire advisory lock: %w"
	ErrMsgGetCooldownTxFailed     = "failed to get cooldown within transaction: %w"
	ErrMsgUpdateCooldownFailed    = "failed to update cooldown: %w"
	ErrMsgCommitTransactionFailed = "failed to commit cooldown transaction: %w"
	ErrMsgResetCooldownFailed     = "failed to reset cooldown: %w"
	ErrMsgGetLastUsedFailed       = "failed to get last used: %w"
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	LogMsgDevModeBypass         = "DEV_MODE: Bypassing cooldown enforcement"
	LogMsgRaceConditionDetected = "Race condition detected - concurrent request on cooldown"
	LogMsgCooldownEnforced      = "Cooldown enforced successfully"
)

// =============================================================================
// Error Message Format Strings (for ErrOnCooldown.Error())
// =============================================================================

const (
	ErrFmtCooldownWithMinutes = "You can %s again in %dm %ds"
	ErrFmtCooldownSecondsOnly = "You can %s again in %ds"
	ErrFmtCooldownMillis      = "You can %s again in %dms"
)

const (
	SecondsPerMinute = 60
)
