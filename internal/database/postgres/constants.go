package postgres

import "time"

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Account read cache defaults
const (
	DefaultCacheSize = 1024
	DefaultCacheTTL  = 30 * time.Second
)

// SQL Query Constants
const (
	sqlInsertAccount = `
		INSERT INTO accounts (identity, password, display_name, coins, donat, clicks, inventory,
			active_privilege, cases, premium_cases, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1, $11, $11)
		ON CONFLICT (identity) DO NOTHING`

	sqlSelectAccountColumns = `
		SELECT identity, password, display_name, coins, donat, clicks, inventory,
			active_privilege, cases, premium_cases, version, created_at, updated_at
		FROM accounts`

	sqlSelectAccount = sqlSelectAccountColumns + ` WHERE identity = $1`

	sqlListAccounts = sqlSelectAccountColumns + ` ORDER BY identity`

	sqlUpdateAccount = `
		UPDATE accounts
		SET display_name = $3, coins = $4, donat = $5, clicks = $6, inventory = $7,
			active_privilege = $8, cases = $9, premium_cases = $10,
			version = version + 1, updated_at = NOW()
		WHERE identity = $1 AND version = $2
		RETURNING version, updated_at`

	sqlAccountExists = `SELECT EXISTS (SELECT 1 FROM accounts WHERE identity = $1)`

	sqlInsertListing = `
		INSERT INTO market_listings (listing_id, item_id, item_name, price, seller_name, seller_identity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	sqlSelectListingColumns = `
		SELECT listing_id, item_id, item_name, price, seller_name, seller_identity, created_at
		FROM market_listings`

	sqlSelectListing = sqlSelectListingColumns + ` WHERE listing_id = $1`

	sqlListListings = sqlSelectListingColumns + ` ORDER BY created_at, seq`

	sqlDeleteListing = `DELETE FROM market_listings WHERE listing_id = $1`

	sqlInsertEvent = `
		INSERT INTO event_log (event_type, identity, payload, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	sqlSelectEvents = `
		SELECT id, event_type, identity, payload, created_at
		FROM event_log
		WHERE 1=1`

	sqlDeleteEventsBefore = `DELETE FROM event_log WHERE created_at < $1`
)

// Error messages
const (
	ErrMsgBeginTxFailed       = "failed to begin transaction: %w"
	ErrMsgCommitFailed        = "failed to commit transaction: %w"
	ErrMsgInsertAccountFailed = "failed to insert account: %w"
	ErrMsgSelectAccountFailed = "failed to select account: %w"
	ErrMsgUpdateAccountFailed = "failed to update account: %w"
	ErrMsgListAccountsFailed  = "failed to list accounts: %w"
	ErrMsgEncodeInventory     = "failed to encode inventory: %w"
	ErrMsgDecodeInventory     = "failed to decode inventory: %w"
	ErrMsgInsertListingFailed = "failed to insert listing: %w"
	ErrMsgSelectListingFailed = "failed to select listing: %w"
	ErrMsgDeleteListingFailed = "failed to delete listing: %w"
	ErrMsgListListingsFailed  = "failed to list listings: %w"
	ErrMsgInsertEventFailed   = "failed to insert event: %w"
	ErrMsgListEventsFailed    = "failed to list events: %w"
	ErrMsgDeleteEventsFailed  = "failed to delete events: %w"
)

// Log messages
const (
	LogMsgVersionConflict = "Account save lost a version race"
)
