package domain

import "time"

// Baseline items every account starts with
const (
	BaselinePrivilegeID   = "survivor"
	BaselinePrivilegeName = "Выживший"
	BaselineWeaponID      = "wood-sword"
)

// Economy tuning
const (
	// SellValueDivisor halves the catalog price when liquidating inventory
	SellValueDivisor = 2

	// ClickRandomMin and ClickRandomMax bound the random click roll (inclusive)
	ClickRandomMin = 1
	ClickRandomMax = 2000

	// CasinoWinThreshold: a draw strictly above this wins
	CasinoWinThreshold = 0.5

	// CasinoPayoutMultiplier is applied to the stake on a win
	CasinoPayoutMultiplier = 2

	// PremiumCasePrice is the hard-currency price of a single premium case
	PremiumCasePrice = 1000

	// MaxGrantAmount caps a single admin grant
	MaxGrantAmount = 1_000_000_000
)

// Default admin grant amounts when the request omits one
const (
	DefaultGrantCoins        = 1000
	DefaultGrantDonat        = 100
	DefaultGrantCases        = 1
	DefaultGrantPremiumCases = 1
	DefaultGrantWeapons      = 1
)

// Timing of deferred effects
const (
	ClickCooldown     = 1000 * time.Millisecond
	CasinoRevealDelay = 1000 * time.Millisecond
	CaseRevealDelay   = 2000 * time.Millisecond
)

// Busy-gate action names
const (
	ActionClick    = "click"
	ActionCasino   = "casino"
	ActionOpenCase = "open_case"
)

// Display name generation
const (
	DisplayNamePrefix = "Player"
	DisplayNameDigits = 10000
)

// Admin grant types
const (
	GrantTypeCoins        = "coins"
	GrantTypeDonat        = "donat"
	GrantTypeCases        = "cases"
	GrantTypePremiumCases = "premium_cases"
	GrantTypePrivilege    = "privilege"
	GrantTypeWeapon       = "weapon"
)
