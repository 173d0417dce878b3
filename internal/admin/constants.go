package admin

import "github.com/osse101/MineClicker_Go/internal/domain"

// Grant types accepted by Grant
const (
	GrantCoins        = domain.GrantTypeCoins
	GrantDonat        = domain.GrantTypeDonat
	GrantCases        = domain.GrantTypeCases
	GrantPremiumCases = domain.GrantTypePremiumCases
	GrantPrivilege    = domain.GrantTypePrivilege
	GrantWeapon       = domain.GrantTypeWeapon
)

// ==================== Error Messages ====================

const (
	ErrMsgUnknownGrantTypeFmt = "unknown grant type %q: %w"
	ErrMsgGrantAmountFmt      = "grant amount %d exceeds %d: %w"
	ErrMsgWrongItemKindFmt    = "item %s is not a %s: %w"
	ErrMsgIssueTokenFailed    = "failed to issue admin token: %w"
	ErrMsgNotConfigured       = "admin credentials are not configured: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgLoginCalled        = "Admin login called"
	LogMsgLoginFailed        = "Admin login failed"
	LogMsgLoggedIn           = "Admin logged in"
	LogMsgGrantCalled        = "Admin grant called"
	LogMsgGrantApplied       = "Admin grant applied"
	LogMsgPublishEventFailed = "Failed to publish event"
)
