package casino

const EffectNameReveal = "casino.reveal"

// ==================== Error Messages ====================

const (
	ErrMsgInvalidBetFmt        = "bet must be positive, got %d: %w"
	ErrMsgInsufficientFundsFmt = "cannot stake %d coins with balance %d: %w"
	ErrMsgCreditWinFailed      = "failed to credit casino win: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgWagerCalled        = "Wager called"
	LogMsgRevealPending      = "Wager rejected, previous reveal pending"
	LogMsgWagerPlaced        = "Wager placed"
	LogMsgWagerResolved      = "Wager resolved"
	LogMsgWagerCreditFailed  = "Failed to credit casino win"
	LogMsgPublishEventFailed = "Failed to publish event"
)
