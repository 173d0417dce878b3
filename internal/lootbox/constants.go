package lootbox

const EffectNameReveal = "case.reveal"

// ==================== Error Messages ====================

const (
	ErrMsgNoStandardCases = "no standard cases to open: %w"
	ErrMsgNoPremiumCases  = "no premium cases to open: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgOpenCaseCalled     = "OpenCase called"
	LogMsgRevealPending      = "Open rejected, previous reveal pending"
	LogMsgCaseOpened         = "Case opened"
	LogMsgCaseRevealed       = "Case revealed"
	LogMsgPrizeGrantFailed   = "Failed to grant case prize"
	LogMsgPublishEventFailed = "Failed to publish event"
)
