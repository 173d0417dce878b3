package economy

// PremiumCasePackID names the single premium case in events and errors
const PremiumCasePackID = "premium-case"

// Payout policy names accepted in configuration
const (
	PayoutPolicyFlat   = "flat"
	PayoutPolicyRandom = "random"
)

// ==================== Error Messages ====================

const (
	ErrMsgInsufficientFundsFmt = "cannot afford %s (price %d %s, balance %d): %w"
	ErrMsgUpdateAccountFailed  = "failed to update account: %w"
	ErrMsgGetAccountFailed     = "failed to get account: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgClickCalled        = "Click called"
	LogMsgClickRejected      = "Click dropped during cooldown"
	LogMsgPurchaseCalled     = "Purchase called"
	LogMsgItemPurchased      = "Item purchased"
	LogMsgSellAllCalled      = "SellAll called"
	LogMsgInventorySold      = "Inventory liquidated"
	LogMsgBuyCasePackCalled  = "BuyCasePack called"
	LogMsgCasesPurchased     = "Cases purchased"
	LogMsgPublishEventFailed = "Failed to publish event"
)
