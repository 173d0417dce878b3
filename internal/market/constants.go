package market

// ==================== Error Messages ====================

const (
	ErrMsgInvalidPriceFmt      = "listing price must be positive, got %d: %w"
	ErrMsgItemNotOwnedFmt      = "no %s in inventory to list: %w"
	ErrMsgInsufficientFundsFmt = "listing costs %d coins, balance is %d: %w"
	ErrMsgCreateListingFailed  = "failed to create listing: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgListItemCalled     = "ListItem called"
	LogMsgItemListed         = "Item listed"
	LogMsgBuyListingCalled   = "BuyListing called"
	LogMsgListingSold        = "Listing sold"
	LogMsgSellerGone         = "Seller account no longer exists, proceeds dropped"
	LogMsgSellerCreditFailed = "Failed to credit seller"
	LogMsgRestoreFailed      = "Failed to restore state after aborted market operation"
	LogMsgPublishEventFailed = "Failed to publish event"
)
