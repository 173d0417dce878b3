package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.bought")
const (
	EventTypeAccountRegistered = "account.registered"
	EventTypeClickResolved     = "click.resolved"
	EventTypeItemBought        = "item.bought"
	EventTypeInventorySold     = "inventory.sold"
	EventTypeCasinoWagered     = "casino.wagered"
	EventTypeCasinoResolved    = "casino.resolved"
	EventTypeCasePackBought    = "case_pack.bought"
	EventTypeCaseOpened        = "case.opened"
	EventTypeCaseRevealed      = "case.revealed"
	EventTypeListingCreated    = "market.listing_created"
	EventTypeListingSold       = "market.listing_sold"
	EventTypeAdminGrant        = "admin.grant"
)

// ClickPayload is published for every accepted click
type ClickPayload struct {
	Identity   string `json:"identity"`
	Payout     int    `json:"payout"`
	Multiplier int    `json:"multiplier"`
	Timestamp  int64  `json:"timestamp"`
}

// ItemBoughtPayload is published after a catalog purchase
type ItemBoughtPayload struct {
	Identity  string   `json:"identity"`
	ItemID    string   `json:"item_id"`
	Currency  Currency `json:"currency"`
	Price     int      `json:"price"`
	Timestamp int64    `json:"timestamp"`
}

// InventorySoldPayload is published after a sell-all
type InventorySoldPayload struct {
	Identity      string `json:"identity"`
	ItemsSold     int    `json:"items_sold"`
	TotalCredited int    `json:"total_credited"`
	Timestamp     int64  `json:"timestamp"`
}

// CasinoPayload is published when a wager is placed and again when it resolves
type CasinoPayload struct {
	WagerID   string `json:"wager_id"`
	Identity  string `json:"identity"`
	Bet       int    `json:"bet"`
	Won       bool   `json:"won"`
	Credited  int    `json:"credited"`
	Timestamp int64  `json:"timestamp"`
}

// CasePayload is published when a case is opened and again when it is revealed
type CasePayload struct {
	OpeningID string `json:"opening_id"`
	Identity  string `json:"identity"`
	Premium   bool   `json:"premium"`
	PrizeID   string `json:"prize_id"`
	PrizeName string `json:"prize_name"`
	Timestamp int64  `json:"timestamp"`
}

// CasePackPayload is published when standard or premium cases are bought
type CasePackPayload struct {
	Identity  string `json:"identity"`
	PackID    string `json:"pack_id"`
	Count     int    `json:"count"`
	Premium   bool   `json:"premium"`
	Price     int    `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// ListingPayload is published when a listing is created or sold
type ListingPayload struct {
	ListingID string `json:"listing_id"`
	ItemID    string `json:"item_id"`
	Price     int    `json:"price"`
	Seller    string `json:"seller"`
	Buyer     string `json:"buyer,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// AdminGrantPayload is published for every admin grant
type AdminGrantPayload struct {
	Target    string `json:"target"`
	GrantType string `json:"grant_type"`
	Amount    int    `json:"amount"`
	ItemID    string `json:"item_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// AccountPayload is published when an account is registered
type AccountPayload struct {
	Identity    string `json:"identity"`
	DisplayName string `json:"display_name"`
	Timestamp   int64  `json:"timestamp"`
}
