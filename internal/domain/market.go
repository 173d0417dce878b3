package domain

import "time"

// MarketListing is a detached offer of one inventory unit. Once created it no
// longer depends on the seller's live account state.
type MarketListing struct {
	ID             string    `json:"id"`
	ItemID         string    `json:"item_id"`
	ItemName       string    `json:"item_name"`
	Price          int       `json:"price"`
	SellerName     string    `json:"seller"`
	SellerIdentity string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}
