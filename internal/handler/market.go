package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/market"
)

// ListItemRequest offers one unit of an owned item for coins
type ListItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
	Price  int    `json:"price" validate:"gt=0"`
}

// ListingsResponse is the open market, oldest listing first
type ListingsResponse struct {
	Listings []domain.MarketListing `json:"listings"`
}

// HandleListings returns every open listing
// @Summary Market listings
// @Tags market
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListingsResponse
// @Router /api/v1/market [get]
func HandleListings(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listings, err := svc.Listings(r.Context())
		if err != nil {
			respondServiceError(w, r, "List market", err)
			return
		}
		if listings == nil {
			listings = []domain.MarketListing{}
		}
		respondJSON(w, http.StatusOK, ListingsResponse{Listings: listings})
	}
}

// HandleListItem moves one unit out of the caller's inventory onto the market
// @Summary List item
// @Tags market
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ListItemRequest true "Item and price"
// @Success 201 {object} DataResponse{data=domain.MarketListing}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/market [post]
func HandleListItem(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ListItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "List item"); err != nil {
			return
		}

		listing, err := svc.ListItem(r.Context(), identityOf(r), req.ItemID, req.Price)
		if err != nil {
			respondServiceError(w, r, "List item", err)
			return
		}
		respondJSON(w, http.StatusCreated, DataResponse{
			Message: fmt.Sprintf(MsgListedFmt, listing.ItemName, catalog.FormatAmount(listing.Price)),
			Data:    listing,
		})
	}
}

// HandleBuyListing buys a listing; exactly one concurrent buyer wins
// @Summary Buy listing
// @Tags market
// @Produce json
// @Security BearerAuth
// @Param listingID path string true "Listing id"
// @Success 200 {object} DataResponse{data=market.Purchase}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/market/{listingID}/buy [post]
func HandleBuyListing(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID, ok := GetPathParam(r, w, "listingID")
		if !ok {
			return
		}

		purchase, err := svc.BuyListing(r.Context(), identityOf(r), listingID)
		if err != nil {
			respondServiceError(w, r, "Buy listing", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{
			Message: fmt.Sprintf(MsgBoughtListedFmt, purchase.Listing.ItemName, purchase.Listing.SellerName, catalog.FormatAmount(purchase.Listing.Price)),
			Data:    purchase,
		})
	}
}
