package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/economy"
)

// PurchaseRequest buys one catalog item. Currency defaults to the item's
// usual currency when omitted.
type PurchaseRequest struct {
	ItemID   string `json:"item_id" validate:"required"`
	Currency string `json:"currency" validate:"omitempty,currency"`
}

// CanPurchaseResponse answers whether the buy button should be enabled
type CanPurchaseResponse struct {
	ItemID      string `json:"item_id"`
	CanPurchase bool   `json:"can_purchase"`
}

// HandleClick resolves one click. A click inside the cooldown is dropped and
// reported with accepted=false.
// @Summary Click
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} economy.ClickResult
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/game/click [post]
func HandleClick(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Click(r.Context(), identityOf(r))
		if err != nil {
			respondServiceError(w, r, "Click", err)
			return
		}
		if !result.Accepted {
			w.Header().Set("Retry-After", strconv.FormatInt((result.RetryAfterMs+999)/1000, 10))
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandlePurchase buys a weapon or privilege from the catalog
// @Summary Buy item
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PurchaseRequest true "Item and currency"
// @Success 200 {object} DataResponse{data=economy.PurchaseResult}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/game/purchase [post]
func HandlePurchase(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase"); err != nil {
			return
		}

		currency := domain.Currency(strings.ToLower(req.Currency))
		result, err := svc.Purchase(r.Context(), identityOf(r), req.ItemID, currency)
		if err != nil {
			respondServiceError(w, r, "Purchase", err)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{
			Message: fmt.Sprintf(MsgPurchasedFmt, result.Item.Name, catalog.FormatAmount(result.Price), result.Currency),
			Data:    result,
		})
	}
}

// HandleCanPurchase reports whether an item may be bought right now
// @Summary Can purchase
// @Tags game
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Catalog item id"
// @Success 200 {object} CanPurchaseResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/game/purchase/{itemID} [get]
func HandleCanPurchase(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParam(r, w, "itemID")
		if !ok {
			return
		}

		can, err := svc.CanPurchase(r.Context(), identityOf(r), itemID)
		if err != nil {
			respondServiceError(w, r, "Can purchase", err)
			return
		}
		respondJSON(w, http.StatusOK, CanPurchaseResponse{ItemID: itemID, CanPurchase: can})
	}
}

// HandleSellAll liquidates the whole inventory at half price
// @Summary Sell everything
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse{data=economy.SellAllResult}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/game/sell-all [post]
func HandleSellAll(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.SellAll(r.Context(), identityOf(r))
		if err != nil {
			respondServiceError(w, r, "Sell all", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{
			Message: fmt.Sprintf(MsgSoldAllFmt, result.ItemsSold, catalog.FormatAmount(result.Credited)),
			Data:    result,
		})
	}
}
