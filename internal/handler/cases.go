package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/MineClicker_Go/internal/economy"
	"github.com/osse101/MineClicker_Go/internal/lootbox"
)

// BuyCasePackRequest selects one of the catalog case packs
type BuyCasePackRequest struct {
	PackID string `json:"pack_id" validate:"required"`
}

// OpenCaseRequest opens one standard or premium case
type OpenCaseRequest struct {
	Premium bool `json:"premium"`
}

// HandleBuyCasePack buys a pack of standard cases for donat
// @Summary Buy case pack
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BuyCasePackRequest true "Pack"
// @Success 200 {object} DataResponse{data=economy.CasePurchaseResult}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cases/buy [post]
func HandleBuyCasePack(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyCasePackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy case pack"); err != nil {
			return
		}

		result, err := svc.BuyCasePack(r.Context(), identityOf(r), req.PackID)
		if err != nil {
			respondServiceError(w, r, "Buy case pack", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: fmt.Sprintf(MsgCasesAddedFmt, result.Added), Data: result})
	}
}

// HandleBuyPremiumCase buys a single premium case for donat
// @Summary Buy premium case
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse{data=economy.CasePurchaseResult}
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/cases/premium/buy [post]
func HandleBuyPremiumCase(svc economy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.BuyPremiumCase(r.Context(), identityOf(r))
		if err != nil {
			respondServiceError(w, r, "Buy premium case", err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: fmt.Sprintf(MsgCasesAddedFmt, result.Added), Data: result})
	}
}

// HandleOpenCase opens a case. The prize is drawn now and lands in the
// inventory when the reveal fires after reveal_after_ms.
// @Summary Open case
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OpenCaseRequest true "Case kind"
// @Success 202 {object} lootbox.Opening
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/cases/open [post]
func HandleOpenCase(svc lootbox.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OpenCaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open case"); err != nil {
			return
		}

		opening, err := svc.OpenCase(r.Context(), identityOf(r), req.Premium)
		if err != nil {
			respondServiceError(w, r, "Open case", err)
			return
		}
		respondJSON(w, http.StatusAccepted, opening)
	}
}
