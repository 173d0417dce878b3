package handler

import (
	"net/http"

	"github.com/osse101/MineClicker_Go/internal/casino"
)

// WagerRequest stakes coins on the coin flip
type WagerRequest struct {
	Bet int `json:"bet" validate:"gt=0"`
}

// BetTiersResponse lists the stakes offered in the UI
type BetTiersResponse struct {
	Tiers []int `json:"tiers"`
}

// HandleWager places a bet. The stake is taken now; the outcome is credited
// and pushed over SSE when the reveal fires.
// @Summary Wager
// @Tags casino
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body WagerRequest true "Stake"
// @Success 202 {object} casino.Wager
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /api/v1/casino/wager [post]
func HandleWager(svc casino.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WagerRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Wager"); err != nil {
			return
		}

		wager, err := svc.Wager(r.Context(), identityOf(r), req.Bet)
		if err != nil {
			respondServiceError(w, r, "Wager", err)
			return
		}
		respondJSON(w, http.StatusAccepted, wager)
	}
}

// HandleBetTiers lists the preset stakes
// @Summary Bet tiers
// @Tags casino
// @Produce json
// @Success 200 {object} BetTiersResponse
// @Router /api/v1/casino/tiers [get]
func HandleBetTiers(svc casino.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, BetTiersResponse{Tiers: svc.BetTiers()})
	}
}
