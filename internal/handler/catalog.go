package handler

import (
	"net/http"
	"time"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/domain"
)

// Timings are the configured deferred-effect durations, in milliseconds
type Timings struct {
	ClickCooldownMs     int64 `json:"click_cooldown_ms"`
	CasinoRevealDelayMs int64 `json:"casino_reveal_delay_ms"`
	CaseRevealDelayMs   int64 `json:"case_reveal_delay_ms"`
}

// NewTimings converts durations into the wire form
func NewTimings(click, casinoReveal, caseReveal time.Duration) Timings {
	return Timings{
		ClickCooldownMs:     click.Milliseconds(),
		CasinoRevealDelayMs: casinoReveal.Milliseconds(),
		CaseRevealDelayMs:   caseReveal.Milliseconds(),
	}
}

// CatalogResponse is everything a client needs to render the shop
type CatalogResponse struct {
	Weapons          []domain.Item           `json:"weapons"`
	Privileges       []domain.Item           `json:"privileges"`
	CasePacks        []domain.CaseDefinition `json:"case_packs"`
	PremiumCasePrice int                     `json:"premium_case_price"`
	BetTiers         []int                   `json:"bet_tiers"`
	Timings          Timings                 `json:"timings"`
}

// HandleCatalog returns the static catalog and the configured timings
// @Summary Catalog
// @Tags catalog
// @Produce json
// @Success 200 {object} CatalogResponse
// @Router /api/v1/catalog [get]
func HandleCatalog(timings Timings) http.HandlerFunc {
	resp := CatalogResponse{
		Weapons:          catalog.Weapons(),
		Privileges:       catalog.Privileges(),
		CasePacks:        catalog.CasePacks(),
		PremiumCasePrice: domain.PremiumCasePrice,
		BetTiers:         catalog.BetTiers(),
		Timings:          timings,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, resp)
	}
}
