package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineClicker_Go/internal/database/memory"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
)

func TestEventMetricsCollector_RecordsBusinessMetrics(t *testing.T) {
	// ARRANGE
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	clicksBefore := testutil.ToFloat64(Clicks)
	mintedBefore := testutil.ToFloat64(CoinsMinted.WithLabelValues(SourceClick))
	wonBefore := testutil.ToFloat64(CasinoWagers.WithLabelValues(OutcomeWon))
	casinoMintBefore := testutil.ToFloat64(CoinsMinted.WithLabelValues(SourceCasino))
	prizeBefore := testutil.ToFloat64(CasePrizes.WithLabelValues("god"))
	soldBefore := testutil.ToFloat64(MarketListings.WithLabelValues(ActionSold))
	adminBefore := testutil.ToFloat64(CoinsMinted.WithLabelValues(SourceAdmin))

	// ACT
	require.NoError(t, bus.Publish(ctx, event.New(event.ClickResolved, domain.ClickPayload{Payout: 40, Multiplier: 2})))
	require.NoError(t, bus.Publish(ctx, event.New(event.CasinoResolved, domain.CasinoPayload{Bet: 100, Won: true, Credited: 200})))
	require.NoError(t, bus.Publish(ctx, event.New(event.CaseRevealed, domain.CasePayload{PrizeID: "god"})))
	require.NoError(t, bus.Publish(ctx, event.New(event.ListingSold, domain.ListingPayload{Price: 75})))
	require.NoError(t, bus.Publish(ctx, event.New(event.AdminGrant, domain.AdminGrantPayload{GrantType: domain.GrantTypeCoins, Amount: 1000})))

	// ASSERT
	assert.Equal(t, clicksBefore+1, testutil.ToFloat64(Clicks))
	assert.Equal(t, mintedBefore+40, testutil.ToFloat64(CoinsMinted.WithLabelValues(SourceClick)))
	assert.Equal(t, wonBefore+1, testutil.ToFloat64(CasinoWagers.WithLabelValues(OutcomeWon)))
	assert.Equal(t, casinoMintBefore+200, testutil.ToFloat64(CoinsMinted.WithLabelValues(SourceCasino)))
	assert.Equal(t, prizeBefore+1, testutil.ToFloat64(CasePrizes.WithLabelValues("god")))
	assert.Equal(t, soldBefore+1, testutil.ToFloat64(MarketListings.WithLabelValues(ActionSold)))
	assert.Equal(t, adminBefore+1000, testutil.ToFloat64(CoinsMinted.WithLabelValues(SourceAdmin)))
}

func TestEventMetricsCollector_DecodesMapPayloads(t *testing.T) {
	before := testutil.ToFloat64(ItemsBought.WithLabelValues("iron-sword"))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.New(event.ItemBought, map[string]interface{}{
		"item_id":  "iron-sword",
		"currency": "coins",
		"price":    10000,
	}))

	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(ItemsBought.WithLabelValues("iron-sword")))
}

func TestEventMetricsCollector_BadPayloadCountsError(t *testing.T) {
	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.ClickResolved)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.New(event.ClickResolved, map[string]interface{}{
		"payout": "lots",
	}))

	assert.NoError(t, err, "metrics never fail a publish")
	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.ClickResolved))))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/market/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/market/{id}", "418"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/market/abc-123", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/market/{id}", "418")))
}

type fixedPending int

func (f fixedPending) Pending() int { return int(f) }

func TestSnapshotJob(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.CreateAccount(ctx, domain.NewAccount("a@example.com", "pw", "Player0001", time.Now())))
	require.NoError(t, store.CreateAccount(ctx, domain.NewAccount("b@example.com", "pw", "Player0002", time.Now())))
	require.NoError(t, store.CreateListing(ctx, &domain.MarketListing{ID: "l1", ItemID: "hacker", Price: 5, CreatedAt: time.Now()}))

	require.NoError(t, NewSnapshotJob(store, fixedPending(3)).Process(ctx))

	assert.Equal(t, float64(2), testutil.ToFloat64(Accounts))
	assert.Equal(t, float64(1), testutil.ToFloat64(OpenListings))
	assert.Equal(t, float64(3), testutil.ToFloat64(PendingEffects))
}
