package metrics

import (
	"context"

	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent updates metrics for one event. Payloads that cannot be decoded
// are counted as handler errors but never fail the publish.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	if err := record(evt); err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	logger.FromContext(ctx).Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func record(evt event.Event) error {
	switch evt.Type {
	case event.AccountRegistered:
		Registrations.Inc()

	case event.ClickResolved:
		p, err := event.DecodePayload[domain.ClickPayload](evt.Payload)
		if err != nil {
			return err
		}
		Clicks.Inc()
		CoinsMinted.WithLabelValues(SourceClick).Add(float64(p.Payout))

	case event.ItemBought:
		p, err := event.DecodePayload[domain.ItemBoughtPayload](evt.Payload)
		if err != nil {
			return err
		}
		ItemsBought.WithLabelValues(p.ItemID).Inc()
		CurrencySpent.WithLabelValues(string(p.Currency), SinkCatalog).Add(float64(p.Price))

	case event.InventorySold:
		p, err := event.DecodePayload[domain.InventorySoldPayload](evt.Payload)
		if err != nil {
			return err
		}
		ItemsLiquidated.Add(float64(p.ItemsSold))
		CoinsMinted.WithLabelValues(SourceSellAll).Add(float64(p.TotalCredited))

	case event.CasinoWagered:
		p, err := event.DecodePayload[domain.CasinoPayload](evt.Payload)
		if err != nil {
			return err
		}
		CurrencySpent.WithLabelValues(CurrencyCoins, SinkCasino).Add(float64(p.Bet))

	case event.CasinoResolved:
		p, err := event.DecodePayload[domain.CasinoPayload](evt.Payload)
		if err != nil {
			return err
		}
		outcome := OutcomeLost
		if p.Won {
			outcome = OutcomeWon
		}
		CasinoWagers.WithLabelValues(outcome).Inc()
		CoinsMinted.WithLabelValues(SourceCasino).Add(float64(p.Credited))

	case event.CasePackBought:
		p, err := event.DecodePayload[domain.CasePackPayload](evt.Payload)
		if err != nil {
			return err
		}
		CurrencySpent.WithLabelValues(CurrencyDonat, SinkCases).Add(float64(p.Price))

	case event.CaseOpened:
		p, err := event.DecodePayload[domain.CasePayload](evt.Payload)
		if err != nil {
			return err
		}
		CasesOpened.WithLabelValues(caseKind(p.Premium)).Inc()

	case event.CaseRevealed:
		p, err := event.DecodePayload[domain.CasePayload](evt.Payload)
		if err != nil {
			return err
		}
		CasePrizes.WithLabelValues(p.PrizeID).Inc()

	case event.ListingCreated:
		MarketListings.WithLabelValues(ActionListed).Inc()

	case event.ListingSold:
		p, err := event.DecodePayload[domain.ListingPayload](evt.Payload)
		if err != nil {
			return err
		}
		MarketListings.WithLabelValues(ActionSold).Inc()
		CurrencySpent.WithLabelValues(CurrencyCoins, SinkMarket).Add(float64(p.Price))

	case event.AdminGrant:
		p, err := event.DecodePayload[domain.AdminGrantPayload](evt.Payload)
		if err != nil {
			return err
		}
		AdminGrants.WithLabelValues(p.GrantType).Inc()
		if p.GrantType == domain.GrantTypeCoins {
			CoinsMinted.WithLabelValues(SourceAdmin).Add(float64(p.Amount))
		}
	}
	return nil
}

func caseKind(premium bool) string {
	if premium {
		return KindPremium
	}
	return KindStandard
}
