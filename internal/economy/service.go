package economy

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/concurrency"
	"github.com/osse101/MineClicker_Go/internal/cooldown"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
)

// ClickResult reports one click. A click dropped by the cooldown has
// Accepted false, RetryAfterMs set, and no account.
type ClickResult struct {
	Accepted     bool            `json:"accepted"`
	Payout       int             `json:"payout"`
	Multiplier   int             `json:"multiplier"`
	RetryAfterMs int64           `json:"retry_after_ms,omitempty"`
	Account      *domain.Account `json:"account,omitempty"`
}

// PurchaseResult reports a catalog purchase
type PurchaseResult struct {
	Item     domain.Item     `json:"item"`
	Currency domain.Currency `json:"currency"`
	Price    int             `json:"price"`
	Account  *domain.Account `json:"account"`
}

// SellAllResult reports an inventory liquidation
type SellAllResult struct {
	ItemsSold int             `json:"items_sold"`
	Credited  int             `json:"credited"`
	Account   *domain.Account `json:"account"`
}

// CasePurchaseResult reports a case pack or premium case purchase
type CasePurchaseResult struct {
	Added   int             `json:"added"`
	Premium bool            `json:"premium"`
	Price   int             `json:"price"`
	Account *domain.Account `json:"account"`
}

// Service defines the interface for economy operations
type Service interface {
	Click(ctx context.Context, identity string) (*ClickResult, error)
	Purchase(ctx context.Context, identity, itemID string, currency domain.Currency) (*PurchaseResult, error)
	CanPurchase(ctx context.Context, identity, itemID string) (bool, error)
	SellAll(ctx context.Context, identity string) (*SellAllResult, error)
	BuyCasePack(ctx context.Context, identity, packID string) (*CasePurchaseResult, error)
	BuyPremiumCase(ctx context.Context, identity string) (*CasePurchaseResult, error)
}

type service struct {
	repo      repository.Account
	cooldowns cooldown.Service
	locks     *concurrency.LockManager
	publisher event.Publisher
	payout    PayoutPolicy
}

// NewService creates a new economy service
func NewService(repo repository.Account, cooldowns cooldown.Service, locks *concurrency.LockManager, publisher event.Publisher, payout PayoutPolicy) Service {
	return &service{
		repo:      repo,
		cooldowns: cooldowns,
		locks:     locks,
		publisher: publisher,
		payout:    payout,
	}
}

func (s *service) Click(ctx context.Context, identity string) (*ClickResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgClickCalled, "identity", identity)

	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	result := &ClickResult{}
	err := s.cooldowns.EnforceCooldown(ctx, identity, domain.ActionClick, func(ctx context.Context) error {
		account, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
			result.Multiplier = ClickMultiplier(a.Inventory)
			result.Payout = s.payout(result.Multiplier)
			a.ClickCount++
			a.Credit(domain.CurrencySoft, result.Payout)
			return nil
		})
		if err != nil {
			return err
		}
		result.Account = account
		return nil
	})

	var onCooldown cooldown.ErrOnCooldown
	if errors.As(err, &onCooldown) {
		log.Debug(LogMsgClickRejected, "identity", identity, "remaining", onCooldown.Remaining)
		return &ClickResult{RetryAfterMs: onCooldown.Remaining.Milliseconds()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgUpdateAccountFailed, err)
	}

	result.Accepted = true
	s.publish(ctx, event.NewForAccount(event.ClickResolved, identity, domain.ClickPayload{
		Identity:   identity,
		Payout:     result.Payout,
		Multiplier: result.Multiplier,
		Timestamp:  event.NowUnix(),
	}))
	return result, nil
}

func (s *service) Purchase(ctx context.Context, identity, itemID string, currency domain.Currency) (*PurchaseResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgPurchaseCalled, "identity", identity, "item", itemID, "currency", currency)

	item, err := catalog.FindItem(itemID)
	if err != nil {
		return nil, err
	}
	if currency == "" {
		currency = catalog.DefaultCurrency(item)
	}

	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	account, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
		return ApplyPurchase(a, item, currency)
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgItemPurchased, "identity", identity, "item", item.ID, "price", item.Price, "currency", currency)
	s.publish(ctx, event.NewForAccount(event.ItemBought, identity, domain.ItemBoughtPayload{
		Identity:  identity,
		ItemID:    item.ID,
		Currency:  currency,
		Price:     item.Price,
		Timestamp: event.NowUnix(),
	}))

	return &PurchaseResult{Item: item, Currency: currency, Price: item.Price, Account: account}, nil
}

// CanPurchase is false only when itemID is the privilege already shown as active
func (s *service) CanPurchase(ctx context.Context, identity, itemID string) (bool, error) {
	item, err := catalog.FindItem(itemID)
	if err != nil {
		return false, err
	}
	account, err := s.repo.GetAccount(ctx, identity)
	if err != nil {
		return false, err
	}
	return !IsPrivilegeActive(account, item), nil
}

func (s *service) SellAll(ctx context.Context, identity string) (*SellAllResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgSellAllCalled, "identity", identity)

	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	result := &SellAllResult{}
	account, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
		sold, credited, err := Liquidate(a)
		result.ItemsSold, result.Credited = sold, credited
		return err
	})
	if err != nil {
		return nil, err
	}
	result.Account = account

	log.Info(LogMsgInventorySold, "identity", identity, "items", result.ItemsSold, "credited", result.Credited)
	s.publish(ctx, event.NewForAccount(event.InventorySold, identity, domain.InventorySoldPayload{
		Identity:      identity,
		ItemsSold:     result.ItemsSold,
		TotalCredited: result.Credited,
		Timestamp:     event.NowUnix(),
	}))
	return result, nil
}

func (s *service) BuyCasePack(ctx context.Context, identity, packID string) (*CasePurchaseResult, error) {
	logger.FromContext(ctx).Info(LogMsgBuyCasePackCalled, "identity", identity, "pack", packID)

	pack, err := catalog.FindCasePack(packID)
	if err != nil {
		return nil, err
	}
	return s.buyCases(ctx, identity, pack.ID, pack.Count, pack.Price, false)
}

func (s *service) BuyPremiumCase(ctx context.Context, identity string) (*CasePurchaseResult, error) {
	logger.FromContext(ctx).Info(LogMsgBuyCasePackCalled, "identity", identity, "pack", PremiumCasePackID)
	return s.buyCases(ctx, identity, PremiumCasePackID, 1, domain.PremiumCasePrice, true)
}

func (s *service) buyCases(ctx context.Context, identity, packID string, count, price int, premium bool) (*CasePurchaseResult, error) {
	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	account, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
		if !a.Debit(domain.CurrencyHard, price) {
			return fmt.Errorf(ErrMsgInsufficientFundsFmt, packID, price, domain.CurrencyHard, a.HardCurrency, domain.ErrInsufficientFunds)
		}
		if premium {
			a.PremiumCaseCount += count
		} else {
			a.CaseCount += count
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgCasesPurchased, "identity", identity, "pack", packID, "count", count, "premium", premium)
	s.publish(ctx, event.NewForAccount(event.CasePackBought, identity, domain.CasePackPayload{
		Identity:  identity,
		PackID:    packID,
		Count:     count,
		Premium:   premium,
		Price:     price,
		Timestamp: event.NowUnix(),
	}))

	return &CasePurchaseResult{Added: count, Premium: premium, Price: price, Account: account}, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishEventFailed, "event_type", evt.Type, "error", err)
	}
}
