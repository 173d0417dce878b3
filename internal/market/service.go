// Package market lets players list single inventory units for coins and buy
// each other's listings. A listing is detached from the seller once created.
package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/concurrency"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
)

// Purchase reports a completed market buy
type Purchase struct {
	Listing domain.MarketListing `json:"listing"`
	Account *domain.Account      `json:"account"`
}

// Service defines the market operations
type Service interface {
	ListItem(ctx context.Context, identity, itemID string, price int) (*domain.MarketListing, error)
	BuyListing(ctx context.Context, identity, listingID string) (*Purchase, error)
	Listings(ctx context.Context) ([]domain.MarketListing, error)
}

type service struct {
	accounts  repository.Account
	listings  repository.Market
	locks     *concurrency.LockManager
	publisher event.Publisher
	now       func() time.Time
}

// NewService creates a new market service
func NewService(accounts repository.Account, listings repository.Market, locks *concurrency.LockManager, publisher event.Publisher) Service {
	return &service{
		accounts:  accounts,
		listings:  listings,
		locks:     locks,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *service) Listings(ctx context.Context) ([]domain.MarketListing, error) {
	return s.listings.ListListings(ctx)
}

func (s *service) ListItem(ctx context.Context, identity, itemID string, price int) (*domain.MarketListing, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgListItemCalled, "identity", identity, "item", itemID, "price", price)

	if price <= 0 {
		return nil, fmt.Errorf(ErrMsgInvalidPriceFmt, price, domain.ErrInvalidInput)
	}
	item, err := catalog.FindItem(itemID)
	if err != nil {
		return nil, err
	}

	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	seller, err := repository.UpdateAccount(ctx, s.accounts, identity, func(a *domain.Account) error {
		if !a.Inventory.Remove(item.ID, 1) {
			return fmt.Errorf(ErrMsgItemNotOwnedFmt, item.ID, domain.ErrNoItemsAvailable)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	listing := &domain.MarketListing{
		ID:             uuid.NewString(),
		ItemID:         item.ID,
		ItemName:       item.Name,
		Price:          price,
		SellerName:     seller.DisplayName,
		SellerIdentity: identity,
		CreatedAt:      s.now(),
	}
	if err := s.listings.CreateListing(ctx, listing); err != nil {
		s.restore(ctx, identity, func(a *domain.Account) { a.Inventory.Add(item.ID, 1) })
		return nil, fmt.Errorf(ErrMsgCreateListingFailed, err)
	}

	log.Info(LogMsgItemListed, "identity", identity, "listing_id", listing.ID, "item", item.ID, "price", price)
	s.publish(ctx, event.NewForAccount(event.ListingCreated, identity, domain.ListingPayload{
		ListingID: listing.ID,
		ItemID:    listing.ItemID,
		Price:     listing.Price,
		Seller:    listing.SellerName,
		Timestamp: event.NowUnix(),
	}))
	return listing, nil
}

// BuyListing claims the listing by deleting it, then charges the buyer. If the
// charge fails the listing is put back. Seller proceeds go through an
// optimistic update without taking the seller's lock.
func (s *service) BuyListing(ctx context.Context, identity, listingID string) (*Purchase, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgBuyListingCalled, "identity", identity, "listing_id", listingID)

	listing, err := s.listings.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerIdentity == identity {
		return nil, fmt.Errorf("%w: %s", domain.ErrOwnListing, listingID)
	}

	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	buyer, err := s.accounts.GetAccount(ctx, identity)
	if err != nil {
		return nil, err
	}
	if buyer.SoftCurrency < listing.Price {
		return nil, fmt.Errorf(ErrMsgInsufficientFundsFmt, listing.Price, buyer.SoftCurrency, domain.ErrInsufficientFunds)
	}

	if err := s.listings.DeleteListing(ctx, listingID); err != nil {
		return nil, err
	}

	buyer, err = repository.UpdateAccount(ctx, s.accounts, identity, func(a *domain.Account) error {
		if !a.Debit(domain.CurrencySoft, listing.Price) {
			return fmt.Errorf(ErrMsgInsufficientFundsFmt, listing.Price, a.SoftCurrency, domain.ErrInsufficientFunds)
		}
		a.Inventory.Add(listing.ItemID, 1)
		return nil
	})
	if err != nil {
		if restoreErr := s.listings.CreateListing(ctx, listing); restoreErr != nil {
			log.Error(LogMsgRestoreFailed, "listing_id", listingID, "error", restoreErr)
		}
		return nil, err
	}

	s.creditSeller(ctx, listing)

	log.Info(LogMsgListingSold, "listing_id", listingID, "buyer", identity, "seller", listing.SellerIdentity, "price", listing.Price)
	s.publish(ctx, event.NewForAccount(event.ListingSold, identity, domain.ListingPayload{
		ListingID: listing.ID,
		ItemID:    listing.ItemID,
		Price:     listing.Price,
		Seller:    listing.SellerName,
		Buyer:     buyer.DisplayName,
		Timestamp: event.NowUnix(),
	}))

	return &Purchase{Listing: *listing, Account: buyer}, nil
}

func (s *service) creditSeller(ctx context.Context, listing *domain.MarketListing) {
	_, err := repository.UpdateAccount(ctx, s.accounts, listing.SellerIdentity, func(a *domain.Account) error {
		a.Credit(domain.CurrencySoft, listing.Price)
		return nil
	})
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		logger.FromContext(ctx).Warn(LogMsgSellerGone, "seller", listing.SellerIdentity, "listing_id", listing.ID)
	case err != nil:
		logger.FromContext(ctx).Error(LogMsgSellerCreditFailed, "seller", listing.SellerIdentity, "listing_id", listing.ID, "error", err)
	}
}

func (s *service) restore(ctx context.Context, identity string, undo func(a *domain.Account)) {
	_, err := repository.UpdateAccount(ctx, s.accounts, identity, func(a *domain.Account) error {
		undo(a)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgRestoreFailed, "identity", identity, "error", err)
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishEventFailed, "event_type", evt.Type, "error", err)
	}
}
