package repository

import (
	"context"

	"github.com/osse101/MineClicker_Go/internal/domain"
)

// Account defines the interface for account persistence.
// Implementations hand out deep copies; mutating a returned account never
// changes stored state until SaveAccount succeeds.
type Account interface {
	// CreateAccount stores a new account at version 1.
	// Returns domain.ErrDuplicateAccount when the identity is taken.
	CreateAccount(ctx context.Context, account *domain.Account) error

	// GetAccount loads an account by identity.
	// Returns domain.ErrAccountNotFound when it does not exist.
	GetAccount(ctx context.Context, identity string) (*domain.Account, error)

	// SaveAccount writes account if the stored version still equals
	// account.Version, then bumps account.Version.
	// Returns domain.ErrVersionConflict when another writer got there first.
	SaveAccount(ctx context.Context, account *domain.Account) error

	// ListAccounts returns every account ordered by identity
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
}

// Market defines the interface for market listing persistence
type Market interface {
	CreateListing(ctx context.Context, listing *domain.MarketListing) error

	// GetListing returns domain.ErrListingNotFound when the listing is gone
	GetListing(ctx context.Context, id string) (*domain.MarketListing, error)

	// DeleteListing removes a listing. Exactly one concurrent caller succeeds;
	// the others get domain.ErrListingNotFound, so it doubles as a claim.
	DeleteListing(ctx context.Context, id string) error

	// ListListings returns open listings, oldest first
	ListListings(ctx context.Context) ([]domain.MarketListing, error)
}

// Store bundles every repository the engine needs
type Store interface {
	Account
	Market
	Ping(ctx context.Context) error
}
