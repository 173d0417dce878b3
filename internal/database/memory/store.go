// Package memory is a process-local repository.Store used for development
// and tests. State is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store keeps accounts and listings in maps guarded by one mutex
type Store struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	listings map[string]*domain.MarketListing
	seq      map[string]int64
	next     int64
	now      func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		listings: make(map[string]*domain.MarketListing),
		seq:      make(map[string]int64),
		now:      time.Now,
	}
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) CreateAccount(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Identity]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAccount, account.Identity)
	}

	account.Version = 1
	s.accounts[account.Identity] = account.Clone()
	return nil
}

func (s *Store) GetAccount(_ context.Context, identity string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.accounts[identity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, identity)
	}
	return stored.Clone(), nil
}

func (s *Store) SaveAccount(_ context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.Identity]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, account.Identity)
	}
	if stored.Version != account.Version {
		return fmt.Errorf("%w: %s (have %d, stored %d)", domain.ErrVersionConflict, account.Identity, account.Version, stored.Version)
	}

	account.Version++
	account.UpdatedAt = s.now()
	s.accounts[account.Identity] = account.Clone()
	return nil
}

func (s *Store) ListAccounts(_ context.Context) ([]*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		out = append(out, account.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })
	return out, nil
}

func (s *Store) CreateListing(_ context.Context, listing *domain.MarketListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listings[listing.ID]; exists {
		return fmt.Errorf("%w: listing %s", domain.ErrInvalidInput, listing.ID)
	}

	cp := *listing
	s.listings[listing.ID] = &cp
	s.next++
	s.seq[listing.ID] = s.next
	return nil
}

func (s *Store) GetListing(_ context.Context, id string) (*domain.MarketListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	listing, ok := s.listings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, id)
	}
	cp := *listing
	return &cp, nil
}

func (s *Store) DeleteListing(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrListingNotFound, id)
	}
	delete(s.listings, id)
	delete(s.seq, id)
	return nil
}

func (s *Store) ListListings(_ context.Context) ([]domain.MarketListing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.MarketListing, 0, len(s.listings))
	for _, listing := range s.listings {
		out = append(out, *listing)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out, nil
}
