// Package postgres implements repository.Store on PostgreSQL through pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store persists accounts and market listings. Account reads go through a
// small expiring cache that is refreshed on every successful write and
// dropped on a version conflict.
type Store struct {
	db    *pgxpool.Pool
	cache *expirable.LRU[string, *domain.Account]
}

// NewStore creates a Store on db. Non-positive cache settings use the defaults.
func NewStore(db *pgxpool.Pool, cacheSize int, cacheTTL time.Duration) *Store {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Store{
		db:    db,
		cache: expirable.NewLRU[string, *domain.Account](cacheSize, nil, cacheTTL),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) CreateAccount(ctx context.Context, account *domain.Account) error {
	inventory, err := encodeInventory(account.Inventory)
	if err != nil {
		return err
	}

	tag, err := s.db.Exec(ctx, sqlInsertAccount,
		account.Identity, account.PasswordHash, account.DisplayName,
		account.SoftCurrency, account.HardCurrency, account.ClickCount, inventory,
		account.ActivePrivilege, account.CaseCount, account.PremiumCaseCount, account.CreatedAt)
	if err != nil {
		return fmt.Errorf(ErrMsgInsertAccountFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAccount, account.Identity)
	}

	account.Version = 1
	account.UpdatedAt = account.CreatedAt
	s.cache.Add(account.Identity, account.Clone())
	return nil
}

func (s *Store) GetAccount(ctx context.Context, identity string) (*domain.Account, error) {
	if cached, ok := s.cache.Get(identity); ok {
		return cached.Clone(), nil
	}

	account, err := scanAccount(s.querier(ctx).QueryRow(ctx, sqlSelectAccount, identity))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, identity)
		}
		return nil, fmt.Errorf(ErrMsgSelectAccountFailed, err)
	}

	if _, joined := repository.TxFrom(ctx); !joined {
		s.cache.Add(identity, account.Clone())
	}
	return account, nil
}

// SaveAccount writes account when the stored version still matches. The
// conflict check and the existence check share one transaction so a
// concurrent delete cannot be reported as a conflict. Inside a caller's
// transaction the write runs under a savepoint and becomes visible only
// when that transaction commits.
func (s *Store) SaveAccount(ctx context.Context, account *domain.Account) error {
	inventory, err := encodeInventory(account.Inventory)
	if err != nil {
		return err
	}

	outer, joined := repository.TxFrom(ctx)
	var tx pgx.Tx
	if joined {
		tx, err = outer.Begin(ctx)
	} else {
		tx, err = s.db.Begin(ctx)
	}
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTxFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	var (
		version   int64
		updatedAt time.Time
	)
	err = tx.QueryRow(ctx, sqlUpdateAccount,
		account.Identity, account.Version, account.DisplayName,
		account.SoftCurrency, account.HardCurrency, account.ClickCount, inventory,
		account.ActivePrivilege, account.CaseCount, account.PremiumCaseCount,
	).Scan(&version, &updatedAt)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		s.cache.Remove(account.Identity)
		var exists bool
		if err := tx.QueryRow(ctx, sqlAccountExists, account.Identity).Scan(&exists); err != nil {
			return fmt.Errorf(ErrMsgSelectAccountFailed, err)
		}
		if !exists {
			return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, account.Identity)
		}
		logger.FromContext(ctx).Debug(LogMsgVersionConflict, "identity", account.Identity, "version", account.Version)
		return fmt.Errorf("%w: %s (have %d)", domain.ErrVersionConflict, account.Identity, account.Version)
	case err != nil:
		return fmt.Errorf(ErrMsgUpdateAccountFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		s.cache.Remove(account.Identity)
		return fmt.Errorf(ErrMsgCommitFailed, err)
	}

	account.Version = version
	account.UpdatedAt = updatedAt
	if joined {
		// The outer transaction may still roll back
		s.cache.Remove(account.Identity)
		return nil
	}
	s.cache.Add(account.Identity, account.Clone())
	return nil
}

// querier returns the caller's transaction when ctx carries one
func (s *Store) querier(ctx context.Context) interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
} {
	if tx, ok := repository.TxFrom(ctx); ok {
		return tx
	}
	return s.db
}

func (s *Store) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	rows, err := s.db.Query(ctx, sqlListAccounts)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListAccountsFailed, err)
	}
	defer rows.Close()

	var out []*domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgListAccountsFailed, err)
		}
		out = append(out, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListAccountsFailed, err)
	}
	return out, nil
}

func (s *Store) CreateListing(ctx context.Context, listing *domain.MarketListing) error {
	_, err := s.db.Exec(ctx, sqlInsertListing,
		listing.ID, listing.ItemID, listing.ItemName, listing.Price,
		listing.SellerName, listing.SellerIdentity, listing.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation {
			return fmt.Errorf("%w: listing %s", domain.ErrInvalidInput, listing.ID)
		}
		return fmt.Errorf(ErrMsgInsertListingFailed, err)
	}
	return nil
}

func (s *Store) GetListing(ctx context.Context, id string) (*domain.MarketListing, error) {
	listing, err := scanListing(s.db.QueryRow(ctx, sqlSelectListing, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrListingNotFound, id)
		}
		return nil, fmt.Errorf(ErrMsgSelectListingFailed, err)
	}
	return &listing, nil
}

func (s *Store) DeleteListing(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, sqlDeleteListing, id)
	if err != nil {
		return fmt.Errorf(ErrMsgDeleteListingFailed, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrListingNotFound, id)
	}
	return nil
}

func (s *Store) ListListings(ctx context.Context) ([]domain.MarketListing, error) {
	rows, err := s.db.Query(ctx, sqlListListings)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListListingsFailed, err)
	}
	defer rows.Close()

	out := []domain.MarketListing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgListListingsFailed, err)
		}
		out = append(out, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgListListingsFailed, err)
	}
	return out, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a         domain.Account
		inventory []byte
	)
	err := row.Scan(&a.Identity, &a.PasswordHash, &a.DisplayName,
		&a.SoftCurrency, &a.HardCurrency, &a.ClickCount, &inventory,
		&a.ActivePrivilege, &a.CaseCount, &a.PremiumCaseCount, &a.Version,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}

	a.Inventory = domain.Inventory{}
	if len(inventory) > 0 {
		if err := json.Unmarshal(inventory, &a.Inventory); err != nil {
			return nil, fmt.Errorf(ErrMsgDecodeInventory, err)
		}
	}
	return &a, nil
}

func scanListing(row pgx.Row) (domain.MarketListing, error) {
	var l domain.MarketListing
	err := row.Scan(&l.ID, &l.ItemID, &l.ItemName, &l.Price, &l.SellerName, &l.SellerIdentity, &l.CreatedAt)
	return l, err
}

// encodeInventory drops zero entries so the stored document only lists owned items
func encodeInventory(inv domain.Inventory) ([]byte, error) {
	owned := make(map[string]int, len(inv))
	for id, count := range inv {
		if count > 0 {
			owned[id] = count
		}
	}
	data, err := json.Marshal(owned)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeInventory, err)
	}
	return data, nil
}
