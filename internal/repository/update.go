package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// MaxUpdateAttempts bounds optimistic retries in UpdateAccount
const MaxUpdateAttempts = 5

// UpdateAccount applies mutate to a fresh copy of the account and saves it,
// retrying from a fresh read when the save loses a version race. An error
// from mutate aborts without saving. The saved account is returned.
func UpdateAccount(ctx context.Context, repo Account, identity string, mutate func(*domain.Account) error) (*domain.Account, error) {
	for attempt := 1; attempt <= MaxUpdateAttempts; attempt++ {
		account, err := repo.GetAccount(ctx, identity)
		if err != nil {
			return nil, err
		}

		if err := mutate(account); err != nil {
			return nil, err
		}

		err = repo.SaveAccount(ctx, account)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, err
		}

		logger.FromContext(ctx).Debug(LogMsgVersionConflictRetry, "identity", identity, "attempt", attempt)
	}

	return nil, fmt.Errorf("%w: %s after %d attempts", domain.ErrVersionConflict, identity, MaxUpdateAttempts)
}
