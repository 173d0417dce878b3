// Package casino implements the coin-flip wager. The stake leaves the balance
// immediately; the flip is drawn at wager time and applied when the reveal fires.
package casino

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/concurrency"
	"github.com/osse101/MineClicker_Go/internal/cooldown"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
	"github.com/osse101/MineClicker_Go/internal/scheduler"
	"github.com/osse101/MineClicker_Go/internal/utils"
)

// Wager is a placed bet awaiting its reveal. The outcome is drawn up front
// but only reaches the player through the casino.resolved event.
type Wager struct {
	ID            string          `json:"wager_id"`
	Bet           int             `json:"bet"`
	Won           bool            `json:"-"`
	Payout        int             `json:"-"`
	RevealAfterMs int64           `json:"reveal_after_ms"`
	Account       *domain.Account `json:"account"`
}

// Service defines the casino operations
type Service interface {
	Wager(ctx context.Context, identity string, bet int) (*Wager, error)
	BetTiers() []int
}

type service struct {
	repo        repository.Account
	cooldowns   cooldown.Service
	locks       *concurrency.LockManager
	sched       scheduler.Scheduler
	publisher   event.Publisher
	pending     *concurrency.PendingGate
	revealDelay time.Duration
	rnd         func() float64
}

// NewService creates a new casino service
func NewService(repo repository.Account, cooldowns cooldown.Service, locks *concurrency.LockManager, sched scheduler.Scheduler, publisher event.Publisher, revealDelay time.Duration) Service {
	return &service{
		repo:        repo,
		cooldowns:   cooldowns,
		locks:       locks,
		sched:       sched,
		publisher:   publisher,
		pending:     concurrency.NewPendingGate(),
		revealDelay: revealDelay,
		rnd:         utils.RandomFloat,
	}
}

// Won reports the flip outcome for a draw in [0, 1)
func Won(draw float64) bool {
	return draw > domain.CasinoWinThreshold
}

func (s *service) BetTiers() []int {
	return catalog.BetTiers()
}

func (s *service) Wager(ctx context.Context, identity string, bet int) (*Wager, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgWagerCalled, "identity", identity, "bet", bet)

	if bet <= 0 {
		return nil, fmt.Errorf(ErrMsgInvalidBetFmt, bet, domain.ErrInvalidInput)
	}

	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	// One wager per account until its reveal has run, even if the reveal is
	// late because the worker pool is backed up
	if remaining, held := s.pending.Remaining(identity, s.sched.Now()); held {
		log.Info(LogMsgRevealPending, "identity", identity)
		return nil, cooldown.ErrOnCooldown{Action: domain.ActionCasino, Remaining: remaining}
	}

	wager := &Wager{
		ID:            uuid.NewString(),
		Bet:           bet,
		RevealAfterMs: s.revealDelay.Milliseconds(),
	}

	err := s.cooldowns.EnforceCooldown(ctx, identity, domain.ActionCasino, func(ctx context.Context) error {
		account, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
			if !a.Debit(domain.CurrencySoft, bet) {
				return fmt.Errorf(ErrMsgInsufficientFundsFmt, bet, a.SoftCurrency, domain.ErrInsufficientFunds)
			}
			return nil
		})
		if err != nil {
			return err
		}
		wager.Account = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	wager.Won = Won(s.rnd())
	if wager.Won {
		wager.Payout = bet * domain.CasinoPayoutMultiplier
	}

	log.Info(LogMsgWagerPlaced, "identity", identity, "wager_id", wager.ID, "bet", bet)
	s.publish(ctx, event.NewForAccount(event.CasinoWagered, identity, domain.CasinoPayload{
		WagerID:   wager.ID,
		Identity:  identity,
		Bet:       bet,
		Timestamp: event.NowUnix(),
	}))

	id, won, payout := wager.ID, wager.Won, wager.Payout
	s.pending.Hold(identity, s.sched.Now().Add(s.revealDelay))
	s.sched.Schedule(s.revealDelay, EffectNameReveal, func(ctx context.Context) {
		s.reveal(ctx, identity, id, bet, won, payout)
	})

	return wager, nil
}

func (s *service) reveal(ctx context.Context, identity, wagerID string, bet int, won bool, payout int) {
	log := logger.FromContext(ctx)
	defer s.pending.Release(identity)

	if won {
		mu := s.locks.GetLock(identity)
		mu.Lock()
		_, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
			a.Credit(domain.CurrencySoft, payout)
			return nil
		})
		mu.Unlock()
		if err != nil {
			log.Error(LogMsgWagerCreditFailed, "identity", identity, "wager_id", wagerID, "payout", payout, "error", err)
			return
		}
	}

	log.Info(LogMsgWagerResolved, "identity", identity, "wager_id", wagerID, "won", won, "payout", payout)
	s.publish(ctx, event.NewForAccount(event.CasinoResolved, identity, domain.CasinoPayload{
		WagerID:   wagerID,
		Identity:  identity,
		Bet:       bet,
		Won:       won,
		Credited:  payout,
		Timestamp: event.NowUnix(),
	}))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishEventFailed, "event_type", evt.Type, "error", err)
	}
}
