// Package lootbox opens standard and premium cases. The case counter drops at
// open time together with the prize draw; the prize lands in the inventory
// when the reveal fires.
package lootbox

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MineClicker_Go/internal/concurrency"
	"github.com/osse101/MineClicker_Go/internal/cooldown"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
	"github.com/osse101/MineClicker_Go/internal/scheduler"
	"github.com/osse101/MineClicker_Go/internal/utils"
)

// Opening is a case that has been opened and is waiting for its reveal. The
// prize is drawn up front but only reaches the player through case.revealed.
type Opening struct {
	ID            string          `json:"opening_id"`
	Premium       bool            `json:"premium"`
	Prize         domain.Item     `json:"-"`
	RevealAfterMs int64           `json:"reveal_after_ms"`
	Account       *domain.Account `json:"account"`
}

// Service defines the case opening interface
type Service interface {
	OpenCase(ctx context.Context, identity string, premium bool) (*Opening, error)
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

// NewService creates a new lootbox service
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

func (s *service) OpenCase(ctx context.Context, identity string, premium bool) (*Opening, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgOpenCaseCalled, "identity", identity, "premium", premium)

	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	// One case per account until its reveal has run
	if remaining, held := s.pending.Remaining(identity, s.sched.Now()); held {
		log.Info(LogMsgRevealPending, "identity", identity)
		return nil, cooldown.ErrOnCooldown{Action: domain.ActionOpenCase, Remaining: remaining}
	}

	opening := &Opening{
		ID:            uuid.NewString(),
		Premium:       premium,
		RevealAfterMs: s.revealDelay.Milliseconds(),
	}

	err := s.cooldowns.EnforceCooldown(ctx, identity, domain.ActionOpenCase, func(ctx context.Context) error {
		account, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
			return takeCase(a, premium)
		})
		if err != nil {
			return err
		}
		opening.Account = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	if premium {
		opening.Prize = DrawPremium(s.rnd)
	} else {
		opening.Prize = DrawStandard(s.rnd)
	}

	log.Info(LogMsgCaseOpened, "identity", identity, "opening_id", opening.ID, "premium", premium)
	s.publish(ctx, event.NewForAccount(event.CaseOpened, identity, domain.CasePayload{
		OpeningID: opening.ID,
		Identity:  identity,
		Premium:   premium,
		Timestamp: event.NowUnix(),
	}))

	id, prize := opening.ID, opening.Prize
	s.pending.Hold(identity, s.sched.Now().Add(s.revealDelay))
	s.sched.Schedule(s.revealDelay, EffectNameReveal, func(ctx context.Context) {
		s.reveal(ctx, identity, id, premium, prize)
	})

	return opening, nil
}

func takeCase(a *domain.Account, premium bool) error {
	if premium {
		if a.PremiumCaseCount <= 0 {
			return fmt.Errorf(ErrMsgNoPremiumCases, domain.ErrNoCasesAvailable)
		}
		a.PremiumCaseCount--
		return nil
	}
	if a.CaseCount <= 0 {
		return fmt.Errorf(ErrMsgNoStandardCases, domain.ErrNoCasesAvailable)
	}
	a.CaseCount--
	return nil
}

func (s *service) reveal(ctx context.Context, identity, openingID string, premium bool, prize domain.Item) {
	log := logger.FromContext(ctx)
	defer s.pending.Release(identity)

	mu := s.locks.GetLock(identity)
	mu.Lock()
	_, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
		a.Grant(prize, 1)
		return nil
	})
	mu.Unlock()
	if err != nil {
		log.Error(LogMsgPrizeGrantFailed, "identity", identity, "opening_id", openingID, "prize", prize.ID, "error", err)
		return
	}

	log.Info(LogMsgCaseRevealed, "identity", identity, "opening_id", openingID, "prize", prize.ID)
	s.publish(ctx, event.NewForAccount(event.CaseRevealed, identity, domain.CasePayload{
		OpeningID: openingID,
		Identity:  identity,
		Premium:   premium,
		PrizeID:   prize.ID,
		PrizeName: prize.Name,
		Timestamp: event.NowUnix(),
	}))
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishEventFailed, "event_type", evt.Type, "error", err)
	}
}
