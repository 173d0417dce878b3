package lootbox

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/concurrency"
	"github.com/osse101/MineClicker_Go/internal/cooldown"
	"github.com/osse101/MineClicker_Go/internal/database/memory"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/scheduler"
	"github.com/osse101/MineClicker_Go/internal/worker"
)

const testIdentity = "herobrine@example.com"

type recordingPublisher struct {
	mu    sync.Mutex
	types []event.Type
}

func (p *recordingPublisher) Publish(_ context.Context, evt event.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, evt.Type)
	return nil
}

type fixture struct {
	svc   *service
	store *memory.Store
	sched *scheduler.ManualScheduler
	pub   *recordingPublisher
}

func newFixture(t *testing.T, seed func(a *domain.Account), draws ...float64) *fixture {
	t.Helper()
	store := memory.NewStore()
	account := domain.NewAccount(testIdentity, "pw", "Player1234", time.Now())
	if seed != nil {
		seed(account)
	}
	require.NoError(t, store.CreateAccount(context.Background(), account))

	sched := scheduler.NewManual(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	pub := &recordingPublisher{}
	svc := NewService(store, cooldown.NewMemoryService(cooldown.Config{Now: sched.Now}),
		concurrency.NewLockManager(), sched, pub, domain.CaseRevealDelay).(*service)
	if len(draws) > 0 {
		svc.rnd = sequence(draws...)
	}
	return &fixture{svc: svc, store: store, sched: sched, pub: pub}
}

func (f *fixture) account(t *testing.T) *domain.Account {
	t.Helper()
	account, err := f.store.GetAccount(context.Background(), testIdentity)
	require.NoError(t, err)
	return account
}

func TestOpenCase_StandardPrizeLandsOnReveal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(a *domain.Account) { a.CaseCount = 2 }, 0.2)

	opening, err := f.svc.OpenCase(ctx, testIdentity, false)

	require.NoError(t, err)
	assert.Equal(t, catalog.WeaponIronSword, opening.Prize.ID)
	assert.Equal(t, int64(2000), opening.RevealAfterMs)
	assert.Equal(t, 1, f.account(t).CaseCount, "counter drops at open")
	assert.Equal(t, 0, f.account(t).Inventory.Count(catalog.WeaponIronSword))

	f.sched.Advance(ctx, 1999*time.Millisecond)
	assert.Equal(t, 0, f.account(t).Inventory.Count(catalog.WeaponIronSword))

	f.sched.Advance(ctx, time.Millisecond)
	assert.Equal(t, 1, f.account(t).Inventory.Count(catalog.WeaponIronSword))
	assert.Equal(t, []event.Type{event.CaseOpened, event.CaseRevealed}, f.pub.types)
}

func TestOpenCase_PremiumPrivilegeOverwritesLabel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(a *domain.Account) {
		a.PremiumCaseCount = 1
		a.ActivePrivilege = "Бог"
	}, 0.5, 0.0)

	opening, err := f.svc.OpenCase(ctx, testIdentity, true)
	require.NoError(t, err)
	assert.Equal(t, catalog.PrivilegeSurvivor, opening.Prize.ID)

	f.sched.Advance(ctx, 2*time.Second)

	got := f.account(t)
	assert.Equal(t, 0, got.PremiumCaseCount)
	assert.Equal(t, domain.BaselinePrivilegeName, got.ActivePrivilege, "no downgrade protection")
	assert.Equal(t, 1, got.Inventory.Count(catalog.PrivilegeSurvivor))
}

func TestOpenCase_NoCases(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		premium bool
		seed    func(a *domain.Account)
	}{
		{"standard", false, func(a *domain.Account) { a.PremiumCaseCount = 3 }},
		{"premium", true, func(a *domain.Account) { a.CaseCount = 3 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.seed)

			_, err := f.svc.OpenCase(ctx, testIdentity, tt.premium)

			assert.ErrorIs(t, err, domain.ErrNoCasesAvailable)
			assert.ErrorIs(t, err, domain.ErrNoItemsAvailable)
			assert.Equal(t, 0, f.sched.Pending())
			assert.Empty(t, f.pub.types)
		})
	}
}

func TestOpenCase_OnePendingPerAccount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(a *domain.Account) { a.CaseCount = 5 }, 0.1, 0.1)

	_, err := f.svc.OpenCase(ctx, testIdentity, false)
	require.NoError(t, err)

	_, err = f.svc.OpenCase(ctx, testIdentity, false)
	assert.ErrorIs(t, err, domain.ErrOnCooldown)
	assert.Equal(t, 4, f.account(t).CaseCount)

	f.sched.Advance(ctx, 2*time.Second)
	_, err = f.svc.OpenCase(ctx, testIdentity, false)
	assert.NoError(t, err)
	assert.Equal(t, 3, f.account(t).CaseCount)
}

func TestOpenCase_GateHeldUntilLateRevealRuns(t *testing.T) {
	ctx := context.Background()
	const delay = 20 * time.Millisecond

	pool := worker.NewPool(1, 8)
	pool.Start()
	defer pool.Stop()
	unblock := make(chan struct{})
	pool.Enqueue(worker.JobFunc(func(context.Context) error {
		<-unblock
		return nil
	}))

	sched := scheduler.New(pool)
	defer sched.Stop(ctx)

	store := memory.NewStore()
	account := domain.NewAccount(testIdentity, "pw", "Player1234", time.Now())
	account.CaseCount = 3
	require.NoError(t, store.CreateAccount(ctx, account))
	cooldowns := cooldown.NewMemoryService(cooldown.Config{
		Cooldowns: map[string]time.Duration{domain.ActionOpenCase: delay},
	})
	svc := NewService(store, cooldowns, concurrency.NewLockManager(), sched, &recordingPublisher{}, delay).(*service)
	svc.rnd = func() float64 { return 0.2 }
	stored := func() *domain.Account {
		a, err := store.GetAccount(ctx, testIdentity)
		require.NoError(t, err)
		return a
	}

	_, err := svc.OpenCase(ctx, testIdentity, false)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return sched.Pending() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, stored().Inventory.Count(catalog.WeaponIronSword), "prize not revealed yet")

	_, err = svc.OpenCase(ctx, testIdentity, false)
	assert.ErrorIs(t, err, domain.ErrOnCooldown)
	assert.Equal(t, 2, stored().CaseCount)

	close(unblock)
	require.Eventually(t, func() bool {
		return stored().Inventory.Count(catalog.WeaponIronSword) == 1
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		_, err := svc.OpenCase(ctx, testIdentity, false)
		return err == nil
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, stored().CaseCount)
}

func TestOpenCase_ResponseHidesPrize(t *testing.T) {
	f := newFixture(t, func(a *domain.Account) { a.CaseCount = 1 }, 0.2)

	opening, err := f.svc.OpenCase(context.Background(), testIdentity, false)
	require.NoError(t, err)

	body, err := json.Marshal(opening)
	require.NoError(t, err)
	assert.NotContains(t, string(body), `"prize"`)
	assert.NotContains(t, string(body), catalog.WeaponIronSword)
	assert.Contains(t, string(body), `"reveal_after_ms":2000`)
}
