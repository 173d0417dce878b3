package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/MineClicker_Go/internal/account"
	"github.com/osse101/MineClicker_Go/internal/admin"
	"github.com/osse101/MineClicker_Go/internal/casino"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/economy"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/eventlog"
	"github.com/osse101/MineClicker_Go/internal/lootbox"
	"github.com/osse101/MineClicker_Go/internal/market"
	"github.com/osse101/MineClicker_Go/internal/middleware"
)

const testIdentity = "steve@example.com"

// newRequest builds a request authenticated as testIdentity
func newRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req.WithContext(middleware.WithIdentity(req.Context(), testIdentity))
}

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*account.Login, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Login), args.Error(1)
}

func (m *MockAccountService) Logout(ctx context.Context, identity string) error {
	return m.Called(ctx, identity).Error(0)
}

func (m *MockAccountService) StartGame(ctx context.Context, identity string) (domain.SessionState, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(domain.SessionState), args.Error(1)
}

func (m *MockAccountService) RenameDisplayName(ctx context.Context, identity, name string) (*domain.Account, error) {
	args := m.Called(ctx, identity, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, identity string) (*domain.Account, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) State(identity string) domain.SessionState {
	return m.Called(identity).Get(0).(domain.SessionState)
}

type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) Click(ctx context.Context, identity string) (*economy.ClickResult, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.ClickResult), args.Error(1)
}

func (m *MockEconomyService) Purchase(ctx context.Context, identity, itemID string, currency domain.Currency) (*economy.PurchaseResult, error) {
	args := m.Called(ctx, identity, itemID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.PurchaseResult), args.Error(1)
}

func (m *MockEconomyService) CanPurchase(ctx context.Context, identity, itemID string) (bool, error) {
	args := m.Called(ctx, identity, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEconomyService) SellAll(ctx context.Context, identity string) (*economy.SellAllResult, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.SellAllResult), args.Error(1)
}

func (m *MockEconomyService) BuyCasePack(ctx context.Context, identity, packID string) (*economy.CasePurchaseResult, error) {
	args := m.Called(ctx, identity, packID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.CasePurchaseResult), args.Error(1)
}

func (m *MockEconomyService) BuyPremiumCase(ctx context.Context, identity string) (*economy.CasePurchaseResult, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.CasePurchaseResult), args.Error(1)
}

type MockCasinoService struct {
	mock.Mock
}

func (m *MockCasinoService) Wager(ctx context.Context, identity string, bet int) (*casino.Wager, error) {
	args := m.Called(ctx, identity, bet)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casino.Wager), args.Error(1)
}

func (m *MockCasinoService) BetTiers() []int {
	return m.Called().Get(0).([]int)
}

type MockLootboxService struct {
	mock.Mock
}

func (m *MockLootboxService) OpenCase(ctx context.Context, identity string, premium bool) (*lootbox.Opening, error) {
	args := m.Called(ctx, identity, premium)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lootbox.Opening), args.Error(1)
}

type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) ListItem(ctx context.Context, identity, itemID string, price int) (*domain.MarketListing, error) {
	args := m.Called(ctx, identity, itemID, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *MockMarketService) BuyListing(ctx context.Context, identity, listingID string) (*market.Purchase, error) {
	args := m.Called(ctx, identity, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.Purchase), args.Error(1)
}

func (m *MockMarketService) Listings(ctx context.Context) ([]domain.MarketListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketListing), args.Error(1)
}

type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAdminService) Grant(ctx context.Context, req admin.GrantRequest) (*domain.Account, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAdminService) Accounts(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(ctx context.Context, bus event.Bus) {
	m.Called(ctx, bus)
}

func (m *MockEventLogService) Query(ctx context.Context, filter eventlog.Filter) ([]eventlog.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Entry), args.Error(1)
}

func (m *MockEventLogService) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}
