package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineClicker_Go/internal/domain"
)

type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) CreateAccount(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepo) GetAccount(ctx context.Context, identity string) (*domain.Account, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepo) SaveAccount(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepo) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func freshAccount() *domain.Account {
	return &domain.Account{Identity: "a@example.com", SoftCurrency: 10, Inventory: domain.Inventory{}, Version: 3}
}

func TestUpdateAccount_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepo)

	repo.On("GetAccount", ctx, "a@example.com").Return(freshAccount(), nil).Once()
	repo.On("SaveAccount", ctx, mock.MatchedBy(func(a *domain.Account) bool {
		return a.SoftCurrency == 15
	})).Return(nil).Once()

	got, err := UpdateAccount(ctx, repo, "a@example.com", func(a *domain.Account) error {
		a.SoftCurrency += 5
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 15, got.SoftCurrency)
	repo.AssertExpectations(t)
}

func TestUpdateAccount_RetriesOnConflict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepo)

	repo.On("GetAccount", ctx, "a@example.com").Return(freshAccount(), nil).Once()
	repo.On("GetAccount", ctx, "a@example.com").Return(freshAccount(), nil).Once()
	repo.On("SaveAccount", ctx, mock.Anything).Return(domain.ErrVersionConflict).Once()
	repo.On("SaveAccount", ctx, mock.Anything).Return(nil).Once()

	calls := 0
	_, err := UpdateAccount(ctx, repo, "a@example.com", func(a *domain.Account) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	repo.AssertExpectations(t)
}

func TestUpdateAccount_GivesUp(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepo)

	repo.On("GetAccount", ctx, "a@example.com").Return(freshAccount(), nil).Times(MaxUpdateAttempts)
	repo.On("SaveAccount", ctx, mock.Anything).Return(domain.ErrVersionConflict).Times(MaxUpdateAttempts)

	_, err := UpdateAccount(ctx, repo, "a@example.com", func(a *domain.Account) error { return nil })

	assert.ErrorIs(t, err, domain.ErrVersionConflict)
	repo.AssertExpectations(t)
}

func TestUpdateAccount_MutateErrorSkipsSave(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepo)
	repo.On("GetAccount", ctx, "a@example.com").Return(freshAccount(), nil).Once()

	_, err := UpdateAccount(ctx, repo, "a@example.com", func(a *domain.Account) error {
		return domain.ErrInsufficientFunds
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	repo.AssertNotCalled(t, "SaveAccount", mock.Anything, mock.Anything)
}

func TestUpdateAccount_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAccountRepo)
	repo.On("GetAccount", ctx, "ghost@example.com").Return(nil, domain.ErrAccountNotFound).Once()

	_, err := UpdateAccount(ctx, repo, "ghost@example.com", func(a *domain.Account) error { return nil })

	assert.True(t, errors.Is(err, domain.ErrAccountNotFound))
}
