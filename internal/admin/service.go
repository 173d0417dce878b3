// Package admin holds the privileged mutation entry points. Grants bypass
// every affordability check and are only reachable with an admin token.
package admin

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/concurrency"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
	"github.com/osse101/MineClicker_Go/internal/session"
)

// Credentials is the static admin login pair
type Credentials struct {
	Email    string
	Password string
}

// GrantRequest describes one admin grant. A zero Amount uses the default
// for the grant type. ItemID is required for privilege and weapon grants.
type GrantRequest struct {
	Target string `json:"target" validate:"required,max=254"`
	Type   string `json:"type" validate:"required,oneof=coins donat cases premium_cases privilege weapon"`
	Amount int    `json:"amount" validate:"gte=0"`
	ItemID string `json:"item_id" validate:"required_if=Type privilege,required_if=Type weapon"`
}

// Service defines the admin operations
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
	Grant(ctx context.Context, req GrantRequest) (*domain.Account, error)
	Accounts(ctx context.Context) ([]*domain.Account, error)
}

type service struct {
	creds     Credentials
	repo      repository.Account
	locks     *concurrency.LockManager
	tokens    *session.Issuer
	publisher event.Publisher
}

// NewService creates a new admin service
func NewService(creds Credentials, repo repository.Account, locks *concurrency.LockManager, tokens *session.Issuer, publisher event.Publisher) Service {
	return &service{
		creds:     creds,
		repo:      repo,
		locks:     locks,
		tokens:    tokens,
		publisher: publisher,
	}
}

// Login checks the static credential pair and issues a token with the admin role
func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgLoginCalled, "email", email)

	if s.creds.Email == "" || s.creds.Password == "" {
		return "", fmt.Errorf(ErrMsgNotConfigured, domain.ErrInvalidCredentials)
	}
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.creds.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.creds.Password)) == 1
	if !emailOK || !passwordOK {
		log.Warn(LogMsgLoginFailed, "email", email)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(email, session.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf(ErrMsgIssueTokenFailed, err)
	}
	log.Info(LogMsgLoggedIn, "email", email)
	return token, nil
}

// Grant applies one grant to the target account
func (s *service) Grant(ctx context.Context, req GrantRequest) (*domain.Account, error) {
	log := logger.FromContext(ctx)
	req.Target = strings.ToLower(strings.TrimSpace(req.Target))
	log.Info(LogMsgGrantCalled, "target", req.Target, "type", req.Type, "amount", req.Amount, "item", req.ItemID)

	apply, amount, err := resolveGrant(req)
	if err != nil {
		return nil, err
	}

	mu := s.locks.GetLock(req.Target)
	mu.Lock()
	defer mu.Unlock()

	account, err := repository.UpdateAccount(ctx, s.repo, req.Target, func(a *domain.Account) error {
		apply(a)
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(LogMsgGrantApplied, "target", req.Target, "type", req.Type, "amount", amount, "item", req.ItemID)
	s.publish(ctx, event.NewForAccount(event.AdminGrant, req.Target, domain.AdminGrantPayload{
		Target:    req.Target,
		GrantType: req.Type,
		Amount:    amount,
		ItemID:    req.ItemID,
		Timestamp: event.NowUnix(),
	}))
	return account, nil
}

func (s *service) Accounts(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.ListAccounts(ctx)
}

// resolveGrant validates req and returns the mutation to apply with the
// effective amount.
func resolveGrant(req GrantRequest) (func(*domain.Account), int, error) {
	if req.Amount < 0 || req.Amount > domain.MaxGrantAmount {
		return nil, 0, fmt.Errorf(ErrMsgGrantAmountFmt, req.Amount, domain.MaxGrantAmount, domain.ErrInvalidInput)
	}
	amount := func(def int) int {
		if req.Amount == 0 {
			return def
		}
		return req.Amount
	}

	switch req.Type {
	case GrantCoins:
		n := amount(domain.DefaultGrantCoins)
		return func(a *domain.Account) { a.Credit(domain.CurrencySoft, n) }, n, nil
	case GrantDonat:
		n := amount(domain.DefaultGrantDonat)
		return func(a *domain.Account) { a.Credit(domain.CurrencyHard, n) }, n, nil
	case GrantCases:
		n := amount(domain.DefaultGrantCases)
		return func(a *domain.Account) { a.CaseCount += n }, n, nil
	case GrantPremiumCases:
		n := amount(domain.DefaultGrantPremiumCases)
		return func(a *domain.Account) { a.PremiumCaseCount += n }, n, nil
	case GrantPrivilege:
		item, err := findItemOfKind(req.ItemID, domain.ItemKindPrivilege)
		if err != nil {
			return nil, 0, err
		}
		return func(a *domain.Account) { a.Grant(item, 1) }, 1, nil
	case GrantWeapon:
		item, err := findItemOfKind(req.ItemID, domain.ItemKindWeapon)
		if err != nil {
			return nil, 0, err
		}
		n := amount(domain.DefaultGrantWeapons)
		return func(a *domain.Account) { a.Grant(item, n) }, n, nil
	default:
		return nil, 0, fmt.Errorf(ErrMsgUnknownGrantTypeFmt, req.Type, domain.ErrInvalidInput)
	}
}

func findItemOfKind(itemID string, kind domain.ItemKind) (domain.Item, error) {
	item, err := catalog.FindItem(itemID)
	if err != nil {
		return domain.Item{}, err
	}
	if item.Kind != kind {
		return domain.Item{}, fmt.Errorf(ErrMsgWrongItemKindFmt, itemID, kind, domain.ErrInvalidInput)
	}
	return item, nil
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishEventFailed, "event_type", evt.Type, "error", err)
	}
}
