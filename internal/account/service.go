// Package account handles registration, login and the per-player session
// lifecycle around the economy services.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/osse101/MineClicker_Go/internal/concurrency"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/event"
	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/repository"
	"github.com/osse101/MineClicker_Go/internal/session"
	"github.com/osse101/MineClicker_Go/internal/utils"
)

// Login is returned by a successful login
type Login struct {
	Account   *domain.Account     `json:"account"`
	Token     string              `json:"token"`
	State     domain.SessionState `json:"state"`
	ExpiresIn int64               `json:"expires_in"`
}

// Service defines the account operations
type Service interface {
	Register(ctx context.Context, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (*Login, error)
	Logout(ctx context.Context, identity string) error
	StartGame(ctx context.Context, identity string) (domain.SessionState, error)
	RenameDisplayName(ctx context.Context, identity, name string) (*domain.Account, error)
	GetAccount(ctx context.Context, identity string) (*domain.Account, error)
	State(identity string) domain.SessionState
}

type service struct {
	repo      repository.Account
	locks     *concurrency.LockManager
	sessions  *session.Manager
	tokens    *session.Issuer
	publisher event.Publisher
	hashCost  int
	now       func() time.Time
}

// NewService creates a new account service
func NewService(repo repository.Account, locks *concurrency.LockManager, sessions *session.Manager, tokens *session.Issuer, publisher event.Publisher) Service {
	return &service{
		repo:      repo,
		locks:     locks,
		sessions:  sessions,
		tokens:    tokens,
		publisher: publisher,
		hashCost:  bcrypt.DefaultCost,
		now:       time.Now,
	}
}

// Register creates a new account. A taken identity returns
// domain.ErrDuplicateAccount and leaves the stored account untouched.
func (s *service) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	log := logger.FromContext(ctx)
	email = normalizeIdentity(email)
	log.Info(LogMsgRegisterCalled, "identity", email)

	if email == "" || password == "" {
		return nil, fmt.Errorf(ErrMsgEmptyCredentials, domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf(ErrMsgPasswordTooLong, domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf(ErrMsgHashPasswordFailed, err)
	}

	account := domain.NewAccount(email, string(hash), generateDisplayName(), s.now())
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		if errors.Is(err, domain.ErrDuplicateAccount) {
			log.Warn(LogMsgDuplicateAccount, "identity", email)
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgCreateAccountFailed, err)
	}

	log.Info(LogMsgAccountRegistered, "identity", email, "display_name", account.DisplayName)
	s.publish(ctx, event.NewForAccount(event.AccountRegistered, email, domain.AccountPayload{
		Identity:    email,
		DisplayName: account.DisplayName,
		Timestamp:   event.NowUnix(),
	}))
	return account, nil
}

// Login checks the credentials, moves the session to the menu and issues a
// token. An existing session for the same identity is replaced.
func (s *service) Login(ctx context.Context, email, password string) (*Login, error) {
	log := logger.FromContext(ctx)
	email = normalizeIdentity(email)
	log.Info(LogMsgLoginCalled, "identity", email)

	account, err := s.repo.GetAccount(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			log.Warn(LogMsgLoginFailed, "identity", email, "reason", "unknown identity")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		log.Warn(LogMsgLoginFailed, "identity", email, "reason", "password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	if s.sessions.State(email) != domain.SessionLoggedOut {
		log.Info(LogMsgStaleSession, "identity", email)
		if _, err := s.sessions.Apply(ctx, email, domain.TriggerLogout); err != nil {
			return nil, err
		}
	}
	state, err := s.sessions.Apply(ctx, email, domain.TriggerLogin)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(email, session.RolePlayer)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgIssueTokenFailed, err)
	}

	log.Info(LogMsgLoggedIn, "identity", email)
	return &Login{
		Account:   account,
		Token:     token,
		State:     state,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *service) Logout(ctx context.Context, identity string) error {
	if _, err := s.sessions.Apply(ctx, identity, domain.TriggerLogout); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgLoggedOut, "identity", identity)
	return nil
}

func (s *service) StartGame(ctx context.Context, identity string) (domain.SessionState, error) {
	state, err := s.sessions.Apply(ctx, identity, domain.TriggerStartGame)
	if err != nil {
		return state, err
	}
	logger.FromContext(ctx).Info(LogMsgGameStarted, "identity", identity)
	return state, nil
}

func (s *service) RenameDisplayName(ctx context.Context, identity, name string) (*domain.Account, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return nil, fmt.Errorf(ErrMsgInvalidDisplayName, MaxDisplayNameLength, domain.ErrInvalidInput)
	}

	mu := s.locks.GetLock(identity)
	mu.Lock()
	defer mu.Unlock()

	account, err := repository.UpdateAccount(ctx, s.repo, identity, func(a *domain.Account) error {
		a.DisplayName = name
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgDisplayNameChanged, "identity", identity, "display_name", name)
	return account, nil
}

func (s *service) GetAccount(ctx context.Context, identity string) (*domain.Account, error) {
	return s.repo.GetAccount(ctx, identity)
}

func (s *service) State(identity string) domain.SessionState {
	return s.sessions.State(identity)
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishEventFailed, "event_type", evt.Type, "error", err)
	}
}

func normalizeIdentity(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateDisplayName() string {
	return fmt.Sprintf("%s%04d", domain.DisplayNamePrefix, utils.RandomInt(0, domain.DisplayNameDigits-1))
}
