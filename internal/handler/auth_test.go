package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineClicker_Go/internal/account"
	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/domain"
)

func TestHandleRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(m *MockAccountService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "creates account",
			body: `{"email":"steve@example.com","password":"pw"}`,
			setupMock: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "steve@example.com", "pw").
					Return(&domain.Account{Identity: "steve@example.com", PasswordHash: "hash", DisplayName: "Player0042"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"display_name":"Player0042"`,
		},
		{
			name: "duplicate identity",
			body: `{"email":"steve@example.com","password":"pw"}`,
			setupMock: func(m *MockAccountService) {
				m.On("Register", mock.Anything, "steve@example.com", "pw").Return(nil, domain.ErrDuplicateAccount)
			},
			wantStatus: http.StatusConflict,
			wantBody:   ErrMsgDuplicateAccountError,
		},
		{
			name:       "malformed json",
			body:       `{"email":`,
			setupMock:  func(m *MockAccountService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequest,
		},
		{
			name:       "missing password",
			body:       `{"email":"steve@example.com"}`,
			setupMock:  func(m *MockAccountService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"password":"This field is required"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockAccountService{}
			tt.setupMock(svc)
			w := httptest.NewRecorder()

			HandleRegister(svc).ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/auth/register", tt.body))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), `"pw"`, "password never leaves the server")
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleLogin(t *testing.T) {
	t.Run("returns token and menu state", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("Login", mock.Anything, "steve@example.com", "pw").Return(&account.Login{
			Account:   &domain.Account{Identity: "steve@example.com"},
			Token:     "signed.jwt.token",
			State:     domain.SessionAtMenu,
			ExpiresIn: 86400,
		}, nil)
		w := httptest.NewRecorder()

		HandleLogin(svc).ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"steve@example.com","password":"pw"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var login account.Login
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
		assert.Equal(t, "signed.jwt.token", login.Token)
		assert.Equal(t, domain.SessionAtMenu, login.State)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("Login", mock.Anything, "steve@example.com", "nope").Return(nil, domain.ErrInvalidCredentials)
		w := httptest.NewRecorder()

		HandleLogin(svc).ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"steve@example.com","password":"nope"}`))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidCredentialsError)
	})
}

func TestHandleSessionLifecycle(t *testing.T) {
	t.Run("start game uses the token identity", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("StartGame", mock.Anything, testIdentity).Return(domain.SessionInGame, nil)
		w := httptest.NewRecorder()

		HandleStartGame(svc).ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/auth/start", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"state":"in_session"}`, w.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("start game from the wrong state", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("StartGame", mock.Anything, testIdentity).
			Return(domain.SessionLoggedOut, fmt.Errorf("start: %w", domain.ErrInvalidSessionTransition))
		w := httptest.NewRecorder()

		HandleStartGame(svc).ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/auth/start", ""))

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("logout", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("Logout", mock.Anything, testIdentity).Return(nil)
		w := httptest.NewRecorder()

		HandleLogout(svc).ServeHTTP(w, newRequest(http.MethodPost, "/api/v1/auth/logout", ""))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), MsgLoggedOut)
	})

	t.Run("profile includes state", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("GetAccount", mock.Anything, testIdentity).Return(&domain.Account{Identity: testIdentity, SoftCurrency: 15}, nil)
		svc.On("State", testIdentity).Return(domain.SessionAtMenu)
		w := httptest.NewRecorder()

		HandleGetProfile(svc).ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/account", ""))

		require.Equal(t, http.StatusOK, w.Code)
		var profile ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		assert.Equal(t, 15, profile.Account.SoftCurrency)
		assert.Equal(t, domain.SessionAtMenu, profile.State)
		assert.Nil(t, profile.Privilege)
	})

	t.Run("profile resolves the privilege item", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("GetAccount", mock.Anything, testIdentity).
			Return(&domain.Account{Identity: testIdentity, ActivePrivilege: domain.BaselinePrivilegeName}, nil)
		svc.On("State", testIdentity).Return(domain.SessionAtMenu)
		w := httptest.NewRecorder()

		HandleGetProfile(svc).ServeHTTP(w, newRequest(http.MethodGet, "/api/v1/account", ""))

		require.Equal(t, http.StatusOK, w.Code)
		var profile ProfileResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
		require.NotNil(t, profile.Privilege)
		assert.Equal(t, catalog.PrivilegeSurvivor, profile.Privilege.ID)
	})
}

func TestHandleRename(t *testing.T) {
	t.Run("renames", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("RenameDisplayName", mock.Anything, testIdentity, "Notch").
			Return(&domain.Account{Identity: testIdentity, DisplayName: "Notch"}, nil)
		w := httptest.NewRecorder()

		HandleRename(svc).ServeHTTP(w, newRequest(http.MethodPut, "/api/v1/account/name", `{"display_name":"Notch"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"display_name":"Notch"`)
	})

	t.Run("service rejects the name", func(t *testing.T) {
		svc := &MockAccountService{}
		svc.On("RenameDisplayName", mock.Anything, testIdentity, "   ").Return(nil, domain.ErrInvalidInput)
		w := httptest.NewRecorder()

		HandleRename(svc).ServeHTTP(w, newRequest(http.MethodPut, "/api/v1/account/name", `{"display_name":"   "}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
