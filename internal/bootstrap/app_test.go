package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/config"
	"github.com/osse101/MineClicker_Go/internal/domain"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "admin-pass"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Version:           "test",
		Locale:            catalog.DefaultLocale,
		Storage:           config.StorageMemory,
		JWTSecret:         "bootstrap-test-secret",
		JWTTTL:            time.Hour,
		AdminEmail:        testAdminEmail,
		AdminPassword:     testAdminPassword,
		ClickPayoutPolicy: "flat",
		WorkerCount:       2,
		WorkerQueueSize:   16,
		EventMaxRetries:   1,
		EventRetryDelay:   time.Millisecond,
		DeadLetterPath:    filepath.Join(t.TempDir(), "deadletter.jsonl"),
	}
}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func (c *apiClient) call(method, path, token string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "198.51.100.20:5000"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	if out != nil && w.Code < http.StatusMultipleChoices {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func TestBuild_PlayerJourney(t *testing.T) {
	ctx := context.Background()
	app, err := Build(ctx, testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { app.Shutdown(context.Background()) })

	api := &apiClient{t: t, handler: app.Server.Handler()}
	creds := map[string]string{"email": "Miner@Example.com", "password": "pickaxe"}

	w := api.call(http.MethodPost, "/api/v1/auth/register", "", creds, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.call(http.MethodPost, "/api/v1/auth/register", "", creds, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "duplicate email")

	var login struct {
		Token   string          `json:"token"`
		State   string          `json:"state"`
		Account *domain.Account `json:"account"`
	}
	w = api.call(http.MethodPost, "/api/v1/auth/login", "", creds, &login)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, login.Token)
	identity := login.Account.Identity

	w = api.call(http.MethodPost, "/api/v1/game/click", login.Token, nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "clicks need an in-game session")

	w = api.call(http.MethodPost, "/api/v1/auth/start", login.Token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var click struct {
		Accepted bool `json:"accepted"`
		Payout   int  `json:"payout"`
	}
	w = api.call(http.MethodPost, "/api/v1/game/click", login.Token, nil, &click)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, click.Accepted)
	assert.Equal(t, 1, click.Payout)

	w = api.call(http.MethodPost, "/api/v1/game/click", login.Token, nil, &click)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, click.Accepted, "second click lands inside the cooldown")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var adminLogin struct {
		Token string `json:"token"`
	}
	w = api.call(http.MethodPost, "/api/v1/admin/login", "",
		map[string]string{"email": testAdminEmail, "password": testAdminPassword}, &adminLogin)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.call(http.MethodPost, "/api/v1/admin/grant", login.Token,
		map[string]interface{}{"target": identity, "type": domain.GrantTypeCoins, "amount": 500}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "players cannot grant")

	w = api.call(http.MethodPost, "/api/v1/admin/grant", adminLogin.Token,
		map[string]interface{}{"target": identity, "type": domain.GrantTypeCoins, "amount": 500}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile struct {
		Account *domain.Account `json:"account"`
	}
	w = api.call(http.MethodGet, "/api/v1/account", login.Token, nil, &profile)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 501, profile.Account.SoftCurrency)
	assert.Equal(t, 1, profile.Account.ClickCount)

	var events struct {
		Events []struct {
			EventType string `json:"event_type"`
		} `json:"events"`
	}
	w = api.call(http.MethodGet, "/api/v1/admin/events?identity="+identity, adminLogin.Token, nil, &events)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotEmpty(t, events.Events)
	assert.Equal(t, domain.EventTypeAdminGrant, events.Events[0].EventType, "newest first")

	w = api.call(http.MethodPost, "/api/v1/auth/logout", login.Token, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.call(http.MethodPost, "/api/v1/game/click", login.Token, nil, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "logged out sessions cannot play")
}

func TestBuild_RejectsUnknownPayoutPolicy(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClickPayoutPolicy = "lottery"

	app, err := Build(context.Background(), cfg)

	require.Error(t, err)
	assert.Nil(t, app)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBuild_RejectsInvalidLocale(t *testing.T) {
	cfg := testConfig(t)
	cfg.Locale = "???"

	app, err := Build(context.Background(), cfg)

	require.Error(t, err)
	assert.Nil(t, app)
	assert.Contains(t, err.Error(), ErrMsgInvalidLocale)
}

func TestCooldownConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClickCooldown = 250 * time.Millisecond
	cfg.DevMode = true

	got := CooldownConfig(cfg)

	assert.True(t, got.DevMode)
	assert.Equal(t, 250*time.Millisecond, got.GetCooldownDuration(domain.ActionClick))
	assert.Equal(t, domain.CasinoRevealDelay, got.GetCooldownDuration(domain.ActionCasino))
	assert.Equal(t, domain.CaseRevealDelay, got.GetCooldownDuration(domain.ActionOpenCase))
}
