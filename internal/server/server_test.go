package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/handler"
	"github.com/osse101/MineClicker_Go/internal/session"
	"github.com/osse101/MineClicker_Go/internal/sse"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type routerFixture struct {
	server   *Server
	issuer   *session.Issuer
	sessions *session.Manager
}

func newRouterFixture(t *testing.T, pingErr error) *routerFixture {
	t.Helper()

	issuer, err := session.NewIssuer("router-test-secret", time.Hour)
	require.NoError(t, err)
	sessions := session.NewManager(16, time.Hour)

	srv := NewServer(Options{
		Port:    0,
		Version: "test",
		Timings: handler.NewTimings(domain.ClickCooldown, domain.CasinoRevealDelay, domain.CaseRevealDelay),
	}, Deps{
		Store:    stubPinger{err: pingErr},
		Tokens:   issuer,
		Sessions: sessions,
		Hub:      sse.NewHub(),
	})

	return &routerFixture{server: srv, issuer: issuer, sessions: sessions}
}

func (f *routerFixture) do(t *testing.T, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "192.0.2.10:4000"
	if token != "" {
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(w, req)
	return w
}

func (f *routerFixture) token(t *testing.T, identity, role string) string {
	t.Helper()
	tok, err := f.issuer.Issue(identity, role)
	require.NoError(t, err)
	return tok
}

func TestRouter_PublicRoutes(t *testing.T) {
	f := newRouterFixture(t, nil)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"liveness", "/healthz", http.StatusOK},
		{"readiness", "/readyz", http.StatusOK},
		{"version", "/version", http.StatusOK},
		{"metrics", "/metrics", http.StatusOK},
		{"catalog", "/api/v1/catalog", http.StatusOK},
		{"unknown", "/api/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.do(t, http.MethodGet, tt.target, "")
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, HeaderValueNoSniff, w.Header().Get(HeaderContentType))
		})
	}
}

func TestRouter_ReadinessReportsStorageFailure(t *testing.T) {
	f := newRouterFixture(t, errors.New("connection refused"))

	w := f.do(t, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_AuthenticationRequired(t *testing.T) {
	f := newRouterFixture(t, nil)

	w := f.do(t, http.MethodGet, "/api/v1/account", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/account", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, 3, f.server.detector.RecordFailedAuth("192.0.2.10"),
		"rejected tokens are counted against the client IP")
}

func TestRouter_GameRoutesRequireInGameSession(t *testing.T) {
	f := newRouterFixture(t, nil)
	identity := "acc-1"
	tok := f.token(t, identity, session.RolePlayer)

	_, err := f.sessions.Apply(context.Background(), identity, domain.TriggerLogin)
	require.NoError(t, err)

	for _, target := range []string{"/api/v1/game/click", "/api/v1/casino/wager", "/api/v1/cases/open", "/api/v1/market/"} {
		w := f.do(t, http.MethodPost, target, tok)
		assert.Equal(t, http.StatusConflict, w.Code, target)
	}
}

func TestRouter_AdminRoutesRequireAdminRole(t *testing.T) {
	f := newRouterFixture(t, nil)
	tok := f.token(t, "acc-2", session.RolePlayer)

	w := f.do(t, http.MethodGet, "/api/v1/admin/accounts", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/admin/grant", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/admin/events", tok)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
