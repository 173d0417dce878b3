// Package middleware authenticates API requests and gates them on role and
// session state.
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/logger"
	"github.com/osse101/MineClicker_Go/internal/session"
)

// TokenParser validates a session token and returns its claims
type TokenParser interface {
	Parse(token string) (*session.Claims, error)
}

// StateChecker reports whether an account is in the wanted session state
type StateChecker interface {
	Require(identity string, want domain.SessionState) error
}

// Authenticate validates the bearer token and stores the identity and role on
// the request context. onReject, when set, is told about every rejection.
func Authenticate(tokens TokenParser, onReject func(*http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromContext(r.Context())

			raw := bearerToken(r)
			if raw == "" {
				log.Debug(LogMsgTokenMissing, "path", r.URL.Path)
				reject(w, r, onReject)
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				log.Warn(LogMsgTokenRejected, "path", r.URL.Path, "error", err)
				reject(w, r, onReject)
				return
			}

			ctx := WithIdentity(r.Context(), claims.Identity())
			ctx = WithRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, onReject func(*http.Request)) {
	if onReject != nil {
		onReject(r)
	}
	http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
}

// bearerToken prefers the Authorization header and falls back to ?token=
func bearerToken(r *http.Request) string {
	if header := r.Header.Get(HeaderAuthorization); strings.HasPrefix(header, BearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	}
	return r.URL.Query().Get(QueryParamToken)
}

// RequireRole rejects authenticated requests whose token carries another role
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := GetRole(r.Context()); got != role {
				logger.FromContext(r.Context()).Warn(LogMsgRoleRejected, "want", role, "got", got, "path", r.URL.Path)
				http.Error(w, ErrMsgForbidden, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession lets a request through only while the caller's session is in
// the wanted state
func RequireSession(states StateChecker, want domain.SessionState) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if err := states.Require(identity, want); err != nil {
				logger.FromContext(r.Context()).Info(LogMsgSessionRejected, "identity", identity, "error", err)
				http.Error(w, fmt.Sprintf(ErrMsgSessionStateFmt, want), http.StatusConflict)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
