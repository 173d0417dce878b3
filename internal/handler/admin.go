package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/osse101/MineClicker_Go/internal/admin"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/eventlog"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// AdminLoginRequest carries the configured admin credentials
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse holds the admin-role token
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// AccountsResponse lists every account
type AccountsResponse struct {
	Accounts []*domain.Account `json:"accounts"`
}

// EventsResponse lists event log entries, newest first
type EventsResponse struct {
	Events []eventlog.Entry `json:"events"`
}

// HandleAdminLogin exchanges the admin credentials for an admin token
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminLoginRequest true "Admin credentials"
// @Success 200 {object} AdminLoginResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/admin/login [post]
func HandleAdminLogin(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin login"); err != nil {
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondServiceError(w, r, "Admin login", err)
			return
		}
		respondJSON(w, http.StatusOK, AdminLoginResponse{Token: token})
	}
}

// HandleAdminGrant applies a grant to a target account, bypassing prices
// @Summary Grant
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body admin.GrantRequest true "Grant"
// @Success 200 {object} DataResponse{data=domain.Account}
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/admin/grant [post]
func HandleAdminGrant(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req admin.GrantRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Admin grant"); err != nil {
			return
		}

		acct, err := svc.Grant(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, "Admin grant", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgAdminGrantApplied, "target", acct.Identity, "type", req.Type)
		respondJSON(w, http.StatusOK, DataResponse{
			Message: fmt.Sprintf(MsgGrantedFmt, req.Type, acct.Identity),
			Data:    acct,
		})
	}
}

// HandleAdminAccounts lists every account
// @Summary List accounts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AccountsResponse
// @Router /api/v1/admin/accounts [get]
func HandleAdminAccounts(svc admin.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := svc.Accounts(r.Context())
		if err != nil {
			respondServiceError(w, r, "List accounts", err)
			return
		}
		if accounts == nil {
			accounts = []*domain.Account{}
		}
		respondJSON(w, http.StatusOK, AccountsResponse{Accounts: accounts})
	}
}

// HandleAdminEvents queries the economy event log
// @Summary Event log
// @Description Recorded economy events, newest first. since is RFC 3339.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param identity query string false "Account identity"
// @Param type query string false "Event type"
// @Param since query string false "Earliest timestamp"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} EventsResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/events [get]
func HandleAdminEvents(svc eventlog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseEventFilter(r)
		if err != nil {
			logger.FromContext(r.Context()).Debug(LogMsgDecodeFailed, "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidQuery)
			return
		}

		entries, err := svc.Query(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, "Event log", err)
			return
		}
		if entries == nil {
			entries = []eventlog.Entry{}
		}
		respondJSON(w, http.StatusOK, EventsResponse{Events: entries})
	}
}

func parseEventFilter(r *http.Request) (eventlog.Filter, error) {
	q := r.URL.Query()
	filter := eventlog.Filter{
		Identity:  q.Get("identity"),
		EventType: q.Get("type"),
	}

	if raw := q.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("since: %w", err)
		}
		filter.Since = since
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, fmt.Errorf("limit: invalid value %q", raw)
		}
		filter.Limit = limit
	}
	return filter, nil
}
