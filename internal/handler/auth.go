package handler

import (
	"net/http"

	"github.com/osse101/MineClicker_Go/internal/account"
	"github.com/osse101/MineClicker_Go/internal/catalog"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// CredentialsRequest is the body of register and login calls
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// RenameRequest changes the public display name
type RenameRequest struct {
	DisplayName string `json:"display_name" validate:"required"`
}

// SessionResponse reports the caller's session state
type SessionResponse struct {
	State domain.SessionState `json:"state"`
}

// ProfileResponse is the caller's account plus its session state. Privilege
// is the catalog entry behind the account's privilege label and is omitted
// when the label no longer names a catalog item.
type ProfileResponse struct {
	Account   *domain.Account     `json:"account"`
	State     domain.SessionState `json:"state"`
	Privilege *domain.Item        `json:"privilege_item,omitempty"`
}

// HandleRegister creates an account
// @Summary Register
// @Description Create an account. The email becomes the permanent identity.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 201 {object} domain.Account
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/auth/register [post]
func HandleRegister(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register"); err != nil {
			return
		}

		acct, err := svc.Register(r.Context(), req.Email, req.Password)
		if err != nil {
			respondServiceError(w, r, ErrMsgRegisterFailed, err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgRegistered, "identity", acct.Identity)
		respondJSON(w, http.StatusCreated, acct)
	}
}

// HandleLogin checks credentials and opens a session at the menu
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body CredentialsRequest true "Credentials"
// @Success 200 {object} account.Login
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func HandleLogin(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		login, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			respondServiceError(w, r, ErrMsgLoginFailed, err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgLoggedIn, "identity", login.Account.Identity)
		respondJSON(w, http.StatusOK, login)
	}
}

// HandleLogout ends the caller's session
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SuccessResponse
// @Router /api/v1/auth/logout [post]
func HandleLogout(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), identityOf(r)); err != nil {
			respondServiceError(w, r, "Logout", err)
			return
		}
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgLoggedOut})
	}
}

// HandleStartGame moves the caller from the menu into the game
// @Summary Start game
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/auth/start [post]
func HandleStartGame(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := svc.StartGame(r.Context(), identityOf(r))
		if err != nil {
			respondServiceError(w, r, "Start game", err)
			return
		}
		respondJSON(w, http.StatusOK, SessionResponse{State: state})
	}
}

// HandleGetProfile returns the caller's account
// @Summary Current account
// @Tags account
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Router /api/v1/account [get]
func HandleGetProfile(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := identityOf(r)
		acct, err := svc.GetAccount(r.Context(), identity)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetAccountFail, err)
			return
		}
		profile := ProfileResponse{Account: acct, State: svc.State(identity)}
		if item, err := catalog.FindItemByName(acct.ActivePrivilege); err == nil {
			profile.Privilege = &item
		}
		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleRename changes the caller's display name
// @Summary Rename
// @Tags account
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RenameRequest true "New display name"
// @Success 200 {object} domain.Account
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/account/name [put]
func HandleRename(svc account.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RenameRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Rename"); err != nil {
			return
		}

		acct, err := svc.RenameDisplayName(r.Context(), identityOf(r), req.DisplayName)
		if err != nil {
			respondServiceError(w, r, "Rename", err)
			return
		}
		respondJSON(w, http.StatusOK, acct)
	}
}
