package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/osse101/MineClicker_Go/internal/cooldown"
	"github.com/osse101/MineClicker_Go/internal/domain"
	"github.com/osse101/MineClicker_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload.
// The payload is encoded before the header goes out so an encoding failure
// still produces a 500.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgAccountNotFoundError    = "Account not found"
	ErrMsgDuplicateAccountError   = "An account with that email already exists"
	ErrMsgInvalidCredentialsError = "Wrong email or password"
	ErrMsgSessionStateError       = "That is not possible right now"
	ErrMsgConcurrentUpdateError   = "Your account is busy. Please try again."

	ErrMsgItemNotFoundError    = "Item not found"
	ErrMsgNoItemsError         = "You don't have that item"
	ErrMsgNoCasesError         = "You have no cases"
	ErrMsgNotEnoughMoneyError  = "Not enough money"
	ErrMsgListingNotFoundError = "That listing is gone"
	ErrMsgOwnListingError      = "You cannot buy your own listing"
	ErrMsgOnCooldownError      = "Slow down. Try again in a moment"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Order matters: ErrNoCasesAvailable wraps ErrNoItemsAvailable.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, ErrMsgAccountNotFoundError
	case errors.Is(err, domain.ErrDuplicateAccount):
		return http.StatusConflict, ErrMsgDuplicateAccountError
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgInvalidCredentialsError
	case errors.Is(err, domain.ErrInvalidSessionTransition):
		return http.StatusConflict, ErrMsgSessionStateError
	case errors.Is(err, domain.ErrVersionConflict):
		return http.StatusConflict, ErrMsgConcurrentUpdateError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrNoCasesAvailable):
		return http.StatusBadRequest, ErrMsgNoCasesError
	case errors.Is(err, domain.ErrNoItemsAvailable):
		return http.StatusBadRequest, ErrMsgNoItemsError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughMoneyError
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundError
	case errors.Is(err, domain.ErrOwnListing):
		return http.StatusBadRequest, ErrMsgOwnListingError
	case errors.Is(err, domain.ErrOnCooldown):
		return http.StatusTooManyRequests, ErrMsgOnCooldownError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped
// response. Cooldown rejections also get a Retry-After header.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", opName, "error", err)
	} else {
		log.Info(LogMsgServiceError, "operation", opName, "status", status, "error", err)
	}

	var cd cooldown.ErrOnCooldown
	if errors.As(err, &cd) {
		w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(cd.Remaining)))
	}

	respondError(w, status, message)
}

// retryAfterSeconds rounds up so clients never retry early
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
