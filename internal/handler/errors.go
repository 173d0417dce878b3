package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidQuery          = "Invalid query parameters"

	// Path parameter error messages
	ErrMsgMissingPathParam = "Missing %s path parameter"

	// Account error messages
	ErrMsgRegisterFailed = "Failed to register"
	ErrMsgLoginFailed    = "Failed to log in"
	ErrMsgGetAccountFail = "Failed to get account"
)

// Success messages for API responses
const (
	MsgRegistered      = "Account created"
	MsgLoggedOut       = "Logged out"
	MsgSoldAllFmt      = "Sold %d items for %s coins"
	MsgPurchasedFmt    = "Bought %s for %s %s"
	MsgCasesAddedFmt   = "Added %d cases"
	MsgListedFmt       = "Listed %s for %s coins"
	MsgBoughtListedFmt = "Bought %s from %s for %s coins"
	MsgGrantedFmt      = "Granted %s to %s"
)

// Log messages
const (
	LogMsgDecodeFailed      = "Failed to decode request"
	LogMsgRequestDecoded    = "Request decoded"
	LogMsgServiceError      = "Service call failed"
	LogMsgEncodeFailed      = "Failed to encode JSON response"
	LogMsgWriteFailed       = "Failed to write response buffer"
	LogMsgReadinessFailed   = "Readiness check failed"
	LogMsgRegistered        = "Account registered"
	LogMsgLoggedIn          = "Account logged in"
	LogMsgAdminGrantApplied = "Admin grant applied"
)
