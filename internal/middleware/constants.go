package middleware

// Request credentials
const (
	// HeaderAuthorization carries "Bearer <token>"
	HeaderAuthorization = "Authorization"

	// BearerPrefix precedes the token in the Authorization header
	BearerPrefix = "Bearer "

	// QueryParamToken is accepted where clients cannot set headers (EventSource)
	QueryParamToken = "token"
)

// Default Values
const (
	// EmptyIdentity represents a request without an authenticated account
	EmptyIdentity = ""
)

// HTTP error messages
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgForbidden       = "Forbidden"
	ErrMsgSessionStateFmt = "Session must be %s"
)

// Log Messages
const (
	LogMsgTokenMissing    = "Request without session token"
	LogMsgTokenRejected   = "Session token rejected"
	LogMsgRoleRejected    = "Role not permitted"
	LogMsgSessionRejected = "Session state rejected"
)
