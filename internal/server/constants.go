package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: repeated rejected session tokens"
	SecurityAlertHighRate   = "SECURITY ALERT: blocking high request rate"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
)

// HTTP header names
const (
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderRequestID      = "X-Request-ID"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueDeny                 = "DENY"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// Header redaction marker
const RedactedValue = "[REDACTED]"

// Limits
const (
	// MaxRequestBodyBytes caps every JSON body
	MaxRequestBodyBytes = 1 << 16

	// ReadHeaderTimeout bounds slow clients; there is no write timeout so
	// SSE streams stay open
	ReadHeaderTimeout = 5 * time.Second

	// Default abuse thresholds per client IP and window
	DefaultDetectorWindow       = 5 * time.Minute
	DefaultRequestLimit         = 3000
	DefaultFailedAuthAlertLimit = 5
)

// quietPaths are not request-logged
var quietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}
