package session

import "time"

// Token roles
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// Defaults
const (
	DefaultTokenTTL    = 24 * time.Hour
	DefaultMaxSessions = 10000
	TokenIssuer        = "mineclicker"
)

// Error messages
const (
	ErrMsgTransitionFmt     = "%w: %s from %s"
	ErrMsgRequireStateFmt   = "%w: need %s, have %s"
	ErrMsgUnexpectedSigning = "unexpected signing method: %v"
	ErrMsgInvalidToken      = "invalid session token"
	ErrMsgEmptySecret       = "session token secret is empty"
)

// Log messages
const (
	LogMsgTransition         = "Session transition"
	LogMsgTransitionRejected = "Session transition rejected"
)
