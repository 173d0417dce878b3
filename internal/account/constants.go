package account

// Display name limits
const (
	MaxDisplayNameLength = 32
)

// ==================== Error Messages ====================

const (
	ErrMsgEmptyCredentials    = "email and password are required: %w"
	ErrMsgInvalidDisplayName  = "display name must be 1-%d characters: %w"
	ErrMsgCreateAccountFailed = "failed to create account: %w"
	ErrMsgIssueTokenFailed    = "failed to issue session token: %w"
	ErrMsgPasswordTooLong     = "password must be at most 72 bytes: %w"
	ErrMsgHashPasswordFailed  = "failed to hash password: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgRegisterCalled     = "Register called"
	LogMsgAccountRegistered  = "Account registered"
	LogMsgDuplicateAccount   = "Registration rejected, identity taken"
	LogMsgLoginCalled        = "Login called"
	LogMsgLoginFailed        = "Login failed"
	LogMsgLoggedIn           = "Account logged in"
	LogMsgStaleSession       = "Replacing existing session on login"
	LogMsgLoggedOut          = "Account logged out"
	LogMsgGameStarted        = "Game started"
	LogMsgDisplayNameChanged = "Display name changed"
	LogMsgPublishEventFailed = "Failed to publish event"
)
