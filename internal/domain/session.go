package domain

// SessionState tracks where a player is in the login → menu → play flow
type SessionState string

const (
	SessionLoggedOut SessionState = "logged_out"
	SessionAtMenu    SessionState = "at_menu"
	SessionInGame    SessionState = "in_session"
)

// SessionTrigger is an input to the session state machine
type SessionTrigger string

const (
	TriggerLogin     SessionTrigger = "login"
	TriggerStartGame SessionTrigger = "start_game"
	TriggerLogout    SessionTrigger = "logout"
)
