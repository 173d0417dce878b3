// Package session tracks where each player is in the login, menu and play
// flow, and issues the signed tokens that identify them between requests.
package session

import (
	"fmt"

	"github.com/osse101/MineClicker_Go/internal/domain"
)

// transitions lists every legal (state, trigger) pair. Logout is accepted
// from any state and handled separately.
var transitions = map[domain.SessionState]map[domain.SessionTrigger]domain.SessionState{
	domain.SessionLoggedOut: {
		domain.TriggerLogin: domain.SessionAtMenu,
	},
	domain.SessionAtMenu: {
		domain.TriggerStartGame: domain.SessionInGame,
	},
}

// Transition returns the state reached by applying trigger to state.
// Unknown pairs return domain.ErrInvalidSessionTransition.
func Transition(state domain.SessionState, trigger domain.SessionTrigger) (domain.SessionState, error) {
	if trigger == domain.TriggerLogout {
		return domain.SessionLoggedOut, nil
	}
	if next, ok := transitions[state][trigger]; ok {
		return next, nil
	}
	return state, fmt.Errorf(ErrMsgTransitionFmt, domain.ErrInvalidSessionTransition, trigger, state)
}
