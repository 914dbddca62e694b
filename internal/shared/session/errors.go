package session

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("match session not found")
	ErrMatchIDMismatch = errors.New("result match id does not match the session")
	ErrNoPlayers       = errors.New("session requires at least one player")
	ErrEmptyMatchID    = errors.New("match id cannot be empty")
	ErrNoResults       = errors.New("result requires at least one player result")
	ErrEmptyPlayerID   = errors.New("player id cannot be empty")
)

// InvalidTransitionError reports a rejected state transition with the state
// the session was in and the state the caller tried to reach.
type InvalidTransitionError struct {
	Current   Status
	Attempted Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid session transition from %s to %s", e.Current, e.Attempted)
}

func invalidTransition(current, attempted Status) error {
	return &InvalidTransitionError{Current: current, Attempted: attempted}
}
