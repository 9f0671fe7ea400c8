package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies game errors so callers can render stable guidance
type ErrorKind string

const (
	KindValidation      ErrorKind = "validation"
	KindConflict        ErrorKind = "conflict"
	KindPrecondition    ErrorKind = "precondition"
	KindPermission      ErrorKind = "permission"
	KindNotFound        ErrorKind = "not_found"
	KindPoolExhausted   ErrorKind = "pool_exhausted"
	KindExpired         ErrorKind = "expired"
	KindNotStarted      ErrorKind = "not_started"
	KindAlreadyStarted  ErrorKind = "already_started"
	KindTicketTaken     ErrorKind = "ticket_taken"
	KindInvalidCode     ErrorKind = "invalid_code"
	KindGameStarted     ErrorKind = "game_started"
	KindHostCannotLeave ErrorKind = "host_cannot_leave"
	KindRateLimited     ErrorKind = "rate_limited"
)

// GameError is a recoverable domain error carrying its kind
type GameError struct {
	Kind    ErrorKind
	Message string
}

// Error implements the error interface
func (e *GameError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Is matches any GameError of the same kind, so errors.Is(err, ErrConflict) works
// regardless of the message.
func (e *GameError) Is(target error) bool {
	t, ok := target.(*GameError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrValidation      = &GameError{Kind: KindValidation}
	ErrConflict        = &GameError{Kind: KindConflict}
	ErrPrecondition    = &GameError{Kind: KindPrecondition}
	ErrPermission      = &GameError{Kind: KindPermission}
	ErrNotFound        = &GameError{Kind: KindNotFound}
	ErrPoolExhausted   = &GameError{Kind: KindPoolExhausted}
	ErrExpired         = &GameError{Kind: KindExpired}
	ErrNotStarted      = &GameError{Kind: KindNotStarted}
	ErrAlreadyStarted  = &GameError{Kind: KindAlreadyStarted}
	ErrTicketTaken     = &GameError{Kind: KindTicketTaken}
	ErrInvalidCode     = &GameError{Kind: KindInvalidCode}
	ErrGameStarted     = &GameError{Kind: KindGameStarted}
	ErrHostCannotLeave = &GameError{Kind: KindHostCannotLeave}
	ErrRateLimited     = &GameError{Kind: KindRateLimited}
)

// NewGameError creates a GameError of the given kind with a formatted message
func NewGameError(kind ErrorKind, format string, args ...any) *GameError {
	return &GameError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf returns the kind of the first GameError in err's chain, or "" if none
func KindOf(err error) ErrorKind {
	var gameErr *GameError
	if errors.As(err, &gameErr) {
		return gameErr.Kind
	}
	return ""
}
