package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies expected ledger failures
type ErrorKind string

const (
	KindNotFound               ErrorKind = "not_found"
	KindDuplicateID            ErrorKind = "duplicate_id"
	KindDuplicateBet           ErrorKind = "duplicate_bet"
	KindInvalidStateTransition ErrorKind = "invalid_state_transition"
	KindInvalidTeamChoice      ErrorKind = "invalid_team_choice"
	KindInvalidParameter       ErrorKind = "invalid_parameter"
	KindInsufficientFunds      ErrorKind = "insufficient_funds"
	KindEconomyFrozen          ErrorKind = "economy_frozen"
)

// LedgerError is an expected, user-facing failure. Matching with errors.Is
// compares kinds only.
type LedgerError struct {
	Kind    ErrorKind
	Message string
}

func (e *LedgerError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *LedgerError) Is(target error) bool {
	t, ok := target.(*LedgerError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotFound               = &LedgerError{Kind: KindNotFound}
	ErrDuplicateID            = &LedgerError{Kind: KindDuplicateID}
	ErrDuplicateBet           = &LedgerError{Kind: KindDuplicateBet}
	ErrInvalidStateTransition = &LedgerError{Kind: KindInvalidStateTransition}
	ErrInvalidTeamChoice      = &LedgerError{Kind: KindInvalidTeamChoice}
	ErrInvalidParameter       = &LedgerError{Kind: KindInvalidParameter}
	ErrInsufficientFunds      = &LedgerError{Kind: KindInsufficientFunds}
	ErrEconomyFrozen          = &LedgerError{Kind: KindEconomyFrozen, Message: "the economy is frozen"}
)

func newError(kind ErrorKind, format string, args ...any) *LedgerError {
	return &LedgerError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the ledger error kind of err, or "" for unexpected faults
func KindOf(err error) ErrorKind {
	var le *LedgerError
	if errors.As(err, &le) {
		return le.Kind
	}
	return ""
}
