package model

import (
	"errors"
	"fmt"
)

// Kind groups errors by who is at fault and whether a retry can help.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is missing or malformed input.
	KindValidation
	// KindConstraint is a business rule violation, reported verbatim.
	KindConstraint
	// KindNotFound is a referenced roster, player, league or user that does not exist.
	KindNotFound
	// KindDependency is an unavailable or malformed external feed. Safe to retry.
	KindDependency
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConstraint:
		return "constraint"
	case KindNotFound:
		return "not_found"
	case KindDependency:
		return "dependency"
	default:
		return "unknown"
	}
}

// Error is a domain error with a machine readable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrRosterFull         = &Error{Kind: KindConstraint, Code: "ROSTER_FULL", Message: "roster is full"}
	ErrAlreadyHeld        = &Error{Kind: KindConstraint, Code: "ALREADY_HELD", Message: "player is already in the roster"}
	ErrInsufficientBudget = &Error{Kind: KindConstraint, Code: "INSUFFICIENT_BUDGET", Message: "insufficient budget to draft player"}
	ErrNotHeld            = &Error{Kind: KindConstraint, Code: "NOT_HELD", Message: "player is not in the roster"}
	ErrLeagueFull         = &Error{Kind: KindConstraint, Code: "LEAGUE_FULL", Message: "league is full"}
	ErrAlreadyMember      = &Error{Kind: KindConstraint, Code: "ALREADY_MEMBER", Message: "already a member of the league"}
	ErrNotAMember         = &Error{Kind: KindConstraint, Code: "NOT_A_MEMBER", Message: "not a member of the league"}
	ErrOwnerCannotLeave   = &Error{Kind: KindConstraint, Code: "OWNER_CANNOT_LEAVE", Message: "the league owner cannot leave the league"}
	ErrInvalidCode        = &Error{Kind: KindConstraint, Code: "INVALID_CODE", Message: "invalid league code"}
	ErrNotOwner           = &Error{Kind: KindConstraint, Code: "NOT_OWNER", Message: "only the league owner can do that"}

	ErrUserNotFound   = &Error{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "user not found"}
	ErrRosterNotFound = &Error{Kind: KindNotFound, Code: "ROSTER_NOT_FOUND", Message: "roster not found"}
	ErrPlayerNotFound = &Error{Kind: KindNotFound, Code: "PLAYER_NOT_FOUND", Message: "player not found"}
	ErrLeagueNotFound = &Error{Kind: KindNotFound, Code: "LEAGUE_NOT_FOUND", Message: "league not found"}

	ErrFeedUnavailable = &Error{Kind: KindDependency, Code: "FEED_UNAVAILABLE", Message: "external feed unavailable"}
)

// ValidationError builds a KindValidation error for bad caller input.
func ValidationError(format string, args ...any) error {
	return &Error{Kind: KindValidation, Code: "VALIDATION", Message: fmt.Sprintf(format, args...)}
}

// DependencyError wraps a feed failure so callers see KindDependency while the
// cause stays available to errors.Is and errors.As.
func DependencyError(err error) error {
	return fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
}

// KindOf returns the Kind of the first *Error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// CodeOf returns the code of the first *Error in the chain, or "INTERNAL".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL"
}
