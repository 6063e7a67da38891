// Package rpgerr provides structured error handling for the engine's rule
// checks. It lets a validator or command explain precisely why an action
// cannot proceed, with enough context attached that a caller can render a
// useful message without string-matching.
package rpgerr

import (
	"context"
	"errors"
	"fmt"
)

// Code identifies why an action was rejected. Codes are stable,
// machine-readable constants — callers (and tests) switch on Code, never
// on Message.
type Code string

const (
	// CodeUnknown indicates an unclassified error.
	CodeUnknown Code = "unknown"
	// CodeInternal indicates an internal engine bug (catalog miss,
	// precondition violation after validators passed).
	CodeInternal Code = "internal"
	// CodeCanceled indicates the operation was canceled via context.
	CodeCanceled Code = "canceled"

	// Generic rule-violation codes.

	// CodeNotAllowed indicates the action is not permitted by the rules.
	CodeNotAllowed Code = "not_allowed"
	// CodePrerequisiteNotMet indicates a missing requirement.
	CodePrerequisiteNotMet Code = "prerequisite_not_met"
	// CodeResourceExhausted indicates insufficient mana, move, influence, etc.
	CodeResourceExhausted Code = "resource_exhausted"
	// CodeInvalidTarget indicates the chosen target cannot be targeted.
	CodeInvalidTarget Code = "invalid_target"
	// CodeConflictingState indicates two states cannot coexist.
	CodeConflictingState Code = "conflicting_state"
	// CodeTimingRestriction indicates the wrong phase/turn for this action.
	CodeTimingRestriction Code = "timing_restriction"
	// CodeNotFound indicates a requested entity was not found.
	CodeNotFound Code = "not_found"
	// CodeInvalidArgument indicates malformed input.
	CodeInvalidArgument Code = "invalid_argument"

	// Stable validator codes, one per named rule violation.

	// CodeNotYourTurn: action submitted by a player who is not current.
	CodeNotYourTurn Code = "NOT_YOUR_TURN"
	// CodeCardNotInHand: referenced card id is not in the player's hand.
	CodeCardNotInHand Code = "CARD_NOT_IN_HAND"
	// CodeNotInCombat: action requires an active CombatState.
	CodeNotInCombat Code = "NOT_IN_COMBAT"
	// CodeWrongCombatPhase: action is invalid in the current combat phase.
	CodeWrongCombatPhase Code = "WRONG_COMBAT_PHASE"
	// CodeInsufficientBlock: committed block does not meet the required value.
	CodeInsufficientBlock Code = "INSUFFICIENT_BLOCK"
	// CodeRangedAttackAllFortified: Ranged attack against an all-fortified
	// target during the Ranged/Siege phase.
	CodeRangedAttackAllFortified Code = "RANGED_ATTACK_ALL_FORTIFIED"
	// CodeTimeBendingChainPrevented: scenario rule forbids chaining.
	CodeTimeBendingChainPrevented Code = "TIME_BENDING_CHAIN_PREVENTED"
	// CodeAlreadyActed: player already took their one action this turn.
	CodeAlreadyActed Code = "ALREADY_ACTED"
	// CodeAlreadyCombatted: player already entered combat this turn.
	CodeAlreadyCombatted Code = "ALREADY_COMBATTED"
	// CodeAlreadyMoved: move-exclusive rule already consumed this turn.
	CodeAlreadyMoved Code = "ALREADY_MOVED"
	// CodeNoPendingChoice: a ResolveChoice-shaped action arrived with no
	// matching pending_choice on the player.
	CodeNoPendingChoice Code = "NO_PENDING_CHOICE"
	// CodeCardEffectNotResolvable: the effect tree could not be resolved
	// in the current state (e.g. sole discard target is unpayable).
	CodeCardEffectNotResolvable Code = "CARD_EFFECT_NOT_RESOLVABLE"
	// CodeUnknownCatalogID: a referenced catalog id does not exist.
	CodeUnknownCatalogID Code = "UNKNOWN_CATALOG_ID"
	// CodeInternalPrecondition: a command's precondition was violated
	// after validators passed — a validator gap, logged and sanitized.
	CodeInternalPrecondition Code = "INTERNAL_PRECONDITION"
)

// Error is the engine's error type: a code, a human message, an optional
// wrapped cause, and free-form metadata for structured context.
type Error struct {
	// Code categorizes the error.
	Code Code
	// Message describes what happened.
	Message string
	// Cause is the wrapped error, if any.
	Cause error
	// Meta carries structured context (enemy id, phase, required value…).
	Meta map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "rpgerr: nil error"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Option configures an Error at construction time.
type Option func(*Error)

// WithMeta attaches a metadata key/value pair.
func WithMeta(key string, value any) Option {
	return func(e *Error) {
		if e.Meta == nil {
			e.Meta = make(map[string]any)
		}
		e.Meta[key] = value
	}
}

// New creates an Error with the given code and message.
func New(code Code, message string, opts ...Option) *Error {
	err := &Error{Code: code, Message: message}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps err, preserving its Code and Meta if it is already an *Error.
func Wrap(err error, message string, opts ...Option) *Error {
	if err == nil {
		return New(CodeInternal, fmt.Sprintf("rpgerr.Wrap called with nil: %s", message))
	}
	var inner *Error
	var wrapped *Error
	if errors.As(err, &inner) {
		wrapped = &Error{Code: inner.Code, Message: message, Cause: err, Meta: copyMeta(inner.Meta)}
	} else {
		wrapped = &Error{Code: CodeUnknown, Message: message, Cause: err}
	}
	for _, opt := range opts {
		opt(wrapped)
	}
	return wrapped
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

// GetCode extracts the Code from any error, defaulting to CodeUnknown.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		if e == nil {
			return CodeUnknown
		}
		if e.Code == CodeUnknown && errors.Is(err, context.Canceled) {
			return CodeCanceled
		}
		return e.Code
	}
	if errors.Is(err, context.Canceled) {
		return CodeCanceled
	}
	return CodeUnknown
}

// GetMeta extracts the Meta map from any error.
func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Meta
	}
	return nil
}

// Is reports whether err carries the given Code. Implements the
// errors.Is two-argument matching protocol via GetCode equality.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}
