package errs

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrPreconditionFailed     = errors.New("precondition failed")
	ErrImmutableStateConflict = errors.New("immutable state conflict")
	ErrAmountMismatch         = errors.New("amount mismatch")
)

// InvalidTransitionError reports an operation that is illegal from the current state.
type InvalidTransitionError struct {
	Operation string
	From      string
	Cause     error
}

func NewInvalidTransitionError(operation, from string) *InvalidTransitionError {
	return &InvalidTransitionError{Operation: operation, From: from}
}

func NewInvalidTransitionErrorWithCause(operation, from string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{Operation: operation, From: from, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s is not allowed from %s", ErrInvalidTransition, e.Operation, e.From)
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnauthorizedError reports an actor whose role or identity may not perform an operation.
type UnauthorizedError struct {
	Actor  string
	Action string
	Reason string
}

func NewUnauthorizedError(actor, action, reason string) *UnauthorizedError {
	return &UnauthorizedError{Actor: actor, Action: action, Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s (%s)", ErrUnauthorized, e.Actor, e.Action, e.Reason)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// PreconditionFailedError reports a business precondition that does not hold.
type PreconditionFailedError struct {
	Precondition string
	Cause        error
}

func NewPreconditionFailedError(precondition string) *PreconditionFailedError {
	return &PreconditionFailedError{Precondition: precondition}
}

func NewPreconditionFailedErrorWithCause(precondition string, cause error) *PreconditionFailedError {
	return &PreconditionFailedError{Precondition: precondition, Cause: cause}
}

func (e *PreconditionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPreconditionFailed, e.Precondition, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.Precondition)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

// ImmutableStateConflictError reports an attempt to change something already final.
type ImmutableStateConflictError struct {
	ParamName string
	ID        any
}

func NewImmutableStateConflictError(paramName string, id any) *ImmutableStateConflictError {
	return &ImmutableStateConflictError{ParamName: paramName, ID: id}
}

func (e *ImmutableStateConflictError) Error() string {
	return fmt.Sprintf("%s: %s %v can no longer be modified", ErrImmutableStateConflict, e.ParamName, e.ID)
}

func (e *ImmutableStateConflictError) Unwrap() error {
	return ErrImmutableStateConflict
}

// AmountMismatchError reports a declared amount outside the tolerance of the expected one.
// Difference is Received - Expected: negative is a shortfall, positive an excess.
type AmountMismatchError struct {
	ParamName  string
	Expected   decimal.Decimal
	Received   decimal.Decimal
	Difference decimal.Decimal
	Tolerance  decimal.Decimal
}

func NewAmountMismatchError(paramName string, expected, received, tolerance decimal.Decimal) *AmountMismatchError {
	return &AmountMismatchError{
		ParamName:  paramName,
		Expected:   expected,
		Received:   received,
		Difference: received.Sub(expected),
		Tolerance:  tolerance,
	}
}

// IsShortfall reports whether less than expected was received.
func (e *AmountMismatchError) IsShortfall() bool {
	return e.Difference.IsNegative()
}

func (e *AmountMismatchError) Error() string {
	kind := "excess"
	if e.IsShortfall() {
		kind = "shortfall"
	}
	return fmt.Sprintf("%s: %s expected %s, received %s, %s of %s exceeds tolerance %s",
		ErrAmountMismatch, e.ParamName, e.Expected, e.Received, kind, e.Difference.Abs(), e.Tolerance)
}

func (e *AmountMismatchError) Unwrap() error {
	return ErrAmountMismatch
}

// IsValidationFailed reports whether err belongs to the validation family.
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange) ||
		errors.Is(err, ErrAmountMismatch)
}
