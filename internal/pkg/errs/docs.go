// Package errs provides standardized error types for the fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the failure taxonomy of the order workflow and the cash ledger:
//   - ObjectNotFoundError: an order, assignment or closing is missing
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError, AmountMismatchError:
//     validation failures (see IsValidationFailed)
//   - InvalidTransitionError: the operation is illegal from the current state
//   - UnauthorizedError: the acting role or identity does not match
//   - PreconditionFailedError: a business precondition was not met
//   - ImmutableStateConflictError: an attempt to alter state that is already final
//   - VersionIsInvalidError: a concurrent modification was detected
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
package errs
