// Package errs provides standardized error types for the vendor fulfillment service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers every failure class the order core can report:
//   - ObjectNotFoundError: the referenced order does not exist
//   - ForbiddenError: the caller has no portion in the referenced order
//   - InvalidTransitionError: a status change is not a legal edge
//   - ConflictError: an optimistic write lost its race after all retries
//   - TimeoutError: the order store did not answer within budget
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input
//   - VersionIsInvalidError: a conditional write hit a stale document version
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
//
// Callers classify with errors.Is against the sentinels; formatting of user-facing
// messages is left to the transport layer.
package errs
