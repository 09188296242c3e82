// Package errs provides standardized error types for the pharmacy delivery
// backend. It implements a consistent pattern for error creation, formatting,
// and unwrapping that is used throughout the application.
//
// The package includes error types for common scenarios:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed caller input, rejected before any state change
//   - ObjectNotFoundError: a referenced order, driver, or branch is absent
//   - InvalidTransitionError: an order status change off the lifecycle graph
//   - ForbiddenError: a role or ownership violation
//   - ConflictError: a lost race for a contended resource (driver claim)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Handlers surface these errors unmodified; the HTTP adapter maps sentinels
// to status codes. Notification delivery failures are deliberately not part
// of this taxonomy - they are logged and swallowed, never propagated.
package errs
