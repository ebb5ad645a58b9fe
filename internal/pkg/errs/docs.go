// Package errs provides the error types shared by the domain, application and
// adapter layers of the storefront service.
//
// Every type follows the same shape:
//   - a sentinel error variable (e.g. ErrObjectNotFound) used with errors.Is
//   - a struct carrying the details (e.g. ObjectNotFoundError) used with errors.As
//   - constructors with and without a cause
//   - Unwrap returning the sentinel
//
// Validation failures use ValueIsRequiredError, ValueIsInvalidError and
// ValueIsOutOfRangeError. The order lifecycle adds AccessDeniedError (role not
// permitted), InvalidTransitionError (status edge not in the transition table)
// and InsufficientStockError (stock would drop below zero). The HTTP adapter maps
// the sentinels onto status codes.
package errs
