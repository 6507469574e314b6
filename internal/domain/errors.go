package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service and timeline functions when input
// fails business rule validation (e.g. a duty event ending before it starts,
// or duty totals exceeding one calendar day).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrFetch marks a storage-layer failure that is not a missing row
// (connection loss, timeout, cancelled context). The condition is
// recoverable: the caller decides whether to retry, no partial result is
// returned. Handlers should map this to HTTP 502.
var ErrFetch = errors.New("fetch error")
