// Package domain contains the core data types for the transit operations
// backend. This package has no dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, trip outside its line's
// operating window).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicate is returned by repo functions when an insert collides with a
// uniqueness constraint — most importantly the (direction, date, start, end)
// scheduling key on trips. The trip service converts it into a
// duplicate-flagged response rather than an error.
var ErrDuplicate = errors.New("duplicate")
