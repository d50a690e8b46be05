// Package repository defines error types that are reused across the data
// access layer. These sentinel values allow higher layers such as handlers
// and middleware to distinguish between different failure scenarios without
// inspecting driver errors. For example, ErrNotFound indicates that the
// requested record does not exist, while ErrEmailExists signals that a
// registration collided with an already registered address.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique index on
// users.email. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup, update or delete targets a record
// that does not exist. Handlers should translate this into an HTTP 404
// response; the session middleware treats it as an invalid session.
var ErrNotFound = errors.New("not found")
