// Package repository implements PostgreSQL persistence for the directory.
package repository

import "errors"

// ErrNotFound is returned when no row matches the given identifier.
// Handlers map it to 404.
var ErrNotFound = errors.New("not found")

// ErrNoFields is returned when an update carries nothing to change.
var ErrNoFields = errors.New("no fields to update")
