package store

import "errors"

var (
	// ErrNotFound is returned when a record doesn't exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrParentNotFound is returned when the parent record doesn't exist.
	ErrParentNotFound = errors.New("store: parent record not found")

	// ErrAlreadyExists is returned when creating a record with an existing id.
	ErrAlreadyExists = errors.New("store: record already exists")

	// ErrUnavailable wraps every backend failure that is not a domain outcome
	// (network errors, throttling, missing tables).
	ErrUnavailable = errors.New("store: backend unavailable")

	// ErrCascadeIncomplete is returned when a cascade left children behind.
	ErrCascadeIncomplete = errors.New("store: cascade delete incomplete")
)
