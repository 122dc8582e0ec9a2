package models

import "errors"

// Domain errors that can be returned by repositories
var (
	// ErrNotFound indicates the requested entity was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateReference indicates an entry with the same reference already exists
	ErrDuplicateReference = errors.New("duplicate reference")

	// ErrDuplicateIdempotencyKey indicates a concurrent request already
	// created an entry for the same actor, kind and key
	ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")
)
