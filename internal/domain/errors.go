package domain

import "errors"

var (
	// ErrNotFound is returned for unknown hotel, room or booking ids.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks client input errors (bad dates, empty stays).
	ErrInvalidInput = errors.New("invalid input")
)
