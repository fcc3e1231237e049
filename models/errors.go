package models

import "errors"

// Domain error kinds. Core functions wrap these with %w so handlers can
// translate them to HTTP statuses with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrDuplicateAccount = errors.New("username or email already registered")
	ErrInvalidToken     = errors.New("reset token missing or expired")
	ErrPersistence      = errors.New("persistence failure")
)
