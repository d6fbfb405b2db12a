package models

import "errors"

// Errors returned by services. Controllers map them to HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidInput       = errors.New("invalid input")
)
