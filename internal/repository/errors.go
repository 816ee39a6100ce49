// Package repository defines error types that are reused across multiple
// repositories.  These sentinel values allow higher layers such as handlers
// to distinguish between failure scenarios.  For example, ErrForbidden
// indicates that the current user is not authorized to operate on a resource
// owned by someone else, while ErrInsufficientBalance signals that a wallet
// debit would overdraw the account.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers should translate this into an HTTP 403
// response.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when the targeted row does not exist.  Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrInsufficientBalance is returned when a wallet debit exceeds the user's
// balance.  Handlers should translate this into an HTTP 400 response.
var ErrInsufficientBalance = errors.New("insufficient wallet balance")
