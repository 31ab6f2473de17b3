// Package common defines the error taxonomy and small helpers shared by the
// volt stores, the session controller and the console adapter. Callers should
// use errors.Is to match these values.
package common

import "errors"

var (
	// Credential store outcomes. All of them are recoverable: the session
	// controller re-prompts the user.
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	// ErrMalformedRecord marks a persisted line that does not match the
	// record schema. Such lines are skipped during scanning and only logged.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrStorageUnavailable wraps I/O failures of a backing file. It is fatal
	// for the operation in progress.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidInput is returned when a field cannot be stored unambiguously
	// (empty username, embedded delimiter or line break).
	ErrInvalidInput = errors.New("invalid input")
)
