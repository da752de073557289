// Package errs defines the failure taxonomy shared by the repository,
// the identity provider and the access control guard. Only the HTTP
// controllers translate these into wire-level status codes.
package errs

import "fmt"

// ValidationError signals missing or malformed input (HTTP 400).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// AuthError signals missing or invalid credentials (HTTP 401).
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

func Authf(format string, args ...any) error {
	return &AuthError{Msg: fmt.Sprintf(format, args...)}
}

// ForbiddenError signals an authenticated but insufficiently
// privileged caller (HTTP 403).
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string { return e.Msg }

func Forbiddenf(format string, args ...any) error {
	return &ForbiddenError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError signals that a referenced report is absent (HTTP 404).
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func NotFoundf(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// StorageError wraps a failure of the persistence substrate or the
// blob store (HTTP 500). The underlying error stays reachable through
// errors.Unwrap for logging.
type StorageError struct {
	Msg string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *StorageError) Unwrap() error { return e.Err }

func Storagef(err error, format string, args ...any) error {
	return &StorageError{Msg: fmt.Sprintf(format, args...), Err: err}
}
