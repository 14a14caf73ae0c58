package services

import "errors"

// Domain errors shared by the service layer. Handlers translate these
// into HTTP status codes with errors.Is.
var (
	// ErrInvalidInput indicates a malformed or missing request value.
	ErrInvalidInput = errors.New("invalid input")
	// ErrAlreadyExists indicates a uniqueness conflict (username or word).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials indicates a failed login. The message is the same
	// whether the username is unknown or the password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden indicates the entity exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
)
