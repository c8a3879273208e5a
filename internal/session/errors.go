package session

import "errors"

var (
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrNotAuthenticated       = errors.New("not authenticated")
	ErrOperationInProgress    = errors.New("operation already in progress")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidSession         = errors.New("invalid session id")
	ErrInternal               = errors.New("internal error")
)
