// file: service/errors.go

package service

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP status codes at the request boundary.
var (
	ErrEmailTaken    = errors.New("email already in use")
	ErrInvalidLogin  = errors.New("login invalid")
	ErrInvalidToken  = errors.New("token invalid")
	ErrUserNotFound  = errors.New("user not found")
	ErrTaskNotFound  = errors.New("task not found")
	ErrNotTaskOwner  = errors.New("task belongs to another user")
	ErrInvalidTaskID = errors.New("task id must be positive")
)
