package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrSelfChange   = errors.New("cannot change your own account")
	ErrInvalidRole  = errors.New("invalid user role")
	ErrForbidden    = errors.New("no permission to view this user")
)
