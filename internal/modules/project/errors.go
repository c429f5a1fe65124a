package project

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("no permission for this project")
	ErrInvalidLevel    = errors.New("invalid permission level")
)
