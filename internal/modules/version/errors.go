package version

import "errors"

var (
	ErrVersionNotFound = errors.New("version not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("no permission for this project")
)
