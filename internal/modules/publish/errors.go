package publish

import "errors"

var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrNotZip          = errors.New("only zip archives are supported")
	ErrInvalidLabel    = errors.New("version label is not a valid path segment")
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("no permission to upload to this project")
	ErrLabelTaken      = errors.New("version label already exists for this project")
	ErrUnsafeArchive   = errors.New("archive contains unsafe entry paths")
	ErrExtractFailed   = errors.New("failed to extract archive")
	ErrRecordFailed    = errors.New("failed to record version")
)
