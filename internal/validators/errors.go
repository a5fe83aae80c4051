package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyUsername     = errors.New("username is required")
	ErrEmptyEmail        = errors.New("email is required")
	ErrEmptyPassword     = errors.New("password is required")
	ErrEmptyRole         = errors.New("role is required")
	ErrEmptyProjectName  = errors.New("project name is required")
	ErrEmptyRequirements = errors.New("requirements are required")
	ErrNegativeSkip      = errors.New("skip must not be negative")
	ErrNegativeLimit     = errors.New("limit must not be negative")
)
