package service

import (
	"errors"

	"github.com/MKhiriev/go-code-gen/internal/store"
)

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrRequirementsRequired  = errors.New("requirements are required")
	ErrInvalidPagination     = errors.New("skip and limit must not be negative")
	ErrProjectNotFound       = errors.New("referenced project does not exist")
	ErrTemplateNotFound      = errors.New("referenced template does not exist")
	ErrInvalidCredentials    = errors.New("incorrect username or password")
	ErrInactiveUser          = errors.New("inactive user")
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrAccessDenied          = errors.New("access to this generation is denied")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)

// ErrorKind classifies errors at the service boundary. Transports map kinds
// onto their own status codes.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalid
	KindConflict
	KindUnauthenticated
	KindForbidden
	KindNotFound
)

// String returns the wire name of k.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

var errorKinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrInvalidDataProvided, KindInvalid},
	{ErrRequirementsRequired, KindInvalid},
	{ErrInvalidPagination, KindInvalid},
	{ErrProjectNotFound, KindInvalid},
	{ErrTemplateNotFound, KindInvalid},
	{store.ErrUsernameAlreadyExists, KindConflict},
	{store.ErrEmailAlreadyExists, KindConflict},
	{store.ErrVersionConflict, KindConflict},
	{ErrInvalidCredentials, KindUnauthenticated},
	{ErrInactiveUser, KindUnauthenticated},
	{ErrNotAuthenticated, KindUnauthenticated},
	{ErrTokenIsExpiredOrInvalid, KindUnauthenticated},
	{ErrAccessDenied, KindForbidden},
	{store.ErrGeneratedCodeNotFound, KindNotFound},
	{store.ErrNoUserWasFound, KindNotFound},
}

// KindOf returns the kind of the first known sentinel wrapped by err.
// Unknown and nil errors are [KindInternal].
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindInternal
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}

	return KindInternal
}

// PublicMessage returns the message of the first known sentinel wrapped by
// err, dropping the wrapping context. Internal errors get a generic text.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.err.Error()
		}
	}

	return "internal server error"
}
