package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-code-gen/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{err: nil, want: KindInternal},
		{err: errors.New("boom"), want: KindInternal},
		{err: fmt.Errorf("user creation ended with error: %w", store.ErrUsernameAlreadyExists), want: KindConflict},
		{err: store.ErrVersionConflict, want: KindConflict},
		{err: ErrProjectNotFound, want: KindInvalid},
		{err: fmt.Errorf("%w: %w", ErrNotAuthenticated, ErrTokenIsExpiredOrInvalid), want: KindUnauthenticated},
		{err: ErrAccessDenied, want: KindForbidden},
		{err: fmt.Errorf("wrapped: %w", store.ErrGeneratedCodeNotFound), want: KindNotFound},
		{err: fmt.Errorf("%w: %w", store.ErrExecutingStatement, errors.New("disk full")), want: KindInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err), "%v", tt.err)
	}
}

func TestErrorKind_String(t *testing.T) {
	assert.Equal(t, "internal", KindInternal.String())
	assert.Equal(t, "invalid", KindInvalid.String())
	assert.Equal(t, "conflict", KindConflict.String())
	assert.Equal(t, "unauthenticated", KindUnauthenticated.String())
	assert.Equal(t, "forbidden", KindForbidden.String())
	assert.Equal(t, "not_found", KindNotFound.String())
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "", PublicMessage(nil))
	assert.Equal(t, "internal server error", PublicMessage(fmt.Errorf("%w: %w", store.ErrExecutingStatement, errors.New("disk full"))))
	assert.Equal(t, store.ErrUsernameAlreadyExists.Error(), PublicMessage(fmt.Errorf("user creation ended with error: %w", store.ErrUsernameAlreadyExists)))
	assert.Equal(t, "not authenticated", PublicMessage(fmt.Errorf("%w: %w", ErrNotAuthenticated, ErrTokenIsExpiredOrInvalid)))
}
