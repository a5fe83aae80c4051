package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-code-gen/models"
)

func TestRequestValidator_Validate(t *testing.T) {
	v := NewRequestValidator()
	ctx := context.Background()

	tests := []struct {
		name     string
		value    any
		fields   []string
		wantErrs []error
	}{
		{name: "valid register", value: models.RegisterRequest{Username: "alice", Email: "a@b.c", Password: "pw"}},
		{name: "register pointer", value: &models.RegisterRequest{Username: "alice", Email: "a@b.c", Password: "pw"}},
		{
			name:     "register missing everything",
			value:    models.RegisterRequest{Username: "  ", Email: ""},
			wantErrs: []error{ErrEmptyUsername, ErrEmptyEmail, ErrEmptyPassword},
		},
		{name: "whitespace password is allowed", value: models.RegisterRequest{Username: "a", Email: "e", Password: " "}},
		{
			name:     "register scoped to password",
			value:    models.RegisterRequest{Username: "alice"},
			fields:   []string{FieldPassword},
			wantErrs: []error{ErrEmptyPassword},
		},
		{name: "login", value: models.LoginRequest{Username: "alice"}, wantErrs: []error{ErrEmptyPassword}},
		{name: "profile without role", value: models.UpdateProfileRequest{Email: "a@b.c"}, wantErrs: []error{ErrEmptyRole}},
		{name: "project without name", value: &models.CreateProjectRequest{Name: "\t"}, wantErrs: []error{ErrEmptyProjectName}},
		{name: "blank requirements", value: models.GenerateRequest{Requirements: " \n "}, wantErrs: []error{ErrEmptyRequirements}},
		{name: "zero page is valid", value: models.Page{}},
		{name: "negative page", value: models.Page{Skip: -1, Limit: -1}, wantErrs: []error{ErrNegativeSkip, ErrNegativeLimit}},
		{name: "page scoped to limit", value: models.Page{Skip: -1, Limit: 5}, fields: []string{FieldLimit}},
		{name: "unsupported type", value: 42, wantErrs: []error{ErrUnsupportedType}},
		{name: "unknown field", value: models.Page{}, fields: []string{"offset"}, wantErrs: []error{ErrUnknownField}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(ctx, tt.value, tt.fields...)

			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
