package validators

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-code-gen/models"
)

const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldPassword     = "password"
	FieldRole         = "role"
	FieldName         = "name"
	FieldRequirements = "requirements"
	FieldSkip         = "skip"
	FieldLimit        = "limit"
)

type fieldCheck func() error

type RequestValidator struct{}

func NewRequestValidator() Validator {
	return &RequestValidator{}
}

// Validate dispatches on the request type. Values and pointers are both
// accepted.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.UpdateProfileRequest:
		return v.validateUpdateProfile(value, fields...)
	case *models.UpdateProfileRequest:
		return v.validateUpdateProfile(*value, fields...)

	case models.CreateProjectRequest:
		return v.validateCreateProject(value, fields...)
	case *models.CreateProjectRequest:
		return v.validateCreateProject(*value, fields...)

	case models.GenerateRequest:
		return v.validateGenerate(value, fields...)
	case *models.GenerateRequest:
		return v.validateGenerate(*value, fields...)

	case models.Page:
		return v.validatePage(value, fields...)
	case *models.Page:
		return v.validatePage(*value, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *RequestValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	return run(map[string]fieldCheck{
		FieldUsername: required(req.Username, ErrEmptyUsername),
		FieldEmail:    required(req.Email, ErrEmptyEmail),
		FieldPassword: requiredRaw(req.Password, ErrEmptyPassword),
	}, []string{FieldUsername, FieldEmail, FieldPassword}, fields)
}

func (v *RequestValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	return run(map[string]fieldCheck{
		FieldUsername: requiredRaw(req.Username, ErrEmptyUsername),
		FieldPassword: requiredRaw(req.Password, ErrEmptyPassword),
	}, []string{FieldUsername, FieldPassword}, fields)
}

func (v *RequestValidator) validateUpdateProfile(req models.UpdateProfileRequest, fields ...string) error {
	return run(map[string]fieldCheck{
		FieldEmail: required(req.Email, ErrEmptyEmail),
		FieldRole:  requiredRaw(req.Role, ErrEmptyRole),
	}, []string{FieldEmail, FieldRole}, fields)
}

func (v *RequestValidator) validateCreateProject(req models.CreateProjectRequest, fields ...string) error {
	return run(map[string]fieldCheck{
		FieldName: required(req.Name, ErrEmptyProjectName),
	}, []string{FieldName}, fields)
}

func (v *RequestValidator) validateGenerate(req models.GenerateRequest, fields ...string) error {
	return run(map[string]fieldCheck{
		FieldRequirements: required(req.Requirements, ErrEmptyRequirements),
	}, []string{FieldRequirements}, fields)
}

func (v *RequestValidator) validatePage(page models.Page, fields ...string) error {
	return run(map[string]fieldCheck{
		FieldSkip: func() error {
			if page.Skip < 0 {
				return ErrNegativeSkip
			}
			return nil
		},
		FieldLimit: func() error {
			if page.Limit < 0 {
				return ErrNegativeLimit
			}
			return nil
		},
	}, []string{FieldSkip, FieldLimit}, fields)
}

// run executes the checks for fields, or for all of order when fields is
// empty, and joins every failure.
func run(checks map[string]fieldCheck, order []string, fields []string) error {
	if len(fields) == 0 {
		fields = order
	}

	var errs []error
	for _, field := range fields {
		check, ok := checks[field]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		if err := check(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// required rejects blank values.
func required(value string, err error) fieldCheck {
	return func() error {
		if strings.TrimSpace(value) == "" {
			return err
		}
		return nil
	}
}

// requiredRaw rejects only the empty string; passwords may be whitespace.
func requiredRaw(value string, err error) fieldCheck {
	return func() error {
		if value == "" {
			return err
		}
		return nil
	}
}
