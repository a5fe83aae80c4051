// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks incoming requests against the rules every
// transport shares: required fields and pagination bounds.
//
// Validators are stateless and safe for concurrent use. Field names passed
// to Validate restrict the check to those fields.
package validators

import "context"

// Validator validates value, optionally only the named fields.
type Validator interface {
	Validate(ctx context.Context, value any, fields ...string) error
}
