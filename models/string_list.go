// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedListSource is returned when a StringList is scanned from a
// column that is neither text nor bytes.
var ErrUnsupportedListSource = errors.New("unsupported source type for string list")

// StringList is a list of strings persisted as a JSON array in a text column.
// An empty list is stored as NULL and NULL scans back to an empty list.
type StringList []string

// Value implements [driver.Valuer].
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}

	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("error encoding string list: %w", err)
	}

	return string(b), nil
}

// Scan implements [sql.Scanner].
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedListSource, src)
	}

	if len(raw) == 0 {
		*l = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return fmt.Errorf("error decoding string list: %w", err)
	}
	*l = list

	return nil
}

// MarshalJSON renders a nil list as an empty array.
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Clone returns an independent copy of l.
func (l StringList) Clone() StringList {
	if l == nil {
		return nil
	}
	return append(StringList(nil), l...)
}
