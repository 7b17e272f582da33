package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is an ordered list of strings persisted as a JSON array in a
// text column. It replaces the loosely-typed stringified blobs the mobile
// clients used to send for certifications and categories.
type StringList []string

// Value implements driver.Valuer so gorm can persist the list
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("failed to encode string list: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner so gorm can load the list
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	if len(data) == 0 {
		*l = StringList{}
		return nil
	}

	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to decode string list: %w", err)
	}
	*l = out
	return nil
}
