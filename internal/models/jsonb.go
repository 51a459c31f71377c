package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// scanJSON decodes a JSONB column value into dst.
// pgx hands JSONB back as []byte; string is accepted for text-format drivers.
func scanJSON(value interface{}, dst interface{}, typeName string) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to scan %s: expected []byte, got %T", typeName, value)
	}

	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", typeName, err)
	}
	return nil
}

// valueJSON encodes v as a JSON string suitable for a JSONB parameter.
func valueJSON(v interface{}, typeName string) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", typeName, err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for the demographics JSONB column.
func (d *Demographics) Scan(value interface{}) error {
	if value == nil {
		*d = Demographics{}
		return nil
	}
	return scanJSON(value, d, "demographics")
}

// Value implements driver.Valuer for the demographics JSONB column.
func (d Demographics) Value() (driver.Value, error) {
	return valueJSON(d, "demographics")
}

// Scan implements sql.Scanner for the preferences JSONB column.
func (p *Preferences) Scan(value interface{}) error {
	if value == nil {
		*p = Preferences{}
		return nil
	}
	return scanJSON(value, p, "preferences")
}

// Value implements driver.Valuer for the preferences JSONB column.
func (p Preferences) Value() (driver.Value, error) {
	return valueJSON(p, "preferences")
}

// Scan implements sql.Scanner for the lifestyle JSONB column.
func (l *Lifestyle) Scan(value interface{}) error {
	*l = nil
	if value == nil {
		return nil
	}
	return scanJSON(value, l, "lifestyle")
}

// Value implements driver.Valuer for the lifestyle JSONB column.
// A nil list is stored as an empty array so the column stays NOT NULL.
func (l Lifestyle) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return valueJSON([]LifestyleEntry(l), "lifestyle")
}

// Scan implements sql.Scanner for the conversation_history JSONB column.
func (h *ConversationHistory) Scan(value interface{}) error {
	*h = nil
	if value == nil {
		return nil
	}
	return scanJSON(value, h, "conversation history")
}

// Value implements driver.Valuer for the conversation_history JSONB column.
func (h ConversationHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return valueJSON([]ChatMessage(h), "conversation history")
}

// Scan implements sql.Scanner for JSONB string arrays.
func (s *StringList) Scan(value interface{}) error {
	*s = nil
	if value == nil {
		return nil
	}
	return scanJSON(value, s, "string list")
}

// Value implements driver.Valuer for JSONB string arrays.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return valueJSON([]string(s), "string list")
}

// Scan implements sql.Scanner for the property address JSONB column.
func (a *Address) Scan(value interface{}) error {
	if value == nil {
		*a = Address{}
		return nil
	}
	return scanJSON(value, a, "address")
}

// Value implements driver.Valuer for the property address JSONB column.
func (a Address) Value() (driver.Value, error) {
	return valueJSON(a, "address")
}

// Scan implements sql.Scanner for the property details JSONB column.
func (d *PropertyDetails) Scan(value interface{}) error {
	if value == nil {
		*d = PropertyDetails{}
		return nil
	}
	return scanJSON(value, d, "property details")
}

// Value implements driver.Valuer for the property details JSONB column.
func (d PropertyDetails) Value() (driver.Value, error) {
	return valueJSON(d, "property details")
}
