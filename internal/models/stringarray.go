package models

import (
	"database/sql/driver"
	"encoding/json"
)

// StringArray stores a list of strings in a JSON text column. The database
// does not model arrays natively for these fields.
type StringArray []string

// Value implements driver.Valuer. Empty and nil arrays are stored as "[]"
// so reads never see SQL NULL.
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *StringArray) Scan(value any) error {
	if value == nil {
		*a = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}
	return json.Unmarshal(bytes, a)
}
