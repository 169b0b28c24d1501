package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// SpecMap stores a product's specification sheet as a flat key/value map
// (e.g. "Socket" -> "AM5", "Memory Type" -> "DDR5"). Persisted as JSONB on
// Postgres and TEXT on SQLite.
type SpecMap map[string]string

// Value implements driver.Valuer.
func (m SpecMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("spec map: marshal: %w", err)
	}
	return raw, nil
}

// Scan implements sql.Scanner.
func (m *SpecMap) Scan(src any) error {
	if src == nil {
		*m = SpecMap{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("spec map: unsupported source type %T", src)
	}

	if len(raw) == 0 {
		*m = SpecMap{}
		return nil
	}

	parsed := map[string]string{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("spec map: unmarshal: %w", err)
	}
	*m = parsed
	return nil
}

// Get returns the trimmed value for a key, and whether it is present and
// non-empty.
func (m SpecMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	value, ok := m[key]
	if !ok || value == "" {
		return "", false
	}
	return value, true
}
