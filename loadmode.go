package msgcode

import (
	"fmt"
	"strings"
)

// LoadMode selects how a freshly loaded message set is merged into a
// catalog. The zero value is ReplaceAll.
type LoadMode int

const (
	// ReplaceAll drops every held message before inserting the loaded set.
	ReplaceAll LoadMode = iota
	// ReplaceExists inserts the loaded set, overwriting codes already held.
	ReplaceExists
	// SkipExists inserts only codes that are not held yet.
	SkipExists
)

var loadModeNames = [...]string{
	ReplaceAll:    "replace-all",
	ReplaceExists: "replace-exists",
	SkipExists:    "skip-exists",
}

func (m LoadMode) String() string {
	if m < 0 || int(m) >= len(loadModeNames) {
		return fmt.Sprintf("LoadMode(%d)", int(m))
	}
	return loadModeNames[m]
}

// ParseLoadMode accepts "replace-all", "REPLACE_ALL", "replace_all" and the
// equivalent forms of the other modes. An empty string yields ReplaceAll.
func ParseLoadMode(s string) (LoadMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	if normalized == "" {
		return ReplaceAll, nil
	}
	for i, name := range loadModeNames {
		if name == normalized {
			return LoadMode(i), nil
		}
	}
	return ReplaceAll, fmt.Errorf("unknown load mode %q", s)
}

func (m LoadMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *LoadMode) UnmarshalText(data []byte) error {
	mode, err := ParseLoadMode(string(data))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// UnmarshalYAML allows the mode to be given by name or by its numeric value.
func (m *LoadMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v interface{}
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*m = ReplaceAll
		return nil
	case string:
		return m.UnmarshalText([]byte(t))
	case int:
		if t < 0 || t >= len(loadModeNames) {
			return fmt.Errorf("load mode out of range: %d", t)
		}
		*m = LoadMode(t)
		return nil
	default:
		return fmt.Errorf("load mode must be string or int, got %T", v)
	}
}

// MarshalYAML emits the mode name.
func (m LoadMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}
