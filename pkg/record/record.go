package record

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownAttribute is returned when a record has no attribute with the
	// requested name.
	ErrUnknownAttribute = errors.New("record: unknown attribute")
	// ErrNotFound is returned by stores when no snapshot exists for an id.
	ErrNotFound = errors.New("record: not found")
)

// Record exposes named string attributes. A nil value means the attribute is
// unset.
type Record interface {
	RecordType() string
	ReadAttribute(name string) (*string, error)
	WriteAttribute(name string, value *string) error
}

// Identifiable records expose a stable id used by stores.
type Identifiable interface {
	RecordID() string
}

// String returns a pointer to value, convenient for literals.
func String(value string) *string {
	return &value
}

// Deref returns the pointed-to string or "" for nil.
func Deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

// Map is a record backed by a map of attribute values. Only attributes present
// in the map (including nil entries) are considered known.
type Map struct {
	Type   string
	ID     string
	Values map[string]*string
}

// NewMap constructs a map record declaring the supplied attribute names with
// nil values.
func NewMap(recordType string, attributes ...string) *Map {
	values := make(map[string]*string, len(attributes))
	for _, name := range attributes {
		values[name] = nil
	}
	return &Map{Type: recordType, Values: values}
}

func (m *Map) RecordType() string {
	return m.Type
}

func (m *Map) RecordID() string {
	return m.ID
}

func (m *Map) ReadAttribute(name string) (*string, error) {
	value, ok := m.Values[name]
	if !ok {
		return nil, fmt.Errorf("%w %q on %s", ErrUnknownAttribute, name, m.Type)
	}
	if value == nil {
		return nil, nil
	}
	out := *value
	return &out, nil
}

func (m *Map) WriteAttribute(name string, value *string) error {
	if _, ok := m.Values[name]; !ok {
		return fmt.Errorf("%w %q on %s", ErrUnknownAttribute, name, m.Type)
	}
	if value == nil {
		m.Values[name] = nil
		return nil
	}
	copied := *value
	m.Values[name] = &copied
	return nil
}

// Attributes returns the sorted attribute names.
func (m *Map) Attributes() []string {
	names := make([]string, 0, len(m.Values))
	for name := range m.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot copies the current values into a plain map, using nil for unset
// attributes.
func Snapshot(rec Record, attributes []string) (map[string]*string, error) {
	out := make(map[string]*string, len(attributes))
	for _, name := range attributes {
		value, err := rec.ReadAttribute(name)
		if err != nil {
			return nil, err
		}
		out[name] = value
	}
	return out, nil
}

// TypeName normalises a record type identifier to its snake_case form so
// "User", "user" and "BlogPost"/"blog_post" address the same registry entry.
func TypeName(raw string) string {
	return snakeCase(strings.TrimSpace(raw))
}

func snakeCase(value string) string {
	if value == "" {
		return ""
	}
	var builder strings.Builder
	builder.Grow(len(value) + 4)
	runes := []rune(value)
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ' || r == '.':
			builder.WriteByte('_')
		case r >= 'A' && r <= 'Z':
			if i > 0 && runes[i-1] != '_' && runes[i-1] != '-' && runes[i-1] != ' ' {
				prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z' || runes[i-1] >= '0' && runes[i-1] <= '9'
				nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
				if prevLower || nextLower {
					builder.WriteByte('_')
				}
			}
			builder.WriteRune(r + ('a' - 'A'))
		default:
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
