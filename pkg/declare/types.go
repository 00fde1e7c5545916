package declare

import (
	"github.com/goliatone/go-templated/pkg/attr"
)

// Declaration is a single templated attribute read from a file.
type Declaration struct {
	RecordType string
	Attribute  string
	Options    attr.Options
	Source     string
}

// Declarer accepts declarations; *registry.Registry satisfies it.
type Declarer interface {
	Declare(recordType, attribute string, opts attr.Options) error
}

// Set holds the declarations loaded from one or more files.
type Set struct {
	declarations []Declaration
	index        map[string]string
}

// Declarations returns the loaded declarations ordered by file, record type
// and attribute.
func (s *Set) Declarations() []Declaration {
	if s == nil {
		return nil
	}
	out := make([]Declaration, len(s.declarations))
	copy(out, s.declarations)
	return out
}

// Empty reports whether the set holds any declarations.
func (s *Set) Empty() bool {
	return s == nil || len(s.declarations) == 0
}

// Len returns the number of declarations.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.declarations)
}
