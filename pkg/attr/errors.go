package attr

import (
	"errors"
	"strings"
)

// ErrConfiguration matches every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("attr: invalid template configuration")

// ConfigurationError reports an invalid declaration. It is raised while
// record types are being defined and is never expected at request time.
type ConfigurationError struct {
	RecordType string
	Attribute  string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	var builder strings.Builder
	builder.WriteString("attr: invalid template")
	if e.RecordType != "" || e.Attribute != "" {
		builder.WriteString(" for ")
		if e.RecordType != "" {
			builder.WriteString(e.RecordType)
			builder.WriteByte('.')
		}
		builder.WriteString(e.Attribute)
	}
	if e.Reason != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Reason)
	}
	return builder.String()
}

// Is lets errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// WithRecordType returns a copy of the error annotated with recordType.
func (e *ConfigurationError) WithRecordType(recordType string) *ConfigurationError {
	clone := *e
	clone.RecordType = recordType
	return &clone
}
