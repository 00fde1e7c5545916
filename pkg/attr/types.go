package attr

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Kind identifies how a template value behaves in the form field.
type Kind string

const (
	// KindStartingValue keeps the template as an editable prefix.
	KindStartingValue Kind = "starting_value"
	// KindLabel substitutes the field label and clears on focus.
	KindLabel Kind = "label"
)

// Option keys accepted by SpecFromOptions.
const (
	OptionStartingValue = string(KindStartingValue)
	OptionLabel         = string(KindLabel)
)

// ParseKind maps a raw kind identifier onto a Kind. Matching is exact, as in
// the browser runtime: unknown identifiers, including differently cased
// ones, resolve to KindStartingValue, which never clears the field on focus.
func ParseKind(raw string) Kind {
	switch raw {
	case string(KindLabel):
		return KindLabel
	default:
		return KindStartingValue
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k == KindStartingValue || k == KindLabel
}

func (k Kind) String() string {
	return string(k)
}

// Spec is the template declared for a single attribute.
type Spec struct {
	Attribute string `json:"attribute" yaml:"attribute"`
	Kind      Kind   `json:"kind" yaml:"kind"`
	Value     string `json:"value" yaml:"value"`
}

// ClearsOnFocus reports whether the field should be blanked when it receives
// focus while showing the template.
func (s Spec) ClearsOnFocus() bool {
	return s.Kind == KindLabel
}

// Matches reports whether value, once trimmed, equals the template value.
func (s Spec) Matches(value string) bool {
	return strings.TrimSpace(value) == s.Value
}

// Options holds raw declaration keys, e.g. {"label": "Tell us about yourself."}.
type Options map[string]string

// StartingValue builds declaration options for a starting value template.
func StartingValue(value string) Options {
	return Options{OptionStartingValue: value}
}

// Label builds declaration options for a label template.
func Label(value string) Options {
	return Options{OptionLabel: value}
}

// SpecFromOptions validates declaration options and builds the Spec for
// attribute. Exactly one of the starting_value or label keys is required.
func SpecFromOptions(attribute string, opts Options) (Spec, error) {
	attribute = strings.TrimSpace(attribute)
	if attribute == "" {
		return Spec{}, &ConfigurationError{Reason: "attribute name is required"}
	}

	if unknown := unknownKeys(opts); len(unknown) > 0 {
		return Spec{}, &ConfigurationError{
			Attribute: attribute,
			Reason:    "unknown option(s) " + strings.Join(unknown, ", ") + "; valid options are starting_value and label",
		}
	}

	if len(opts) != 1 {
		return Spec{}, &ConfigurationError{
			Attribute: attribute,
			Reason:    "you must specify either starting_value or label",
		}
	}

	for key, value := range opts {
		return Spec{Attribute: attribute, Kind: Kind(key), Value: value}, nil
	}
	return Spec{}, nil
}

func unknownKeys(opts Options) []string {
	var out []string
	for key := range opts {
		switch key {
		case OptionStartingValue, OptionLabel:
		default:
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// Humanize turns an attribute name into a prompt or field label:
// "favorite_books" becomes "Favorite books".
func Humanize(attribute string) string {
	words := strings.Fields(strings.ReplaceAll(attribute, "_", " "))
	if len(words) == 0 {
		return attribute
	}
	first, size := utf8.DecodeRuneInString(words[0])
	words[0] = string(unicode.ToUpper(first)) + words[0][size:]
	return strings.Join(words, " ")
}
