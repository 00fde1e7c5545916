package declare

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/record"
)

type documentFile struct {
	Records map[string]map[string]map[string]string `json:"records" yaml:"records"`
}

// LoadFS walks fsys and parses every JSON/YAML declaration file. A nil fsys
// yields an empty set.
func LoadFS(fsys fs.FS) (*Set, error) {
	set := newSet()
	if fsys == nil {
		return set, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDeclarationFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("declare: read %s: %w", path, err)
		}
		return set.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Parse reads a single declaration document. source names it in errors.
func Parse(data []byte, source string) (*Set, error) {
	set := newSet()
	if err := set.add(data, source); err != nil {
		return nil, err
	}
	return set, nil
}

// Apply declares every entry on target, stopping at the first error.
func (s *Set) Apply(target Declarer) error {
	if target == nil {
		return fmt.Errorf("declare: target registry is nil")
	}
	if s == nil {
		return nil
	}
	for _, decl := range s.declarations {
		if err := target.Declare(decl.RecordType, decl.Attribute, decl.Options); err != nil {
			return fmt.Errorf("declare: %s: %w", decl.Source, err)
		}
	}
	return nil
}

// NewSet returns an empty set that Add can populate.
func NewSet() *Set {
	return newSet()
}

func newSet() *Set {
	return &Set{index: make(map[string]string)}
}

// Add validates decl and appends it. Option values are sanitised and a
// record type/attribute pair may only be declared once per set.
func (s *Set) Add(decl Declaration) error {
	recordType := record.TypeName(decl.RecordType)
	if recordType == "" {
		return fmt.Errorf("declare: %s defines an empty record type", decl.Source)
	}
	attribute := strings.TrimSpace(decl.Attribute)
	if attribute == "" {
		return fmt.Errorf("declare: %s record %q defines an empty attribute", decl.Source, recordType)
	}
	key := recordType + "." + attribute
	if previous, exists := s.index[key]; exists {
		return fmt.Errorf("declare: duplicate declaration %s (sources %s and %s)", key, previous, decl.Source)
	}

	opts := make(attr.Options, len(decl.Options))
	for _, rawKey := range sortedKeys(decl.Options) {
		optKey := strings.TrimSpace(rawKey)
		if _, collides := opts[optKey]; collides {
			err := &attr.ConfigurationError{
				RecordType: recordType,
				Attribute:  attribute,
				Reason:     fmt.Sprintf("option %q is given more than once", optKey),
			}
			return fmt.Errorf("declare: %s: %w", decl.Source, err)
		}
		opts[optKey] = sanitizeValue(decl.Options[rawKey])
	}
	if _, err := attr.SpecFromOptions(attribute, opts); err != nil {
		var cfgErr *attr.ConfigurationError
		if errors.As(err, &cfgErr) {
			err = cfgErr.WithRecordType(recordType)
		}
		return fmt.Errorf("declare: %s: %w", decl.Source, err)
	}

	s.index[key] = decl.Source
	s.declarations = append(s.declarations, Declaration{
		RecordType: recordType,
		Attribute:  attribute,
		Options:    opts,
		Source:     decl.Source,
	})
	return nil
}

func (s *Set) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}

	for _, rawType := range sortedKeys(doc.Records) {
		attrs := doc.Records[rawType]
		if record.TypeName(rawType) == "" {
			return fmt.Errorf("declare: %s defines an empty record type", source)
		}
		for _, rawAttr := range sortedKeys(attrs) {
			err := s.Add(Declaration{
				RecordType: rawType,
				Attribute:  rawAttr,
				Options:    attr.Options(attrs[rawAttr]),
				Source:     source,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("declare: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	return documentFile{}, fmt.Errorf("declare: parse %s: invalid JSON or YAML", source)
}

func isDeclarationFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func sortedKeys[V any](in map[string]V) []string {
	keys := make([]string, 0, len(in))
	for key := range in {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
