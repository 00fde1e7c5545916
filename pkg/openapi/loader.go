package openapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-templated/pkg/attr"
	"github.com/goliatone/go-templated/pkg/declare"
)

const (
	// ExtensionKey marks a schema property as templated.
	ExtensionKey = "x-templated"
	// RecordExtensionKey overrides the record type derived from a schema name.
	RecordExtensionKey = "x-templated-record"
)

// Option configures Load.
type Option func(*options)

type options struct {
	validate bool
	source   string
}

// WithValidation validates the document with kin-openapi before scanning it.
func WithValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}

// WithSourceName names the document in declaration sources and errors.
func WithSourceName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.source = name
		}
	}
}

// Load parses an OpenAPI document and returns the declarations found in its
// component schemas, ordered by schema and property name.
func Load(ctx context.Context, data []byte, opts ...Option) (*declare.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := options{source: "openapi"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", cfg.source, err)
	}
	if cfg.validate {
		if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi: validate %s: %w", cfg.source, err)
		}
	}

	set := declare.NewSet()
	if doc.Components == nil {
		return set, nil
	}

	names := make([]string, 0, len(doc.Components.Schemas))
	for name := range doc.Components.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := doc.Components.Schemas[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		recordType := name
		if override, ok := ref.Value.Extensions[RecordExtensionKey].(string); ok && override != "" {
			recordType = override
		}

		properties := collectProperties(ref.Value, make(map[*openapi3.Schema]bool))
		for _, property := range sortedPropertyNames(properties) {
			raw, ok := properties[property].Extensions[ExtensionKey]
			if !ok {
				continue
			}
			opts, err := extensionOptions(raw)
			if err != nil {
				return nil, fmt.Errorf("openapi: %s schema %s property %s: %w", cfg.source, name, property, err)
			}
			err = set.Add(declare.Declaration{
				RecordType: recordType,
				Attribute:  property,
				Options:    opts,
				Source:     cfg.source + "#/components/schemas/" + name,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// LoadFS reads name from fsys and loads it.
func LoadFS(ctx context.Context, fsys fs.FS, name string, opts ...Option) (*declare.Set, error) {
	if fsys == nil {
		return nil, errors.New("openapi: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("openapi: read %s: %w", name, err)
	}
	return Load(ctx, data, append([]Option{WithSourceName(name)}, opts...)...)
}

// collectProperties flattens a schema's properties, including those
// contributed by allOf members. Direct properties win over inherited ones.
func collectProperties(schema *openapi3.Schema, seen map[*openapi3.Schema]bool) map[string]*openapi3.Schema {
	out := make(map[string]*openapi3.Schema)
	if schema == nil || seen[schema] {
		return out
	}
	seen[schema] = true

	for _, member := range schema.AllOf {
		if member == nil || member.Value == nil {
			continue
		}
		for name, property := range collectProperties(member.Value, seen) {
			out[name] = property
		}
	}
	for name, property := range schema.Properties {
		if property == nil || property.Value == nil {
			continue
		}
		out[name] = property.Value
	}
	return out
}

func sortedPropertyNames(properties map[string]*openapi3.Schema) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extensionOptions converts the decoded x-templated value into declaration
// options. Values arrive as decoded JSON or raw messages depending on how
// the document was loaded.
func extensionOptions(raw any) (attr.Options, error) {
	switch value := raw.(type) {
	case json.RawMessage:
		var decoded map[string]any
		if err := json.Unmarshal(value, &decoded); err != nil {
			return nil, fmt.Errorf("decode %s: %w", ExtensionKey, err)
		}
		return extensionOptions(decoded)
	case map[string]string:
		return attr.Options(value), nil
	case map[string]any:
		opts := make(attr.Options, len(value))
		for key, entry := range value {
			text, ok := entry.(string)
			if !ok {
				return nil, fmt.Errorf("%s.%s must be a string, got %T", ExtensionKey, key, entry)
			}
			opts[key] = text
		}
		return opts, nil
	default:
		return nil, fmt.Errorf("%s must be an object, got %T", ExtensionKey, raw)
	}
}
