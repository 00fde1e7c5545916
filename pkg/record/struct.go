package record

import (
	"fmt"
	"reflect"
	"strings"
)

// Struct adapts a pointer to a struct into a Record. Attributes map onto
// exported string or *string fields, addressed by their `form` tag or the
// snake_cased field name.
type Struct struct {
	recordType string
	value      reflect.Value
	fields     map[string]int
}

// FromStruct wraps ptr, which must be a non-nil pointer to a struct. When
// recordType is empty the struct type name is used.
func FromStruct(recordType string, ptr any) (*Struct, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, fmt.Errorf("record: expected non-nil struct pointer, got %T", ptr)
	}
	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("record: expected struct pointer, got %T", ptr)
	}

	if recordType == "" {
		recordType = elem.Type().Name()
	}

	fields := make(map[string]int)
	typ := elem.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || !isStringField(field.Type) {
			continue
		}
		name := attributeName(field)
		if name == "" {
			continue
		}
		fields[name] = i
	}

	return &Struct{
		recordType: TypeName(recordType),
		value:      elem,
		fields:     fields,
	}, nil
}

// MustFromStruct panics when FromStruct fails.
func MustFromStruct(recordType string, ptr any) *Struct {
	rec, err := FromStruct(recordType, ptr)
	if err != nil {
		panic(err)
	}
	return rec
}

func (s *Struct) RecordType() string {
	return s.recordType
}

func (s *Struct) ReadAttribute(name string) (*string, error) {
	field, err := s.field(name)
	if err != nil {
		return nil, err
	}
	if field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return nil, nil
		}
		out := field.Elem().String()
		return &out, nil
	}
	// Plain string fields cannot hold nil; the zero value stands in for it.
	out := field.String()
	if out == "" {
		return nil, nil
	}
	return &out, nil
}

func (s *Struct) WriteAttribute(name string, value *string) error {
	field, err := s.field(name)
	if err != nil {
		return err
	}
	if field.Kind() == reflect.Pointer {
		if value == nil {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		copied := *value
		field.Set(reflect.ValueOf(&copied))
		return nil
	}
	field.SetString(Deref(value))
	return nil
}

func (s *Struct) field(name string) (reflect.Value, error) {
	idx, ok := s.fields[name]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w %q on %s", ErrUnknownAttribute, name, s.recordType)
	}
	return s.value.Field(idx), nil
}

var stringPtrType = reflect.TypeOf((*string)(nil))

func isStringField(t reflect.Type) bool {
	return t.Kind() == reflect.String || t == stringPtrType
}

func attributeName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("form"); ok {
		name := strings.TrimSpace(strings.Split(tag, ",")[0])
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return snakeCase(field.Name)
}
