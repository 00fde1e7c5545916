package record

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
)

// Validator inspects a record after before-validation hooks have run.
type Validator func(ctx context.Context, rec Record) error

// Store persists snapshots of record attributes.
type Store interface {
	Put(ctx context.Context, recordType, id string, values map[string]*string) error
	Get(ctx context.Context, recordType, id string) (map[string]*string, error)
}

// Saver runs the save sequence: before-validation hooks, validators, then
// the store.
type Saver struct {
	lifecycle  *Lifecycle
	store      Store
	validators []Validator
}

// NewSaver wires a lifecycle and store. Validators run in order.
func NewSaver(lifecycle *Lifecycle, store Store, validators ...Validator) *Saver {
	return &Saver{lifecycle: lifecycle, store: store, validators: validators}
}

// Valid runs hooks and validators without persisting, mirroring a host
// framework's valid? check.
func (s *Saver) Valid(ctx context.Context, rec Record) error {
	if rec == nil {
		return errors.New("record: record is nil")
	}
	if err := s.lifecycle.RunBeforeValidation(ctx, rec); err != nil {
		return err
	}
	for _, validate := range s.validators {
		if validate == nil {
			continue
		}
		if err := validate(ctx, rec); err != nil {
			return fmt.Errorf("record: validation: %w", err)
		}
	}
	return nil
}

// Save validates rec and stores a snapshot of attributes. The stored id is
// returned; records that are not Identifiable receive a store-assigned id.
func (s *Saver) Save(ctx context.Context, rec Record, attributes []string) (string, error) {
	if err := s.Valid(ctx, rec); err != nil {
		return "", err
	}
	if s.store == nil {
		return "", errors.New("record: store is not configured")
	}
	values, err := Snapshot(rec, attributes)
	if err != nil {
		return "", fmt.Errorf("record: snapshot: %w", err)
	}

	id := ""
	if identifiable, ok := rec.(Identifiable); ok {
		id = identifiable.RecordID()
	}
	if id == "" {
		if seq, ok := s.store.(interface{ NextID(string) string }); ok {
			id = seq.NextID(TypeName(rec.RecordType()))
		}
	}
	if err := s.store.Put(ctx, TypeName(rec.RecordType()), id, values); err != nil {
		return "", fmt.Errorf("record: store: %w", err)
	}
	return id, nil
}

// MemoryStore is an in-process Store keyed by record type and id.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string]map[string]*string
	seq     map[string]int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]map[string]map[string]*string),
		seq:     make(map[string]int),
	}
}

// NextID hands out sequential ids per record type.
func (m *MemoryStore) NextID(recordType string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq[recordType]++
	return strconv.Itoa(m.seq[recordType])
}

func (m *MemoryStore) Put(ctx context.Context, recordType, id string, values map[string]*string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" {
		return errors.New("record: id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.records[recordType] == nil {
		m.records[recordType] = make(map[string]map[string]*string)
	}
	m.records[recordType][id] = cloneValues(values)
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, recordType, id string) (map[string]*string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	values, ok := m.records[recordType][id]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, recordType, id)
	}
	return cloneValues(values), nil
}

// IDs lists stored ids for recordType in sorted order.
func (m *MemoryStore) IDs(recordType string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.records[recordType]))
	for id := range m.records[recordType] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func cloneValues(src map[string]*string) map[string]*string {
	out := make(map[string]*string, len(src))
	for key, value := range src {
		if value == nil {
			out[key] = nil
			continue
		}
		copied := *value
		out[key] = &copied
	}
	return out
}
