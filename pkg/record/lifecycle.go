package record

import (
	"context"
	"fmt"
	"sync"
)

// HookFunc runs against a record during its save sequence.
type HookFunc func(ctx context.Context, rec Record) error

type namedHook struct {
	name string
	fn   HookFunc
}

// Lifecycle stores before-validation hooks per record type. Hooks run in
// installation order.
type Lifecycle struct {
	mu    sync.RWMutex
	hooks map[string][]namedHook
}

// NewLifecycle returns an empty lifecycle.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{hooks: make(map[string][]namedHook)}
}

// Install registers fn under name for recordType. Installing the same name
// twice for a record type is a no-op; the return value reports whether the
// hook was added.
func (l *Lifecycle) Install(recordType, name string, fn HookFunc) bool {
	if l == nil || fn == nil || name == "" {
		return false
	}
	recordType = TypeName(recordType)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.hooks == nil {
		l.hooks = make(map[string][]namedHook)
	}
	for _, hook := range l.hooks[recordType] {
		if hook.name == name {
			return false
		}
	}
	l.hooks[recordType] = append(l.hooks[recordType], namedHook{name: name, fn: fn})
	return true
}

// Installed lists hook names for recordType in run order.
func (l *Lifecycle) Installed(recordType string) []string {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	defer l.mu.RUnlock()

	hooks := l.hooks[TypeName(recordType)]
	names := make([]string, 0, len(hooks))
	for _, hook := range hooks {
		names = append(names, hook.name)
	}
	return names
}

// RunBeforeValidation executes the hooks registered for the record's type.
func (l *Lifecycle) RunBeforeValidation(ctx context.Context, rec Record) error {
	if l == nil || rec == nil {
		return nil
	}
	l.mu.RLock()
	hooks := append([]namedHook(nil), l.hooks[TypeName(rec.RecordType())]...)
	l.mu.RUnlock()

	for _, hook := range hooks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := hook.fn(ctx, rec); err != nil {
			return fmt.Errorf("record: before_validation %s: %w", hook.name, err)
		}
	}
	return nil
}
