package orchestrator

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-templated/pkg/render"
)

// RendererRegistry stores field renderers by name.
type RendererRegistry struct {
	mu        sync.RWMutex
	renderers map[string]render.FieldRenderer
}

// NewRendererRegistry creates an empty renderer registry.
func NewRendererRegistry() *RendererRegistry {
	return &RendererRegistry{
		renderers: make(map[string]render.FieldRenderer),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *RendererRegistry) Register(renderer render.FieldRenderer) error {
	if renderer == nil {
		return fmt.Errorf("orchestrator: renderer is required")
	}
	name := normalizeRendererName(renderer.Name())
	if name == "" {
		return fmt.Errorf("orchestrator: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("orchestrator: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// Get retrieves a renderer by name.
func (r *RendererRegistry) Get(name string) (render.FieldRenderer, error) {
	key := normalizeRendererName(name)
	if key == "" {
		return nil, fmt.Errorf("orchestrator: renderer name is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[key]
	if !ok {
		return nil, fmt.Errorf("orchestrator: renderer %q not found", key)
	}
	return renderer, nil
}

// Has reports whether name is registered.
func (r *RendererRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.renderers[normalizeRendererName(name)]
	return ok
}

// List returns the registered renderer names sorted alphabetically.
func (r *RendererRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeRendererName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
