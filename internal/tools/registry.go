package tools

import (
	"sort"
	"sync"

	"google.golang.org/adk/tool"

	"atlas/pkg/errors"
)

// Registry stores tools by name for discovery and lookup.
type Registry struct {
	tools map[string]tool.Tool
	mu    sync.RWMutex
}

// NewRegistry constructs an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]tool.Tool),
	}
}

// Register adds a tool under the provided name. Registering a second tool
// under a name that is already taken is rejected so a misconfigured
// assembly fails loudly instead of silently shadowing a tool.
func (r *Registry) Register(name string, t tool.Tool) error {
	if name == "" {
		return errors.Wrap(errors.ErrInvalidInput, "tool name is required")
	}
	if t == nil {
		return errors.Wrapf(errors.ErrInvalidInput, "tool %s is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return errors.Wrapf(errors.ErrDuplicateTool, "%s", name)
	}

	r.tools[name] = t
	return nil
}

// Get retrieves a tool by name if registered.
func (r *Registry) Get(name string) (tool.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns the names of all registered tools, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}
