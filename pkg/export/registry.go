package export

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Built-in target names.
const (
	TargetClipboard = "clipboard"
	TargetSaveAs    = "save-as"
	TargetDownload  = "download"
)

// Target is a named export action front ends can dispatch to.
type Target interface {
	Name() string
	Export(ctx context.Context, p Payload) (Result, error)
}

// TargetFunc adapts a function into a Target.
type TargetFunc struct {
	ID string
	Fn func(ctx context.Context, p Payload) (Result, error)
}

// Name implements Target.
func (t TargetFunc) Name() string { return t.ID }

// Export implements Target.
func (t TargetFunc) Export(ctx context.Context, p Payload) (Result, error) {
	return t.Fn(ctx, p)
}

// Registry stores targets by name, providing discovery and duplication
// safeguards.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]Target
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]Target),
	}
}

// Register adds a target by its Name(). Duplicate names return an error.
func (r *Registry) Register(target Target) error {
	if target == nil {
		return fmt.Errorf("export: target is required")
	}
	name := target.Name()
	if name == "" {
		return fmt.Errorf("export: target name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.targets[name]; exists {
		return fmt.Errorf("export: target %q already registered", name)
	}

	r.targets[name] = target
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(target Target) {
	if err := r.Register(target); err != nil {
		panic(err)
	}
}

// Get retrieves a target by name.
func (r *Registry) Get(name string) (Target, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	target, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("export: target %q not found", name)
	}
	return target, nil
}

// List returns a sorted list of target names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a target is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.targets[name]
	return ok
}

// Export dispatches p to the named target.
func (r *Registry) Export(ctx context.Context, name string, p Payload) (Result, error) {
	target, err := r.Get(name)
	if err != nil {
		return Result{}, err
	}
	return target.Export(ctx, p)
}

// Targets returns a registry holding the exporter's clipboard, save-as and
// download operations.
func (e *Exporter) Targets() *Registry {
	registry := NewRegistry()
	registry.MustRegister(TargetFunc{ID: TargetClipboard, Fn: func(ctx context.Context, p Payload) (Result, error) {
		if err := e.CopyToClipboard(ctx, p); err != nil {
			return Result{Outcome: OutcomeFailed, Err: err}, err
		}
		return Result{Outcome: OutcomeCopied}, nil
	}})
	registry.MustRegister(TargetFunc{ID: TargetSaveAs, Fn: func(ctx context.Context, p Payload) (Result, error) {
		return e.SaveAs(ctx, p), nil
	}})
	registry.MustRegister(TargetFunc{ID: TargetDownload, Fn: e.Download})
	return registry
}
