package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sentinel errors for consistent error handling by callers.
var (
	ErrLocationNotFound    = errors.New("location not found")
	ErrDuplicateLocation   = errors.New("location already registered")
	ErrInvalidLocation     = errors.New("invalid location name")
	ErrInvalidProvider     = errors.New("invalid provider")
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// SymbolTable maps exported symbol names to their values. Values are
// typically functions or capability.Interface implementations; the
// resolver decides what counts as invocable.
type SymbolTable map[string]any

// Provider lazily loads a location's symbol table. Load may fail until the
// location has been configured elsewhere in the process; callers are
// expected to skip a failing location and try it again later.
type Provider interface {
	Load(ctx context.Context) (SymbolTable, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context) (SymbolTable, error)

// Load implements Provider.
func (f ProviderFunc) Load(ctx context.Context) (SymbolTable, error) {
	return f(ctx)
}

// StaticProvider returns a Provider that always yields the given table.
func StaticProvider(table SymbolTable) Provider {
	return ProviderFunc(func(context.Context) (SymbolTable, error) {
		return table, nil
	})
}

// Registry maps location names to providers for a single application
// instance. The zero value is not usable; call New.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider under a location name. Registering the same
// location twice is an error; use Replace to swap a provider out.
func (r *Registry) Register(location string, p Provider) error {
	if location == "" {
		return ErrInvalidLocation
	}
	if p == nil {
		return ErrInvalidProvider
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[location]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateLocation, location)
	}
	r.providers[location] = p
	return nil
}

// Replace installs a provider under a location name, overwriting any
// existing registration.
func (r *Registry) Replace(location string, p Provider) error {
	if location == "" {
		return ErrInvalidLocation
	}
	if p == nil {
		return ErrInvalidProvider
	}

	r.mu.Lock()
	r.providers[location] = p
	r.mu.Unlock()
	return nil
}

// Load resolves a location name to its symbol table. A missing location
// returns ErrLocationNotFound; a registered provider that cannot load yet
// returns its error wrapped in ErrProviderUnavailable.
func (r *Registry) Load(ctx context.Context, location string) (SymbolTable, error) {
	r.mu.RLock()
	p, ok := r.providers[location]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, location)
	}

	table, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrProviderUnavailable, location, err)
	}
	return table, nil
}

// Locations returns all registered location names in stable order.
func (r *Registry) Locations() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
