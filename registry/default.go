package registry

import "context"

// defaultRegistry backs the package-level registration helpers. Capability
// packages register themselves here from init, driver-style, so importing a
// package is what makes its location loadable.
var defaultRegistry = New()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a provider to the process-wide registry.
func Register(location string, p Provider) error {
	return defaultRegistry.Register(location, p)
}

// Replace installs a provider in the process-wide registry, overwriting any
// existing registration.
func Replace(location string, p Provider) error {
	return defaultRegistry.Replace(location, p)
}

// Load resolves a location against the process-wide registry.
func Load(ctx context.Context, location string) (SymbolTable, error) {
	return defaultRegistry.Load(ctx, location)
}
