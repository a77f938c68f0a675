package memsearch

import (
	"context"

	"github.com/jonwraymond/capadapter/registry"
)

// Location is the registry location this package registers under.
const Location = "memsearch"

var defaultIndex *Index

func init() {
	defaultIndex, _ = NewIndex(Options{})
	_ = registry.Register(Location, registry.ProviderFunc(
		func(context.Context) (registry.SymbolTable, error) {
			return registry.SymbolTable{
				"HybridSearch": defaultIndex.HybridSearch,
			}, nil
		},
	))
}

// Default returns the package-level index backing the registered
// location. Seed it at startup; an empty index still resolves, it just
// returns no hits.
func Default() *Index {
	return defaultIndex
}
