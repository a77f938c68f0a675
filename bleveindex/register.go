package bleveindex

import (
	"context"
	"sync"

	"github.com/jonwraymond/capadapter/registry"
)

// Location is the registry location this package registers under.
const Location = "bleveindex"

var (
	defaultMu    sync.RWMutex
	defaultStore *Store
)

// The provider is registered at import but loads nothing until SetDefault
// has seeded a store. Until then the resolver skips this location and
// rescans on later calls, so an index built after startup is still found.
func init() {
	_ = registry.Register(Location, registry.ProviderFunc(
		func(context.Context) (registry.SymbolTable, error) {
			defaultMu.RLock()
			s := defaultStore
			defaultMu.RUnlock()
			if s == nil {
				return nil, ErrNotConfigured
			}
			return registry.SymbolTable{
				"Search": s.Search,
			}, nil
		},
	))
}

// SetDefault installs the store backing the registered location.
func SetDefault(s *Store) {
	defaultMu.Lock()
	defaultStore = s
	defaultMu.Unlock()
}
