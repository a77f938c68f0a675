package mcpcap

import (
	"context"

	"github.com/jonwraymond/capadapter/capability"
	"github.com/jonwraymond/capadapter/registry"
)

// Location is the registry location a backend registers under.
const Location = "mcp"

// HybridSearch implements capability.Interface by calling the selected
// tool with the full canonical field set. MCP tools take named arguments
// by nature, so no reconciliation is needed on this path.
func (b *Backend) HybridSearch(ctx context.Context, req capability.Request) (any, error) {
	tool, ok := b.SearchTool()
	if !ok {
		if err := b.Connect(ctx); err != nil {
			return nil, err
		}
		tool, _ = b.SearchTool()
	}
	return b.callTool(ctx, tool.Name, req.Fields())
}

// Provider returns a registry provider that connects the backend on first
// load. While the server is unreachable the load fails and the resolver
// moves on; a later scan retries the connection.
func (b *Backend) Provider() registry.Provider {
	return registry.ProviderFunc(func(ctx context.Context) (registry.SymbolTable, error) {
		if err := b.Connect(ctx); err != nil {
			return nil, err
		}
		return registry.SymbolTable{
			"HybridSearch": capability.Interface(b),
		}, nil
	})
}

// Register creates a backend for cfg and installs it as location "mcp" in
// the process-wide registry. Unlike the in-process capabilities this needs
// endpoint configuration, so registration is explicit rather than an
// import side effect.
func Register(cfg Config) (*Backend, error) {
	b := NewBackend(cfg)
	if err := registry.Replace(Location, b.Provider()); err != nil {
		return nil, err
	}
	return b, nil
}
