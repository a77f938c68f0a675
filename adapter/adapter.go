package adapter

import (
	"context"

	"github.com/jonwraymond/capadapter/capability"
	"github.com/jonwraymond/capadapter/invoke"
	"github.com/jonwraymond/capadapter/registry"
	"github.com/jonwraymond/capadapter/resolver"
)

// Options configures an Adapter.
type Options struct {
	// Registry supplies location providers. Nil uses registry.Default().
	Registry *registry.Registry

	// Candidates overrides the static candidate list.
	Candidates []resolver.CandidateSpec

	// Override is a "location:symbol" spec taking priority position 0.
	// Empty falls back to the HYBRID_SEARCH_FUNC environment variable.
	Override string

	// Aliases overrides the parameter alias table.
	Aliases invoke.AliasTable
}

// Adapter ties the resolver and the adaptive invoker into the one call
// endpoints use: build the canonical request, resolve, invoke, hand the
// raw result back up. Construct one at process startup and share it; all
// methods are safe for concurrent use.
type Adapter struct {
	res *resolver.Resolver
	inv *invoke.Invoker
}

// New creates an Adapter.
func New(opts Options) *Adapter {
	return &Adapter{
		res: resolver.New(resolver.Options{
			Registry:   opts.Registry,
			Candidates: opts.Candidates,
			Override:   opts.Override,
		}),
		inv: invoke.New(invoke.Options{Aliases: opts.Aliases}),
	}
}

// HybridSearch resolves the capability (cached after the first success)
// and invokes it with the request. The result is whatever the capability
// returned, unnormalized; shape translation belongs to the endpoint.
//
// resolver.ErrNoCapability passes through untouched; the endpoint decides
// how to degrade. Capability runtime failures and terminal shape failures
// surface unchanged as well; only resolution never raises.
func (a *Adapter) HybridSearch(ctx context.Context, req capability.Request) (any, error) {
	resolved, err := a.res.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	return a.inv.Call(ctx, resolved.Target, req)
}

// Resolver exposes the underlying resolver for lifecycle operations.
func (a *Adapter) Resolver() *resolver.Resolver {
	return a.res
}

// Reset clears the cached resolution; the next call scans again.
func (a *Adapter) Reset() {
	a.res.Reset()
}

// Install registers the adapter's own helper in reg under the identity the
// resolver excludes (resolver.SelfLocation, resolver.SelfSymbol). Hosts do
// this to hand the facade to other in-process consumers; the self-exclusion
// rule guarantees a scan never picks it up and recurses.
func (a *Adapter) Install(reg *registry.Registry) error {
	if reg == nil {
		reg = registry.Default()
	}
	return reg.Replace(resolver.SelfLocation, registry.StaticProvider(registry.SymbolTable{
		resolver.SelfSymbol: capability.Func(a.HybridSearch),
	}))
}
