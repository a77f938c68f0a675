// Package resolver locates one concrete hybrid search implementation from
// an ordered list of candidate locations.
//
// A candidate is a "location:symbol" pair; locations are loaded through a
// registry.Registry, so a candidate that is not loadable today (its
// package not imported yet, its backend not configured) is simply skipped
// and retried on the next scan.
//
// # Resolution
//
//	res := resolver.New(resolver.Options{})
//	resolved, err := res.Resolve(ctx)
//	if errors.Is(err, resolver.ErrNoCapability) {
//	    // degrade: no implementation available yet
//	}
//
// The first successful resolution is cached for the resolver's lifetime;
// [Resolver.Reset] is the only way to clear it. A failed resolution is
// never cached, so every call rescans until something is found.
//
// # Override
//
// Setting HYBRID_SEARCH_FUNC (or Options.Override) to "location:symbol"
// puts that candidate at priority position 0, ahead of the static list.
// A malformed override is ignored, not fatal.
//
// # Self-Exclusion
//
// The adapter facade itself exports the capability under
// SelfLocation:SelfSymbol. The scan skips that identity so the resolver
// cannot discover its own helper and recurse.
package resolver
