// Package adapter is the entry point for hybrid search capability
// resolution and invocation.
//
// An Adapter finds some concrete hybrid search implementation among the
// registered candidate locations and calls it despite not knowing its
// exact signature in advance:
//
//	a := adapter.New(adapter.Options{})
//
//	result, err := a.HybridSearch(ctx, capability.Request{
//	    Query:  "show working status",
//	    Limit:  10,
//	    UserID: "u-123",
//	})
//	if errors.Is(err, resolver.ErrNoCapability) {
//	    // nothing resolvable yet: degrade, don't crash the request path
//	}
//
// The first successful resolution is cached for the adapter's lifetime;
// Reset clears it. Candidate order, override handling, and the invocation
// fallback chain live in the resolver and invoke packages.
package adapter
