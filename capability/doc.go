// Package capability defines the canonical request model and the explicit
// capability contract shared by the resolver and the adaptive invoker.
//
// A "capability" here is the abstract hybrid search operation this module
// locates and invokes. The package deliberately says nothing about what
// hybrid search computes; it only fixes the vocabulary callers use to ask
// for it.
//
// # Canonical Request
//
// [Request] carries the five canonical fields. Named forms use the wire
// names in the Field* constants; positional forms use [Request.Positional]
// order:
//
//	req := capability.Request{
//	    Query:    "show working status",
//	    Limit:    10,
//	    UserID:   "u-123",
//	    MinScore: 0.2,
//	}
//
// # Implementing a Capability
//
// New implementations should satisfy [Interface] (or wrap a function with
// [Func]); the invoker calls these directly, no signature probing involved:
//
//	impl := capability.Func(func(ctx context.Context, req capability.Request) (any, error) {
//	    return search(ctx, req.Query, req.Limit), nil
//	})
package capability
