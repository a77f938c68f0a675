// Package invoke executes a resolved capability whose exact signature is
// not known in advance.
//
// Given a target and the canonical request, the [Invoker] walks a strict
// fallback chain of calling conventions:
//
//  1. direct: the target implements capability.Interface
//  2. full-kwargs: a map[string]any parameter receives all canonical fields
//  3. filtered-kwargs: a struct parameter receives the reconciled subset
//  4. positional-4 .. positional-1 over query, limit, user_id, min_score
//
// Each state is probed before anything runs: a shape that cannot match
// advances the chain without executing the target. Only a target that
// actually ran can fail, and that failure always propagates unchanged;
// the chain never retries past a real capability error. When the terminal
// positional-1 shape cannot match either, Call returns a [MismatchError]
// carrying the attempt log.
//
// # Parameter Reconciliation
//
// [AliasTable.Reconcile] maps canonical field names onto whatever names a
// struct target declares, walking each field's alias list in priority
// order. Unmatched fields are dropped rather than forced:
//
//	table := invoke.DefaultAliases()
//	params := table.Reconcile(req.Fields(), invoke.Signature{Params: []string{"q", "limit"}})
//	// params: {"q": ..., "limit": ...}; user_id, min_score, show_breakdown dropped
//
// # Suspending Targets
//
// A target may return a channel instead of a plain value; the invoker
// awaits it (bounded by ctx) right before inspecting the outcome, so the
// chain logic is identical for synchronous and suspending capabilities.
//
// Reflection is confined to this package's unexported signature probe; it
// is not a general mechanism for callers.
package invoke
