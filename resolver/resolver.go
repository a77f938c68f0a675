package resolver

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/jonwraymond/capadapter/invoke"
	"github.com/jonwraymond/capadapter/registry"
)

// ErrNoCapability means no candidate resolved. It is an expected outcome,
// not a fault: callers degrade gracefully, and the next Resolve call scans
// again in case a candidate location has become loadable meanwhile.
var ErrNoCapability = errors.New("no hybrid search capability resolved")

// Resolved is the process-wide resolution result: the first candidate that
// loaded, exported the symbol, and survived the exclusion rules. Created
// once per Resolver lifetime (or per explicit Reset) and shared read-only
// afterwards.
type Resolved struct {
	// Target is the opaque capability value; the invoker decides how to
	// call it.
	Target any

	// Origin is the candidate the target came from.
	Origin CandidateSpec

	// ResolvedAt is when the scan cached this result.
	ResolvedAt time.Time
}

// Options configures a Resolver.
type Options struct {
	// Registry supplies location providers. Nil uses registry.Default().
	Registry *registry.Registry

	// Candidates overrides the static candidate list. Nil uses
	// DefaultCandidates().
	Candidates []CandidateSpec

	// Override is a "location:symbol" spec taking priority position 0.
	// Empty falls back to the EnvOverride environment variable; a
	// malformed value is treated as absent.
	Override string

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Resolver finds one concrete capability implementation and caches it.
// Construct one at process startup and pass it to callers; the cache is
// the only shared state, and a deliberate Reset is the only way to replace
// a resolution.
type Resolver struct {
	reg        *registry.Registry
	candidates []CandidateSpec
	now        func() time.Time

	mu     sync.RWMutex
	cached *Resolved
}

// New creates a Resolver.
func New(opts Options) *Resolver {
	reg := opts.Registry
	if reg == nil {
		reg = registry.Default()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	override := opts.Override
	if override == "" {
		override = os.Getenv(EnvOverride)
	}

	candidates := opts.Candidates
	if candidates == nil {
		candidates = DefaultCandidates()
	}
	if spec, ok := ParseSpec(override); ok {
		candidates = append([]CandidateSpec{spec}, candidates...)
	}

	return &Resolver{
		reg:        reg,
		candidates: candidates,
		now:        now,
	}
}

// Resolve returns the cached capability, or scans the candidate list for
// one. A cache hit returns immediately with no rescanning. On a scan, each
// candidate is tried in order: a location that fails to load is skipped
// (the load error never propagates), a missing or non-invocable symbol is
// skipped, and the adapter's own helper is skipped. The first survivor is
// cached and returned.
//
// When nothing survives, Resolve returns ErrNoCapability and the cache
// stays empty, so the next call scans again. That bias toward eventual
// discovery is deliberate: a candidate location may become loadable later,
// after lazy registration elsewhere in the process.
func (r *Resolver) Resolve(ctx context.Context) (*Resolved, error) {
	r.mu.RLock()
	cached := r.cached
	r.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	for _, cand := range r.candidates {
		if cand.isSelf() {
			continue
		}

		table, err := r.reg.Load(ctx, cand.Location)
		if err != nil {
			continue
		}

		target, ok := table[cand.Symbol]
		if !ok || !invoke.Invocable(target) {
			continue
		}

		resolved := &Resolved{
			Target:     target,
			Origin:     cand,
			ResolvedAt: r.now(),
		}

		// Concurrent scans of the same list converge on the same first
		// survivor; keep whichever write landed first so a resolution is
		// never silently replaced.
		r.mu.Lock()
		if r.cached == nil {
			r.cached = resolved
		}
		resolved = r.cached
		r.mu.Unlock()

		return resolved, nil
	}

	return nil, ErrNoCapability
}

// Resolved returns the cached resolution without scanning, or nil.
func (r *Resolver) Resolved() *Resolved {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cached
}

// Reset clears the cached resolution. The next Resolve call scans again.
// This is the one deliberate way a resolution gets replaced.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.cached = nil
	r.mu.Unlock()
}
