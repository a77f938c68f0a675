package resolver

import "strings"

// EnvOverride is the environment variable holding an optional
// "location:symbol" spec that takes resolution priority over the static
// candidate list.
const EnvOverride = "HYBRID_SEARCH_FUNC"

// The adapter facade re-exports the capability under this identity so
// consumers can install it alongside concrete implementations. A candidate
// matching it is the resolver finding its own helper; selecting it would
// recurse forever, so the scan skips it.
const (
	SelfLocation = "adapter"
	SelfSymbol   = "HybridSearch"
)

// CandidateSpec names one place a capability implementation might live.
// Immutable; order in a candidate list is resolution priority.
type CandidateSpec struct {
	Location string
	Symbol   string
}

// String renders the spec in override form.
func (c CandidateSpec) String() string {
	return c.Location + ":" + c.Symbol
}

// isSelf reports whether the spec points at the adapter's own helper.
func (c CandidateSpec) isSelf() bool {
	return c.Location == SelfLocation && c.Symbol == SelfSymbol
}

// ParseSpec parses a "location:symbol" override string. A spec without the
// separator, or with an empty half, is not well-formed; callers treat that
// as an absent override, never as a fatal error.
func ParseSpec(s string) (CandidateSpec, bool) {
	location, symbol, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return CandidateSpec{}, false
	}
	location = strings.TrimSpace(location)
	symbol = strings.TrimSpace(symbol)
	if location == "" || symbol == "" {
		return CandidateSpec{}, false
	}
	return CandidateSpec{Location: location, Symbol: symbol}, true
}

// DefaultCandidates returns the static candidate list, fixed at build
// time, in resolution priority order. The adapter's own helper is listed
// first on purpose: it is the most visible exporter of the symbol, and the
// self-exclusion rule is what keeps it from shadowing real
// implementations.
func DefaultCandidates() []CandidateSpec {
	return []CandidateSpec{
		{Location: SelfLocation, Symbol: SelfSymbol},
		{Location: "bleveindex", Symbol: "Search"},
		{Location: "mcp", Symbol: "HybridSearch"},
		{Location: "memsearch", Symbol: "HybridSearch"},
	}
}
