package invoke

import (
	"strings"

	"github.com/jonwraymond/capadapter/capability"
)

// AliasTable maps a canonical field name to acceptable alternative names in
// priority order. It is static configuration data, not derived at runtime.
type AliasTable map[string][]string

// DefaultAliases returns the built-in alias table covering the parameter
// vocabularies seen across hybrid search implementations.
func DefaultAliases() AliasTable {
	return AliasTable{
		capability.FieldQuery:         {"q", "text", "prompt", "term"},
		capability.FieldLimit:         {"top_k", "k", "max_results", "count"},
		capability.FieldUserID:        {"user", "uid", "userid"},
		capability.FieldMinScore:      {"threshold", "cutoff", "score_floor"},
		capability.FieldShowBreakdown: {"breakdown", "explain", "debug"},
	}
}

// Signature describes a target's declared parameters for reconciliation.
type Signature struct {
	// Params are the target's declared parameter names.
	Params []string

	// AcceptsAny reports whether the target accepts arbitrary additional
	// named arguments, in which case canonical names pass through unchanged.
	AcceptsAny bool
}

// Reconcile maps canonical fields onto the names a target actually
// declares. A field present verbatim keeps its canonical name; otherwise
// the first alias the target declares is substituted; a field with no
// match is dropped. The returned map never contains a key the target does
// not declare, unless the target accepts arbitrary keys.
//
// Name matching is case- and separator-insensitive, so canonical "user_id"
// reconciles against a declared "UserID" as well as "user_id".
func (t AliasTable) Reconcile(fields map[string]any, sig Signature) map[string]any {
	if sig.AcceptsAny {
		out := make(map[string]any, len(fields))
		for name, value := range fields {
			out[name] = value
		}
		return out
	}

	declared := make(map[string]string, len(sig.Params))
	for _, p := range sig.Params {
		declared[normalizeName(p)] = p
	}

	out := make(map[string]any)
	for name, value := range fields {
		if match, ok := declared[normalizeName(name)]; ok {
			out[match] = value
			continue
		}
		for _, alias := range t[name] {
			if match, ok := declared[normalizeName(alias)]; ok {
				out[match] = value
				break
			}
		}
	}
	return out
}

// normalizeName lowercases a parameter name and strips separators so that
// user_id, UserID and user-id all compare equal.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
