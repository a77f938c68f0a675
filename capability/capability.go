package capability

import "context"

// Canonical field names used when passing a Request by name.
// Targets that accept arbitrary named arguments receive exactly this
// vocabulary; all other targets get these names reconciled against their
// declared parameters first.
const (
	FieldQuery         = "query"
	FieldLimit         = "limit"
	FieldUserID        = "user_id"
	FieldMinScore      = "min_score"
	FieldShowBreakdown = "show_breakdown"
)

// Request is the canonical hybrid search request. It is built fresh per
// call from the inbound request and never persisted.
//
// Range validation (Limit > 0, 0 <= MinScore <= 1) is the caller's
// responsibility; the adapter does not re-validate.
type Request struct {
	Query         string
	Limit         int
	UserID        string
	MinScore      float64
	ShowBreakdown bool
}

// Fields returns the full canonical named-argument form of the request.
func (r Request) Fields() map[string]any {
	return map[string]any{
		FieldQuery:         r.Query,
		FieldLimit:         r.Limit,
		FieldUserID:        r.UserID,
		FieldMinScore:      r.MinScore,
		FieldShowBreakdown: r.ShowBreakdown,
	}
}

// Positional returns the request values in canonical positional order:
// query, limit, user_id, min_score. ShowBreakdown has no positional slot;
// targets that want it must accept it by name.
func (r Request) Positional() []any {
	return []any{r.Query, r.Limit, r.UserID, r.MinScore}
}

// Interface is the explicit capability contract. Implementations that can
// be rewritten provide this directly; heterogeneous third-party functions
// are wrapped by the invoker's fallback chain instead.
type Interface interface {
	HybridSearch(ctx context.Context, req Request) (any, error)
}

// Func adapts a plain function to Interface.
type Func func(ctx context.Context, req Request) (any, error)

// HybridSearch implements Interface.
func (f Func) HybridSearch(ctx context.Context, req Request) (any, error) {
	return f(ctx, req)
}
