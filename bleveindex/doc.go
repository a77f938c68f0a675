// Package bleveindex exposes an in-memory bleve index as a hybrid search
// capability that accepts arbitrary named arguments.
//
// The registered symbol has the signature
//
//	func(ctx context.Context, params map[string]any) (any, error)
//
// and consumes the canonical vocabulary directly (query, limit, user_id,
// min_score, show_breakdown), so the invoker's full-kwargs convention
// succeeds on the first attempt. show_breakdown maps to bleve's scoring
// explanations.
//
// Importing the package registers location "bleveindex", but the provider
// only loads after [SetDefault] has seeded a store:
//
//	store, _ := bleveindex.NewStore(docs...)
//	bleveindex.SetDefault(store)
//
// Until then the location fails to load and resolution falls through to
// later candidates.
package bleveindex
