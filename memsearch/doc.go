// Package memsearch is an in-memory hybrid searcher: token-overlap lexical
// scoring with a name boost, optionally combined with embedding cosine
// similarity under a configurable alpha weight.
//
// It is the warm fallback of the static candidate list: always loadable,
// with no configuration and no external dependency. Importing the package
// registers location "memsearch" exposing symbol "HybridSearch" with a
// positional signature:
//
//	func(ctx context.Context, query string, limit int) ([]Result, error)
//
// # Usage
//
//	idx, _ := memsearch.NewIndex(memsearch.Options{Embedder: emb, Alpha: 0.7})
//	_ = idx.Add(memsearch.Document{ID: "git:status", Name: "git_status", Description: "Show working tree status"})
//	results, err := idx.HybridSearch(ctx, "working status", 5)
//
// Ordering is deterministic: score descending, then ID ascending.
package memsearch
