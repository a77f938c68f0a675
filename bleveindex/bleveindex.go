package bleveindex

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/jonwraymond/capadapter/capability"
)

// Error values for consistent error handling by callers.
var (
	ErrNotConfigured     = errors.New("bleve index not configured")
	ErrInvalidDocumentID = errors.New("document id is empty")
)

// Document is a record indexed for full-text search.
type Document struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Store wraps an in-memory bleve index behind the canonical named-argument
// vocabulary.
type Store struct {
	mu  sync.RWMutex
	idx bleve.Index
}

// NewStore creates a mem-only bleve index seeded with the given documents.
func NewStore(docs ...Document) (*Store, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	s := &Store{idx: idx}
	for _, doc := range docs {
		if err := s.Add(doc); err != nil {
			_ = idx.Close()
			return nil, err
		}
	}
	return s, nil
}

// Add indexes or reindexes a document.
func (s *Store) Add(doc Document) error {
	if doc.ID == "" {
		return ErrInvalidDocumentID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.Index(doc.ID, doc)
}

// Close releases the index.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx.Close()
}

// Search executes a match query using the canonical parameter vocabulary:
// query, limit, user_id, min_score, show_breakdown. It accepts arbitrary
// named arguments and ignores ones it has no use for (user_id among them),
// which is exactly the contract the full-kwargs calling convention trusts.
//
// show_breakdown turns on bleve's per-hit scoring explanation; min_score
// filters hits below the threshold.
func (s *Store) Search(ctx context.Context, params map[string]any) (any, error) {
	query, _ := params[capability.FieldQuery].(string)
	limit := asInt(params[capability.FieldLimit], 10)
	minScore := asFloat(params[capability.FieldMinScore], 0)
	breakdown, _ := params[capability.FieldShowBreakdown].(bool)

	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, 0, breakdown)

	s.mu.RLock()
	res, err := s.idx.SearchInContext(ctx, req)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("bleve search: %w", err)
	}

	hits := make([]map[string]any, 0, len(res.Hits))
	for _, hit := range res.Hits {
		if hit.Score < minScore {
			continue
		}
		entry := map[string]any{
			"id":    hit.ID,
			"score": hit.Score,
		}
		if breakdown && hit.Expl != nil {
			entry["explanation"] = hit.Expl
		}
		hits = append(hits, entry)
	}

	return map[string]any{
		"total": len(hits),
		"hits":  hits,
	}, nil
}

func asInt(v any, fallback int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return fallback
	}
}

func asFloat(v any, fallback float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	default:
		return fallback
	}
}
