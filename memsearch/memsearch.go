package memsearch

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"
)

// Error values for consistent error handling by callers.
var (
	ErrInvalidDocumentID = errors.New("document id is empty")
	ErrInvalidAlpha      = errors.New("alpha must be between 0 and 1")
)

// Document is a searchable record.
type Document struct {
	ID          string
	Name        string
	Description string
	Tags        []string
}

// Result is one ranked hit.
type Result struct {
	ID    string
	Name  string
	Score float64
}

// Embedder generates vector embeddings from text. Implementations are
// user-provided (OpenAI, Ollama, local models); without one the index
// scores lexically only.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Options configures an Index.
type Options struct {
	// Embedder enables the semantic half of hybrid scoring. Nil means
	// lexical-only.
	Embedder Embedder

	// Alpha is the lexical weight (0.0 to 1.0); the semantic weight is
	// 1-Alpha. Default 0.5. Ignored without an Embedder.
	Alpha float64

	// NameBoost multiplies lexical matches on the document name.
	// Default 2.
	NameBoost float64
}

// Index is an in-memory document index with hybrid lexical+semantic
// search. All methods are safe for concurrent use.
type Index struct {
	mu   sync.RWMutex
	docs map[string]Document

	embedder  Embedder
	alpha     float64
	nameBoost float64
}

// NewIndex creates an Index.
func NewIndex(opts Options) (*Index, error) {
	alpha := opts.Alpha
	if alpha == 0 {
		alpha = 0.5
	}
	if alpha < 0 || alpha > 1 {
		return nil, ErrInvalidAlpha
	}

	nameBoost := opts.NameBoost
	if nameBoost == 0 {
		nameBoost = 2
	}

	return &Index{
		docs:      make(map[string]Document),
		embedder:  opts.Embedder,
		alpha:     alpha,
		nameBoost: nameBoost,
	}, nil
}

// Add registers or updates a document.
func (ix *Index) Add(doc Document) error {
	if doc.ID == "" {
		return ErrInvalidDocumentID
	}
	ix.mu.Lock()
	ix.docs[doc.ID] = doc
	ix.mu.Unlock()
	return nil
}

// Remove deletes a document. Removing an unknown ID is a no-op.
func (ix *Index) Remove(id string) {
	ix.mu.Lock()
	delete(ix.docs, id)
	ix.mu.Unlock()
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.docs)
}

// HybridSearch scores every document against the query and returns up to
// limit results, ordered by score descending then ID ascending for
// determinism. Without an Embedder the score is purely lexical; with one
// it is alpha*lexical + (1-alpha)*cosine.
//
// The signature takes query and limit directly; callers reach it through
// the positional calling convention.
func (ix *Index) HybridSearch(ctx context.Context, query string, limit int) ([]Result, error) {
	if limit <= 0 {
		return []Result{}, nil
	}

	ix.mu.RLock()
	docs := make([]Document, 0, len(ix.docs))
	for _, doc := range ix.docs {
		docs = append(docs, doc)
	}
	ix.mu.RUnlock()

	queryTokens := tokenize(query)

	var queryVec []float32
	if ix.embedder != nil {
		vec, err := ix.embedder.Embed(ctx, query)
		if err != nil {
			return nil, err
		}
		queryVec = vec
	}

	results := make([]Result, 0, len(docs))
	for _, doc := range docs {
		score := ix.lexicalScore(queryTokens, doc)

		if queryVec != nil {
			docVec, err := ix.embedder.Embed(ctx, doc.searchText())
			if err != nil {
				return nil, err
			}
			score = ix.alpha*score + (1-ix.alpha)*cosine(queryVec, docVec)
		}

		if score > 0 {
			results = append(results, Result{ID: doc.ID, Name: doc.Name, Score: score})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// lexicalScore is token overlap with a name boost, normalized to 0..1 by
// the boosted query token count.
func (ix *Index) lexicalScore(queryTokens []string, doc Document) float64 {
	if len(queryTokens) == 0 {
		return 0
	}

	nameTokens := tokenSet(tokenize(doc.Name))
	bodyTokens := tokenSet(tokenize(doc.Description))
	for _, tag := range doc.Tags {
		for _, tok := range tokenize(tag) {
			bodyTokens[tok] = struct{}{}
		}
	}

	var hit float64
	for _, tok := range queryTokens {
		if _, ok := nameTokens[tok]; ok {
			hit += ix.nameBoost
			continue
		}
		if _, ok := bodyTokens[tok]; ok {
			hit++
		}
	}
	return hit / (ix.nameBoost * float64(len(queryTokens)))
}

func (d Document) searchText() string {
	parts := []string{d.Name, d.Description}
	parts = append(parts, d.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
}

func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}

func cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
