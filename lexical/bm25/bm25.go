package bm25

import (
	"math"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/rankfuse/lexical"
	"github.com/hupe1980/rankfuse/model"
)

// Default Okapi BM25 tuning constants: term-frequency saturation (k1) and
// length-normalization strength (b).
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

type posting struct {
	doc   uint32 // corpus position, ascending within a posting list
	count uint32
}

type document struct {
	id       string
	text     string
	length   int
	metadata map[string]any
}

// corpus holds the tokenized statistics for one index generation. It is
// immutable after build; rebuilds swap in a fresh corpus atomically, so
// readers never observe a partially built index.
type corpus struct {
	docs        []document
	postings    map[string][]posting
	termDocs    map[string]*roaring.Bitmap
	totalLength int64
}

// Index is an in-memory Okapi BM25 index. Each IndexDocuments call replaces
// the whole corpus; reads are lock-free against the current snapshot.
type Index struct {
	k1, b   float64
	current atomic.Pointer[corpus]
}

// Option configures an Index at construction.
type Option func(*Index)

// WithK1 overrides the term-frequency saturation constant.
func WithK1(k1 float64) Option {
	return func(idx *Index) {
		idx.k1 = k1
	}
}

// WithB overrides the length-normalization strength.
func WithB(b float64) Option {
	return func(idx *Index) {
		idx.b = b
	}
}

// New creates an empty Index.
func New(optFns ...Option) *Index {
	idx := &Index{k1: DefaultK1, b: DefaultB}
	for _, fn := range optFns {
		if fn != nil {
			fn(idx)
		}
	}
	idx.current.Store(emptyCorpus())
	return idx
}

// Ensure Index implements lexical.Index
var _ lexical.Index = (*Index)(nil)

func emptyCorpus() *corpus {
	return &corpus{
		postings: make(map[string][]posting),
		termDocs: make(map[string]*roaring.Bitmap),
	}
}

// tokenize lowercases and splits on whitespace. No stemming, no stopword
// removal: corpus and query must tokenize identically for deterministic
// scoring.
func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// IndexDocuments builds a new corpus from the parallel texts/ids slices and
// replaces any prior content. metadatas is optional but must be parallel when
// supplied. Validation happens before the swap, so a failed call leaves the
// previous generation searchable. An empty texts slice swaps in the empty
// corpus and is not an error.
func (idx *Index) IndexDocuments(texts, ids []string, metadatas []map[string]any) error {
	if len(texts) != len(ids) {
		return &lexical.ErrLengthMismatch{Texts: len(texts), IDs: len(ids), Metadatas: -1}
	}
	if metadatas != nil && len(metadatas) != len(texts) {
		return &lexical.ErrLengthMismatch{Texts: len(texts), IDs: len(ids), Metadatas: len(metadatas)}
	}

	idx.current.Store(buildCorpus(texts, ids, metadatas))
	return nil
}

func buildCorpus(texts, ids []string, metadatas []map[string]any) *corpus {
	c := emptyCorpus()
	c.docs = make([]document, 0, len(texts))

	for i, text := range texts {
		tokens := tokenize(text)

		doc := document{id: ids[i], text: text, length: len(tokens)}
		if metadatas != nil {
			doc.metadata = metadatas[i]
		}
		c.docs = append(c.docs, doc)
		c.totalLength += int64(len(tokens))

		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		for t, count := range tf {
			c.postings[t] = append(c.postings[t], posting{doc: uint32(i), count: uint32(count)})
			bm, ok := c.termDocs[t]
			if !ok {
				bm = roaring.New()
				c.termDocs[t] = bm
			}
			bm.Add(uint32(i))
		}
	}

	return c
}

// Search ranks the corpus against query and returns at most topK results
// with score > 0, descending by score. Ties resolve to the first-inserted
// document. An empty or whitespace-only query returns an empty result.
func (idx *Index) Search(query string, topK int) ([]model.LexicalResult, error) {
	return idx.searchFiltered(query, topK, nil)
}

// SearchFiltered is Search restricted to the corpus positions present in
// allow. A nil bitmap means no restriction.
func (idx *Index) SearchFiltered(query string, topK int, allow *roaring.Bitmap) ([]model.LexicalResult, error) {
	return idx.searchFiltered(query, topK, allow)
}

func (idx *Index) searchFiltered(query string, topK int, allow *roaring.Bitmap) ([]model.LexicalResult, error) {
	c, err := idx.snapshot(topK)
	if err != nil {
		return nil, err
	}

	scored := c.rank(query, idx.k1, idx.b, allow)
	if len(scored) > topK {
		scored = scored[:topK]
	}

	results := make([]model.LexicalResult, 0, len(scored))
	for _, s := range scored {
		d := c.docs[s.doc]
		results = append(results, model.LexicalResult{
			ID:       d.id,
			Text:     d.text,
			Score:    s.score,
			Metadata: d.metadata,
		})
	}

	return results, nil
}

// TopKIndices ranks identically to Search but returns corpus-relative
// positions instead of document identities.
func (idx *Index) TopKIndices(query string, topK int) ([]int, error) {
	c, err := idx.snapshot(topK)
	if err != nil {
		return nil, err
	}

	scored := c.rank(query, idx.k1, idx.b, nil)
	if len(scored) > topK {
		scored = scored[:topK]
	}

	indices := make([]int, 0, len(scored))
	for _, s := range scored {
		indices = append(indices, int(s.doc))
	}

	return indices, nil
}

// Clear resets the index to the empty state. Idempotent.
func (idx *Index) Clear() {
	idx.current.Store(emptyCorpus())
}

// Count reports the number of currently indexed documents.
func (idx *Index) Count() int {
	return len(idx.current.Load().docs)
}

func (idx *Index) snapshot(topK int) (*corpus, error) {
	if topK <= 0 {
		return nil, lexical.ErrInvalidTopK
	}
	c := idx.current.Load()
	if len(c.docs) == 0 {
		return nil, lexical.ErrNotIndexed
	}
	return c, nil
}

type scoredDoc struct {
	doc   uint32
	score float64
}

func (c *corpus) rank(query string, k1, b float64, allow *roaring.Bitmap) []scoredDoc {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	// One iterator per distinct matching query term; the candidate set is
	// the bitmap union of their posting lists, iterated in ascending corpus
	// position.
	seen := make(map[string]struct{}, len(tokens))
	iters := make([]termIterator, 0, len(tokens))
	candidates := roaring.New()

	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}

		postings := c.postings[t]
		if len(postings) == 0 {
			continue
		}

		iters = append(iters, termIterator{postings: postings, idf: c.idf(len(postings))})
		candidates.Or(c.termDocs[t])
	}

	if len(iters) == 0 {
		return nil
	}
	if allow != nil {
		candidates.And(allow)
	}
	if candidates.IsEmpty() {
		return nil
	}

	avgdl := float64(c.totalLength) / float64(len(c.docs))

	// Precompute BM25 constants for this query
	k1Plus1 := k1 + 1
	k1OneMinusB := k1 * (1 - b)
	k1BOverAvgdl := k1 * b / avgdl

	scored := make([]scoredDoc, 0, candidates.GetCardinality())
	it := candidates.Iterator()
	for it.HasNext() {
		doc := it.Next()
		norm := k1OneMinusB + k1BOverAvgdl*float64(c.docs[doc].length)

		var score float64
		for i := range iters {
			ti := &iters[i]
			ti.advance(doc)
			if ti.doc() != doc {
				continue
			}

			tf := float64(ti.count())
			score += ti.idf * tf * k1Plus1 / (tf + norm)
		}

		if score > 0 {
			scored = append(scored, scoredDoc{doc: doc, score: score})
		}
	}

	// Candidates arrive in ascending corpus position, so a stable sort on
	// score alone leaves equal scores in first-inserted order.
	slices.SortStableFunc(scored, func(x, y scoredDoc) int {
		if x.score > y.score {
			return -1
		}
		if x.score < y.score {
			return 1
		}
		return 0
	})

	return scored
}

func (c *corpus) idf(df int) float64 {
	// IDF = log(1 + (N - n + 0.5) / (n + 0.5))
	N := float64(len(c.docs))
	n := float64(df)
	return math.Log(1 + (N-n+0.5)/(n+0.5))
}
