package rankfuse

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/rankfuse/fusion"
	"github.com/hupe1980/rankfuse/lexical"
	"github.com/hupe1980/rankfuse/model"
)

// VectorRetriever is the external semantic retrieval capability. The returned
// chunks are already sorted by the external ranking method; their score scale
// is opaque and must not be compared to BM25 scores outside of fusion.
//
// Errors are propagated to the caller unchanged. Retry and circuit breaking
// belong to the retriever implementation or its caller, not to this package.
type VectorRetriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]model.RetrievedChunk, error)
}

// HybridRetriever ranks text chunks against a query by combining a
// VectorRetriever with a lexical index, merging the two rankings via rank
// fusion. It holds both collaborators for its whole lifetime and owns no
// state beyond configuration.
type HybridRetriever struct {
	vector  VectorRetriever
	lexical lexical.Index
	opts    options
}

// New creates a HybridRetriever. Both collaborators are required; all option
// values are validated here.
func New(vector VectorRetriever, lexIdx lexical.Index, optFns ...Option) (*HybridRetriever, error) {
	if vector == nil {
		return nil, ErrNilVectorRetriever
	}
	if lexIdx == nil {
		return nil, ErrNilLexicalIndex
	}

	o := applyOptions(optFns)
	if err := o.validate(); err != nil {
		return nil, err
	}

	return &HybridRetriever{
		vector:  vector,
		lexical: lexIdx,
		opts:    o,
	}, nil
}

// RetrieveOptions controls a single Retrieve call.
type RetrieveOptions struct {
	// Method overrides the configured retrieval method for this call only.
	Method Method
}

// WithRetrieveMethod overrides the retrieval method for one call.
func WithRetrieveMethod(m Method) func(*RetrieveOptions) {
	return func(o *RetrieveOptions) {
		o.Method = m
	}
}

// Retrieve ranks chunks against query and returns at most topK results.
func (h *HybridRetriever) Retrieve(ctx context.Context, query string, topK int, optFns ...func(*RetrieveOptions)) ([]model.RetrievedChunk, error) {
	start := time.Now()

	ro := RetrieveOptions{Method: h.opts.method}
	for _, fn := range optFns {
		if fn != nil {
			fn(&ro)
		}
	}

	chunks, err := h.retrieve(ctx, query, topK, ro.Method)

	h.opts.metricsCollector.RecordRetrieve(string(ro.Method), topK, time.Since(start), err)
	h.opts.logger.LogRetrieve(ctx, string(ro.Method), topK, len(chunks), err)

	return chunks, err
}

func (h *HybridRetriever) retrieve(ctx context.Context, query string, topK int, method Method) ([]model.RetrievedChunk, error) {
	if topK <= 0 {
		return nil, ErrInvalidTopK
	}

	switch method {
	case MethodVector:
		return h.retrieveVector(ctx, query, topK)
	case MethodBM25:
		return h.retrieveBM25(query, topK)
	case MethodHybrid:
		return h.retrieveHybrid(ctx, query, topK)
	default:
		return nil, &ErrUnknownMethod{Method: string(method)}
	}
}

// retrieveVector is a strict pass-through: the external output is returned
// without re-sorting or re-scoring.
func (h *HybridRetriever) retrieveVector(ctx context.Context, query string, k int) ([]model.RetrievedChunk, error) {
	if err := h.opts.controller.Acquire(ctx); err != nil {
		return nil, err
	}
	defer h.opts.controller.Release()

	return h.vector.Retrieve(ctx, query, k)
}

func (h *HybridRetriever) retrieveBM25(query string, topK int) ([]model.RetrievedChunk, error) {
	results, err := h.lexical.Search(query, topK)
	if err != nil {
		return nil, err
	}

	chunks := make([]model.RetrievedChunk, 0, len(results))
	for _, r := range results {
		chunks = append(chunks, lexicalChunk(r, r.Score))
	}

	return chunks, nil
}

func (h *HybridRetriever) retrieveHybrid(ctx context.Context, query string, topK int) ([]model.RetrievedChunk, error) {
	kExpanded := topK * h.opts.topKMultiplier

	// The two queries share no mutable state, and fusion depends only on
	// the completed rankings, so running them concurrently cannot change
	// the result.
	var vecRanking, lexRanking model.Ranking

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		chunks, err := h.retrieveVector(gctx, query, kExpanded)
		if err != nil {
			return err
		}
		vecRanking = vectorRanking(chunks)
		return nil
	})
	g.Go(func() error {
		results, err := h.lexical.Search(query, kExpanded)
		if err != nil {
			return err
		}
		lexRanking = lexicalRanking(results)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rankings := []model.Ranking{vecRanking, lexRanking}

	var (
		fusedRanking model.Ranking
		err          error
	)
	switch h.opts.fusion {
	case FusionRRF:
		fusedRanking, err = fusion.ReciprocalRank(rankings, h.opts.rrfK)
	case FusionWeighted:
		fusedRanking, err = fusion.Weighted(rankings, []float64{h.opts.alpha, 1 - h.opts.alpha})
	default:
		err = &ErrUnknownFusion{Fusion: string(h.opts.fusion)}
	}
	if err != nil {
		return nil, err
	}

	if len(fusedRanking) > topK {
		fusedRanking = fusedRanking[:topK]
	}

	chunks := make([]model.RetrievedChunk, 0, len(fusedRanking))
	for _, item := range fusedRanking {
		switch p := item.Payload.(type) {
		case model.VectorPayload:
			c := p.Chunk
			c.Score = item.Score
			chunks = append(chunks, c)
		case model.LexicalPayload:
			chunks = append(chunks, lexicalChunk(p.Result, item.Score))
		}
	}

	return chunks, nil
}

// UpdateBM25Index forwards verbatim to the lexical index. Full rebuild
// semantics apply: the previous corpus is replaced wholesale.
func (h *HybridRetriever) UpdateBM25Index(texts, ids []string, metadatas []map[string]any) error {
	start := time.Now()

	err := h.lexical.IndexDocuments(texts, ids, metadatas)

	h.opts.metricsCollector.RecordIndex(len(texts), time.Since(start), err)
	h.opts.logger.LogIndex(len(texts), err)

	return err
}

func vectorRanking(chunks []model.RetrievedChunk) model.Ranking {
	r := make(model.Ranking, 0, len(chunks))
	for _, c := range chunks {
		r = append(r, model.RankedItem{
			ID:       c.ChunkID,
			Payload:  model.VectorPayload{Chunk: c},
			Score:    c.Score,
			Metadata: c.Metadata,
		})
	}
	return r
}

func lexicalRanking(results []model.LexicalResult) model.Ranking {
	r := make(model.Ranking, 0, len(results))
	for _, res := range results {
		r = append(r, model.RankedItem{
			ID:       res.ID,
			Payload:  model.LexicalPayload{Result: res},
			Score:    res.Score,
			Metadata: res.Metadata,
		})
	}
	return r
}

// lexicalChunk converts a raw lexical result into a RetrievedChunk. The
// document_id, source_file and chunk_index metadata keys populate the
// corresponding chunk fields, defaulting to empty/zero when absent.
func lexicalChunk(r model.LexicalResult, score float64) model.RetrievedChunk {
	c := model.RetrievedChunk{
		Text:     r.Text,
		Score:    score,
		ChunkID:  r.ID,
		Metadata: r.Metadata,
	}

	if v, ok := r.Metadata["document_id"].(string); ok {
		c.DocumentID = v
	}
	if v, ok := r.Metadata["source_file"].(string); ok {
		c.DocumentPath = v
	}
	c.ChunkPosition = metadataInt(r.Metadata, "chunk_index")

	return c
}

func metadataInt(md map[string]any, key string) int {
	switch v := md[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
