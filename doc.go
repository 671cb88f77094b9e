// Package rankfuse provides hybrid lexical/semantic retrieval for Go.
//
// Rankfuse ranks text chunks against a query by combining an independent
// keyword index (Okapi BM25) with an externally supplied semantic ranking,
// merging the two incomparable score scales via rank fusion.
//
// # Quick Start
//
//	idx := bm25.New()
//	hr, _ := rankfuse.New(myVectorRetriever, idx)
//
//	_ = hr.UpdateBM25Index(texts, ids, metadatas)
//	chunks, _ := hr.Retrieve(ctx, "how does fusion work", 10)
//
// # Retrieval Methods
//
// Three interchangeable strategies sit behind one contract:
//
//	// 1. VECTOR — strict pass-through of the external semantic ranking.
//	chunks, _ := hr.Retrieve(ctx, q, 10, rankfuse.WithRetrieveMethod(rankfuse.MethodVector))
//
//	// 2. BM25 — keyword ranking from the lexical index only.
//	chunks, _ := hr.Retrieve(ctx, q, 10, rankfuse.WithRetrieveMethod(rankfuse.MethodBM25))
//
//	// 3. HYBRID — both, expanded candidate pools, merged by rank fusion.
//	chunks, _ := hr.Retrieve(ctx, q, 10)
//
// The hybrid path queries both sides with top_k times a configurable
// multiplier, fuses the rankings (Reciprocal Rank Fusion by default, or an
// alpha-weighted sum of max-normalized scores), and truncates to top_k. The
// fused score replaces each chunk's original score.
//
// # Determinism
//
// Every path is deterministic: BM25 breaks score ties by insertion order,
// fusion breaks them by first-seen rank then id, and concurrent hybrid
// fan-out cannot affect the result because fusion is a function of the
// completed rankings, not of arrival timing.
//
// # Concurrency
//
// A HybridRetriever is safe for concurrent Retrieve calls. Rebuilding the
// BM25 index swaps an immutable corpus snapshot, so reads during a rebuild
// see either the old or the new generation, never a mix. Serializing rebuilds
// against each other is the caller's responsibility.
package rankfuse
