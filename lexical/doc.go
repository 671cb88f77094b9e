// Package lexical defines the interface for lexical (keyword) search indexes.
//
// Lexical indexes supply the keyword side of hybrid retrieval: their ranked
// output is fused with an external semantic ranking by the rankfuse root
// package.
//
// # Built-in Implementation
//
// The bm25 subpackage provides an Okapi BM25 index:
//
//	import "github.com/hupe1980/rankfuse/lexical/bm25"
//
//	idx := bm25.New()
//	err := idx.IndexDocuments(texts, ids, nil)
//	results, err := idx.Search("query terms", 10)
//
// # Custom Implementations
//
// Implement the Index interface for custom keyword search. Implementations
// must preserve the contract tested against bm25: full-rebuild indexing,
// ErrNotIndexed on an empty index, empty result (not error) for an empty
// query, and deterministic first-inserted tie-breaking.
package lexical
