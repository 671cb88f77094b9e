// Package bm25 provides an Okapi BM25 lexical search index.
//
// The index keeps tokenized corpus statistics in memory. Each IndexDocuments
// call builds a fresh immutable corpus and swaps it in atomically, so a
// rebuild never exposes a mix of old and new content and reads stay
// lock-free.
//
// # Usage
//
//	idx := bm25.New()
//	err := idx.IndexDocuments(
//	    []string{"the cat sat on the mat", "dogs are loyal companions"},
//	    []string{"d1", "d2"},
//	    nil,
//	)
//	results, err := idx.Search("loyal dogs", 10)
//
// # Parameters
//
// Defaults: k1=1.5, b=0.75. Override with WithK1 / WithB.
//
// # Determinism
//
// Tokenization is lowercase + whitespace split with no stemming or stopword
// removal. Result order is fully deterministic: descending score, equal
// scores in first-inserted corpus order.
package bm25
