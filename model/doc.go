// Package model defines core types shared across the retrieval pipeline.
//
// # Result Types
//
//   - RetrievedChunk: the record every retrieval method returns
//   - LexicalResult: the raw (id, text, score, metadata) lexical tuple
//
// # Ranking Types
//
//   - Ranking: ordered candidate list (descending score, unique IDs)
//   - RankedItem: one Ranking entry
//   - Payload: tagged origin variant (VectorPayload | LexicalPayload)
package model
