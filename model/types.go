package model

// RetrievedChunk is the cross-cutting result record produced by every
// retrieval method. Score is method-dependent: raw BM25 for lexical results,
// the external retriever's own scale for vector results, and the fusion score
// after hybrid retrieval. Scores from different methods are not comparable
// before fusion.
type RetrievedChunk struct {
	Text          string
	Score         float64
	ChunkID       string
	DocumentID    string
	DocumentPath  string
	ChunkPosition int
	Metadata      map[string]any
}

// LexicalResult is the raw tuple returned by a lexical index search:
// document id, document text, non-negative BM25 score, and the metadata
// supplied at indexing time.
type LexicalResult struct {
	ID       string
	Text     string
	Score    float64
	Metadata map[string]any
}

// RankedItem is a single entry of a Ranking.
type RankedItem struct {
	// ID is unique within one Ranking.
	ID string
	// Payload carries the origin-specific candidate data.
	Payload Payload
	// Score is on the ranking's own scale, descending within the Ranking.
	Score    float64
	Metadata map[string]any
}

// Ranking is an ordered candidate list, sorted descending by score, with
// unique IDs. It is the common currency consumed and produced by fusion.
type Ranking []RankedItem

// Payload is the tagged origin variant carried by a RankedItem. It is a
// closed set: VectorPayload for candidates produced by the external vector
// retriever, LexicalPayload for candidates produced by the lexical index.
// Consumers discriminate with a type switch instead of inspecting fields.
type Payload interface {
	payload()
}

// VectorPayload wraps a chunk produced by the external vector retriever.
type VectorPayload struct {
	Chunk RetrievedChunk
}

func (VectorPayload) payload() {}

// LexicalPayload wraps a raw lexical index result.
type LexicalPayload struct {
	Result LexicalResult
}

func (LexicalPayload) payload() {}
