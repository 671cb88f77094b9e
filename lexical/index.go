package lexical

import (
	"errors"
	"fmt"

	"github.com/hupe1980/rankfuse/model"
)

// ErrNotIndexed is returned when Search or TopKIndices is called on an index
// that holds no documents. An empty index is a usage error, never an empty
// result.
var ErrNotIndexed = errors.New("lexical index is empty: call IndexDocuments first")

// ErrInvalidTopK is returned when topK is not positive.
var ErrInvalidTopK = errors.New("top k must be positive")

// ErrLengthMismatch indicates mismatched parallel slice lengths passed to
// IndexDocuments. The index state is unchanged when this is returned.
type ErrLengthMismatch struct {
	Texts     int
	IDs       int
	Metadatas int
}

func (e *ErrLengthMismatch) Error() string {
	if e.Metadatas >= 0 {
		return fmt.Sprintf("length mismatch: %d texts, %d ids, %d metadatas", e.Texts, e.IDs, e.Metadatas)
	}
	return fmt.Sprintf("length mismatch: %d texts, %d ids", e.Texts, e.IDs)
}

// Index is the interface for a lexical search index.
type Index interface {
	// IndexDocuments replaces the entire index content with the given
	// corpus. texts and ids are parallel; metadatas is optional (nil) but
	// must be parallel when supplied. Rebuilds are not incremental.
	IndexDocuments(texts, ids []string, metadatas []map[string]any) error
	// Search ranks the indexed corpus against query and returns at most
	// topK results with score > 0, descending by score.
	Search(query string, topK int) ([]model.LexicalResult, error)
	// TopKIndices is Search returning corpus-relative positions instead
	// of document identities.
	TopKIndices(query string, topK int) ([]int, error)
	// Clear resets the index to the empty state. Idempotent.
	Clear()
	// Count reports the number of currently indexed documents.
	Count() int
}
