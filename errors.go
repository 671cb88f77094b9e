package rankfuse

import (
	"errors"
	"fmt"
)

var (
	// ErrNilVectorRetriever is returned by New when no vector retriever is
	// supplied.
	ErrNilVectorRetriever = errors.New("vector retriever must not be nil")

	// ErrNilLexicalIndex is returned by New when no lexical index is
	// supplied.
	ErrNilLexicalIndex = errors.New("lexical index must not be nil")

	// ErrInvalidTopK is returned when topK is not positive.
	ErrInvalidTopK = errors.New("top k must be positive")
)

// ErrUnknownMethod indicates an unrecognized retrieval method. Detected
// before any retrieval is performed.
type ErrUnknownMethod struct {
	Method string
}

func (e *ErrUnknownMethod) Error() string {
	return fmt.Sprintf("unknown retrieval method: %q", e.Method)
}

// ErrUnknownFusion indicates an unrecognized fusion algorithm.
type ErrUnknownFusion struct {
	Fusion string
}

func (e *ErrUnknownFusion) Error() string {
	return fmt.Sprintf("unknown fusion algorithm: %q", e.Fusion)
}

// ErrInvalidRRFK indicates a non-positive RRF constant.
type ErrInvalidRRFK struct {
	K int
}

func (e *ErrInvalidRRFK) Error() string {
	return fmt.Sprintf("invalid rrf k: %d (must be positive)", e.K)
}

// ErrInvalidAlpha indicates a vector weight outside [0,1].
type ErrInvalidAlpha struct {
	Alpha float64
}

func (e *ErrInvalidAlpha) Error() string {
	return fmt.Sprintf("invalid alpha: %g (must be in [0,1])", e.Alpha)
}

// ErrInvalidTopKMultiplier indicates a candidate-pool multiplier below 1.
type ErrInvalidTopKMultiplier struct {
	Multiplier int
}

func (e *ErrInvalidTopKMultiplier) Error() string {
	return fmt.Sprintf("invalid top k multiplier: %d (must be >= 1)", e.Multiplier)
}
