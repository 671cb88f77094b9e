package rankfuse

import (
	"log/slog"

	"github.com/hupe1980/rankfuse/fusion"
	"github.com/hupe1980/rankfuse/resource"
)

// Method selects the retrieval strategy.
type Method string

const (
	// MethodVector returns the external vector retriever's output untouched.
	MethodVector Method = "vector"
	// MethodBM25 uses the lexical index only.
	MethodBM25 Method = "bm25"
	// MethodHybrid fuses vector and lexical rankings.
	MethodHybrid Method = "hybrid"
)

// ParseMethod converts a configuration string into a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case MethodVector, MethodBM25, MethodHybrid:
		return m, nil
	default:
		return "", &ErrUnknownMethod{Method: s}
	}
}

// FusionAlgorithm selects how hybrid rankings are merged.
type FusionAlgorithm string

const (
	// FusionRRF merges by Reciprocal Rank Fusion.
	FusionRRF FusionAlgorithm = "rrf"
	// FusionWeighted merges by alpha-weighted normalized scores.
	FusionWeighted FusionAlgorithm = "weighted"
)

// ParseFusion converts a configuration string into a FusionAlgorithm.
func ParseFusion(s string) (FusionAlgorithm, error) {
	switch f := FusionAlgorithm(s); f {
	case FusionRRF, FusionWeighted:
		return f, nil
	default:
		return "", &ErrUnknownFusion{Fusion: s}
	}
}

type options struct {
	method           Method
	fusion           FusionAlgorithm
	rrfK             int
	alpha            float64
	topKMultiplier   int
	logger           *Logger
	metricsCollector MetricsCollector
	controller       *resource.Controller
}

// Option configures HybridRetriever construction. All values are validated
// eagerly by New; invalid values reject construction instead of degrading
// silently.
type Option func(*options)

// WithMethod sets the default retrieval method (default MethodHybrid).
// Retrieve can override it per call.
func WithMethod(m Method) Option {
	return func(o *options) {
		o.method = m
	}
}

// WithFusion sets the fusion algorithm for the hybrid path (default
// FusionRRF).
func WithFusion(f FusionAlgorithm) Option {
	return func(o *options) {
		o.fusion = f
	}
}

// WithRRFK sets the RRF dampening constant (default 60). Must be positive.
func WithRRFK(k int) Option {
	return func(o *options) {
		o.rrfK = k
	}
}

// WithAlpha sets the vector weight for weighted fusion (default 0.5). The
// lexical weight is 1-alpha. Must be in [0,1].
func WithAlpha(alpha float64) Option {
	return func(o *options) {
		o.alpha = alpha
	}
}

// WithTopKMultiplier sets the candidate-pool expansion factor applied before
// fusion (default 2). Must be >= 1.
func WithTopKMultiplier(multiplier int) Option {
	return func(o *options) {
		o.topKMultiplier = multiplier
	}
}

// WithLogger configures structured logging for operations.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResourceController throttles calls to the external vector retriever.
// A nil controller enforces nothing.
func WithResourceController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		method:           MethodHybrid,
		fusion:           FusionRRF,
		rrfK:             fusion.DefaultK,
		alpha:            0.5,
		topKMultiplier:   2,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o *options) validate() error {
	if _, err := ParseMethod(string(o.method)); err != nil {
		return err
	}
	if _, err := ParseFusion(string(o.fusion)); err != nil {
		return err
	}
	if o.rrfK <= 0 {
		return &ErrInvalidRRFK{K: o.rrfK}
	}
	if o.alpha < 0 || o.alpha > 1 {
		return &ErrInvalidAlpha{Alpha: o.alpha}
	}
	if o.topKMultiplier < 1 {
		return &ErrInvalidTopKMultiplier{Multiplier: o.topKMultiplier}
	}
	return nil
}
