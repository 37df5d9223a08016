// Package engine resolves transaction descriptions to categories and applies the
// result to stored transactions.
package engine

import (
	"log/slog"

	"github.com/Veraticus/pennywise/internal/lexicon"
	"github.com/Veraticus/pennywise/internal/pattern"
)

// Engine categorizes transactions by keyword. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	store    CategoryStore
	matcher  pattern.Matcher
	logger   *slog.Logger
	progress ProgressFunc
	config   Config
}

// Config holds configuration options for the engine.
type Config struct {
	// SuggestLimit is used when Suggest is called with a non-positive limit.
	SuggestLimit int
	// BatchLimit is used when BatchCategorize is called with a non-positive limit.
	BatchLimit int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SuggestLimit: 3,
		BatchLimit:   100,
	}
}

// ProgressFunc observes batch progress. It is called synchronously after each
// transaction with the number processed so far and the batch size.
type ProgressFunc func(done, total int)

// Option configures an Engine.
type Option func(*Engine)

// WithLexicon replaces the embedded default lexicon.
func WithLexicon(lex *lexicon.Lexicon) Option {
	return func(e *Engine) {
		e.matcher = pattern.NewScorer(lex)
	}
}

// WithMatcher replaces the scorer entirely.
func WithMatcher(m pattern.Matcher) Option {
	return func(e *Engine) {
		e.matcher = m
	}
}

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithConfig overrides the default limits. Non-positive values keep the defaults.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		if cfg.SuggestLimit > 0 {
			e.config.SuggestLimit = cfg.SuggestLimit
		}
		if cfg.BatchLimit > 0 {
			e.config.BatchLimit = cfg.BatchLimit
		}
	}
}

// WithProgress registers a batch progress observer.
func WithProgress(fn ProgressFunc) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New creates an engine reading categories from store.
func New(store CategoryStore, opts ...Option) *Engine {
	e := &Engine{
		store:   store,
		matcher: pattern.NewScorer(nil),
		logger:  slog.Default(),
		config:  DefaultConfig(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.config
}
