package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/termindex/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer/normalizer"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/searcher/ranker"
	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/metrics"
)

// Engine owns the current index generation. Refresh is the only mutator; it
// builds a complete new generation off to the side and publishes it with a
// single atomic store, so readers always see either the previous generation
// or the new one in full.
type Engine struct {
	current    atomic.Pointer[index.Generation]
	refreshMu  sync.Mutex
	normalizer *normalizer.Normalizer
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

type Option func(*Engine)

// WithMetrics records refresh outcomes and corpus sizes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

func NewEngine(n *normalizer.Normalizer, opts ...Option) *Engine {
	e := &Engine{
		normalizer: n,
		logger:     logger.WithComponent("indexer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.current.Store(index.Empty())
	return e
}

// Refresh rebuilds the index from every document provider yields and
// re-ranks it. On any failure the previously committed generation stays in
// place and the error is returned. Concurrent calls run one at a time.
func (e *Engine) Refresh(ctx context.Context, provider corpus.Provider) error {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	start := time.Now()
	gen, err := e.build(ctx, provider)
	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.RefreshesTotal.WithLabelValues(apperrors.Code(err)).Inc()
		e.metrics.RefreshDuration.Observe(elapsed.Seconds())
	}
	if err != nil {
		e.logger.Error("refresh failed, keeping previous generation",
			"error", err,
			"duration", elapsed,
		)
		return fmt.Errorf("refreshing index: %w", err)
	}

	e.current.Store(gen)
	if e.metrics != nil {
		e.metrics.Documents.Set(float64(gen.DocCount()))
		e.metrics.UniqueTerms.Set(float64(gen.UniqueTerms()))
		e.metrics.TotalTerms.Set(float64(gen.TotalTerms()))
	}
	e.logger.Info("index refreshed",
		"documents", gen.DocCount(),
		"unique_terms", gen.UniqueTerms(),
		"total_terms", gen.TotalTerms(),
		"duration", elapsed,
	)
	return nil
}

func (e *Engine) build(ctx context.Context, provider corpus.Provider) (*index.Generation, error) {
	b := index.NewBuilder()
	err := provider.Walk(ctx, func(doc corpus.Document) error {
		terms := e.normalizer.Process(doc.Text)
		e.logger.Debug("document normalized", "doc_id", doc.ID, "terms", len(terms))
		return b.Add(doc.ID, terms)
	})
	if err != nil {
		return nil, fmt.Errorf("after %d documents: %w", b.DocCount(), err)
	}
	return b.Build(ranker.Rank)
}

// Generation returns the committed generation. It is never nil.
func (e *Engine) Generation() *index.Generation {
	return e.current.Load()
}

// Ready reports whether at least one refresh has committed.
func (e *Engine) Ready() bool {
	return !e.current.Load().BuiltAt().IsZero()
}

// Rank returns the committed frequency ranking.
func (e *Engine) Rank() []index.TermFrequency {
	r := e.current.Load().Ranking()
	return ranker.Top(r, len(r))
}

// Nth returns the n-th most frequent term, counting from 0.
func (e *Engine) Nth(n int) (index.TermFrequency, error) {
	return ranker.Nth(e.current.Load().Ranking(), n)
}

// Top returns the k most frequent terms.
func (e *Engine) Top(k int) []index.TermFrequency {
	return ranker.Top(e.current.Load().Ranking(), k)
}

// Postings returns a copy of term's posting list; unknown terms yield an
// empty list.
func (e *Engine) Postings(term string) index.PostingList {
	p := e.current.Load().Postings(term)
	out := make(index.PostingList, len(p))
	copy(out, p)
	return out
}
