package executor

import (
	"context"
	"log/slog"

	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/searcher/parser"
	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/metrics"
)

type SearchResult struct {
	Query     string         `json:"query"`
	Operator  string         `json:"operator"`
	TotalHits int            `json:"total_hits"`
	DocIDs    []string       `json:"doc_ids"`
	TermStats map[string]int `json:"term_stats"`
}

type Executor struct {
	engine  *indexer.Engine
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New returns an executor over engine. m may be nil.
func New(engine *indexer.Engine, m *metrics.Metrics) *Executor {
	return &Executor{
		engine:  engine,
		metrics: m,
		logger:  logger.WithComponent("query-executor"),
	}
}

// BooleanQuery combines the posting lists of two terms. Terms missing from
// the index behave as empty lists. The result is sorted by document ID and
// holds no duplicates.
func (e *Executor) BooleanQuery(term1, term2 string, op parser.Operator) ([]string, error) {
	if !op.Valid() {
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "unknown operator %d", int(op))
	}
	// Both lookups read one generation so a concurrent refresh cannot split them.
	g := e.engine.Generation()
	return combine(g.Postings(term1), g.Postings(term2), op), nil
}

// Execute runs a parsed plan.
func (e *Executor) Execute(ctx context.Context, plan *parser.QueryPlan) (*SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !plan.Op.Valid() {
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "unknown operator %d", int(plan.Op))
	}

	g := e.engine.Generation()
	left, right := g.Postings(plan.Left), g.Postings(plan.Right)
	docIDs := combine(left, right, plan.Op)

	termStats := make(map[string]int, 2)
	if len(left) > 0 {
		termStats[plan.Left] = len(left)
	}
	if len(right) > 0 {
		termStats[plan.Right] = len(right)
	}

	if e.metrics != nil {
		e.metrics.QueriesTotal.WithLabelValues(plan.Op.String()).Inc()
		e.metrics.QueryResultsCount.Observe(float64(len(docIDs)))
	}
	e.logger.Debug("query executed",
		"query", plan.RawQuery,
		"left", plan.Left,
		"right", plan.Right,
		"operator", plan.Op.String(),
		"results", len(docIDs),
	)
	return &SearchResult{
		Query:     plan.RawQuery,
		Operator:  plan.Op.String(),
		TotalHits: len(docIDs),
		DocIDs:    docIDs,
		TermStats: termStats,
	}, nil
}

func combine(a, b index.PostingList, op parser.Operator) []string {
	if op == parser.OpAND {
		return intersectPostings(a, b)
	}
	return unionPostings(a, b)
}

// Posting lists are sorted, so both operators are a single merge pass.
func intersectPostings(a, b index.PostingList) []string {
	out := make([]string, 0, min(len(a), len(b)))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func unionPostings(a, b index.PostingList) []string {
	out := make([]string, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
