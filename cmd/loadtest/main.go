package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/termindex/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer/normalizer"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/logger"
)

type Config struct {
	Documents       int
	WordsPerDoc     int
	Concurrency     int
	Duration        time.Duration
	RefreshInterval time.Duration
	Queries         []string
}

type Stats struct {
	totalQueries   atomic.Int64
	errorCount     atomic.Int64
	totalHits      atomic.Int64
	refreshes      atomic.Int64
	refreshErrors  atomic.Int64
	latencies      []time.Duration
	latenciesMu    sync.Mutex
	statusCounts   map[string]*atomic.Int64
	statusCountsMu sync.Mutex
}

func NewStats() *Stats {
	return &Stats{
		latencies:    make([]time.Duration, 0, 100000),
		statusCounts: make(map[string]*atomic.Int64),
	}
}

func (s *Stats) RecordQuery(duration time.Duration, hits int, err error) {
	s.totalQueries.Add(1)
	if err != nil {
		s.errorCount.Add(1)
	} else {
		s.totalHits.Add(int64(hits))
	}

	s.latenciesMu.Lock()
	s.latencies = append(s.latencies, duration)
	s.latenciesMu.Unlock()

	status := apperrors.Code(err)
	s.statusCountsMu.Lock()
	if _, ok := s.statusCounts[status]; !ok {
		s.statusCounts[status] = &atomic.Int64{}
	}
	s.statusCounts[status].Add(1)
	s.statusCountsMu.Unlock()
}

var vocabulary = []string{
	"distributed", "search", "analytics", "platform", "indexing", "documents",
	"query", "processing", "cache", "optimization", "ranking", "algorithm",
	"shard", "routing", "circuit", "breaker", "balancing", "inverted",
	"index", "token", "stemming", "ingestion", "cats", "dogs", "pets",
}

func main() {
	docs := flag.Int("docs", 2000, "number of synthetic documents")
	words := flag.Int("words", 40, "words per synthetic document")
	concurrency := flag.Int("concurrency", 10, "number of concurrent query workers")
	duration := flag.Duration("duration", 30*time.Second, "test duration")
	refreshEvery := flag.Duration("refresh", time.Second, "interval between concurrent index refreshes (0 disables)")
	flag.Parse()

	logger.Setup("warn", "text")

	cfg := Config{
		Documents:       *docs,
		WordsPerDoc:     *words,
		Concurrency:     *concurrency,
		Duration:        *duration,
		RefreshInterval: *refreshEvery,
		Queries: []string{
			"distributed AND systems",
			"search OR engine",
			"analytics AND platform",
			"indexing OR documents",
			"query AND processing",
			"cache OR optimization",
			"ranking AND algorithm",
			"shard OR routing",
			"inverted AND index",
			"cats OR dogs",
		},
	}

	fmt.Println("=== Term Index Load Test ===")
	fmt.Printf("Documents:   %d x %d words\n", cfg.Documents, cfg.WordsPerDoc)
	fmt.Printf("Concurrency: %d\n", cfg.Concurrency)
	fmt.Printf("Duration:    %s\n", cfg.Duration)
	fmt.Printf("Refresh:     %s\n", cfg.RefreshInterval)
	fmt.Printf("Queries:     %d unique\n", len(cfg.Queries))
	fmt.Println()

	stats, err := runLoadTest(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load test failed: %v\n", err)
		os.Exit(1)
	}
	printReport(stats, cfg.Duration)
}

func syntheticCorpus(n, words int) *corpus.Memory {
	rng := rand.New(rand.NewSource(1))
	docs := make([]corpus.Document, 0, n)
	for i := 0; i < n; i++ {
		var sb strings.Builder
		for w := 0; w < words; w++ {
			if w > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(vocabulary[rng.Intn(len(vocabulary))])
		}
		docs = append(docs, corpus.Document{ID: fmt.Sprintf("doc-%06d", i), Text: sb.String()})
	}
	return corpus.NewMemory(docs...)
}

func runLoadTest(cfg Config) (*Stats, error) {
	lex, err := lexicon.NewProvisioner(config.LexiconConfig{Language: "english"}).Provision()
	if err != nil {
		return nil, err
	}
	n := normalizer.New(lex)
	engine := indexer.NewEngine(n)
	provider := syntheticCorpus(cfg.Documents, cfg.WordsPerDoc)
	if err := engine.Refresh(context.Background(), provider); err != nil {
		return nil, err
	}

	plans := make([]*parser.QueryPlan, 0, len(cfg.Queries))
	for _, q := range cfg.Queries {
		plan, err := parser.Parse(q, n)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	ex := executor.New(engine, nil)

	stats := NewStats()
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	var wg sync.WaitGroup
	fmt.Print("Running")

	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			queryIdx := workerID

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				plan := plans[queryIdx%len(plans)]
				queryIdx++

				start := time.Now()
				res, err := ex.Execute(ctx, plan)
				elapsed := time.Since(start)
				if ctx.Err() != nil {
					return
				}
				hits := 0
				if res != nil {
					hits = res.TotalHits
				}
				stats.RecordQuery(elapsed, hits, err)
			}
		}(w)
	}

	if cfg.RefreshInterval > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(cfg.RefreshInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					stats.refreshes.Add(1)
					if err := engine.Refresh(ctx, provider); err != nil && ctx.Err() == nil {
						stats.refreshErrors.Add(1)
					}
				}
			}
		}()
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fmt.Print(".")
			}
		}
	}()

	wg.Wait()
	fmt.Println(" done!")
	fmt.Println()
	return stats, nil
}

func printReport(stats *Stats, duration time.Duration) {
	total := stats.totalQueries.Load()
	errors := stats.errorCount.Load()

	fmt.Println("=== Results ===")
	fmt.Printf("Total Queries:   %d\n", total)
	fmt.Printf("Errors:          %d\n", errors)
	fmt.Printf("Refreshes:       %d (%d failed)\n", stats.refreshes.Load(), stats.refreshErrors.Load())

	if total > 0 {
		fmt.Printf("Error Rate:      %.2f%%\n", float64(errors)/float64(total)*100)
		fmt.Printf("Queries/sec:     %.2f\n", float64(total)/duration.Seconds())
		fmt.Printf("Avg Hits:        %.1f\n", float64(stats.totalHits.Load())/float64(total))
	}

	stats.latenciesMu.Lock()
	latencies := make([]time.Duration, len(stats.latencies))
	copy(latencies, stats.latencies)
	stats.latenciesMu.Unlock()

	if len(latencies) > 0 {
		sort.Slice(latencies, func(i, j int) bool {
			return latencies[i] < latencies[j]
		})

		var sum time.Duration
		for _, l := range latencies {
			sum += l
		}
		avg := sum / time.Duration(len(latencies))

		fmt.Println()
		fmt.Println("=== Latency ===")
		fmt.Printf("Min:    %s\n", latencies[0])
		fmt.Printf("Avg:    %s\n", avg)
		fmt.Printf("P50:    %s\n", percentile(latencies, 50))
		fmt.Printf("P90:    %s\n", percentile(latencies, 90))
		fmt.Printf("P99:    %s\n", percentile(latencies, 99))
		fmt.Printf("Max:    %s\n", latencies[len(latencies)-1])
	}

	fmt.Println()
	fmt.Println("=== Status ===")
	stats.statusCountsMu.Lock()
	codes := make([]string, 0, len(stats.statusCounts))
	for code := range stats.statusCounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Printf("  %s: %d\n", code, stats.statusCounts[code].Load())
	}
	stats.statusCountsMu.Unlock()

	if total == 0 {
		fmt.Println()
		fmt.Println("WARNING: No queries completed.")
		os.Exit(1)
	}
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
