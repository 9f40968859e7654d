package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	osfs "github.com/hack-pad/hackpadfs/os"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Adithya-Monish-Kumar-K/termindex/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer/normalizer"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/phonetic"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/searcher/executor"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/config"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/postgres"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults and TI_* env when empty)")
	query := flag.String("query", "", `run one "<term> AND|OR <term>" query after indexing and exit`)
	soundex := flag.String("soundex", "", "print the Soundex code of a word and exit")
	top := flag.Int("top", 10, "number of top terms to log after a refresh")
	flag.Parse()

	if *soundex != "" {
		code, err := phonetic.Encode(*soundex)
		if err != nil {
			fmt.Fprintf(os.Stderr, "soundex: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(code)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("starting termindex", "source", cfg.Corpus.Source)

	m := metrics.New(prometheus.DefaultRegisterer)
	checker := health.NewChecker()

	lex, err := lexicon.NewProvisioner(cfg.Lexicon).Provision()
	if err != nil {
		slog.Error("failed to provision lexicon", "error", err)
		os.Exit(1)
	}
	engine := indexer.NewEngine(normalizer.New(lex), indexer.WithMetrics(m))
	checker.Register("index", func(context.Context) error {
		if !engine.Ready() {
			return fmt.Errorf("index not built yet")
		}
		return nil
	})

	provider, closeStore, err := openProvider(cfg, checker)
	if err != nil {
		slog.Error("failed to open corpus", "source", cfg.Corpus.Source, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Refresh(ctx, provider); err != nil {
		slog.Error("initial refresh failed", "error", err)
		os.Exit(1)
	}
	for i, tf := range engine.Top(*top) {
		slog.Info("top term", "rank", i+1, "term", tf.Term, "frequency", tf.Frequency)
	}

	if *query != "" {
		if err := runQuery(ctx, engine, lex, m, *query); err != nil {
			fmt.Fprintf(os.Stderr, "query: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var shutdownMetrics func(context.Context) error
	if cfg.Metrics.Enabled {
		shutdownMetrics = metrics.StartServer(cfg.Metrics.Port, nil)
	}

	mux := http.NewServeMux()
	mux.Handle("/health/ready", checker.ReadyHandler())
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("health server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("health server error", "error", err)
		}
	}()

	// SIGHUP rebuilds the index from the configured source.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	slog.Info("termindex ready", "documents", engine.DocumentCount(), "unique_terms", engine.UniqueWordCount())
loop:
	for {
		select {
		case <-hup:
			if err := engine.Refresh(ctx, provider); err != nil {
				slog.Warn("refresh on SIGHUP failed, serving previous index", "error", err)
			}
		case <-ctx.Done():
			break loop
		}
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("health server shutdown error", "error", err)
	}
	if shutdownMetrics != nil {
		if err := shutdownMetrics(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown error", "error", err)
		}
	}
	slog.Info("termindex stopped")
}

// openProvider builds the configured corpus provider and registers a health
// check for its backing store. The returned func releases the store.
func openProvider(cfg *config.Config, checker *health.Checker) (corpus.Provider, func(), error) {
	noop := func() {}
	switch cfg.Corpus.Source {
	case config.SourceDir:
		abs, err := filepath.Abs(cfg.Corpus.Dir)
		if err != nil {
			return nil, noop, err
		}
		fsys := osfs.NewFS()
		dir, err := fsys.FromOSPath(abs)
		if err != nil {
			return nil, noop, fmt.Errorf("resolving corpus dir %s: %w", abs, err)
		}
		return corpus.NewDirectory(fsys, dir, cfg.Corpus.ReadConcurrency), noop, nil

	case config.SourceRedis:
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		checker.Register("redis", client.Ping)
		return corpus.NewRedisHash(client, cfg.Corpus.RedisKey), func() { client.Close() }, nil

	case config.SourcePostgres:
		client, err := postgres.New(cfg.Postgres)
		if err != nil {
			return nil, noop, err
		}
		checker.Register("postgres", client.Ping)
		p, err := corpus.NewPostgresTable(client.DB, cfg.Corpus.PostgresTable)
		if err != nil {
			client.Close()
			return nil, noop, err
		}
		return p, func() { client.Close() }, nil

	case config.SourceKafka:
		reader := kafka.NewSnapshotReader(cfg.Kafka)
		checker.Register("kafka", reader.Ping)
		return corpus.NewKafkaTopic(reader), noop, nil

	case config.SourceMemory:
		slog.Warn("memory source configured, index will be empty")
		return corpus.NewMemory(), noop, nil
	}
	return nil, noop, fmt.Errorf("unknown corpus source %q", cfg.Corpus.Source)
}

func runQuery(ctx context.Context, engine *indexer.Engine, lex *lexicon.Lexicon, m *metrics.Metrics, q string) error {
	plan, err := parser.Parse(q, normalizer.New(lex))
	if err != nil {
		return err
	}
	res, err := executor.New(engine, m).Execute(ctx, plan)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}
