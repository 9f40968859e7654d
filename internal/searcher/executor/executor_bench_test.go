package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/termindex/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer/normalizer"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/termindex/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/config"
)

func benchExecutor(b *testing.B, numDocs int) *Executor {
	b.Helper()
	lex, err := lexicon.NewProvisioner(config.LexiconConfig{Language: "english"}).Provision()
	if err != nil {
		b.Fatal(err)
	}
	engine := indexer.NewEngine(normalizer.New(lex))
	docs := make([]corpus.Document, 0, numDocs)
	for i := 0; i < numDocs; i++ {
		text := "search engine with distributed indexing"
		if i%3 == 0 {
			text += " and query processing"
		}
		docs = append(docs, corpus.Document{ID: fmt.Sprintf("doc-%06d", i), Text: text})
	}
	if err := engine.Refresh(context.Background(), corpus.NewMemory(docs...)); err != nil {
		b.Fatal(err)
	}
	return New(engine, nil)
}

// BenchmarkBooleanQuery measures AND and OR merges over posting lists of
// growing size.
func BenchmarkBooleanQuery(b *testing.B) {
	for _, numDocs := range []int{100, 1000, 10000} {
		ex := benchExecutor(b, numDocs)
		for _, op := range []parser.Operator{parser.OpAND, parser.OpOR} {
			b.Run(fmt.Sprintf("%s/docs_%d", op, numDocs), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					if _, err := ex.BooleanQuery("search", "queri", op); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkBooleanQueryParallel(b *testing.B) {
	ex := benchExecutor(b, 10000)
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := ex.BooleanQuery("distribut", "index", parser.OpAND); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
