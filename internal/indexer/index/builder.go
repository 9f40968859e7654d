package index

import (
	"fmt"
	"sort"
	"time"

	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

// RankFunc derives the frequency ranking of a freshly built generation.
type RankFunc func(g *Generation) ([]TermFrequency, error)

// Builder accumulates documents into fresh structures. It is not safe for
// concurrent use; a refresh owns exactly one Builder.
type Builder struct {
	table      TermFrequencyTable
	postings   map[string]map[string]struct{}
	docIDs     []string
	totalTerms int
}

func NewBuilder() *Builder {
	return &Builder{
		table:    make(TermFrequencyTable),
		postings: make(map[string]map[string]struct{}),
	}
}

// Add records one document's normalized terms. A document contributes one
// posting per distinct term regardless of multiplicity. Adding the same id
// twice fails with ErrDocumentExists.
func (b *Builder) Add(docID string, terms []string) error {
	if _, dup := b.table[docID]; dup {
		return apperrors.Newf(apperrors.ErrDocumentExists, "document %q yielded twice", docID)
	}
	counts := CountTerms(terms)
	b.table[docID] = counts
	b.docIDs = append(b.docIDs, docID)
	b.totalTerms += len(terms)

	for term := range counts {
		docs, ok := b.postings[term]
		if !ok {
			docs = make(map[string]struct{})
			b.postings[term] = docs
		}
		docs[docID] = struct{}{}
	}
	return nil
}

// DocCount returns the number of documents added so far.
func (b *Builder) DocCount() int { return len(b.docIDs) }

// Build freezes the accumulated state into a Generation and computes its
// ranking with rank. The Builder must not be used afterwards.
func (b *Builder) Build(rank RankFunc) (*Generation, error) {
	inverted := make(InvertedIndex, len(b.postings))
	for term, docs := range b.postings {
		list := make(PostingList, 0, len(docs))
		for docID := range docs {
			list = append(list, docID)
		}
		sort.Strings(list)
		inverted[term] = list
	}

	g := &Generation{
		table:      b.table,
		inverted:   inverted,
		docIDs:     b.docIDs,
		totalTerms: b.totalTerms,
		builtAt:    time.Now(),
	}
	if g.docIDs == nil {
		g.docIDs = []string{}
	}

	ranking, err := rank(g)
	if err != nil {
		return nil, fmt.Errorf("ranking generation: %w", err)
	}
	g.ranking = ranking
	b.table, b.postings, b.docIDs = nil, nil, nil
	return g, nil
}
