package index

import (
	"sort"
	"time"

	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

// Generation is one complete, immutable build of the index: the
// term-frequency table, the inverted index and the frequency ranking derived
// from them. Nothing mutates a Generation once Build has returned it, so any
// number of readers may share one.
type Generation struct {
	table      TermFrequencyTable
	inverted   InvertedIndex
	ranking    []TermFrequency
	docIDs     []string
	totalTerms int
	builtAt    time.Time
}

// Empty returns the generation visible before the first refresh.
func Empty() *Generation {
	return &Generation{
		table:    make(TermFrequencyTable),
		inverted: make(InvertedIndex),
		ranking:  []TermFrequency{},
		docIDs:   []string{},
	}
}

// Postings returns the posting list for term, or nil when the term is not
// indexed. The returned slice is shared and must not be modified.
func (g *Generation) Postings(term string) PostingList {
	return g.inverted[term]
}

// Count returns how often term occurs in docID. An indexed document that
// lacks the term counts 0; an unknown document is ErrNotFound.
func (g *Generation) Count(docID, term string) (int, error) {
	tf, ok := g.table[docID]
	if !ok {
		return 0, apperrors.Newf(apperrors.ErrNotFound, "document %q", docID)
	}
	return tf[term], nil
}

// DocTerms returns the term counts for docID. The map is shared and must not
// be modified.
func (g *Generation) DocTerms(docID string) (TermFrequencies, bool) {
	tf, ok := g.table[docID]
	return tf, ok
}

// Terms returns every indexed term in ascending order.
func (g *Generation) Terms() []string {
	terms := make([]string, 0, len(g.inverted))
	for term := range g.inverted {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// DocIDs returns document ids in the order the corpus provider yielded them.
func (g *Generation) DocIDs() []string {
	out := make([]string, len(g.docIDs))
	copy(out, g.docIDs)
	return out
}

// Ranking returns the frequency ranking computed when the generation was
// built. The slice is shared and must not be modified.
func (g *Generation) Ranking() []TermFrequency { return g.ranking }

func (g *Generation) DocCount() int    { return len(g.table) }
func (g *Generation) UniqueTerms() int { return len(g.inverted) }
func (g *Generation) TotalTerms() int  { return g.totalTerms }

// BuiltAt is zero for the Empty generation.
func (g *Generation) BuiltAt() time.Time { return g.builtAt }
