package ranker

import (
	"sort"

	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

// Rank orders every indexed term by total frequency, highest first. Terms
// with equal frequency are ordered by term ascending so the ranking is
// identical across runs on the same corpus.
func Rank(g *index.Generation) ([]index.TermFrequency, error) {
	terms := g.Terms()
	result := make([]index.TermFrequency, 0, len(terms))
	for _, term := range terms {
		total, err := TotalFrequency(g, term)
		if err != nil {
			return nil, err
		}
		result = append(result, index.TermFrequency{Term: term, Frequency: total})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result, nil
}

// TotalFrequency sums term's count over every document in its posting list.
// An unindexed term totals 0. A posting that points at a document missing
// from the term-frequency table means the generation is corrupt and is
// reported as ErrInternal.
func TotalFrequency(g *index.Generation, term string) (int, error) {
	total := 0
	for _, docID := range g.Postings(term) {
		tf, ok := g.DocTerms(docID)
		if !ok {
			return 0, apperrors.Newf(apperrors.ErrInternal,
				"posting for %q references unindexed document %q", term, docID)
		}
		// A document without the term contributes nothing.
		total += tf[term]
	}
	return total, nil
}

// Nth returns the entry at position n of ranking.
func Nth(ranking []index.TermFrequency, n int) (index.TermFrequency, error) {
	if n < 0 || n >= len(ranking) {
		return index.TermFrequency{}, apperrors.Newf(apperrors.ErrNotFound,
			"rank %d out of range [0, %d)", n, len(ranking))
	}
	return ranking[n], nil
}

// Top returns the first k entries of ranking, or all of them when k exceeds
// its length.
func Top(ranking []index.TermFrequency, k int) []index.TermFrequency {
	if k < 0 {
		k = 0
	}
	if k > len(ranking) {
		k = len(ranking)
	}
	out := make([]index.TermFrequency, k)
	copy(out, ranking[:k])
	return out
}

func less(a, b index.TermFrequency) bool {
	if a.Frequency != b.Frequency {
		return a.Frequency > b.Frequency
	}
	return a.Term < b.Term
}
