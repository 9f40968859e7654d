package index

import "sort"

// PostingList is the set of documents containing a term, sorted by document
// id with no duplicates.
type PostingList []string

// Contains reports whether docID is in the list.
func (p PostingList) Contains(docID string) bool {
	i := sort.SearchStrings(p, docID)
	return i < len(p) && p[i] == docID
}

// TermFrequencies maps a term to its occurrence count within one document.
// Stored counts are always at least 1.
type TermFrequencies map[string]int

// TermFrequencyTable maps a document id to that document's term counts.
type TermFrequencyTable map[string]TermFrequencies

// InvertedIndex maps a term to its non-empty posting list.
type InvertedIndex map[string]PostingList

// TermFrequency pairs a term with its total occurrences across the corpus.
type TermFrequency struct {
	Term      string `json:"term"`
	Frequency int    `json:"frequency"`
}

// CountTerms counts occurrences of each term in a normalized sequence.
func CountTerms(terms []string) TermFrequencies {
	counts := make(TermFrequencies, len(terms))
	for _, t := range terms {
		counts[t]++
	}
	return counts
}
