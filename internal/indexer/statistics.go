package indexer

import (
	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

// TotalWordCount is the number of term occurrences across all documents.
func (e *Engine) TotalWordCount() int {
	return e.current.Load().TotalTerms()
}

// UniqueWordCount is the number of distinct terms in the inverted index.
func (e *Engine) UniqueWordCount() int {
	return e.current.Load().UniqueTerms()
}

func (e *Engine) DocumentCount() int {
	return e.current.Load().DocCount()
}

// DocumentIDs lists indexed documents in provider order.
func (e *Engine) DocumentIDs() []string {
	return e.current.Load().DocIDs()
}

// DocTotalWordCount is the number of term occurrences in docID.
func (e *Engine) DocTotalWordCount(docID string) (int, error) {
	tf, ok := e.current.Load().DocTerms(docID)
	if !ok {
		return 0, apperrors.Newf(apperrors.ErrNotFound, "document %q", docID)
	}
	total := 0
	for _, n := range tf {
		total += n
	}
	return total, nil
}

// DocUniqueWordCount is the number of distinct terms in docID.
func (e *Engine) DocUniqueWordCount(docID string) (int, error) {
	tf, ok := e.current.Load().DocTerms(docID)
	if !ok {
		return 0, apperrors.Newf(apperrors.ErrNotFound, "document %q", docID)
	}
	return len(tf), nil
}

// TermFrequency is how often term occurs in docID; 0 if it does not.
func (e *Engine) TermFrequency(docID, term string) (int, error) {
	return e.current.Load().Count(docID, term)
}
