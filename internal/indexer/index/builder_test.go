package index

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

func noRank(*Generation) ([]TermFrequency, error) { return []TermFrequency{}, nil }

func TestBuilderScenario(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("doc1", []string{"cat", "sat", "mat"}))
	require.NoError(t, b.Add("doc2", []string{"cat", "dog", "great", "pet"}))
	assert.Equal(t, 2, b.DocCount())

	g, err := b.Build(noRank)
	require.NoError(t, err)

	assert.Equal(t, PostingList{"doc1", "doc2"}, g.Postings("cat"))
	assert.Equal(t, PostingList{"doc2"}, g.Postings("dog"))
	assert.Nil(t, g.Postings("zebra"))
	assert.Equal(t, []string{"cat", "dog", "great", "mat", "pet", "sat"}, g.Terms())
	assert.Equal(t, []string{"doc1", "doc2"}, g.DocIDs())
	assert.Equal(t, 7, g.TotalTerms())
	assert.Equal(t, 6, g.UniqueTerms())
	assert.Equal(t, 2, g.DocCount())
	assert.False(t, g.BuiltAt().IsZero())
}

func TestBuilderCountsMultiplicityButPostsOnce(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("d", []string{"x", "y", "x", "x"}))
	g, err := b.Build(noRank)
	require.NoError(t, err)

	assert.Equal(t, PostingList{"d"}, g.Postings("x"))
	n, err := g.Count("d", "x")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = g.Count("d", "absent")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = g.Count("nope", "x")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestBuilderRejectsDuplicateDocument(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("d", []string{"x"}))
	err := b.Add("d", []string{"y"})
	assert.True(t, errors.Is(err, apperrors.ErrDocumentExists))
}

func TestBuilderEmptyDocumentIsKept(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("blank", nil))
	g, err := b.Build(noRank)
	require.NoError(t, err)

	tf, ok := g.DocTerms("blank")
	assert.True(t, ok)
	assert.Empty(t, tf)
	assert.Zero(t, g.UniqueTerms())
}

func TestBuilderPropagatesRankError(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.Add("d", []string{"x"}))
	_, err := b.Build(func(*Generation) ([]TermFrequency, error) {
		return nil, apperrors.New(apperrors.ErrInternal, "boom")
	})
	assert.True(t, errors.Is(err, apperrors.ErrInternal))
}

// Every indexed term has a non-empty posting list whose documents count the
// term at least once, and every positive count appears in the index.
func TestBuilderIndexTableConsistency(t *testing.T) {
	b := NewBuilder()
	docs := map[string][]string{
		"a": {"red", "green", "red"},
		"b": {"green", "blue"},
		"c": {},
		"d": {"blue", "blue", "red"},
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, b.Add(id, docs[id]))
	}
	g, err := b.Build(noRank)
	require.NoError(t, err)

	for _, term := range g.Terms() {
		postings := g.Postings(term)
		require.NotEmpty(t, postings, term)
		for _, docID := range postings {
			n, err := g.Count(docID, term)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 1, "%s/%s", docID, term)
		}
	}
	for _, docID := range g.DocIDs() {
		tf, _ := g.DocTerms(docID)
		for term, n := range tf {
			assert.GreaterOrEqual(t, n, 1)
			assert.True(t, g.Postings(term).Contains(docID), "%s/%s", docID, term)
		}
	}
}

func TestEmptyGeneration(t *testing.T) {
	g := Empty()
	assert.Zero(t, g.DocCount())
	assert.Zero(t, g.TotalTerms())
	assert.Empty(t, g.Ranking())
	assert.NotNil(t, g.Ranking())
	assert.True(t, g.BuiltAt().IsZero())
}

func TestPostingListContains(t *testing.T) {
	p := PostingList{"a", "c", "e"}
	assert.True(t, p.Contains("c"))
	assert.False(t, p.Contains("b"))
	assert.False(t, PostingList(nil).Contains("a"))
}
