package ranker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/termindex/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

func build(t *testing.T, docs ...[]string) *index.Generation {
	t.Helper()
	b := index.NewBuilder()
	for i, terms := range docs {
		require.NoError(t, b.Add(string(rune('a'+i)), terms))
	}
	g, err := b.Build(Rank)
	require.NoError(t, err)
	return g
}

func TestRankOrdersByFrequency(t *testing.T) {
	g := build(t,
		[]string{"cat", "cat", "dog"},
		[]string{"cat", "bird", "dog", "dog", "dog"},
	)
	want := []index.TermFrequency{
		{Term: "dog", Frequency: 4},
		{Term: "cat", Frequency: 3},
		{Term: "bird", Frequency: 1},
	}
	assert.Equal(t, want, g.Ranking())
}

func TestRankTieBreakIsTermAscending(t *testing.T) {
	g := build(t,
		[]string{"zeta", "alpha", "mu"},
		[]string{"mu", "zeta", "alpha"},
	)
	want := []index.TermFrequency{
		{Term: "alpha", Frequency: 2},
		{Term: "mu", Frequency: 2},
		{Term: "zeta", Frequency: 2},
	}
	assert.Equal(t, want, g.Ranking())

	for i := 0; i < 10; i++ {
		again, err := Rank(g)
		require.NoError(t, err)
		assert.Equal(t, want, again)
	}
}

func TestRankCoversExactlyIndexedTerms(t *testing.T) {
	g := build(t, []string{"a", "b"}, []string{"c"}, nil)
	ranked := g.Ranking()
	terms := make([]string, 0, len(ranked))
	for _, tf := range ranked {
		terms = append(terms, tf.Term)
	}
	assert.ElementsMatch(t, g.Terms(), terms)
}

func TestTotalFrequencyAbsentTerm(t *testing.T) {
	g := build(t, []string{"a"})
	total, err := TotalFrequency(g, "missing")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRankEmpty(t *testing.T) {
	ranked, err := Rank(index.Empty())
	require.NoError(t, err)
	assert.Empty(t, ranked)

	_, err = Nth(ranked, 0)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestNth(t *testing.T) {
	ranking := []index.TermFrequency{{Term: "x", Frequency: 3}, {Term: "y", Frequency: 1}}

	got, err := Nth(ranking, 0)
	require.NoError(t, err)
	assert.Equal(t, "x", got.Term)

	got, err = Nth(ranking, 1)
	require.NoError(t, err)
	assert.Equal(t, "y", got.Term)

	for _, n := range []int{-1, 2, 100} {
		_, err := Nth(ranking, n)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound), "n=%d", n)
	}
}

func TestTop(t *testing.T) {
	ranking := []index.TermFrequency{{Term: "x", Frequency: 3}, {Term: "y", Frequency: 1}}
	assert.Len(t, Top(ranking, 1), 1)
	assert.Len(t, Top(ranking, 5), 2)
	assert.Empty(t, Top(ranking, -1))

	top := Top(ranking, 2)
	top[0].Term = "mutated"
	assert.Equal(t, "x", ranking[0].Term)
}
