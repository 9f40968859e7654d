package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Adithya-Monish-Kumar-K/termindex/internal/lexicon"
	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/config"
)

func englishNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	lex, err := lexicon.NewProvisioner(config.LexiconConfig{Language: "english"}).Provision()
	if err != nil {
		t.Fatalf("provisioning lexicon: %v", err)
	}
	return New(lex)
}

func TestProcessScenarioDocuments(t *testing.T) {
	n := englishNormalizer(t)

	assert.Equal(t, []string{"cat", "sat", "mat"}, n.Process("The cat sat on the mat."))
	assert.Equal(t, []string{"cat", "dog", "great", "pet"}, n.Process("Cats and dogs are great pets."))
}

func TestProcessKeepsOrderAndDuplicates(t *testing.T) {
	n := New(lexicon.New("test", []string{"the"}, nil))
	assert.Equal(t, []string{"b", "a", "b", "b"}, n.Process("b a THE b, b"))
}

func TestProcessEmptyInputs(t *testing.T) {
	n := englishNormalizer(t)
	for _, text := range []string{"", "   ", "...!?", "-- ; --", "the and of"} {
		terms := n.Process(text)
		assert.NotNil(t, terms, "%q", text)
		assert.Empty(t, terms, "%q", text)
	}
}

func TestProcessDropsNonAlphabeticTokens(t *testing.T) {
	n := New(lexicon.New("test", nil, nil))
	// Digits inside a token discard the whole token; non-ASCII letters too.
	got := n.Process("abc123 42 café naïve plain x-ray $dollar")
	assert.Equal(t, []string{"plain", "dollar"}, got)
}

func TestProcessDropsHyphenatedAndDottedWords(t *testing.T) {
	n := englishNormalizer(t)
	got := n.Process("don't abc123 naïve café hello-world e-mail U.S.A. running runs")
	assert.Equal(t, []string{"run", "run"}, got)

	// A trailing or doubled hyphen is still a boundary.
	assert.Equal(t, []string{"cat", "dog"}, n.Process("cat- --dog"))
	assert.Equal(t, []string{"end", "start"}, n.Process("The end. Start again"))
}

func TestProcessStopwordsCaseInsensitive(t *testing.T) {
	n := New(lexicon.New("test", []string{"The", "AND"}, nil))
	assert.Equal(t, []string{"cat", "dog"}, n.Process("THE cat And dog"))
}

func TestProcessAppliesStemmerAfterFiltering(t *testing.T) {
	var seen []string
	stem := lexicon.StemmerFunc(func(w string) string {
		seen = append(seen, w)
		return strings.TrimSuffix(w, "s")
	})
	n := New(lexicon.New("test", []string{"is"}, stem))

	assert.Equal(t, []string{"cat", "dog"}, n.Process("Cats is dogs"))
	// Stopwords never reach the stemmer and tokens arrive lowercased.
	assert.Equal(t, []string{"cats", "dogs"}, seen)
}

func TestProcessDropsEmptyStems(t *testing.T) {
	stem := lexicon.StemmerFunc(func(w string) string {
		if w == "gone" {
			return ""
		}
		return w
	})
	n := New(lexicon.New("test", nil, stem))
	assert.Equal(t, []string{"here"}, n.Process("gone here"))
}

func TestProcessDeterministic(t *testing.T) {
	n := englishNormalizer(t)
	text := "Running runners ran quickly through the running tracks"
	first := n.Process(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, n.Process(text))
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"hello", "world", "42"}, Tokenize("Hello,\tworld! 42"))
	assert.Equal(t, []string{"cat", "s"}, Tokenize("cat's"))
	assert.Equal(t, []string{"e-mail", "u.s.a", "x"}, Tokenize("E-mail U.S.A. -x-"))
	assert.Equal(t, []string{"3.14", "well-known"}, Tokenize("3.14 well-known."))
	assert.Empty(t, Tokenize(""))
}

func BenchmarkProcess(b *testing.B) {
	lex, err := lexicon.NewProvisioner(config.LexiconConfig{}).Provision()
	if err != nil {
		b.Fatal(err)
	}
	n := New(lex)
	text := strings.Repeat("The quick brown fox jumps over the lazy dog while indexing documents. ", 50)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.Process(text)
	}
}
