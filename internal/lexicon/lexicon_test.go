package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

func TestProvisionEnglishDefaults(t *testing.T) {
	p := NewProvisioner(config.LexiconConfig{Language: "english"})
	lex, err := p.Provision()
	require.NoError(t, err)

	assert.Equal(t, 179, lex.StopwordCount())
	for _, w := range []string{"the", "The", "AND", "on", "are"} {
		assert.True(t, lex.IsStopword(w), w)
	}
	assert.False(t, lex.IsStopword("cat"))

	assert.Equal(t, "cat", lex.Stem("cats"))
	assert.Equal(t, "dog", lex.Stem("dogs"))
	assert.Equal(t, "pet", lex.Stem("pets"))
	assert.Equal(t, "run", lex.Stem("running"))
}

func TestProvisionIsIdempotent(t *testing.T) {
	p := NewProvisioner(config.LexiconConfig{})
	first, err := p.Provision()
	require.NoError(t, err)
	second, err := p.Provision()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestProvisionStopwordsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	require.NoError(t, os.WriteFile(path, []byte("# custom\nFoo\n\nbar\n"), 0o644))

	lex, err := NewProvisioner(config.LexiconConfig{StopwordsFile: path}).Provision()
	require.NoError(t, err)
	assert.Equal(t, 2, lex.StopwordCount())
	assert.True(t, lex.IsStopword("foo"))
	assert.False(t, lex.IsStopword("the"))
}

func TestProvisionUnknownLanguage(t *testing.T) {
	_, err := NewProvisioner(config.LexiconConfig{Language: "klingon"}).Provision()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidArgument))
}

func TestParseStopwords(t *testing.T) {
	words, err := ParseStopwords(strings.NewReader("  a \n# skip\n\nthe\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "the"}, words)
}

func TestNewDefaultsToIdentity(t *testing.T) {
	lex := New("english", []string{"A"}, nil)
	assert.Equal(t, "running", lex.Stem("running"))
	assert.True(t, lex.IsStopword("a"))
}
