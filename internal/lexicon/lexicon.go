// Package lexicon provisions the linguistic resources the normalizer depends
// on: a stopword set and a Snowball stemmer. Provisioning happens once at
// startup through a Provisioner; repeated calls return the same Lexicon.
package lexicon

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/kljensen/snowball"
	"github.com/kljensen/snowball/english"

	"github.com/Adithya-Monish-Kumar-K/termindex/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/termindex/pkg/errors"
)

//go:embed data/english.txt
var englishStopwords []byte

// Stemmer reduces a word to its root form. Implementations must be
// deterministic.
type Stemmer interface {
	Stem(word string) string
}

// StemmerFunc adapts a plain function to Stemmer.
type StemmerFunc func(word string) string

func (f StemmerFunc) Stem(word string) string { return f(word) }

// Identity leaves words unchanged.
var Identity = StemmerFunc(func(word string) string { return word })

// Lexicon is an immutable stopword set paired with a stemmer.
type Lexicon struct {
	language  string
	stopwords map[string]struct{}
	stemmer   Stemmer
}

// New builds a Lexicon from an explicit stopword list. Stopwords are stored
// lowercased so lookups are case-insensitive.
func New(language string, stopwords []string, stemmer Stemmer) *Lexicon {
	set := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		set[strings.ToLower(w)] = struct{}{}
	}
	if stemmer == nil {
		stemmer = Identity
	}
	return &Lexicon{language: language, stopwords: set, stemmer: stemmer}
}

// IsStopword reports whether word is in the stopword set, ignoring case.
func (l *Lexicon) IsStopword(word string) bool {
	_, ok := l.stopwords[strings.ToLower(word)]
	return ok
}

func (l *Lexicon) Stem(word string) string { return l.stemmer.Stem(word) }

func (l *Lexicon) Language() string { return l.language }

// StopwordCount returns the size of the stopword set.
func (l *Lexicon) StopwordCount() int { return len(l.stopwords) }

// ParseStopwords reads one word per line, skipping blanks and # comments.
func ParseStopwords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning stopwords: %w", err)
	}
	return words, nil
}

// SnowballStemmer returns the Snowball stemmer for language. Stopwords are
// stemmed too; filtering them is the normalizer's job.
func SnowballStemmer(language string) (Stemmer, error) {
	if language == "english" {
		return StemmerFunc(func(w string) string { return english.Stem(w, true) }), nil
	}
	if _, err := snowball.Stem("running", language, true); err != nil {
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "unsupported stemmer language %q", language)
	}
	return StemmerFunc(func(w string) string {
		s, _ := snowball.Stem(w, language, true)
		return s
	}), nil
}

// Provisioner loads a Lexicon from configuration exactly once.
type Provisioner struct {
	cfg  config.LexiconConfig
	once sync.Once
	lex  *Lexicon
	err  error
}

func NewProvisioner(cfg config.LexiconConfig) *Provisioner {
	return &Provisioner{cfg: cfg}
}

// Provision loads the stopword list and stemmer on first call. Later calls
// return the first call's result, including its error.
func (p *Provisioner) Provision() (*Lexicon, error) {
	p.once.Do(func() {
		p.lex, p.err = load(p.cfg)
		if p.err == nil {
			slog.Default().With("component", "lexicon").Info("lexicon provisioned",
				"language", p.lex.Language(),
				"stopwords", p.lex.StopwordCount(),
			)
		}
	})
	return p.lex, p.err
}

func load(cfg config.LexiconConfig) (*Lexicon, error) {
	language := cfg.Language
	if language == "" {
		language = "english"
	}
	stemmer, err := SnowballStemmer(language)
	if err != nil {
		return nil, err
	}

	var src io.Reader
	switch {
	case cfg.StopwordsFile != "":
		data, err := os.ReadFile(cfg.StopwordsFile)
		if err != nil {
			return nil, fmt.Errorf("reading stopwords file %s: %w", cfg.StopwordsFile, err)
		}
		src = bytes.NewReader(data)
	case language == "english":
		src = bytes.NewReader(englishStopwords)
	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument,
			"no built-in stopwords for %q; set lexicon.stopwordsFile", language)
	}
	words, err := ParseStopwords(src)
	if err != nil {
		return nil, err
	}
	return New(language, words, stemmer), nil
}
