// Package matcher decides whether two skill labels denote the same competency
// and turns a skill comparison into matches, gaps and learning recommendations.
package matcher

import (
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/muhammadolammi/skillgap/internal/skills"
)

const (
	// maxLenDiff and maxLenDiffRatio bound substring matches so that "java"
	// does not match "javascript".
	maxLenDiff      = 3
	maxLenDiffRatio = 0.3
)

// Matcher runs the similarity cascade against a catalogue and an optional
// lexical database. It holds no mutable state and is safe for concurrent use.
type Matcher struct {
	catalog *skills.Catalog
	lexicon Lexicon
	log     zerolog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithLexicon enables the lexical-database step of the cascade.
func WithLexicon(l Lexicon) Option {
	return func(m *Matcher) {
		m.lexicon = l
	}
}

// WithLogger sets the logger used for lexicon lookup failures.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Matcher) {
		m.log = l
	}
}

// New returns a Matcher over catalog. A nil catalog selects skills.Default().
func New(catalog *skills.Catalog, opts ...Option) *Matcher {
	if catalog == nil {
		catalog = skills.Default()
	}
	m := &Matcher{catalog: catalog, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// IsSimilar reports whether a and b denote the same competency. Rules are
// tried in order: exact match, close substring, relation map, shared lemma.
func (m *Matcher) IsSimilar(a, b string) bool {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	if closeSubstring(a, b) {
		return true
	}
	if m.catalog.IsRelated(a, b) || m.catalog.IsRelated(b, a) {
		return true
	}
	return m.shareLemma(a, b)
}

func closeSubstring(a, b string) bool {
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	return diff < maxLenDiff || float64(diff)/float64(max(la, lb)) < maxLenDiffRatio
}

// shareLemma fails open: any lookup error means "not similar".
func (m *Matcher) shareLemma(a, b string) bool {
	if m.lexicon == nil {
		return false
	}
	left, err := m.lemmas(a)
	if err != nil {
		m.log.Debug().Err(err).Str("skill", a).Msg("lexicon lookup failed")
		return false
	}
	if len(left) == 0 {
		return false
	}
	right, err := m.lemmas(b)
	if err != nil {
		m.log.Debug().Err(err).Str("skill", b).Msg("lexicon lookup failed")
		return false
	}
	for lemma := range right {
		if left[lemma] {
			return true
		}
	}
	return false
}

func (m *Matcher) lemmas(word string) (map[string]bool, error) {
	synsets, err := m.lexicon.Synsets(word)
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool)
	for _, s := range synsets {
		for _, l := range s.Lemmas {
			out[strings.ToLower(l)] = true
		}
	}
	return out, nil
}
