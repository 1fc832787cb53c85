package matcher

import (
	"sort"
	"strings"
)

// Synset is one sense in a lexical database with the lemma names that express it.
type Synset struct {
	ID     string
	Lemmas []string
}

// Lexicon looks up the synonym sets of a word. Multi-word entries use
// underscores, as in "machine_learning".
type Lexicon interface {
	Synsets(word string) ([]Synset, error)
}

// LemmaPair is one (synset, lemma) row of a lexical database.
type LemmaPair struct {
	SynsetID string
	Lemma    string
}

// MapLexicon is an in-memory Lexicon. It is read-only after construction.
type MapLexicon struct {
	byLemma  map[string][]string
	bySynset map[string][]string
}

// NewMapLexicon indexes pairs by lemma and by synset.
func NewMapLexicon(pairs []LemmaPair) *MapLexicon {
	l := &MapLexicon{
		byLemma:  make(map[string][]string),
		bySynset: make(map[string][]string),
	}
	seen := make(map[LemmaPair]bool, len(pairs))
	for _, p := range pairs {
		p.Lemma = lemmaKey(p.Lemma)
		if p.SynsetID == "" || p.Lemma == "" || seen[p] {
			continue
		}
		seen[p] = true
		l.byLemma[p.Lemma] = append(l.byLemma[p.Lemma], p.SynsetID)
		l.bySynset[p.SynsetID] = append(l.bySynset[p.SynsetID], p.Lemma)
	}
	return l
}

// Len returns the number of distinct lemmas.
func (l *MapLexicon) Len() int {
	return len(l.byLemma)
}

// Synsets returns every synset that word belongs to, ordered by ID.
func (l *MapLexicon) Synsets(word string) ([]Synset, error) {
	ids := append([]string(nil), l.byLemma[lemmaKey(word)]...)
	sort.Strings(ids)
	out := make([]Synset, 0, len(ids))
	for _, id := range ids {
		out = append(out, Synset{ID: id, Lemmas: append([]string(nil), l.bySynset[id]...)})
	}
	return out, nil
}

func lemmaKey(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), "_")
}
