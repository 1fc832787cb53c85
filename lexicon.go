package main

import (
	"context"
	"fmt"

	"github.com/muhammadolammi/skillgap/internal/database"
	"github.com/muhammadolammi/skillgap/internal/matcher"
)

type lexiconStore interface {
	ListLexiconLemmas(ctx context.Context) ([]database.LexiconLemma, error)
}

// loadLexicon reads the lexical database into memory once at startup.
func loadLexicon(ctx context.Context, store lexiconStore) (*matcher.MapLexicon, error) {
	rows, err := retry(3, func() ([]database.LexiconLemma, error) {
		return store.ListLexiconLemmas(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}
	pairs := make([]matcher.LemmaPair, 0, len(rows))
	for _, r := range rows {
		pairs = append(pairs, matcher.LemmaPair{SynsetID: r.SynsetID, Lemma: r.Lemma})
	}
	return matcher.NewMapLexicon(pairs), nil
}
