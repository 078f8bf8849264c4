package app

import (
	"context"
	"fmt"

	"github.com/chriscorrea/textmetrics/internal/similarity"
	"github.com/chriscorrea/textmetrics/internal/tfidf"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// Comparison reports how similar two documents are.
type Comparison struct {
	A         string  `json:"a"`
	B         string  `json:"b"`
	Weighting string  `json:"weighting"` // "tf", or "tfidf" when corpus statistics were used
	Cosine    float64 `json:"cosine"`
	Jaccard   float64 `json:"jaccard"`
}

// Compare computes the cosine and Jaccard similarity of a and b. Without a
// corpus the cosine is taken over term frequencies; with one, over TF-IDF
// vectors weighted by the corpus statistics.
func (e *Engine) Compare(ctx context.Context, a, b Document, corpus []Document) (Comparison, error) {
	tfA := tfidf.TermFrequencies(tokenize.Terms(a.Text, e.cfg.Terms))
	tfB := tfidf.TermFrequencies(tokenize.Terms(b.Text, e.cfg.Terms))

	c := Comparison{
		A:         a.Source,
		B:         b.Source,
		Weighting: "tf",
		Jaccard: similarity.JaccardSets(
			tokenize.TermSet(a.Text, e.cfg.Terms),
			tokenize.TermSet(b.Text, e.cfg.Terms),
		),
	}

	if len(corpus) == 0 {
		c.Cosine = similarity.Cosine(tfA, tfB)
		return c, nil
	}

	texts := make([]string, len(corpus))
	for i, doc := range corpus {
		texts[i] = doc.Text
	}
	stats, err := e.cache.Build(ctx, texts, e.cfg.Terms, e.cfg.Workers)
	if err != nil {
		return Comparison{}, fmt.Errorf("failed to build corpus statistics: %w", err)
	}

	idf := stats.IDF()
	c.Weighting = "tfidf"
	c.Cosine = similarity.Cosine(tfidf.Weight(tfA, idf), tfidf.Weight(tfB, idf))
	return c, nil
}
