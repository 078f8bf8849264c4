package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/chriscorrea/bm25md"

	"github.com/chriscorrea/textmetrics/internal/chunk"
	"github.com/chriscorrea/textmetrics/internal/round"
	"github.com/chriscorrea/textmetrics/internal/similarity"
	"github.com/chriscorrea/textmetrics/internal/tfidf"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// SearchMethod selects how passages are ranked against a query.
type SearchMethod int

const (
	// cosine similarity of TF-IDF vectors (default)
	TFIDF SearchMethod = iota
	// BM25md field-weighted ranking
	BM25
)

// String returns the flag value of the method
func (m SearchMethod) String() string {
	switch m {
	case TFIDF:
		return "tfidf"
	case BM25:
		return "bm25"
	default:
		return "unknown"
	}
}

// ParseSearchMethod parses a method name as accepted by --method.
func ParseSearchMethod(name string) (SearchMethod, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "tfidf", "tf-idf":
		return TFIDF, nil
	case "bm25", "bm25md":
		return BM25, nil
	default:
		return 0, fmt.Errorf("unknown search method %q (want tfidf or bm25)", name)
	}
}

// PassageScore represents a passage with its relevance score and position.
type PassageScore struct {
	Source  string  `json:"source"`  // document the passage belongs to
	Passage int     `json:"passage"` // position of the passage within its document
	Text    string  `json:"text"`
	Score   float64 `json:"score"` // higher = more relevant
	index   int     // position in the flattened passage list
}

// Search splits docs into passages and returns the passages most relevant
// to the configured query, best first. Passages scoring zero are left out.
func (e *Engine) Search(ctx context.Context, docs []Document) ([]PassageScore, error) {
	query := strings.TrimSpace(e.cfg.Query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	var passages []PassageScore
	for _, doc := range docs {
		for i, text := range chunk.SplitPassages(doc.Text, e.cfg.PassageRunes) {
			passages = append(passages, PassageScore{Source: doc.Source, Passage: i, Text: text, index: len(passages)})
		}
	}
	if len(passages) == 0 {
		return []PassageScore{}, nil
	}

	var err error
	switch e.cfg.Method {
	case BM25:
		performLexicalSearch(passages, query)
	default:
		err = e.performTFIDFSearch(ctx, passages, query)
	}
	if err != nil {
		return nil, err
	}

	// sort by score (highest first); equal scores keep document order
	sort.SliceStable(passages, func(i, j int) bool {
		return passages[i].Score > passages[j].Score
	})

	results := make([]PassageScore, 0, e.cfg.Limit)
	for _, p := range passages {
		if p.Score <= 0 || len(results) == e.cfg.Limit {
			break
		}
		results = append(results, p)
	}

	slog.Debug("Search completed", "method", e.cfg.Method, "passages", len(passages), "results", len(results))
	return results, nil
}

// minIDFPassages is the smallest passage corpus in which a term can carry a
// positive IDF; below it ln(N/(df+1)) <= 0 for every term that occurs
const minIDFPassages = 3

// performTFIDFSearch scores passages by TF-IDF cosine, with the passages
// themselves as the corpus. Smaller corpora are scored by term-frequency
// cosine instead.
func (e *Engine) performTFIDFSearch(ctx context.Context, passages []PassageScore, query string) error {
	texts := make([]string, len(passages))
	for i, p := range passages {
		texts[i] = p.Text
	}

	if len(texts) < minIDFPassages {
		e.warn("%d passages are too few for TF-IDF weighting; ranking by term frequency", len(texts))
		queryTF := tfidf.TermFrequencies(tokenize.Terms(query, e.cfg.Terms))
		for i := range passages {
			passages[i].Score = similarity.Cosine(queryTF, tfidf.TermFrequencies(tokenize.Terms(texts[i], e.cfg.Terms)))
		}
		return nil
	}

	stats, err := e.cache.Build(ctx, texts, e.cfg.Terms, e.cfg.Workers)
	if err != nil {
		return err
	}

	corpus := tfidf.NewCorpusWithStatistics(texts, stats, e.cfg.Terms)
	for i := range passages {
		passages[i].Score = corpus.Score(query, passages[i].index)
	}
	return nil
}

// performLexicalSearch scores passages using BM25md field-weighted ranking
func performLexicalSearch(passages []PassageScore, query string) {
	// create BM25md corpus with default field weights and parameters
	corpus := bm25md.NewCorpus()

	// parse passages as markdown documents and add to corpus
	parser := bm25md.NewMarkdownFieldParser()
	for _, p := range passages {
		fields := parser.ParseDocument(p.Text)
		corpus.AddDocument(bm25md.Document{
			ID:       p.index,
			Fields:   fields,
			Original: p.Text,
		})
	}

	for i := range passages {
		passages[i].Score = round.To(corpus.Score(query, passages[i].index), similarity.Precision)
	}
}
