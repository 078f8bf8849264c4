package tfidf

import (
	"log/slog"

	"github.com/chriscorrea/textmetrics/internal/similarity"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// Corpus holds documents together with their pre-calculated TF-IDF vectors for
// repeated querying.
type Corpus struct {
	Documents []string         // original documents
	Vectors   []Vector         // TF-IDF vector for each document
	Stats     *Statistics      // document frequencies over Documents
	Options   tokenize.Options // term options shared by documents and queries
	idf       Vector
}

// NewCorpus creates a corpus from a collection of documents. It performs the
// one-time analysis of all documents so that scoring a query only needs the
// query's own vector.
func NewCorpus(documents []string, opts tokenize.Options) *Corpus {
	return NewCorpusWithStatistics(documents, NewStatistics(documents, opts), opts)
}

// NewCorpusWithStatistics creates a corpus that reuses already computed statistics,
// such as ones obtained from a Cache or from BuildStatistics.
func NewCorpusWithStatistics(documents []string, stats *Statistics, opts tokenize.Options) *Corpus {
	corpus := &Corpus{
		Documents: documents,
		Vectors:   make([]Vector, len(documents)),
		Stats:     stats,
		Options:   opts,
		idf:       stats.IDF(),
	}

	for docIdx, doc := range documents {
		corpus.Vectors[docIdx] = corpus.Vectorize(doc)
	}

	slog.Debug("TF-IDF corpus created", "documents", len(documents), "terms", len(corpus.idf))
	return corpus
}

// Vectorize computes the TF-IDF vector of text against the corpus statistics.
func (c *Corpus) Vectorize(text string) Vector {
	return Weight(TermFrequencies(tokenize.Terms(text, c.Options)), c.idf)
}

// IDF returns the IDF value of term within this corpus.
func (c *Corpus) IDF(term string) float64 {
	return c.idf[term]
}

// Score calculates the relevance of query to the document at docIndex as the
// cosine similarity of their TF-IDF vectors.
//
// Returns 0 for an invalid index, an empty query, or a query whose terms carry
// no weight in this corpus.
func (c *Corpus) Score(query string, docIndex int) float64 {
	if docIndex < 0 || docIndex >= len(c.Documents) {
		slog.Debug("Invalid document index", "docIndex", docIndex, "totalDocs", len(c.Documents))
		return 0.0
	}

	queryVec := c.Vectorize(query)
	if len(queryVec) == 0 {
		slog.Debug("Empty query after tokenization")
		return 0.0
	}

	return similarity.Cosine(queryVec, c.Vectors[docIndex])
}
