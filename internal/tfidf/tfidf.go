// Package tfidf provides term weighting (TF, IDF, TF-IDF) over documents and corpora.
//
// The package separates the two phases of corpus weighting:
//   - Statistics is built once per corpus: the document count N and, for every
//     term, the number of documents containing it (document frequency, df)
//   - vectors for individual documents are then derived from that shared,
//     read-only value and can be computed concurrently
//
// The IDF of a term is smoothed as ln(N / (df + 1)). Raw IDF values can be negative
// for terms present in nearly every document; ComputeTFIDF clamps those to zero so
// weighted vectors never carry negative weights.
//
// Usage Example:
//
//	idf := tfidf.ComputeIDF(documents)
//	vec := tfidf.ComputeTFIDF(documents[0], idf)
//	score := similarity.Cosine(vec, tfidf.ComputeTFIDF(documents[1], idf))
package tfidf

import (
	"log/slog"
	"math"

	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// Vector maps a term to a weight. TF, IDF and TF-IDF values share this shape.
type Vector map[string]float64

// Statistics holds the corpus-wide counts that IDF values are derived from.
// A Statistics value must not be modified once it is shared between goroutines.
type Statistics struct {
	NumDocs        int            // number of documents in the corpus, including empty ones
	DocFrequencies map[string]int // number of documents containing each term
}

// ComputeTF returns the term frequencies of a single document: the count of each
// lowercased term divided by the total number of terms. A document without terms
// yields an empty vector.
func ComputeTF(doc string) Vector {
	return TermFrequencies(tokenize.Terms(doc, tokenize.Options{}))
}

// TermFrequencies computes the relative frequency of each term in terms.
//
// Term frequency is calculated as: (count of term in document) / (total terms in document)
func TermFrequencies(terms []string) Vector {
	if len(terms) == 0 {
		return Vector{}
	}

	termCounts := make(map[string]int)
	for _, term := range terms {
		termCounts[term]++
	}

	totalTerms := float64(len(terms))
	termFreqs := make(Vector, len(termCounts))
	for term, count := range termCounts {
		termFreqs[term] = float64(count) / totalTerms
	}

	return termFreqs
}

// ComputeIDF returns the smoothed inverse document frequency of every term
// observed in the corpus.
func ComputeIDF(corpus []string) Vector {
	return NewStatistics(corpus, tokenize.Options{}).IDF()
}

// ComputeTFIDF weights the term frequencies of doc by idf.
// Terms missing from idf get weight 0, as do terms whose IDF is negative.
func ComputeTFIDF(doc string, idf Vector) Vector {
	return Weight(ComputeTF(doc), idf)
}

// Weight multiplies every term frequency in tf by its IDF, clamped at zero.
// The result has exactly the keys of tf.
func Weight(tf, idf Vector) Vector {
	weighted := make(Vector, len(tf))
	for term, freq := range tf {
		weighted[term] = freq * math.Max(idf[term], 0)
	}
	return weighted
}

// NewStatistics counts document frequencies over corpus.
// Each term is counted at most once per document.
func NewStatistics(corpus []string, opts tokenize.Options) *Statistics {
	stats := &Statistics{
		NumDocs:        len(corpus),
		DocFrequencies: make(map[string]int),
	}
	if len(corpus) == 0 {
		slog.Debug("Empty document collection provided")
		return stats
	}

	for _, doc := range corpus {
		stats.addDocument(doc, opts)
	}

	slog.Debug("Corpus statistics built", "documents", stats.NumDocs, "terms", len(stats.DocFrequencies))
	return stats
}

// addDocument records the distinct terms of doc
func (s *Statistics) addDocument(doc string, opts tokenize.Options) {
	for term := range tokenize.TermSet(doc, opts) {
		s.DocFrequencies[term]++
	}
}

// merge adds the counts of other into s
func (s *Statistics) merge(other *Statistics) {
	s.NumDocs += other.NumDocs
	for term, df := range other.DocFrequencies {
		s.DocFrequencies[term] += df
	}
}

// IDFOf returns ln(N / (df + 1)) for term. Terms never observed have df 0.
// An empty corpus yields 0 rather than the logarithm of zero.
func (s *Statistics) IDFOf(term string) float64 {
	if s.NumDocs == 0 {
		return 0
	}
	return math.Log(float64(s.NumDocs) / float64(s.DocFrequencies[term]+1))
}

// IDF returns the IDF of every observed term. The values are not clamped.
func (s *Statistics) IDF() Vector {
	idf := make(Vector, len(s.DocFrequencies))
	for term := range s.DocFrequencies {
		idf[term] = s.IDFOf(term)
	}
	return idf
}
