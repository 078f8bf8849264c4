package app

import (
	"context"
	"log/slog"
	"math"
	"os"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/chriscorrea/textmetrics/internal/classify"
	"github.com/chriscorrea/textmetrics/internal/complexity"
	"github.com/chriscorrea/textmetrics/internal/dedup"
	"github.com/chriscorrea/textmetrics/internal/progress"
	"github.com/chriscorrea/textmetrics/internal/quality"
	"github.com/chriscorrea/textmetrics/internal/round"
	"github.com/chriscorrea/textmetrics/internal/similarity"
	"github.com/chriscorrea/textmetrics/internal/tfidf"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// ScoreResult holds every single-text measurement.
type ScoreResult struct {
	Quality    quality.Breakdown     `json:"quality"`
	Complexity complexity.Components `json:"complexity"`
	Units      int                   `json:"units"`
	Unit       string                `json:"unit"`
	Category   classify.Result       `json:"category"`
}

// Score measures a single text.
func (e *Engine) Score(text string) ScoreResult {
	category := e.classifier.Classify(text)
	category.Confidence = round.To(category.Confidence, quality.Precision)

	return ScoreResult{
		Quality:    e.scorer.Evaluate(text),
		Complexity: complexity.Evaluate(text),
		Units:      e.counter.Count(text),
		Unit:       e.counter.Name(),
		Category:   category,
	}
}

// TermWeight is a term with its TF-IDF weight.
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// Neighbor is another document of the batch with its Jaccard similarity.
type Neighbor struct {
	Index      int     `json:"index"`
	Similarity float64 `json:"similarity"`
}

// Report is the batch result for one document.
type Report struct {
	Index          int          `json:"index"`
	Source         string       `json:"source"`
	Quality        float64      `json:"quality"`
	Complexity     float64      `json:"complexity"`
	Units          int          `json:"units"`
	Category       string       `json:"category"`
	Confidence     float64      `json:"confidence"`
	TopTerms       []TermWeight `json:"top_terms"`
	DuplicateOf    int          `json:"duplicate_of"`    // index of the first identical document, -1 if unique
	Nearest        int          `json:"nearest"`         // most similar other document, -1 if none shares a weighted term
	NearestCosine  float64      `json:"nearest_cosine"`  // TF-IDF cosine to Nearest
	NearDuplicates []Neighbor   `json:"near_duplicates"` // documents at or above the similarity threshold

	vector tfidf.Vector
}

// Summary aggregates the reported documents.
type Summary struct {
	Documents      int     `json:"documents"`       // documents analyzed
	Reported       int     `json:"reported"`        // documents passing the quality filter
	Duplicates     int     `json:"duplicates"`      // exact duplicates among analyzed documents
	NearDuplicates int     `json:"near_duplicates"` // pairs at or above the similarity threshold
	Unit           string  `json:"unit"`
	TotalUnits     int     `json:"total_units"`
	QualityMean    float64 `json:"quality_mean"`
	QualityStdDev  float64 `json:"quality_stddev"`
	QualityMin     float64 `json:"quality_min"`
	QualityMax     float64 `json:"quality_max"`
	ComplexityMean float64 `json:"complexity_mean"`
}

// Analysis is the outcome of a batch run.
type Analysis struct {
	Reports []Report     `json:"reports"`
	Similar []dedup.Pair `json:"similar"`
	Summary Summary      `json:"summary"`
}

// Analyze runs the batch pipeline over docs.
//
// Processing Pipeline:
//  1. Build corpus statistics (document frequencies), sharded across workers
//  2. Fan out one report per document against the shared statistics
//  3. Link duplicates and nearest neighbors, filter by quality and summarize
//
// Phase 2 starts only after phase 1 has finished; reports are returned in
// input order regardless of completion order.
func (e *Engine) Analyze(ctx context.Context, docs []Document) (*Analysis, error) {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	var indicator *progress.Indicator
	if !e.cfg.Quiet && progress.Enabled(os.Stderr) {
		indicator = progress.New(ctx, os.Stderr, "Building corpus statistics", len(docs))
		indicator.Start()
		defer indicator.Stop()
	}

	// phase 1: corpus statistics
	stats, err := e.cache.Build(ctx, texts, e.cfg.Terms, e.cfg.Workers)
	if err != nil {
		return nil, err
	}
	idf := stats.IDF()

	// phase 2: per-document reports
	if indicator != nil {
		indicator.SetLabel("Scoring documents")
	}
	reports := make([]Report, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers(len(docs)))
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = e.report(i, doc, idf)
			if indicator != nil {
				indicator.Increment()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// phase 3: cross-document links
	if indicator != nil {
		indicator.SetLabel("Linking documents")
	}
	for i, original := range dedup.New(e.cfg.Terms.Language).Originals(texts) {
		if original != i {
			reports[i].DuplicateOf = original
		}
	}
	if err := e.linkNearest(ctx, reports); err != nil {
		return nil, err
	}
	similar := dedup.FindSimilar(texts, *e.cfg.Threshold, e.cfg.Terms)
	for _, p := range similar {
		reports[p.I].NearDuplicates = append(reports[p.I].NearDuplicates, Neighbor{Index: p.J, Similarity: p.Similarity})
		reports[p.J].NearDuplicates = append(reports[p.J].NearDuplicates, Neighbor{Index: p.I, Similarity: p.Similarity})
	}

	kept := make([]Report, 0, len(reports))
	for _, r := range reports {
		if r.Quality >= e.cfg.MinQuality {
			kept = append(kept, r)
		}
	}

	analysis := &Analysis{
		Reports: kept,
		Similar: similar,
		Summary: e.summarize(reports, kept, len(similar)),
	}
	slog.Debug("Analysis completed", "documents", len(docs), "reported", len(kept), "terms", len(idf))
	return analysis, nil
}

// report computes the per-document measurements against shared IDF values
func (e *Engine) report(index int, doc Document, idf tfidf.Vector) Report {
	category := e.classifier.Classify(doc.Text)
	vector := tfidf.Weight(tfidf.TermFrequencies(tokenize.Terms(doc.Text, e.cfg.Terms)), idf)

	return Report{
		Index:          index,
		Source:         doc.Source,
		Quality:        e.scorer.Score(doc.Text),
		Complexity:     complexity.Score(doc.Text),
		Units:          e.counter.Count(doc.Text),
		Category:       category.Category,
		Confidence:     round.To(category.Confidence, quality.Precision),
		TopTerms:       topTerms(vector, e.cfg.TopTerms),
		DuplicateOf:    -1,
		Nearest:        -1,
		NearDuplicates: []Neighbor{},
		vector:         vector,
	}
}

// linkNearest finds, for every report, the other document with the highest
// cosine similarity. Ties go to the lower index.
func (e *Engine) linkNearest(ctx context.Context, reports []Report) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers(len(reports)))
	for i := range reports {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			best, bestCos := -1, 0.0
			for j := range reports {
				if j == i {
					continue
				}
				if cos := similarity.Cosine(reports[i].vector, reports[j].vector); cos > bestCos {
					best, bestCos = j, cos
				}
			}
			reports[i].Nearest, reports[i].NearestCosine = best, bestCos
			return nil
		})
	}
	return g.Wait()
}

// summarize computes aggregate statistics over the kept reports
func (e *Engine) summarize(all, kept []Report, nearDuplicates int) Summary {
	s := Summary{
		Documents:      len(all),
		Reported:       len(kept),
		NearDuplicates: nearDuplicates,
		Unit:           e.counter.Name(),
	}
	for _, r := range all {
		if r.DuplicateOf >= 0 {
			s.Duplicates++
		}
	}
	if len(kept) == 0 {
		return s
	}

	qualities := make([]float64, len(kept))
	complexities := make([]float64, len(kept))
	for i, r := range kept {
		qualities[i] = r.Quality
		complexities[i] = r.Complexity
		s.TotalUnits += r.Units
	}

	mean, std := stat.MeanStdDev(qualities, nil)
	if math.IsNaN(std) {
		std = 0 // a single sample has no spread
	}
	s.QualityMean = round.To(mean, quality.Precision)
	s.QualityStdDev = round.To(std, quality.Precision)
	s.QualityMin = floats.Min(qualities)
	s.QualityMax = floats.Max(qualities)
	s.ComplexityMean = round.To(stat.Mean(complexities, nil), complexity.Precision)
	return s
}

// topTerms returns the n highest weighted terms, ties broken alphabetically.
// Zero weights are left out.
func topTerms(vector tfidf.Vector, n int) []TermWeight {
	terms := make([]TermWeight, 0, len(vector))
	for term, weight := range vector {
		if weight > 0 {
			terms = append(terms, TermWeight{Term: term, Weight: weight})
		}
	}

	slices.SortFunc(terms, func(a, b TermWeight) int {
		if a.Weight != b.Weight {
			if a.Weight > b.Weight {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Term, b.Term)
	})

	if len(terms) > n {
		terms = terms[:n]
	}
	for i := range terms {
		terms[i].Weight = round.To(terms[i].Weight, similarity.Precision)
	}
	return terms
}

// workers bounds the fan-out width for n units of work
func (e *Engine) workers(n int) int {
	w := e.cfg.Workers
	if w <= 0 {
		w = runtime.GOMAXPROCS(0)
	}
	return max(1, min(w, n))
}
