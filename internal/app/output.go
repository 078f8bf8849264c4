package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteScore writes a single ScoreResult in the given format.
func WriteScore(w io.Writer, r ScoreResult, format OutputFormat) error {
	switch format {
	case JSON:
		return newJSONEncoder(w).Encode(r)
	case CSV:
		return writeCSV(w,
			[]string{"quality", "length", "character", "structure", "punctuation", "complexity", "words", "distinct_words", "sentences", "units", "unit", "category", "confidence"},
			[][]string{{
				formatFloat(r.Quality.Score), formatFloat(r.Quality.Length), formatFloat(r.Quality.Character),
				formatFloat(r.Quality.Structure), formatFloat(r.Quality.Punctuation),
				formatFloat(r.Complexity.Score), strconv.Itoa(r.Complexity.Words),
				strconv.Itoa(r.Complexity.DistinctWords), strconv.Itoa(r.Complexity.Sentences),
				strconv.Itoa(r.Units), r.Unit, r.Category.Category, formatFloat(r.Category.Confidence),
			}})
	default:
		_, err := fmt.Fprintf(w,
			"quality     %.3f (length %.3f, character %.3f, structure %.3f, punctuation %.3f)\n"+
				"complexity  %.3f (words %d, distinct %d, sentences %d)\n"+
				"units       %d %s\n"+
				"category    %s (%.3f)\n",
			r.Quality.Score, r.Quality.Length, r.Quality.Character, r.Quality.Structure, r.Quality.Punctuation,
			r.Complexity.Score, r.Complexity.Words, r.Complexity.DistinctWords, r.Complexity.Sentences,
			r.Units, r.Unit,
			r.Category.Category, r.Category.Confidence)
		return err
	}
}

// WriteAnalysis writes the reports of an analysis. Text output ends with the
// near duplicate pairs and the summary line; JSON and CSV carry one record
// per report, with near duplicates listed on each report of a pair.
func WriteAnalysis(w io.Writer, a *Analysis, format OutputFormat) error {
	switch format {
	case JSON:
		enc := newJSONEncoder(w)
		for _, r := range a.Reports {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case CSV:
		rows := make([][]string, len(a.Reports))
		for i, r := range a.Reports {
			rows[i] = []string{
				strconv.Itoa(r.Index), r.Source, formatFloat(r.Quality), formatFloat(r.Complexity),
				strconv.Itoa(r.Units), r.Category, formatFloat(r.Confidence), joinTerms(r.TopTerms),
				strconv.Itoa(r.DuplicateOf), strconv.Itoa(r.Nearest), formatFloat(r.NearestCosine),
				joinNeighbors(r.NearDuplicates),
			}
		}
		return writeCSV(w,
			[]string{"index", "source", "quality", "complexity", "units", "category", "confidence", "top_terms", "duplicate_of", "nearest", "nearest_cosine", "near_duplicates"},
			rows)
	default:
		for _, r := range a.Reports {
			line := fmt.Sprintf("[%d] %s quality=%.3f complexity=%.3f %s=%d category=%s(%.3f)",
				r.Index, r.Source, r.Quality, r.Complexity, a.Summary.Unit, r.Units, r.Category, r.Confidence)
			if r.Nearest >= 0 {
				line += fmt.Sprintf(" nearest=%d(%.4f)", r.Nearest, r.NearestCosine)
			}
			if r.DuplicateOf >= 0 {
				line += fmt.Sprintf(" duplicate-of=%d", r.DuplicateOf)
			}
			if len(r.TopTerms) > 0 {
				line += " terms=" + joinTerms(r.TopTerms)
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		for _, p := range a.Similar {
			if _, err := fmt.Fprintf(w, "near-duplicate %d ~ %d (%.4f)\n", p.I, p.J, p.Similarity); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, FormatSummary(a.Summary))
		return err
	}
}

// FormatSummary renders the one-line batch summary.
func FormatSummary(s Summary) string {
	return fmt.Sprintf("documents=%d reported=%d duplicates=%d near-duplicates=%d %s=%d quality mean=%.3f sd=%.3f min=%.3f max=%.3f complexity mean=%.3f",
		s.Documents, s.Reported, s.Duplicates, s.NearDuplicates, s.Unit, s.TotalUnits,
		s.QualityMean, s.QualityStdDev, s.QualityMin, s.QualityMax, s.ComplexityMean)
}

// WriteComparison writes the similarity of two documents.
func WriteComparison(w io.Writer, c Comparison, format OutputFormat) error {
	switch format {
	case JSON:
		return newJSONEncoder(w).Encode(c)
	case CSV:
		return writeCSV(w,
			[]string{"a", "b", "weighting", "cosine", "jaccard"},
			[][]string{{c.A, c.B, c.Weighting, formatFloat(c.Cosine), formatFloat(c.Jaccard)}})
	default:
		_, err := fmt.Fprintf(w, "cosine (%s)  %.4f\njaccard       %.4f\n", c.Weighting, c.Cosine, c.Jaccard)
		return err
	}
}

// WriteSearchResults writes ranked passages, best first.
func WriteSearchResults(w io.Writer, results []PassageScore, format OutputFormat) error {
	switch format {
	case JSON:
		enc := newJSONEncoder(w)
		for _, r := range results {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	case CSV:
		rows := make([][]string, len(results))
		for i, r := range results {
			rows[i] = []string{strconv.Itoa(i + 1), r.Source, strconv.Itoa(r.Passage), formatFloat(r.Score), r.Text}
		}
		return writeCSV(w, []string{"rank", "source", "passage", "score", "text"}, rows)
	default:
		for i, r := range results {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%d. %s #%d (%.4f)\n%s\n", i+1, r.Source, r.Passage, r.Score, r.Text); err != nil {
				return err
			}
		}
		return nil
	}
}

// WriteDocuments writes documents as-is, separated by blank lines in text output.
func WriteDocuments(w io.Writer, docs []Document, format OutputFormat) error {
	switch format {
	case JSON:
		enc := newJSONEncoder(w)
		for _, d := range docs {
			if err := enc.Encode(d); err != nil {
				return err
			}
		}
		return nil
	case CSV:
		rows := make([][]string, len(docs))
		for i, d := range docs {
			rows[i] = []string{d.Source, d.Text}
		}
		return writeCSV(w, []string{"source", "text"}, rows)
	default:
		texts := make([]string, len(docs))
		for i, d := range docs {
			texts[i] = d.Text
		}
		_, err := fmt.Fprintln(w, strings.Join(texts, "\n\n"))
		return err
	}
}

// newJSONEncoder writes one JSON value per line, leaving <, > and & unescaped
func newJSONEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}

// joinTerms renders "term:weight" pairs separated by semicolons
func joinTerms(terms []TermWeight) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.Term + ":" + formatFloat(t.Weight)
	}
	return strings.Join(parts, ";")
}

// joinNeighbors renders "index:similarity" pairs separated by semicolons
func joinNeighbors(neighbors []Neighbor) string {
	parts := make([]string, len(neighbors))
	for i, n := range neighbors {
		parts[i] = strconv.Itoa(n.Index) + ":" + formatFloat(n.Similarity)
	}
	return strings.Join(parts, ";")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
