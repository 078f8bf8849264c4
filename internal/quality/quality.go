// Package quality scores how well-formed a text is as prose.
//
// The quality score is the unweighted mean of four sub-scores, each in [0,1]:
//   - Length: peaks at 1000 characters and degrades toward very short or very long text
//   - Character: character variety, with a bonus when the text uses letters of the
//     target alphabet
//   - Structure: average sentence length, best between 50 and 150 characters
//   - Punctuation: share of whitespace-separated words carrying punctuation
//
// Lengths are measured in Unicode code points of the trimmed text. The final score
// is rounded to 3 decimal places.
package quality

import (
	"log/slog"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/chriscorrea/textmetrics/internal/round"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// Precision is the number of decimal places quality scores are rounded to.
const Precision = 3

// DefaultBonusAlphabet holds the Turkish letters that earn the character bonus.
// ASCII 'I' is part of the set; removing it would change the scores of existing corpora.
const DefaultBonusAlphabet = "çğıöşüÇĞIİÖŞÜ"

const (
	punctuationMarks  = ".,;:!?"
	minSentenceLength = 10  // fragments this short or shorter are not sentences
	neutralPunctScore = 0.5 // punctuation score when there are no words to judge
)

// Breakdown reports the sub-scores behind a quality score.
// Sub-scores are unrounded; Score is the rounded mean.
type Breakdown struct {
	Length      float64 `json:"length"`
	Character   float64 `json:"character"`
	Structure   float64 `json:"structure"`
	Punctuation float64 `json:"punctuation"`
	Score       float64 `json:"score"`
}

// Scorer computes quality scores with a configurable bonus alphabet.
// The zero value has no bonus letters; use NewScorer or Default.
type Scorer struct {
	bonus map[rune]struct{}
}

// Default is the scorer used by Score and Evaluate.
var Default = NewScorer(DefaultBonusAlphabet)

// NewScorer creates a scorer whose character bonus applies to the runes of alphabet.
func NewScorer(alphabet string) *Scorer {
	bonus := make(map[rune]struct{}, utf8.RuneCountInString(alphabet))
	for _, r := range alphabet {
		bonus[r] = struct{}{}
	}
	return &Scorer{bonus: bonus}
}

// Score returns the quality score of text using the default bonus alphabet.
func Score(text string) float64 {
	return Default.Score(text)
}

// Evaluate returns the quality breakdown of text using the default bonus alphabet.
func Evaluate(text string) Breakdown {
	return Default.Evaluate(text)
}

// Score returns the quality score of text in [0,1]. Blank text scores 0.
func (s *Scorer) Score(text string) float64 {
	return s.Evaluate(text).Score
}

// Evaluate computes every sub-score of text. Blank text yields a zero Breakdown.
func (s *Scorer) Evaluate(text string) Breakdown {
	text = strings.TrimSpace(text)
	if text == "" {
		return Breakdown{}
	}

	length := utf8.RuneCountInString(text)
	b := Breakdown{
		Length:      lengthQuality(length),
		Character:   s.characterQuality(text, length),
		Structure:   structureQuality(text),
		Punctuation: punctuationQuality(text),
	}
	b.Score = round.To((b.Length+b.Character+b.Structure+b.Punctuation)/4.0, Precision)

	slog.Debug("Quality evaluated", "length", length, "lq", b.Length, "cq", b.Character, "sq", b.Structure, "pq", b.Punctuation, "score", b.Score)
	return b
}

// lengthQuality rewards texts near 1000 characters
func lengthQuality(length int) float64 {
	l := float64(length)
	switch {
	case length < 50:
		return l / 50.0 * 0.5
	case length <= 2000:
		return 0.5 + 0.5*(1-math.Abs(l-1000)/1000)
	default:
		return math.Max(0.5, 1.0-(l-2000)/10000.0)
	}
}

// characterQuality combines character variety with the alphabet bonus
func (s *Scorer) characterQuality(text string, length int) float64 {
	distinct := make(map[rune]struct{})
	hasBonus := false
	for _, r := range text {
		distinct[r] = struct{}{}
		if _, ok := s.bonus[r]; ok {
			hasBonus = true
		}
	}

	variety := float64(len(distinct)) / float64(length)
	cq := variety * 0.7
	if hasBonus {
		cq += 0.3
	}
	return math.Min(1.0, cq)
}

// structureQuality rewards average sentence lengths between 50 and 150 characters.
// Fragments qualify by trimmed length but are averaged by raw length.
func structureQuality(text string) float64 {
	totalLength, count := 0, 0
	for _, fragment := range tokenize.Sentences(text) {
		if utf8.RuneCountInString(strings.TrimSpace(fragment)) > minSentenceLength {
			totalLength += utf8.RuneCountInString(fragment)
			count++
		}
	}

	avg := 0.0
	if count > 0 {
		avg = float64(totalLength) / float64(count)
	}

	switch {
	case avg >= 50 && avg <= 150:
		return 1.0
	case avg < 50:
		return avg / 50.0
	default:
		return math.Max(0.3, 1.0-(avg-150)/500.0)
	}
}

// punctuationQuality scores the share of words carrying punctuation, saturating at one half
func punctuationQuality(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return neutralPunctScore
	}

	withPunct := 0
	for _, word := range words {
		if strings.ContainsAny(word, punctuationMarks) {
			withPunct++
		}
	}
	return math.Min(1.0, 2*(float64(withPunct)/float64(len(words))))
}
