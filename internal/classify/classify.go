// Package classify assigns a topical category to a text by keyword lookup.
//
// Each category owns a short keyword list. A category scores one point for every
// keyword that occurs anywhere in the lowercased text (substring match, so "tarih"
// also matches "tarihi"). The highest-scoring category wins; ties go to the
// category listed first. Texts that match no keyword fall into the general category.
package classify

import (
	"log/slog"
	"strings"

	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// General is the category of texts that match no keyword.
const General = "genel"

// generalConfidence is reported when no keyword matched
const generalConfidence = 0.5

// category pairs a name with the keywords that vote for it
type category struct {
	name     string
	keywords []string
}

// categories are listed in tie-breaking order
// TODO: weight keywords by specificity once labelled samples exist for every category
var categories = []category{
	{"bilim", []string{"bilim", "araştırma", "deney", "hipotez", "teori", "fizik", "kimya"}},
	{"teknoloji", []string{"teknoloji", "yazılım", "donanım", "bilgisayar", "internet", "dijital"}},
	{"edebiyat", []string{"edebiyat", "roman", "şiir", "yazar", "kitap", "eser"}},
	{"kültür", []string{"kültür", "gelenek", "görenek", "folklor", "milli"}},
	{"tarih", []string{"tarih", "geçmiş", "tarihi", "savaş", "imparatorluk", "devlet"}},
	{"coğrafya", []string{"coğrafya", "ülke", "şehir", "iklim", "dağ", "deniz"}},
	{"sanat", []string{"sanat", "resim", "heykel", "müze", "galeri", "sanatçı"}},
	{"spor", []string{"spor", "futbol", "basketbol", "oyuncu", "maç", "takım"}},
	{"ekonomi", []string{"ekonomi", "finans", "para", "bank", "ticaret", "piyasa"}},
	{"eğitim", []string{"eğitim", "okul", "öğrenci", "ders", "sınav", "üniversite"}},
	{"sağlık", []string{"sağlık", "tedavi", "hastalık", "doktor", "ilaç", "hastane"}},
}

// Categories returns every category name, General last.
func Categories() []string {
	names := make([]string, 0, len(categories)+1)
	for _, c := range categories {
		names = append(names, c.name)
	}
	return append(names, General)
}

// Result describes the category chosen for a text.
type Result struct {
	Category   string         `json:"category"`
	Confidence float64        `json:"confidence"`
	Scores     map[string]int `json:"scores"`
}

// Classifier assigns keyword categories to texts.
type Classifier struct {
	// language selects the case folding applied before matching
	language string
}

// NewClassifier creates a classifier that lowercases text with the casing rules
// of lang (empty for Unicode default casing).
func NewClassifier(lang string) *Classifier {
	return &Classifier{language: lang}
}

// Classify scores text against every category.
//
// Confidence is the winning score divided by the number of whitespace-separated
// words, capped at 1.
func (c *Classifier) Classify(text string) Result {
	lowered := tokenize.Lower(text, c.language)

	scores := make(map[string]int, len(categories))
	best, bestScore := "", 0
	for _, cat := range categories {
		score := 0
		for _, keyword := range cat.keywords {
			if strings.Contains(lowered, keyword) {
				score++
			}
		}
		scores[cat.name] = score

		if score > bestScore {
			best, bestScore = cat.name, score
		}
	}

	if bestScore == 0 {
		return Result{Category: General, Confidence: generalConfidence, Scores: scores}
	}

	confidence := 1.0
	if words := len(strings.Fields(text)); words > 0 {
		confidence = min(float64(bestScore)/float64(words), 1.0)
	}

	slog.Debug("Text classified", "category", best, "score", bestScore, "confidence", confidence)
	return Result{Category: best, Confidence: confidence, Scores: scores}
}

// Category returns only the winning category name.
func (c *Classifier) Category(text string) string {
	return c.Classify(text).Category
}
