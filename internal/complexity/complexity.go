// Package complexity scores the lexical and structural complexity of a text.
//
// The score is a weighted sum of three normalized components, capped at 1:
//
//	0.4 * distinct words / total words
//	0.3 * average word length / 10
//	0.3 * sentence count / 20
//
// Words keep their casing here, so "Dil" and "dil" are distinct. The score is
// rounded to 3 decimal places.
package complexity

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/chriscorrea/textmetrics/internal/round"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// Precision is the number of decimal places complexity scores are rounded to.
const Precision = 3

// component weights and normalizers
const (
	diversityWeight = 0.4
	lengthWeight    = 0.3
	sentenceWeight  = 0.3

	wordLengthNorm    = 10.0
	sentenceCountNorm = 20.0
)

// Components holds the raw measurements and the resulting score.
type Components struct {
	Words         int     `json:"words"`
	DistinctWords int     `json:"distinct_words"`
	Sentences     int     `json:"sentences"`
	WordDiversity float64 `json:"word_diversity"`
	AvgWordLength float64 `json:"avg_word_length"`
	LengthScore   float64 `json:"length_score"`
	SentenceScore float64 `json:"sentence_score"`
	Score         float64 `json:"score"`
}

// Score returns the complexity score of text in [0,1]. Empty text scores 0.
func Score(text string) float64 {
	return Evaluate(text).Score
}

// Evaluate measures text and computes its complexity score.
func Evaluate(text string) Components {
	if text == "" {
		return Components{}
	}

	var c Components
	words := tokenize.Words(text)
	c.Words = len(words)

	if c.Words > 0 {
		distinct := make(map[string]struct{}, len(words))
		totalLength := 0
		for _, word := range words {
			distinct[word] = struct{}{}
			totalLength += utf8.RuneCountInString(word)
		}
		c.DistinctWords = len(distinct)
		c.WordDiversity = float64(c.DistinctWords) / float64(c.Words)
		c.AvgWordLength = float64(totalLength) / float64(c.Words)
	}

	for _, fragment := range tokenize.Sentences(text) {
		if strings.TrimSpace(fragment) != "" {
			c.Sentences++
		}
	}

	c.LengthScore = c.AvgWordLength / wordLengthNorm
	c.SentenceScore = float64(c.Sentences) / sentenceCountNorm

	complexity := diversityWeight*c.WordDiversity + lengthWeight*c.LengthScore + sentenceWeight*c.SentenceScore
	c.Score = round.To(math.Min(1.0, complexity), Precision)
	return c
}
