// Package chunk splits long documents into passages for ranking.
//
// Splitting descends through boundaries from the largest semantic unit to
// the smallest:
//  1. Paragraph boundaries (blank lines)
//  2. Sentence boundaries (runs of '.', '!' or '?' followed by space)
//  3. Line boundaries
//  4. Word boundaries
//
// At each level adjacent segments are packed back together while they fit,
// so passages stay as large as the limit allows. Sizes are counted in runes.
//
// Usage Example:
//
//	passages := chunk.SplitPassages(content, 400)
package chunk

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"
)

// splitStrategy defines a method for breaking up text.
type splitStrategy struct {
	name   string
	split  func(string) []string
	joiner string
}

var (
	paragraphBoundary = regexp.MustCompile(`\n[ \t]*\n`)
	sentenceBoundary  = regexp.MustCompile(`[.!?]+\s+`)
)

// strategies are ordered from largest semantic unit to smallest
var strategies = []splitStrategy{
	{name: "paragraph", split: splitParagraphs, joiner: "\n\n"},
	{name: "sentence", split: splitSentences, joiner: " "},
	{name: "line", split: splitLines, joiner: "\n"},
	{name: "word", split: strings.Fields, joiner: " "},
}

// SplitPassages breaks text into passages of at most maxRunes runes, keeping
// document order. A single word longer than maxRunes becomes its own passage.
func SplitPassages(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		slog.Debug("Invalid passage size", "maxRunes", maxRunes)
		return []string{}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	passages := splitLevel(text, 0, maxRunes)
	slog.Debug("SplitPassages completed", "textLength", utf8.RuneCountInString(text), "passages", len(passages))
	return passages
}

// splitLevel applies strategies[level] to an oversized text and recurses into
// any packed passage that is still too large.
func splitLevel(text string, level, maxRunes int) []string {
	if utf8.RuneCountInString(text) <= maxRunes || level == len(strategies) {
		return []string{text}
	}

	strategy := strategies[level]
	segments := strategy.split(text)
	if len(segments) <= 1 {
		return splitLevel(text, level+1, maxRunes)
	}
	slog.Debug("Splitting oversized text", "strategy", strategy.name, "segments", len(segments))

	var passages []string
	for _, packed := range packSegments(segments, strategy.joiner, maxRunes) {
		passages = append(passages, splitLevel(packed, level+1, maxRunes)...)
	}
	return passages
}

// packSegments combines adjacent segments while the joined result fits.
func packSegments(segments []string, joiner string, maxRunes int) []string {
	var result []string
	var current strings.Builder
	currentRunes := 0
	joinerRunes := utf8.RuneCountInString(joiner)

	for _, segment := range segments {
		segmentRunes := utf8.RuneCountInString(segment)
		if currentRunes > 0 && currentRunes+joinerRunes+segmentRunes > maxRunes {
			result = append(result, current.String())
			current.Reset()
			currentRunes = 0
		}
		if currentRunes > 0 {
			current.WriteString(joiner)
			currentRunes += joinerRunes
		}
		current.WriteString(segment)
		currentRunes += segmentRunes
	}

	if currentRunes > 0 {
		result = append(result, current.String())
	}
	return result
}

func splitParagraphs(text string) []string {
	return nonBlank(paragraphBoundary.Split(text, -1))
}

// splitSentences cuts after each terminator run, keeping the punctuation
func splitSentences(text string) []string {
	var parts []string
	start := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		parts = append(parts, text[start:loc[1]])
		start = loc[1]
	}
	parts = append(parts, text[start:])
	return nonBlank(parts)
}

func splitLines(text string) []string {
	return nonBlank(strings.Split(text, "\n"))
}

// nonBlank trims every part and drops the empty ones
func nonBlank(parts []string) []string {
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
