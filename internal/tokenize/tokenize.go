// Package tokenize extracts word tokens and sentence fragments from text.
//
// Word tokens are maximal runs of Unicode letters, Unicode numbers and underscores.
// Terms are word tokens taken from the lowercased text and are the unit of every
// frequency and set statistic; Words keeps the original casing for structural
// measurements such as lexical diversity.
//
// Usage Example:
//
//	terms := tokenize.Terms("IŞIK ve Işık", tokenize.Options{})
//	// ["işik", "ve", "işık"] with Unicode default casing
//	terms = tokenize.Terms("IŞIK ve Işık", tokenize.Options{Language: "tr"})
//	// ["ışık", "ve", "ışık"]
//
// Capital sigma lowers to final ς at the end of a word and to σ elsewhere, so
// "ΟΔΟΣ" and "οδοσ" are different terms. The word-end test follows
// golang.org/x/text word boundaries and gives up after a long run of
// case-ignorable characters; other case-folding implementations may place ς
// differently in such contexts.
//
// All functions are pure and safe for concurrent use.
package tokenize

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/kljensen/snowball"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// wordRegex matches what a Unicode-aware \w+ matches: letters, numbers and underscore
	wordRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	// sentenceRegex splits on runs of sentence-terminal punctuation
	sentenceRegex = regexp.MustCompile(`[.!?]+`)
)

// Options adjusts how terms are derived from text.
// The zero value lowercases with Unicode default casing and does not stem.
type Options struct {
	// Language is a BCP 47 tag used for case folding ("tr" folds I to ı and İ to i).
	Language string
	// Stem names a snowball stemmer language ("english", "spanish", ...); empty disables stemming.
	Stem string
}

// Validate reports whether the options name a known language tag and stemmer.
func (o Options) Validate() error {
	if o.Language != "" {
		if _, err := language.Parse(o.Language); err != nil {
			return fmt.Errorf("invalid language tag %q: %w", o.Language, err)
		}
	}
	if o.Stem != "" {
		if _, err := snowball.Stem("test", o.Stem, true); err != nil {
			return fmt.Errorf("unsupported stemmer language %q: %w", o.Stem, err)
		}
	}
	return nil
}

// Words returns the word tokens of text in their original casing.
func Words(text string) []string {
	if text == "" {
		return []string{}
	}
	words := wordRegex.FindAllString(text, -1)
	if words == nil {
		return []string{}
	}
	return words
}

// Terms lowercases text and returns its word tokens, stemmed when opts.Stem is set.
// Lowercasing happens before tokenization, so a casing that produces combining
// marks (İ becomes i plus U+0307 under default casing) splits the token there.
func Terms(text string, opts Options) []string {
	if text == "" {
		return []string{}
	}

	terms := Words(Lower(text, opts.Language))
	if opts.Stem == "" {
		return terms
	}

	for i, term := range terms {
		stemmed, err := snowball.Stem(term, opts.Stem, true)
		if err != nil {
			// keep the surface form when the stemmer refuses the language
			slog.Debug("Stemming failed", "term", term, "language", opts.Stem, "error", err)
			continue
		}
		terms[i] = stemmed
	}
	return terms
}

// TermSet returns the distinct terms of text.
func TermSet(text string, opts Options) map[string]struct{} {
	terms := Terms(text, opts)
	set := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		set[term] = struct{}{}
	}
	return set
}

// Lower case-folds text using the casing rules of the given language tag.
// An empty or unparseable tag falls back to Unicode default casing.
func Lower(text, lang string) string {
	tag := language.Und
	if lang != "" {
		if parsed, err := language.Parse(lang); err == nil {
			tag = parsed
		}
	}
	// a Caser keeps state between calls and must not be shared across goroutines
	return cases.Lower(tag).String(text)
}

// Sentences splits text on runs of '.', '!' and '?'.
// Every fragment is returned, including blank leading and trailing ones;
// callers decide which fragments count as sentences.
func Sentences(text string) []string {
	return sentenceRegex.Split(text, -1)
}
