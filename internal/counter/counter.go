// Package counter measures document size in units (words, characters or tokens)
// for batch reports.
//
// Word and character counting are pure. Token counting uses tiktoken with the
// cl100k_base encoding, which tiktoken-go fetches and caches on first use
// (see TIKTOKEN_CACHE_DIR), so it is opt-in.
//
// Usage Example:
//
//	c, err := counter.NewCounter(counter.Words)
//	n := c.Count("Merhaba dünya!")
//	// n == 2
package counter

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter defines the interface for different text counting strategies.
type Counter interface {
	// Count returns the number of units (tokens, words, or characters) in given text.
	Count(text string) int

	// Name returns a human-readable name for this counting method (for reports and logging)
	Name() string
}

// CountingMethod represents the different available counting strategies.
type CountingMethod int

const (
	// Words counts whitespace-separated words (default)
	Words CountingMethod = iota
	// Characters counts Unicode code points, whitespace included
	Characters
	// Tokens uses tiktoken with cl100k_base encoding
	Tokens
)

// String returns the string representation of the counting method.
func (cm CountingMethod) String() string {
	switch cm {
	case Tokens:
		return "tokens"
	case Words:
		return "words"
	case Characters:
		return "characters"
	default:
		return "unknown"
	}
}

// NewCounter creates a new Counter for the given method.
// Returns an error if the token encoding cannot be loaded or the method is unknown.
func NewCounter(method CountingMethod) (Counter, error) {
	switch method {
	case Words:
		return WordCounter{}, nil
	case Characters:
		return CharCounter{}, nil
	case Tokens:
		tc, err := NewTokenCounter()
		if err != nil {
			return nil, err
		}
		return tc, nil
	default:
		return nil, fmt.Errorf("unknown counting method %d", int(method))
	}
}

// WordCounter counts words using strings.Fields.
type WordCounter struct{}

// Count returns the number of whitespace-separated words in text.
func (WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// Name returns "words".
func (WordCounter) Name() string {
	return "words"
}

// CharCounter counts Unicode code points, not bytes.
type CharCounter struct{}

// Count returns the number of runes in text.
func (CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

// Name returns "characters".
func (CharCounter) Name() string {
	return "characters"
}

// TokenCounter counts tokens using tiktoken w/ cl100k_base encoding.
// The encoding is read-only after loading, so Count needs no locking.
type TokenCounter struct {
	encoding *tiktoken.Tiktoken
}

// NewTokenCounter loads the cl100k_base encoding.
func NewTokenCounter() (*TokenCounter, error) {
	slog.Debug("Initializing TokenCounter with cl100k_base encoding")

	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cl100k_base encoding: %w", err)
	}

	return &TokenCounter{encoding: encoding}, nil
}

// Count returns the number of tokens in text. It can be called concurrently.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	// nil params mean no special tokens allowed/disallowed
	return len(tc.encoding.Encode(text, nil, nil))
}

// Name returns "tokens".
func (tc *TokenCounter) Name() string {
	return "tokens"
}
