// Package dedup finds exact and near duplicate documents.
//
// Exact duplicates share a content fingerprint: the blake3 hash of the text
// after lowercasing, trimming and collapsing whitespace runs to one space.
// Near duplicates are pairs whose term-set Jaccard similarity reaches a
// threshold.
package dedup

import (
	"encoding/hex"
	"strings"
	"sync"

	"lukechampine.com/blake3"

	"github.com/chriscorrea/textmetrics/internal/similarity"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// DefaultThreshold is the Jaccard similarity at which two texts are near duplicates.
const DefaultThreshold = 0.8

// Fingerprint returns the hex content fingerprint of text. lang selects the
// lowercasing rules as in tokenize.Lower.
func Fingerprint(text, lang string) string {
	normalized := strings.Join(strings.Fields(tokenize.Lower(text, lang)), " ")
	sum := blake3.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// Deduplicator remembers the fingerprints it has seen. It is safe for
// concurrent use.
type Deduplicator struct {
	language string

	mu   sync.Mutex
	seen map[string]int
}

// New creates an empty Deduplicator using lang for lowercasing.
func New(lang string) *Deduplicator {
	return &Deduplicator{language: lang, seen: make(map[string]int)}
}

// IsDuplicate reports whether an equivalent text was seen before and records
// text otherwise.
func (d *Deduplicator) IsDuplicate(text string) bool {
	_, dup := d.check(text, -1)
	return dup
}

// check returns the index recorded for the first equivalent text, recording
// index for text when it is new. A negative index records the text under
// its arrival order.
func (d *Deduplicator) check(text string, index int) (int, bool) {
	key := Fingerprint(text, d.language)

	d.mu.Lock()
	defer d.mu.Unlock()
	if first, ok := d.seen[key]; ok {
		return first, true
	}
	if index < 0 {
		index = len(d.seen)
	}
	d.seen[key] = index
	return index, false
}

// Reset forgets every recorded fingerprint.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	clear(d.seen)
}

// Originals maps every text to the index of its first occurrence in texts;
// unique texts map to themselves. Previously recorded fingerprints are
// forgotten first.
func (d *Deduplicator) Originals(texts []string) []int {
	d.Reset()
	originals := make([]int, len(texts))
	for i, text := range texts {
		originals[i], _ = d.check(text, i)
	}
	return originals
}

// Pair is a pair of near duplicate texts, I < J.
type Pair struct {
	I          int     `json:"i"`
	J          int     `json:"j"`
	Similarity float64 `json:"similarity"`
}

// FindSimilar returns every pair of texts whose Jaccard similarity is at
// least threshold, ordered by I then J.
func FindSimilar(texts []string, threshold float64, opts tokenize.Options) []Pair {
	sets := make([]map[string]struct{}, len(texts))
	for i, text := range texts {
		sets[i] = tokenize.TermSet(text, opts)
	}

	pairs := []Pair{}
	for i := range sets {
		for j := i + 1; j < len(sets); j++ {
			if sim := similarity.JaccardSets(sets[i], sets[j]); sim >= threshold {
				pairs = append(pairs, Pair{I: i, J: j, Similarity: sim})
			}
		}
	}
	return pairs
}
