package tfidf

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"lukechampine.com/blake3"

	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// DefaultCacheSize is the number of corpora a Cache keeps statistics for.
const DefaultCacheSize = 16

// Cache keeps the statistics of recently seen corpora so that repeated requests
// over the same documents skip the document-frequency scan. Corpora are keyed by
// a fingerprint of their content and term options; two corpora with the same
// documents in the same order share an entry.
//
// Cache is safe for concurrent use. Cached statistics are shared and must be
// treated as read-only.
type Cache struct {
	entries *lru.Cache[string, *Statistics]
}

// NewCache creates a cache holding up to size corpora.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, *Statistics](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create statistics cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Build returns the statistics for corpus, computing a miss with BuildStatistics
// across workers goroutines and storing the result. Nothing is stored when ctx
// is cancelled.
func (c *Cache) Build(ctx context.Context, corpus []string, opts tokenize.Options, workers int) (*Statistics, error) {
	key := fingerprint(corpus, opts)
	if stats, ok := c.entries.Get(key); ok {
		slog.Debug("Statistics cache hit", "documents", len(corpus))
		return stats, nil
	}

	stats, err := BuildStatistics(ctx, corpus, opts, workers)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, stats)
	return stats, nil
}

// Len returns the number of cached corpora.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// fingerprint hashes the term options and every document, each prefixed with
// its byte length so that no two corpora share a key
func fingerprint(corpus []string, opts tokenize.Options) string {
	h := blake3.New(32, nil)
	writeLength(h, len(corpus))
	for _, field := range append([]string{opts.Language, opts.Stem}, corpus...) {
		writeLength(h, len(field))
		io.WriteString(h, field)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeLength(w io.Writer, n int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	w.Write(buf[:])
}
