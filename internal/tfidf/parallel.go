package tfidf

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// BuildStatistics counts document frequencies like NewStatistics, splitting the
// corpus into contiguous shards that are counted concurrently and merged once
// every shard is done. workers <= 0 uses GOMAXPROCS.
//
// The only error returned is the context's, when it is cancelled mid-build.
func BuildStatistics(ctx context.Context, corpus []string, opts tokenize.Options, workers int) (*Statistics, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(corpus) {
		workers = len(corpus)
	}
	if workers <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return NewStatistics(corpus, opts), nil
	}

	shardSize := (len(corpus) + workers - 1) / workers
	partials := make([]*Statistics, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * shardSize
		end := min(start+shardSize, len(corpus))
		if start >= end {
			partials[w] = &Statistics{DocFrequencies: map[string]int{}}
			continue
		}

		g.Go(func() error {
			partial := &Statistics{NumDocs: end - start, DocFrequencies: make(map[string]int)}
			for _, doc := range corpus[start:end] {
				if err := ctx.Err(); err != nil {
					return err
				}
				partial.addDocument(doc, opts)
			}
			partials[w] = partial
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Statistics{DocFrequencies: make(map[string]int)}
	for _, partial := range partials {
		stats.merge(partial)
	}

	slog.Debug("Corpus statistics built in parallel", "documents", stats.NumDocs, "terms", len(stats.DocFrequencies), "workers", workers)
	return stats, nil
}
