package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chriscorrea/textmetrics/internal/dedup"
	"github.com/chriscorrea/textmetrics/internal/extract"
	"github.com/chriscorrea/textmetrics/internal/fetch"
)

// Clean reads every configured source and returns its cleaned and normalized
// text, or Markdown converted from HTML when Markdown is set. Sources that fail
// or repeat an earlier cleaned text are reported on stderr (unless quiet) and
// skipped.
func (e *Engine) Clean(ctx context.Context) ([]Document, error) {
	if len(e.cfg.Sources) == 0 {
		return nil, fmt.Errorf("no sources provided")
	}

	seen := dedup.New(e.cfg.Terms.Language)
	var docs []Document
	for _, source := range e.cfg.Sources {
		text, err := e.cleanSource(ctx, source)
		if err != nil {
			e.warn("failed to clean source %q: %v", source, err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			e.warn("nothing left in source %q after cleaning", source)
			continue
		}
		if seen.IsDuplicate(text) {
			e.warn("source %q duplicates an earlier source", source)
			continue
		}
		docs = append(docs, Document{Source: source, Text: text})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no content left after cleaning")
	}
	return docs, nil
}

func (e *Engine) cleanSource(ctx context.Context, source string) (string, error) {
	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	switch {
	case e.cfg.Markdown:
		return extract.ToMarkdown(reader, e.cfg.Selector, e.cfg.IncludeAll)
	case e.cfg.HTML:
		text, err := extract.ToText(reader, e.cfg.Selector, e.cfg.IncludeAll)
		if err != nil {
			return "", err
		}
		return extract.Normalize(extract.CleanText(text)), nil
	default:
		data, err := io.ReadAll(reader)
		if err != nil {
			return "", fmt.Errorf("failed to read content: %w", err)
		}
		return extract.Normalize(extract.CleanText(string(data))), nil
	}
}
