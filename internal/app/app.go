// Package app contains the core application logic for the textmetrics CLI tool.
// It handles loading documents, the batch scoring pipeline and report output,
// separated from CLI concerns.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chriscorrea/textmetrics/internal/classify"
	"github.com/chriscorrea/textmetrics/internal/counter"
	"github.com/chriscorrea/textmetrics/internal/dedup"
	"github.com/chriscorrea/textmetrics/internal/extract"
	"github.com/chriscorrea/textmetrics/internal/fetch"
	"github.com/chriscorrea/textmetrics/internal/quality"
	"github.com/chriscorrea/textmetrics/internal/tfidf"
	"github.com/chriscorrea/textmetrics/internal/tokenize"
)

// OutputFormat defines the output format for results
type OutputFormat int

const (
	// plaintext output format (default)
	Text OutputFormat = iota
	// JSON lines output format
	JSON
	// CSV output format
	CSV
)

// String returns the string representation of the output
func (f OutputFormat) String() string {
	switch f {
	case Text:
		return "Text"
	case JSON:
		return "JSON"
	case CSV:
		return "CSV"
	default:
		return "Unknown"
	}
}

// defaults applied by NewEngine to zero-valued Config fields
const (
	DefaultTopTerms     = 5
	DefaultPassageRunes = 400
	DefaultLimit        = 10
)

// Config holds all configuration options for the textmetrics application.
type Config struct {
	Sources        []string               // file paths or "-" for stdin
	Selector       string                 // CSS selector for HTML extraction
	HTML           bool                   // extract text from HTML sources before scoring
	IncludeAll     bool                   // skip readability extraction for HTML sources
	Lines          bool                   // treat every non-blank line as its own document
	CountingMethod counter.CountingMethod // unit for document sizes
	OutputFormat   OutputFormat           // output format (text/json/csv)
	Terms          tokenize.Options       // casing language and stemmer for term statistics
	BonusAlphabet  string                 // letters earning the quality character bonus
	Workers        int                    // goroutines for the batch pipeline (<= 0: GOMAXPROCS)
	TopTerms       int                    // TF-IDF terms listed per report
	MinQuality     float64                // reports below this quality are dropped
	Threshold      *float64               // Jaccard similarity for near duplicates; nil uses dedup.DefaultThreshold
	Query          string                 // search query
	Method         SearchMethod           // search ranking method
	PassageRunes   int                    // maximum passage size for search
	Limit          int                    // maximum number of search results
	Corpus         []string               // compare: sources providing IDF statistics
	Markdown       bool                   // clean: emit Markdown instead of cleaned text
	Quiet          bool                   // suppress warnings and progress
	Debug          bool
}

// Document is a loaded text together with where it came from.
type Document struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Engine runs the textmetrics operations for one configuration. Statistics
// of previously seen corpora are cached, so an Engine should be reused for
// repeated requests.
type Engine struct {
	cfg        Config
	cache      *tfidf.Cache
	scorer     *quality.Scorer
	classifier *classify.Classifier
	counter    counter.Counter
}

// NewEngine validates cfg, fills in defaults and prepares the scorers.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Terms.Validate(); err != nil {
		return nil, err
	}
	if cfg.MinQuality < 0 || cfg.MinQuality > 1 {
		return nil, fmt.Errorf("minimum quality %v is outside [0, 1]", cfg.MinQuality)
	}
	if cfg.Threshold == nil {
		threshold := dedup.DefaultThreshold
		cfg.Threshold = &threshold
	}
	if *cfg.Threshold < 0 || *cfg.Threshold > 1 {
		return nil, fmt.Errorf("similarity threshold %v is outside [0, 1]", *cfg.Threshold)
	}

	if cfg.TopTerms <= 0 {
		cfg.TopTerms = DefaultTopTerms
	}
	if cfg.PassageRunes <= 0 {
		cfg.PassageRunes = DefaultPassageRunes
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.BonusAlphabet == "" {
		cfg.BonusAlphabet = quality.DefaultBonusAlphabet
	}

	textCounter, err := counter.NewCounter(cfg.CountingMethod)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", cfg.CountingMethod, err)
	}

	cache, err := tfidf.NewCache(tfidf.DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	return &Engine{
		cfg:        cfg,
		cache:      cache,
		scorer:     quality.NewScorer(cfg.BonusAlphabet),
		classifier: classify.NewClassifier(cfg.Terms.Language),
		counter:    textCounter,
	}, nil
}

// Config returns the effective configuration, defaults included.
func (e *Engine) Config() Config {
	return e.cfg
}

// Load reads every configured source. Sources that fail are reported on
// stderr (unless quiet) and skipped; an error is returned only when nothing
// could be loaded.
func (e *Engine) Load(ctx context.Context) ([]Document, error) {
	return e.LoadSources(ctx, e.cfg.Sources)
}

// LoadSources is Load for an explicit list of sources.
func (e *Engine) LoadSources(ctx context.Context, sources []string) ([]Document, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources provided")
	}

	var docs []Document
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		loaded, err := e.loadSource(ctx, source)
		if err != nil {
			e.warn("failed to process source %q: %v", source, err)
			continue
		}
		if len(loaded) == 0 {
			e.warn("source %q is empty", source)
			continue
		}
		docs = append(docs, loaded...)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no content loaded from any source")
	}

	slog.Debug("Documents loaded", "sources", len(sources), "documents", len(docs))
	return docs, nil
}

// loadSource reads one source as a single document, or as one document per
// non-blank line when Lines is set
func (e *Engine) loadSource(ctx context.Context, source string) ([]Document, error) {
	if e.cfg.Lines && !e.cfg.HTML {
		lines, err := fetch.ReadLines(ctx, source)
		if err != nil {
			return nil, err
		}
		docs := make([]Document, len(lines))
		for i, line := range lines {
			docs[i] = Document{Source: fmt.Sprintf("%s:%d", source, line.Number), Text: line.Text}
		}
		return docs, nil
	}

	text, err := e.readSource(ctx, source)
	if err != nil {
		return nil, err
	}

	if !e.cfg.Lines {
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		return []Document{{Source: source, Text: text}}, nil
	}

	// extracted HTML already has one block per line
	var docs []Document
	for i, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			docs = append(docs, Document{Source: fmt.Sprintf("%s:%d", source, i+1), Text: line})
		}
	}
	return docs, nil
}

// readSource fetches one source, extracting text first when it is HTML
func (e *Engine) readSource(ctx context.Context, source string) (string, error) {
	reader, err := fetch.GetContent(ctx, source)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	if e.cfg.HTML {
		text, err := extract.ToText(reader, e.cfg.Selector, e.cfg.IncludeAll)
		if err != nil {
			return "", fmt.Errorf("failed to extract content: %w", err)
		}
		return text, nil
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return string(data), nil
}

// warn prints a warning on stderr unless quiet
func (e *Engine) warn(format string, args ...any) {
	if !e.cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
	}
}
