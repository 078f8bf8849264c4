package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/chriscorrea/textmetrics/internal/app"
	"github.com/chriscorrea/textmetrics/internal/counter"
	"github.com/chriscorrea/textmetrics/internal/dedup"
	"github.com/chriscorrea/textmetrics/internal/fetch"
	"github.com/chriscorrea/textmetrics/internal/tokenize"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags and arguments.
// Flags a subcommand does not define read as their zero value.
func buildConfig(cmd *cobra.Command, args []string) (app.Config, error) {
	flags := cmd.Flags()

	textFlag, _ := flags.GetBool("text")
	jsonFlag, _ := flags.GetBool("json")
	csvFlag, _ := flags.GetBool("csv")
	tokensFlag, _ := flags.GetBool("tokens")
	charactersFlag, _ := flags.GetBool("characters")
	lang, _ := flags.GetString("lang")
	stem, _ := flags.GetString("stem")
	workers, _ := flags.GetInt("workers")
	quiet, _ := flags.GetBool("quiet")
	debug, _ := flags.GetBool("debug")

	selector, _ := flags.GetString("selector")
	htmlFlag, _ := flags.GetBool("html")
	includeAll, _ := flags.GetBool("include-all")
	lines, _ := flags.GetBool("lines")
	bonusAlphabet, _ := flags.GetString("bonus-alphabet")
	topTerms, _ := flags.GetInt("top-terms")
	minQuality, _ := flags.GetFloat64("min-quality")
	query, _ := flags.GetString("query")
	methodName, _ := flags.GetString("method")
	passageSize, _ := flags.GetInt("passage-size")
	limit, _ := flags.GetInt("limit")
	corpus, _ := flags.GetStringSlice("corpus")
	mdFlag, _ := flags.GetBool("md")

	// determine output format
	var outputFormat app.OutputFormat
	switch {
	case jsonFlag:
		outputFormat = app.JSON
	case csvFlag:
		outputFormat = app.CSV
	case textFlag:
		outputFormat = app.Text
	default:
		outputFormat = app.Text // default if no format flag
	}

	// determine counting method; words unless another unit is requested
	countingMethod := counter.Words
	switch {
	case tokensFlag:
		countingMethod = counter.Tokens
	case charactersFlag:
		countingMethod = counter.Characters
	}

	method, err := app.ParseSearchMethod(methodName)
	if err != nil {
		return app.Config{}, err
	}

	// positional arguments are sources; none means stdin
	sources := args
	if len(sources) == 0 {
		sources = []string{fetch.Stdin}
	}

	cfg := app.Config{
		Sources:        sources,
		Selector:       selector,
		HTML:           htmlFlag || selector != "",
		IncludeAll:     includeAll,
		Lines:          lines,
		CountingMethod: countingMethod,
		OutputFormat:   outputFormat,
		Terms:          tokenize.Options{Language: lang, Stem: stem},
		BonusAlphabet:  bonusAlphabet,
		Workers:        workers,
		TopTerms:       topTerms,
		MinQuality:     minQuality,
		Query:          query,
		Method:         method,
		PassageRunes:   passageSize,
		Limit:          limit,
		Corpus:         corpus,
		Markdown:       mdFlag,
		Quiet:          quiet,
		Debug:          debug,
	}

	// only analyze defines --threshold; 0 is a valid value there
	if flags.Lookup("threshold") != nil {
		threshold, _ := flags.GetFloat64("threshold")
		cfg.Threshold = &threshold
	}

	return cfg, nil
}

// setupLogger configures the default slog logger based on debug mode
func setupLogger(debug bool) {
	var level slog.Level
	if debug {
		level = slog.LevelDebug
	} else {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// runWith builds the config and engine shared by every subcommand and hands
// them to run with a context cancelled on interrupt.
func runWith(run func(ctx context.Context, engine *app.Engine, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd, args)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(config.Debug)

		engine, err := app.NewEngine(config)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return run(ctx, engine, args)
	}
}

var rootCmd = &cobra.Command{
	Use:   "textmetrics",
	Short: "A CLI tool for text quality, complexity and similarity metrics",
	Long: `Textmetrics scores texts for quality and complexity, weighs their terms with TF-IDF, and compares, searches and deduplicates document collections. Sources may be local files or standard input.

Examples:
  textmetrics score "Bu bir örnek metindir."
  textmetrics analyze --lines corpus.txt --json
  textmetrics compare a.txt b.txt --corpus corpus.txt --lines
  textmetrics search --query "doğal dil" notes/*.md
  cat page.html | textmetrics clean --html`,
	SilenceUsage: true,
}

var scoreCmd = &cobra.Command{
	Use:   "score [text...]",
	Short: "Score one text for quality and complexity",
	RunE: runWith(func(ctx context.Context, engine *app.Engine, args []string) error {
		text := strings.Join(args, " ")
		if len(args) == 0 {
			var err error
			if text, err = fetch.ReadText(ctx, fetch.Stdin); err != nil {
				return err
			}
		}
		return app.WriteScore(os.Stdout, engine.Score(text), engine.Config().OutputFormat)
	}),
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [sources...]",
	Short: "Score, weigh and deduplicate a batch of documents",
	RunE: runWith(func(ctx context.Context, engine *app.Engine, _ []string) error {
		docs, err := engine.Load(ctx)
		if err != nil {
			return err
		}

		analysis, err := engine.Analyze(ctx, docs)
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}

		cfg := engine.Config()
		if err := app.WriteAnalysis(os.Stdout, analysis, cfg.OutputFormat); err != nil {
			return err
		}
		// structured output stays machine readable; the summary goes to stderr
		if cfg.OutputFormat != app.Text && !cfg.Quiet {
			fmt.Fprintln(os.Stderr, app.FormatSummary(analysis.Summary))
		}
		return nil
	}),
}

var compareCmd = &cobra.Command{
	Use:   "compare <a> <b>",
	Short: "Compare two documents with cosine and Jaccard similarity",
	Args:  cobra.ExactArgs(2),
	RunE: runWith(func(ctx context.Context, engine *app.Engine, args []string) error {
		docs := make([]app.Document, len(args))
		for i, source := range args {
			text, err := fetch.ReadText(ctx, source)
			if err != nil {
				return err
			}
			docs[i] = app.Document{Source: source, Text: text}
		}

		var corpus []app.Document
		if sources := engine.Config().Corpus; len(sources) > 0 {
			var err error
			if corpus, err = engine.LoadSources(ctx, sources); err != nil {
				return fmt.Errorf("failed to load corpus: %w", err)
			}
		}

		comparison, err := engine.Compare(ctx, docs[0], docs[1], corpus)
		if err != nil {
			return err
		}
		return app.WriteComparison(os.Stdout, comparison, engine.Config().OutputFormat)
	}),
}

var searchCmd = &cobra.Command{
	Use:   "search --query q [sources...]",
	Short: "Rank passages of the sources against a query",
	RunE: runWith(func(ctx context.Context, engine *app.Engine, _ []string) error {
		docs, err := engine.Load(ctx)
		if err != nil {
			return err
		}

		results, err := engine.Search(ctx, docs)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		if len(results) == 0 && !engine.Config().Quiet {
			fmt.Fprintln(os.Stderr, "No matching passages")
		}
		return app.WriteSearchResults(os.Stdout, results, engine.Config().OutputFormat)
	}),
}

var cleanCmd = &cobra.Command{
	Use:   "clean [sources...]",
	Short: "Clean text (or convert HTML to Markdown) before analysis",
	RunE: runWith(func(ctx context.Context, engine *app.Engine, _ []string) error {
		docs, err := engine.Clean(ctx)
		if err != nil {
			return err
		}
		return app.WriteDocuments(os.Stdout, docs, engine.Config().OutputFormat)
	}),
}

// addExtractionFlags registers the HTML extraction flags on cmd
func addExtractionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("html", false, "Extract the main text from HTML sources")
	cmd.Flags().StringP("selector", "s", "", "CSS selector for HTML extraction (implies --html)")
	cmd.Flags().BoolP("include-all", "i", false, "Include all HTML content without readability filtering")
}

func init() {
	// output format flags are mutually exclusive
	rootCmd.PersistentFlags().Bool("text", false, "Output in plain text format (default)")
	rootCmd.PersistentFlags().Bool("json", false, "Output in JSON lines format")
	rootCmd.PersistentFlags().Bool("csv", false, "Output in CSV format")
	rootCmd.MarkFlagsMutuallyExclusive("text", "json", "csv")

	// counting unit flags are mutually exclusive
	rootCmd.PersistentFlags().Bool("words", false, "Count sizes in words (default)")
	rootCmd.PersistentFlags().Bool("tokens", false, "Count sizes in cl100k_base tokens")
	rootCmd.PersistentFlags().Bool("characters", false, "Count sizes in characters")
	rootCmd.MarkFlagsMutuallyExclusive("words", "tokens", "characters")

	// term options
	rootCmd.PersistentFlags().String("lang", "", "Language tag for lowercasing terms (e.g. tr)")
	rootCmd.PersistentFlags().String("stem", "", "Snowball stemmer language for terms (e.g. english)")
	rootCmd.PersistentFlags().Int("workers", 0, "Worker goroutines for batch processing (default: number of CPUs)")

	// other flags
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress warnings and progress output")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.PersistentFlags().MarkHidden("debug")

	scoreCmd.Flags().String("bonus-alphabet", "", "Letters earning the character quality bonus (default: Turkish letters)")

	addExtractionFlags(analyzeCmd)
	analyzeCmd.Flags().Bool("lines", false, "Treat every non-blank line as a document")
	analyzeCmd.Flags().String("bonus-alphabet", "", "Letters earning the character quality bonus (default: Turkish letters)")
	analyzeCmd.Flags().Int("top-terms", app.DefaultTopTerms, "TF-IDF terms listed per document")
	analyzeCmd.Flags().Float64("min-quality", 0, "Drop documents scoring below this quality")
	analyzeCmd.Flags().Float64("threshold", dedup.DefaultThreshold, "Jaccard similarity reported as near duplicate")

	compareCmd.Flags().StringSlice("corpus", nil, "Sources whose statistics weight the comparison with TF-IDF")
	compareCmd.Flags().Bool("lines", false, "Treat every non-blank corpus line as a document")

	addExtractionFlags(searchCmd)
	searchCmd.Flags().String("query", "", "Search query")
	_ = searchCmd.MarkFlagRequired("query")
	searchCmd.Flags().String("method", "tfidf", "Ranking method: tfidf or bm25")
	searchCmd.Flags().Bool("lines", false, "Treat every non-blank line as a document")
	searchCmd.Flags().Int("passage-size", app.DefaultPassageRunes, "Maximum passage size in characters")
	searchCmd.Flags().IntP("limit", "n", app.DefaultLimit, "Maximum number of results")

	addExtractionFlags(cleanCmd)
	cleanCmd.Flags().Bool("md", false, "Convert HTML to Markdown instead of cleaning text")

	rootCmd.AddCommand(scoreCmd, analyzeCmd, compareCmd, searchCmd, cleanCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
