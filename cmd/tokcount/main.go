package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/seliv/tokcount/internal/app"
	"github.com/seliv/tokcount/internal/counter"

	"github.com/spf13/cobra"
)

// buildConfig constructs an app.Config from command flags
func buildConfig(cmd *cobra.Command) (app.Config, error) {
	encoding, _ := cmd.Flags().GetString("encoding")
	model, _ := cmd.Flags().GetString("model")
	words, _ := cmd.Flags().GetBool("words")
	chars, _ := cmd.Flags().GetBool("characters")
	truncate, _ := cmd.Flags().GetInt("truncate")
	ids, _ := cmd.Flags().GetBool("ids")
	html, _ := cmd.Flags().GetBool("html")
	selector, _ := cmd.Flags().GetString("selector")
	includeAll, _ := cmd.Flags().GetBool("include-all")
	offline, _ := cmd.Flags().GetBool("offline")
	quiet, _ := cmd.Flags().GetBool("quiet")
	debug, _ := cmd.Flags().GetBool("debug")

	// determine counting method
	var method counter.CountingMethod
	switch {
	case words:
		method = counter.Words
	case chars:
		method = counter.Characters
	default:
		method = counter.Tokens
	}

	// determine output mode
	var mode app.Mode
	switch {
	case cmd.Flags().Changed("truncate"):
		if truncate <= 0 {
			return app.Config{}, fmt.Errorf("truncate budget must be positive, got %d", truncate)
		}
		mode = app.Truncate
	case ids:
		mode = app.TokenIDs
	default:
		mode = app.Count
	}

	// a selector only makes sense on HTML input, so it implies --html
	if selector != "" {
		html = true
	}
	if includeAll && !html {
		return app.Config{}, fmt.Errorf("--include-all requires --html")
	}

	return app.Config{
		Input:      os.Stdin,
		Encoding:   encoding,
		Model:      model,
		Method:     method,
		Mode:       mode,
		MaxTokens:  truncate,
		HTML:       html,
		Selector:   selector,
		IncludeAll: includeAll,
		Offline:    offline,
		Quiet:      quiet,
		Debug:      debug,
	}, nil
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

var rootCmd = &cobra.Command{
	Use:   "tokcount",
	Short: "Count LLM tokens in text from standard input",
	Long: `Tokcount reads text from standard input and prints the number of tokens
it encodes to under a BPE tokenizer scheme (cl100k_base by default, the
vocabulary used by GPT-4 class models).

Examples:
  cat document.txt | tokcount
  tokcount --model gpt-4o < prompt.txt
  curl -s https://example.com | tokcount --html
  tokcount --truncate 2000 < context.txt > trimmed.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := buildConfig(cmd)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}

		setupLogger(config.Debug)

		// create context with signal handling for graceful shutdown
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		result, err := app.Run(ctx, config)
		if err != nil {
			return fmt.Errorf("tokcount failed: %w", err)
		}

		fmt.Print(result)

		return nil
	},
}

func init() {
	// tokenizer selection
	rootCmd.Flags().StringP("encoding", "e", "", "Tokenizer encoding scheme (default: cl100k_base)")
	rootCmd.Flags().StringP("model", "m", "", "Resolve the encoding from a model name (e.g. gpt-4o)")
	rootCmd.MarkFlagsMutuallyExclusive("encoding", "model")

	// alternative counting methods
	rootCmd.Flags().BoolP("words", "w", false, "Count whitespace-delimited words instead of tokens")
	rootCmd.Flags().BoolP("characters", "c", false, "Count Unicode characters instead of tokens")
	rootCmd.MarkFlagsMutuallyExclusive("words", "characters")

	// output modes other than the count
	rootCmd.Flags().IntP("truncate", "t", 0, "Print the input truncated to at most N tokens instead of a count")
	rootCmd.Flags().Bool("ids", false, "Print the token IDs instead of a count")
	rootCmd.MarkFlagsMutuallyExclusive("truncate", "ids")
	rootCmd.MarkFlagsMutuallyExclusive("truncate", "words", "characters")
	rootCmd.MarkFlagsMutuallyExclusive("ids", "words", "characters")

	// HTML preprocessing
	rootCmd.Flags().Bool("html", false, "Treat input as HTML and count its readable content")
	rootCmd.Flags().StringP("selector", "s", "", "CSS selector scoping HTML extraction (implies --html)")
	rootCmd.Flags().BoolP("include-all", "i", false, "Convert HTML without readability filtering")

	// vocabulary loading
	rootCmd.Flags().Bool("offline", false, "Load BPE vocabularies from embedded data, never the network")

	// other flags
	rootCmd.Flags().BoolP("quiet", "q", false, "Suppress progress output")
	rootCmd.Flags().BoolP("debug", "D", false, "Enable debug logging")
	_ = rootCmd.Flags().MarkHidden("debug")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
