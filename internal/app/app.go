// Package app contains the core pipeline for tokcount, separated from CLI
// concerns: read the input in full, optionally reduce HTML to text, then
// count, truncate, or tokenize it.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/seliv/tokcount/internal/counter"
	"github.com/seliv/tokcount/internal/extract"
	"github.com/seliv/tokcount/internal/input"
	"github.com/seliv/tokcount/internal/spinner"
)

// Mode selects what is written to standard output.
type Mode int

const (
	// Count prints the unit count as one decimal line (default)
	Count Mode = iota
	// Truncate prints the input cut to a token budget
	Truncate
	// TokenIDs prints the token IDs, space-separated
	TokenIDs
)

// String returns the string representation of the output mode.
func (m Mode) String() string {
	switch m {
	case Count:
		return "count"
	case Truncate:
		return "truncate"
	case TokenIDs:
		return "token-ids"
	default:
		return "unknown"
	}
}

// Config holds all options for one tokcount run.
type Config struct {
	Input      io.Reader              // input stream, normally os.Stdin
	Encoding   string                 // tiktoken encoding name; empty selects the default
	Model      string                 // model name to resolve an encoding from; overrides Encoding
	Method     counter.CountingMethod // tokens, words, or characters
	Mode       Mode                   // count, truncate, or token IDs
	MaxTokens  int                    // token budget for Truncate mode
	HTML       bool                   // reduce HTML input to Markdown before counting
	Selector   string                 // CSS selector scoping HTML extraction
	IncludeAll bool                   // convert HTML without readability filtering
	Offline    bool                   // load vocabularies from embedded data
	Quiet      bool                   // suppress spinner and warnings
	Debug      bool
}

// Run executes the pipeline and returns the text to write to stdout.
//
// The counter is initialized before any input is consumed, so unknown
// encodings and vocabulary load failures surface without waiting on a pipe.
func Run(ctx context.Context, cfg Config) (string, error) {
	if cfg.Input == nil {
		return "", fmt.Errorf("no input stream provided")
	}

	if cfg.Offline {
		counter.UseOfflineLoader()
	}

	c, err := newCounter(ctx, cfg)
	if err != nil {
		return "", err
	}

	text, err := input.ReadAll(ctx, cfg.Input)
	if err != nil {
		return "", err
	}

	if cfg.HTML {
		text, err = extract.FromHTML(strings.NewReader(text), cfg.Selector, cfg.IncludeAll)
		if err != nil {
			return "", err
		}
	}

	switch cfg.Mode {
	case Truncate:
		tc, err := tokenCounterOnly(c, cfg.Mode)
		if err != nil {
			return "", err
		}
		return tc.Truncate(text, cfg.MaxTokens), nil

	case TokenIDs:
		tc, err := tokenCounterOnly(c, cfg.Mode)
		if err != nil {
			return "", err
		}
		return formatTokenIDs(tc.Tokens(text)), nil

	default:
		return strconv.Itoa(c.Count(text)) + "\n", nil
	}
}

// newCounter builds the configured counting strategy. Loading a tiktoken
// vocabulary may download data on first use, so a spinner runs on stderr
// while it happens (terminal only, and not in quiet mode).
func newCounter(ctx context.Context, cfg Config) (counter.Counter, error) {
	if cfg.Method != counter.Tokens {
		return counter.New(cfg.Method, "")
	}

	if !cfg.Quiet {
		sp := spinner.New(ctx, os.Stderr, "loading tokenizer vocabulary...")
		sp.Start()
		defer sp.Stop()
	}

	if cfg.Model != "" {
		return counter.NewTokenCounterForModel(cfg.Model)
	}
	return counter.NewTokenCounter(cfg.Encoding)
}

// tokenCounterOnly rejects modes that need token structure when a word or
// character strategy was selected.
func tokenCounterOnly(c counter.Counter, mode Mode) (*counter.TokenCounter, error) {
	tc, ok := c.(*counter.TokenCounter)
	if !ok {
		return nil, fmt.Errorf("%s mode requires token counting, not %s", mode, c.Name())
	}
	return tc, nil
}

// formatTokenIDs renders token IDs as one space-separated line.
func formatTokenIDs(ids []int) string {
	if len(ids) == 0 {
		return "\n"
	}

	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ") + "\n"
}
