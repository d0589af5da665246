package counter

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is the BPE scheme used when none is requested explicitly.
// cl100k_base is the vocabulary shared by GPT-4 / GPT-3.5-turbo models.
const DefaultEncoding = "cl100k_base"

// knownEncodings mirrors the vocabulary set tiktoken-go ships loaders for.
// Checking the name up front lets us report an unknown scheme separately
// from a load failure of a valid one.
var knownEncodings = map[string]bool{
	"o200k_base":  true,
	"cl100k_base": true,
	"p50k_base":   true,
	"p50k_edit":   true,
	"r50k_base":   true,
}

// UseOfflineLoader switches tiktoken to its embedded vocabulary data,
// removing the download-and-cache step on first load. Process-wide; must be
// called before any counter is constructed.
func UseOfflineLoader() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// TokenCounter counts BPE tokens for one loaded tiktoken encoding.
type TokenCounter struct {
	name     string
	encoding *tiktoken.Tiktoken
	mu       sync.RWMutex // encoding access is guarded for concurrent use
}

// NewTokenCounter loads the named encoding and returns a counter for it.
// An empty name selects DefaultEncoding. The returned error wraps
// ErrUnknownEncoding or ErrEncodingUnavailable.
func NewTokenCounter(name string) (*TokenCounter, error) {
	if name == "" {
		name = DefaultEncoding
	}
	if !knownEncodings[name] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}

	slog.Debug("loading tiktoken encoding", "encoding", name)
	encoding, err := tiktoken.GetEncoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrEncodingUnavailable, name, err)
	}

	return &TokenCounter{name: name, encoding: encoding}, nil
}

// NewTokenCounterForModel resolves a model name (e.g. "gpt-4o") to its
// encoding via tiktoken's model table and returns a counter for it.
func NewTokenCounterForModel(model string) (*TokenCounter, error) {
	slog.Debug("resolving encoding for model", "model", model)
	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("%w: no encoding for model %q: %v", ErrUnknownEncoding, model, err)
	}

	return &TokenCounter{name: "model:" + model, encoding: encoding}, nil
}

// Count returns the number of tokens the encoding produces for text.
// Safe for concurrent use.
func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	// nil special-token sets: treat all input as ordinary text
	n := len(tc.encoding.Encode(text, nil, nil))

	slog.Debug("counted tokens", "bytes", len(text), "tokens", n)
	return n
}

// Tokens returns the token IDs the encoding produces for text.
func (tc *TokenCounter) Tokens(text string) []int {
	if text == "" {
		return nil
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	return tc.encoding.Encode(text, nil, nil)
}

// Truncate returns text cut down to at most maxTokens tokens, by encoding,
// slicing the token sequence, and decoding the remainder. Text already
// within the limit is returned unchanged.
func (tc *TokenCounter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return ""
	}

	tc.mu.RLock()
	defer tc.mu.RUnlock()

	tokens := tc.encoding.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}

	truncated := tc.encoding.Decode(tokens[:maxTokens])

	slog.Debug("truncated text", "tokens", len(tokens), "maxTokens", maxTokens)
	return truncated
}

// Name returns the counting method name for logging and diagnostics.
func (tc *TokenCounter) Name() string {
	return "tokens (" + tc.name + ")"
}
