// Package counter implements the text counting strategies used by tokcount.
//
// The default strategy counts BPE tokens via OpenAI's tiktoken vocabularies
// (cl100k_base unless configured otherwise); word and character strategies
// are available as cheaper alternatives that need no vocabulary data.
//
// Usage Example:
//
//	c, err := counter.NewTokenCounter("cl100k_base")
//	if err != nil { ... }
//	n := c.Count("Hello, world!") // 4
package counter

import (
	"errors"
	"fmt"
)

// Sentinel errors distinguishing the two ways token counting can fail
// before any text is seen. Callers test with errors.Is.
var (
	// ErrUnknownEncoding indicates the requested encoding name is not part
	// of the tokenizer library's published vocabulary set.
	ErrUnknownEncoding = errors.New("unknown encoding")

	// ErrEncodingUnavailable indicates a known encoding could not be loaded,
	// e.g. the vocabulary data could not be fetched or read from cache.
	ErrEncodingUnavailable = errors.New("encoding unavailable")
)

// Counter is the interface shared by all counting strategies.
type Counter interface {
	// Count returns the number of units (tokens, words, or characters) in text.
	Count(text string) int

	// Name returns a human-readable name for this strategy (for logging).
	Name() string
}

// CountingMethod selects a counting strategy.
type CountingMethod int

const (
	// Tokens counts BPE tokens via tiktoken (default)
	Tokens CountingMethod = iota
	// Words counts whitespace-delimited fields
	Words
	// Characters counts Unicode code points
	Characters
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

// New is the factory for Counter instances. The encoding argument applies
// only to the Tokens method; an empty string selects DefaultEncoding.
// Returns an error if the token counter cannot be initialized.
func New(method CountingMethod, encoding string) (Counter, error) {
	switch method {
	case Tokens:
		return NewTokenCounter(encoding)
	case Words:
		return NewWordCounter(), nil
	case Characters:
		return NewCharCounter(), nil
	default:
		return nil, fmt.Errorf("unsupported counting method %d", method)
	}
}
