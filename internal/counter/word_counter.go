package counter

import (
	"strings"
)

// WordCounter counts whitespace-delimited fields.
type WordCounter struct{}

// NewWordCounter returns a word-counting strategy.
func NewWordCounter() *WordCounter {
	return &WordCounter{}
}

// Count returns the number of words in text. Words are maximal runs of
// non-whitespace, so leading/trailing/repeated whitespace contributes nothing.
func (wc *WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// Name returns the counting method name for logging and diagnostics.
func (wc *WordCounter) Name() string {
	return "words"
}
