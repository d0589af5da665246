package counter

import (
	"unicode/utf8"
)

// CharCounter counts Unicode code points, not bytes.
type CharCounter struct{}

// NewCharCounter returns a character-counting strategy.
func NewCharCounter() *CharCounter {
	return &CharCounter{}
}

// Count returns the number of runes in text. Invalid UTF-8 bytes each count
// as one replacement rune, matching utf8.RuneCountInString.
func (cc *CharCounter) Count(text string) int {
	return utf8.RuneCountInString(text)
}

// Name returns the counting method name for logging and diagnostics.
func (cc *CharCounter) Name() string {
	return "characters"
}
