package counter

import (
	"errors"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// embedded vocabularies keep the pinned counts independent of network
	// and cache state
	UseOfflineLoader()
	os.Exit(m.Run())
}

func TestTokenCounter(t *testing.T) {
	tc, err := NewTokenCounter("cl100k_base")
	if err != nil {
		t.Fatalf("NewTokenCounter() error: %v", err)
	}

	// counts pinned against tiktoken's published cl100k_base results
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty string", "", 0},
		{"hello world", "hello world", 2},
		{"hello world punctuated", "Hello, world!", 4},
		{"single newline", "\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tc.Count(tt.text)
			if result != tt.expected {
				t.Errorf("Count(%q) = %d, want %d", tt.text, result, tt.expected)
			}
		})
	}

	if tc.Name() != "tokens (cl100k_base)" {
		t.Errorf("Name() = %q, want %q", tc.Name(), "tokens (cl100k_base)")
	}
}

func TestTokenCounterDeterminism(t *testing.T) {
	tc, err := NewTokenCounter("")
	if err != nil {
		t.Fatalf("NewTokenCounter() error: %v", err)
	}

	inputs := []string{
		"the quick brown fox",
		"ção über ñandú 東京",
		"mixed\ttabs\nand newlines\n\n",
		"\x80\xfe invalid utf-8 bytes",
	}

	for _, text := range inputs {
		first := tc.Count(text)
		second := tc.Count(text)
		if first != second {
			t.Errorf("Count(%q) not deterministic: %d then %d", text, first, second)
		}
		if first < 0 {
			t.Errorf("Count(%q) = %d, want non-negative", text, first)
		}
	}
}

func TestTokenCounterDefaultEncoding(t *testing.T) {
	tc, err := NewTokenCounter("")
	if err != nil {
		t.Fatalf("NewTokenCounter(\"\") error: %v", err)
	}
	if tc.Name() != "tokens (cl100k_base)" {
		t.Errorf("default encoding Name() = %q, want cl100k_base", tc.Name())
	}
}

func TestTokenCounterUnknownEncoding(t *testing.T) {
	_, err := NewTokenCounter("cl999k_base")
	if err == nil {
		t.Fatal("NewTokenCounter(\"cl999k_base\") expected error, got nil")
	}
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("error = %v, want ErrUnknownEncoding", err)
	}
}

func TestTokenCounterForModel(t *testing.T) {
	tc, err := NewTokenCounterForModel("gpt-4")
	if err != nil {
		t.Fatalf("NewTokenCounterForModel(\"gpt-4\") error: %v", err)
	}

	// gpt-4 resolves to cl100k_base, so the pinned count applies
	if got := tc.Count("Hello, world!"); got != 4 {
		t.Errorf("Count(\"Hello, world!\") = %d, want 4", got)
	}

	_, err = NewTokenCounterForModel("not-a-model")
	if err == nil {
		t.Fatal("NewTokenCounterForModel(\"not-a-model\") expected error, got nil")
	}
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("error = %v, want ErrUnknownEncoding", err)
	}
}

func TestTokens(t *testing.T) {
	tc, err := NewTokenCounter("cl100k_base")
	if err != nil {
		t.Fatalf("NewTokenCounter() error: %v", err)
	}

	text := "The five boxing wizards jump quickly."
	ids := tc.Tokens(text)
	if len(ids) != tc.Count(text) {
		t.Errorf("len(Tokens()) = %d, want Count() = %d", len(ids), tc.Count(text))
	}

	if got := tc.Tokens(""); got != nil {
		t.Errorf("Tokens(\"\") = %v, want nil", got)
	}
}

func TestTruncate(t *testing.T) {
	tc, err := NewTokenCounter("cl100k_base")
	if err != nil {
		t.Fatalf("NewTokenCounter() error: %v", err)
	}

	text := "The quick brown fox jumps over the lazy dog. The dog does not react."

	t.Run("cuts to limit", func(t *testing.T) {
		truncated := tc.Truncate(text, 5)
		if got := tc.Count(truncated); got > 5 {
			t.Errorf("Count(Truncate(text, 5)) = %d, want <= 5", got)
		}
		if truncated == text {
			t.Error("Truncate did not shorten text exceeding the limit")
		}
	})

	t.Run("within limit unchanged", func(t *testing.T) {
		if got := tc.Truncate(text, 1000); got != text {
			t.Errorf("Truncate(text, 1000) modified text within limit")
		}
	})

	t.Run("zero limit", func(t *testing.T) {
		if got := tc.Truncate(text, 0); got != "" {
			t.Errorf("Truncate(text, 0) = %q, want empty", got)
		}
	})
}

func TestWordCounter(t *testing.T) {
	wc := NewWordCounter()

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty string", "", 0},
		{"single word", "hello", 1},
		{"several words", "one two three four", 4},
		{"surrounding whitespace", "  spaced   out  ", 2},
		{"newline separated", "first\nsecond\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wc.Count(tt.text); got != tt.expected {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}

	if wc.Name() != "words" {
		t.Errorf("Name() = %q, want %q", wc.Name(), "words")
	}
}

func TestCharCounter(t *testing.T) {
	cc := NewCharCounter()

	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{"empty string", "", 0},
		{"ascii", "abc", 3},
		{"multibyte runes", "héllo", 5},
		{"cjk", "東京都", 3},
		{"includes whitespace", "a b\n", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cc.Count(tt.text); got != tt.expected {
				t.Errorf("Count(%q) = %d, want %d", tt.text, got, tt.expected)
			}
		})
	}

	if cc.Name() != "characters" {
		t.Errorf("Name() = %q, want %q", cc.Name(), "characters")
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name         string
		method       CountingMethod
		expectedName string
	}{
		{"tokens", Tokens, "tokens (cl100k_base)"},
		{"words", Words, "words"},
		{"characters", Characters, "characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.method, "")
			if err != nil {
				t.Fatalf("New(%v) error: %v", tt.method, err)
			}
			if c.Name() != tt.expectedName {
				t.Errorf("New(%v).Name() = %q, want %q", tt.method, c.Name(), tt.expectedName)
			}
		})
	}

	if _, err := New(CountingMethod(42), ""); err == nil {
		t.Error("New(42) expected error for unsupported method")
	}
}

func TestCountingMethodString(t *testing.T) {
	tests := []struct {
		method   CountingMethod
		expected string
	}{
		{Tokens, "tokens"},
		{Words, "words"},
		{Characters, "characters"},
		{CountingMethod(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.method.String(); got != tt.expected {
				t.Errorf("CountingMethod(%d).String() = %q, want %q", int(tt.method), got, tt.expected)
			}
		})
	}
}
