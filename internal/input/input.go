// Package input handles reading the program's input stream.
// The whole stream is consumed before any counting starts; there is no
// streaming or size cap, a pipe of any length is read to EOF.
package input

import (
	"context"
	"fmt"
	"io"
)

// contextReader wraps an io.Reader so a canceled context aborts the read
// between chunks.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *contextReader) Read(p []byte) (n int, err error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

// ReadAll consumes r to EOF and returns its contents as a string.
//
// Bytes are returned unmodified: no UTF-8 validation or replacement is
// applied, since the BPE tokenizer operates on raw bytes and any sequence
// encodes to some token sequence.
//
// ctx allows for cancellation of reads from slow or blocked pipes.
func ReadAll(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(&contextReader{ctx: ctx, r: r})
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(data), nil
}
