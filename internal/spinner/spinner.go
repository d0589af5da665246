// Package spinner provides a small stderr activity indicator, shown while
// the tokenizer vocabulary loads (which may download data on first use).
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Spinner animates a message on a terminal writer. On non-terminal writers
// it stays silent, so redirected stderr never sees control sequences.
type Spinner struct {
	frames  []string
	delay   time.Duration
	writer  io.Writer
	message string

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	ctx     context.Context
}

// New creates a spinner that writes message to w while active.
// ctx cancellation stops the animation goroutine.
func New(ctx context.Context, w io.Writer, message string) *Spinner {
	spinCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		frames:  []string{"|", "/", "-", "\\"},
		delay:   120 * time.Millisecond,
		writer:  w,
		message: message,
		ctx:     spinCtx,
		cancel:  cancel,
	}
}

// Start begins animating. It is a no-op if already running or if the writer
// is not a terminal.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running || !writerIsTerminal(s.writer) {
		return
	}
	s.running = true

	s.wg.Add(1)
	go s.loop()
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()

	fmt.Fprint(s.writer, "\r\033[2K")
}

// Running reports whether the animation goroutine is active.
func (s *Spinner) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Spinner) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprintf(s.writer, "\r%s %s", s.frames[i%len(s.frames)], s.message)
		}
	}
}

func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
