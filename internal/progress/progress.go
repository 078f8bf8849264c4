// Package progress draws a counting progress indicator on a terminal while
// batch work runs.
package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

// Indicator renders "<frame> <label> <done>/<total>" and redraws it on a ticker.
type Indicator struct {
	frames []string
	delay  time.Duration
	writer io.Writer
	total  int
	done   atomic.Int64

	mu     sync.RWMutex
	label  string
	active bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an indicator for total units of work. ctx cancels the
// drawing goroutine.
func New(ctx context.Context, writer io.Writer, label string, total int) *Indicator {
	indicatorCtx, cancel := context.WithCancel(ctx)
	return &Indicator{
		frames: []string{"◜", "◠", "◝", "◞", "◡", "◟"},
		delay:  100 * time.Millisecond,
		writer: writer,
		total:  total,
		label:  label,
		ctx:    indicatorCtx,
		cancel: cancel,
	}
}

// Enabled reports whether w is an interactive terminal worth drawing on.
func Enabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start begins drawing. Starting twice is a no-op.
func (p *Indicator) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.active {
		return
	}
	p.active = true

	p.wg.Add(1)
	go p.run()
}

// Stop stops drawing and clears the line.
func (p *Indicator) Stop() {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	p.cancel()
	p.mu.Unlock()

	p.wg.Wait()

	if Enabled(p.writer) {
		fmt.Fprint(p.writer, "\r\033[2K")
	} else {
		fmt.Fprint(p.writer, "\r")
	}
}

// Increment records one finished unit. Safe for concurrent use.
func (p *Indicator) Increment() {
	p.done.Add(1)
}

// Done returns the number of finished units.
func (p *Indicator) Done() int {
	return int(p.done.Load())
}

// IsActive returns whether the indicator is currently drawing
func (p *Indicator) IsActive() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.active
}

// SetLabel replaces the label, e.g. when a new phase begins
func (p *Indicator) SetLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = label
}

func (p *Indicator) line(frameIndex int) string {
	p.mu.RLock()
	label := p.label
	p.mu.RUnlock()

	frame := p.frames[frameIndex%len(p.frames)]
	return fmt.Sprintf("\r%s %s %d/%d", frame, label, p.Done(), p.total)
}

func (p *Indicator) run() {
	defer p.wg.Done()

	frameIndex := 0
	ticker := time.NewTicker(p.delay)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(p.writer, p.line(frameIndex))
			frameIndex++
		}
	}
}
