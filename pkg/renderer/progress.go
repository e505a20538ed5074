package renderer

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/muesli/termenv"
)

// Progress counts completed pixels. It is advisory only: nothing waits on it
// and it never influences task order.
type Progress struct {
	mu          sync.Mutex
	completed   int
	total       int
	lastPercent int

	output *termenv.Output // nil disables the terminal line
	logger *slog.Logger
}

// NewProgress creates a progress counter for total pixels. When w is non-nil a
// remaining-pixel line is redrawn on it as rendering advances.
func NewProgress(total int, w io.Writer, logger *slog.Logger) *Progress {
	p := &Progress{
		total:       total,
		lastPercent: -1,
		logger:      logger,
	}
	if w != nil {
		p.output = termenv.NewOutput(w)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// Increment records one finished pixel. A nil Progress ignores the call.
func (p *Progress) Increment() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.completed++
	if p.total <= 0 {
		return
	}
	percent := p.completed * 100 / p.total
	if percent == p.lastPercent {
		return
	}
	p.lastPercent = percent

	if p.output != nil {
		remaining := p.output.String(fmt.Sprintf("%d", p.total-p.completed)).
			Foreground(p.output.Color("6")).
			Bold()
		fmt.Fprintf(p.output, "\r%s pixels remaining (%3d%%) ", remaining, percent)
	}
	if percent%10 == 0 {
		p.logger.Debug("render progress", "completed", p.completed, "total", p.total, "percent", percent)
	}
}

// Completed returns the number of pixels finished so far
func (p *Progress) Completed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed
}

// Finish clears the terminal progress line
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.output == nil {
		return
	}
	if p.output.Profile == termenv.Ascii {
		fmt.Fprintln(p.output)
		return
	}
	fmt.Fprint(p.output, "\r")
	p.output.ClearLine()
}
