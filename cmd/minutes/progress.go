package main

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// progressTracker reports how many meetings a batch run has processed.
type progressTracker struct {
	writer    io.Writer
	total     int
	current   int
	failed    int
	startTime time.Time
	started   bool
	mu        sync.Mutex
}

func newProgressTracker(writer io.Writer, total int) *progressTracker {
	return &progressTracker{
		writer: writer,
		total:  total,
	}
}

// Start begins tracking progress.
func (p *progressTracker) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.started = true
	p.current = 0
	p.failed = 0
}

// Done records one finished meeting and reports progress.
func (p *progressTracker) Done(ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	if p.current < p.total {
		p.current++
	}
	if !ok {
		p.failed++
	}
	p.report()
}

// Finish prints the final line.
func (p *progressTracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.report()
	fmt.Fprintln(p.writer)
}

// Failed returns the number of meetings that did not produce an artifact.
func (p *progressTracker) Failed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

// report prints the current progress. Must be called with lock held.
func (p *progressTracker) report() {
	elapsed := time.Since(p.startTime)

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.current) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\rProcessed: %d/%d (%.1f%%), %d failed, %s elapsed",
		p.current, p.total, percentage, p.failed, elapsed.Round(time.Millisecond))
}
