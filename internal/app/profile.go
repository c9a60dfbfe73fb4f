package app

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

// profiler appends per-section frame timings to a CSV file. A nil profiler is a no-op.
type profiler struct {
	mu    sync.Mutex
	file  *os.File
	out   *bufio.Writer
	frame uint64
	start time.Time
	last  time.Time
}

func newProfiler(path string, logger *log.Logger) *profiler {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		logger.Printf("profiler disabled: %v", err)
		return nil
	}
	p := &profiler{file: f, out: bufio.NewWriter(f)}
	fmt.Fprintln(p.out, "frame,section,delta_ms")
	return p
}

func (p *profiler) beginFrame() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.frame++
	p.start = time.Now()
	p.last = p.start
}

func (p *profiler) markSection(name string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.write(name, now.Sub(p.last))
	p.last = now
}

func (p *profiler) endFrame() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.write("frame_total", time.Since(p.start))
}

func (p *profiler) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.out.Flush(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}

func (p *profiler) write(section string, d time.Duration) {
	fmt.Fprintf(p.out, "%d,%s,%.3f\n", p.frame, section, d.Seconds()*1000)
}
