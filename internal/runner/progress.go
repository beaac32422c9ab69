package runner

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressCallback receives run progress. Done counts completed cells,
// success or failure, and only ever increases within a run.
type ProgressCallback interface {
	// OnStart is called once before any cell is produced, with the fixed
	// cell total for the run.
	OnStart(total int)

	// OnProgress is called after each completed cell.
	OnProgress(done, total int)

	// OnComplete is called when the run is finished.
	OnComplete()

	// OnError is called when a cell fails; the run continues.
	OnError(done int, err error)
}

// NoOpProgressCallback implements ProgressCallback but does nothing.
type NoOpProgressCallback struct{}

func (NoOpProgressCallback) OnStart(total int)           {}
func (NoOpProgressCallback) OnProgress(done, total int)  {}
func (NoOpProgressCallback) OnComplete()                 {}
func (NoOpProgressCallback) OnError(done int, err error) {}

// ConsoleProgressCallback displays a progress bar on the console.
type ConsoleProgressCallback struct {
	writer         io.Writer
	prefix         string
	width          int
	lastUpdate     time.Time
	updateInterval time.Duration
	mutex          sync.Mutex
	startTime      time.Time
}

// NewConsoleProgressCallback creates a new console progress reporter.
func NewConsoleProgressCallback(writer io.Writer, prefix string) *ConsoleProgressCallback {
	if writer == nil {
		writer = os.Stderr
	}
	return &ConsoleProgressCallback{
		writer:         writer,
		prefix:         prefix,
		width:          50,
		updateInterval: 100 * time.Millisecond,
	}
}

// WithUpdateInterval sets how frequently the progress bar redraws.
func (c *ConsoleProgressCallback) WithUpdateInterval(interval time.Duration) *ConsoleProgressCallback {
	c.updateInterval = interval
	return c
}

func (c *ConsoleProgressCallback) OnStart(total int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.startTime = time.Now()
	c.lastUpdate = time.Time{}
	_, _ = fmt.Fprintf(c.writer, "%s0/%d (0.0%%)\n", c.prefix, total)
}

func (c *ConsoleProgressCallback) OnProgress(done, total int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	if now.Sub(c.lastUpdate) < c.updateInterval && done < total {
		return
	}
	c.lastUpdate = now
	c.drawProgressBar(done, total, now)
}

func (c *ConsoleProgressCallback) OnComplete() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	elapsed := time.Since(c.startTime)
	_, _ = fmt.Fprintf(c.writer, "\n%sCompleted in %v\n", c.prefix, elapsed.Round(time.Millisecond))
}

func (c *ConsoleProgressCallback) OnError(done int, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, _ = fmt.Fprintf(c.writer, "\n%sError at cell %d: %v\n", c.prefix, done, err)
}

func (c *ConsoleProgressCallback) drawProgressBar(done, total int, now time.Time) {
	if total == 0 {
		return
	}

	percent := float64(done) / float64(total) * 100.0
	filled := int(float64(c.width) * float64(done) / float64(total))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", c.width-filled)

	status := fmt.Sprintf("\r%s[%s] %d/%d (%.1f%%)", c.prefix, bar, done, total, percent)

	elapsed := now.Sub(c.startTime)
	if elapsed > 0 && done > 0 {
		rate := float64(done) / elapsed.Seconds()
		status += fmt.Sprintf(" %.1f/s", rate)
		if done < total {
			remaining := total - done
			etaSeconds := elapsed.Seconds() * float64(remaining) / float64(done)
			eta := time.Duration(etaSeconds) * time.Second
			status += fmt.Sprintf(" ETA: %v", eta.Round(time.Second))
		}
	}

	_, _ = fmt.Fprint(c.writer, status)
}

// LogProgressCallback logs progress updates using slog.
type LogProgressCallback struct {
	logger    *slog.Logger
	level     slog.Level
	interval  int // log every N cells
	lastLog   int
	startTime time.Time
}

// NewLogProgressCallback creates a new log-based progress reporter.
func NewLogProgressCallback(logger *slog.Logger, level slog.Level) *LogProgressCallback {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogProgressCallback{logger: logger, level: level, interval: 10}
}

// WithInterval sets how frequently to log progress (every N cells).
func (l *LogProgressCallback) WithInterval(interval int) *LogProgressCallback {
	l.interval = interval
	return l
}

func (l *LogProgressCallback) OnStart(total int) {
	l.startTime = time.Now()
	l.lastLog = 0
	l.logger.Log(nil, l.level, "starting run", "total", total)
}

func (l *LogProgressCallback) OnProgress(done, total int) {
	if done-l.lastLog >= l.interval || done == total {
		l.lastLog = done
		percent := float64(done) / float64(total) * 100.0
		l.logger.Log(nil, l.level, "run progress",
			"done", done,
			"total", total,
			"percent", fmt.Sprintf("%.1f", percent),
			"elapsed", time.Since(l.startTime).Round(time.Millisecond),
		)
	}
}

func (l *LogProgressCallback) OnComplete() {
	l.logger.Log(nil, l.level, "run completed", "elapsed", time.Since(l.startTime).Round(time.Millisecond))
}

func (l *LogProgressCallback) OnError(done int, err error) {
	l.logger.Log(nil, slog.LevelError, "cell failed", "done", done, "error", err)
}

// MultiProgressCallback fans progress out to several callbacks.
type MultiProgressCallback struct {
	callbacks []ProgressCallback
}

// NewMultiProgressCallback creates a progress callback reporting to all of
// the given callbacks.
func NewMultiProgressCallback(callbacks ...ProgressCallback) *MultiProgressCallback {
	return &MultiProgressCallback{callbacks: callbacks}
}

func (m *MultiProgressCallback) OnStart(total int) {
	for _, cb := range m.callbacks {
		cb.OnStart(total)
	}
}

func (m *MultiProgressCallback) OnProgress(done, total int) {
	for _, cb := range m.callbacks {
		cb.OnProgress(done, total)
	}
}

func (m *MultiProgressCallback) OnComplete() {
	for _, cb := range m.callbacks {
		cb.OnComplete()
	}
}

func (m *MultiProgressCallback) OnError(done int, err error) {
	for _, cb := range m.callbacks {
		cb.OnError(done, err)
	}
}
