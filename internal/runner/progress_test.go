package runner

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConsoleProgressCallback(t *testing.T) {
	var buf bytes.Buffer
	cb := NewConsoleProgressCallback(&buf, "Render: ").WithUpdateInterval(0)

	cb.OnStart(4)
	cb.OnProgress(1, 4)
	cb.OnProgress(4, 4)
	cb.OnComplete()

	out := buf.String()
	assert.Contains(t, out, "Render: 0/4")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "4/4 (100.0%)")
	assert.Contains(t, out, "Completed in")
}

func TestConsoleProgressCallback_Throttles(t *testing.T) {
	var buf bytes.Buffer
	cb := NewConsoleProgressCallback(&buf, "").WithUpdateInterval(time.Hour)

	cb.OnStart(10)
	cb.OnProgress(1, 10) // first update after start always draws
	before := buf.Len()
	cb.OnProgress(2, 10)
	cb.OnProgress(3, 10)
	assert.Equal(t, before, buf.Len(), "intermediate updates are throttled")

	// Final update always draws.
	cb.OnProgress(10, 10)
	assert.Greater(t, buf.Len(), before)
}

func TestConsoleProgressCallback_Error(t *testing.T) {
	var buf bytes.Buffer
	cb := NewConsoleProgressCallback(&buf, "")
	cb.OnError(3, errors.New("bad frame"))
	assert.Contains(t, buf.String(), "Error at cell 3: bad frame")
}

func TestLogProgressCallback(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cb := NewLogProgressCallback(logger, slog.LevelInfo).WithInterval(2)

	cb.OnStart(4)
	cb.OnProgress(1, 4) // below interval, skipped
	cb.OnProgress(2, 4)
	cb.OnProgress(4, 4) // final always logs
	cb.OnComplete()

	out := buf.String()
	assert.Contains(t, out, "starting run")
	assert.Equal(t, 2, strings.Count(out, "run progress"))
	assert.Contains(t, out, "run completed")
}

func TestMultiProgressCallback(t *testing.T) {
	a := &recordingProgress{}
	b := &recordingProgress{}
	cb := NewMultiProgressCallback(a, b)

	cb.OnStart(2)
	cb.OnProgress(1, 2)
	cb.OnError(1, errors.New("x"))
	cb.OnComplete()

	for _, rec := range []*recordingProgress{a, b} {
		assert.Equal(t, []int{2}, rec.started)
		assert.Equal(t, []int{1}, rec.progress)
		assert.Len(t, rec.errs, 1)
		assert.Equal(t, 1, rec.complete)
	}
}
