package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProfiler(buf *bytes.Buffer, clock *time.Time, options ...ProfilerOption) *Profiler {
	logger := slog.New(slog.NewTextHandler(buf, nil))
	p := NewProfiler(append([]ProfilerOption{WithLogger(logger)}, options...)...)
	p.now = func() time.Time { return *clock }
	p.lastTime = *clock
	return p
}

func TestTickReportsAtInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(1000, 0)
	p := newTestProfiler(&buf, &clock)

	for range 29 {
		clock = clock.Add(10 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	assert.Empty(t, buf.String())
	assert.Zero(t, p.Last().FPS)

	clock = time.Unix(1001, 0)
	require.True(t, p.Tick())
	assert.InDelta(t, 30.0, p.Last().FPS, 1e-9)
	assert.Contains(t, buf.String(), "msg=profiler")
	assert.Contains(t, buf.String(), "fps=30")
	assert.Positive(t, p.Last().SysMB)

	// the window restarts after a report
	clock = clock.Add(500 * time.Millisecond)
	assert.False(t, p.Tick())
}

func TestWithInterval(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(0, 0)
	p := newTestProfiler(&buf, &clock, WithInterval(100*time.Millisecond), WithInterval(0))

	clock = clock.Add(100 * time.Millisecond)
	require.True(t, p.Tick())
	assert.InDelta(t, 10.0, p.Last().FPS, 1e-9)
}

func TestWithReporter(t *testing.T) {
	var buf bytes.Buffer
	clock := time.Unix(0, 0)
	p := newTestProfiler(&buf, &clock, WithReporter(func() []any {
		return []any{"objects", 42}
	}))

	clock = clock.Add(time.Second)
	require.True(t, p.Tick())
	assert.Contains(t, buf.String(), "objects=42")
}
