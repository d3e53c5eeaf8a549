package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	messages []string
}

func (r *recordingReporter) Notify(msg string) {
	r.messages = append(r.messages, msg)
}

func TestSetIntervalFloor(t *testing.T) {
	p := New("test", func(context.Context) error { return nil }, nil)
	assert.Equal(t, MinInterval, p.Interval())

	p.SetInterval(5 * time.Minute)
	assert.Equal(t, 5*time.Minute, p.Interval())

	// Below the floor: rejected, previous value kept.
	p.SetInterval(10 * time.Second)
	assert.Equal(t, 5*time.Minute, p.Interval())

	p.SetInterval(MinInterval)
	assert.Equal(t, MinInterval, p.Interval())
}

func TestRunTicksImmediatelyAndStopsOnCancel(t *testing.T) {
	var ticks atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())

	p := New("test", func(context.Context) error {
		ticks.Add(1)
		cancel()
		return nil
	}, nil)

	err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(1), ticks.Load())
}

func TestRunSurvivesTickErrors(t *testing.T) {
	var ticks atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	rep := &recordingReporter{}

	p := New("test", func(context.Context) error {
		if ticks.Add(1) >= 2 {
			cancel()
		}
		return errors.New("feed unreachable")
	}, rep)
	p.interval = 10 * time.Millisecond

	err := p.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, ticks.Load(), int64(2))
	assert.NotEmpty(t, rep.messages)
	assert.Contains(t, rep.messages[0], "feed unreachable")
}
