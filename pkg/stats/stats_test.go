package stats

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmpty(t *testing.T) {
	s := NewFrameStats(4)
	assert.Equal(t, Summary{}, s.Summary())
}

func TestSummary(t *testing.T) {
	s := NewFrameStats(4)
	s.Add(10 * time.Millisecond)
	s.Add(30 * time.Millisecond)

	sum := s.Summary()
	assert.Equal(t, 2, sum.Count)
	assert.Equal(t, 20*time.Millisecond, sum.Mean)
	assert.Equal(t, 10*time.Millisecond, sum.Min)
	assert.Equal(t, 30*time.Millisecond, sum.Max)
	assert.InDelta(t, 50, sum.FPS, 1e-9)
}

func TestWindowEvicts(t *testing.T) {
	s := NewFrameStats(3)
	for _, ms := range []int{100, 1, 2, 3} {
		s.Add(time.Duration(ms) * time.Millisecond)
	}

	sum := s.Summary()
	assert.Equal(t, 3, sum.Count)
	assert.Equal(t, 3*time.Millisecond, sum.Max)
	assert.Equal(t, 2*time.Millisecond, sum.Mean)
	assert.Equal(t, uint64(4), s.Frames())
}

func TestDefaultWindow(t *testing.T) {
	s := NewFrameStats(0)
	for i := 0; i < DefaultWindow+5; i++ {
		s.Add(time.Millisecond)
	}
	assert.Equal(t, DefaultWindow, s.Summary().Count)
}

func TestLogValue(t *testing.T) {
	s := NewFrameStats(2)
	s.Add(time.Millisecond)

	v := s.LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())
	attrs := map[string]slog.Value{}
	for _, a := range v.Group() {
		attrs[a.Key] = a.Value
	}
	assert.Equal(t, int64(1), attrs["frames"].Int64())
	assert.Equal(t, time.Millisecond, attrs["mean"].Duration())
}

func TestCPUSamplerStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := StartCPUSampler(ctx, nil)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sampler did not stop")
	}
	assert.GreaterOrEqual(t, s.Percent(), 0.0)

	var nilSampler *CPUSampler
	assert.Zero(t, nilSampler.Percent())
}
