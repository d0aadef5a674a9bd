// Package stats keeps rolling frame-time statistics for the overlay and the
// performance log.
package stats

import (
	"log/slog"
	"time"
)

const DefaultWindow = 120

// FrameStats holds the durations of the most recent frames in a ring
// buffer. The zero value is not usable; call NewFrameStats.
type FrameStats struct {
	samples []time.Duration
	next    int
	full    bool
	total   uint64
}

func NewFrameStats(window int) *FrameStats {
	if window <= 0 {
		window = DefaultWindow
	}
	return &FrameStats{samples: make([]time.Duration, window)}
}

// Add records the duration of one frame, evicting the oldest sample once
// the window is full.
func (s *FrameStats) Add(d time.Duration) {
	s.samples[s.next] = d
	s.next++
	if s.next == len(s.samples) {
		s.next = 0
		s.full = true
	}
	s.total++
}

// Frames returns the number of frames recorded since creation.
func (s *FrameStats) Frames() uint64 {
	return s.total
}

type Summary struct {
	Count int
	Mean  time.Duration
	Min   time.Duration
	Max   time.Duration
	FPS   float64
}

// Summary describes the frames currently in the window.
func (s *FrameStats) Summary() Summary {
	window := s.samples[:s.next]
	if s.full {
		window = s.samples
	}
	if len(window) == 0 {
		return Summary{}
	}

	sum := Summary{Count: len(window), Min: window[0], Max: window[0]}
	var total time.Duration
	for _, d := range window {
		total += d
		sum.Min = min(sum.Min, d)
		sum.Max = max(sum.Max, d)
	}
	sum.Mean = total / time.Duration(len(window))
	if sum.Mean > 0 {
		sum.FPS = float64(time.Second) / float64(sum.Mean)
	}
	return sum
}

func (s *FrameStats) LogValue() slog.Value {
	return s.Summary().LogValue()
}

func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frames", s.Count),
		slog.Duration("mean", s.Mean),
		slog.Duration("min", s.Min),
		slog.Duration("max", s.Max),
		slog.Float64("fps", s.FPS))
}
