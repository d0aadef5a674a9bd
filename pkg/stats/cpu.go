package stats

import (
	"context"
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/leterax/opal/pkg/log"
)

// CPUSampler measures system-wide CPU utilization in the background.
type CPUSampler struct {
	percent atomic.Uint64 // math.Float64bits
	done    chan struct{}
}

// StartCPUSampler launches a goroutine that samples CPU usage over
// one-second intervals until ctx is cancelled.
func StartCPUSampler(ctx context.Context, lg *log.Logger) *CPUSampler {
	s := &CPUSampler{done: make(chan struct{})}
	go func() {
		defer close(s.done)
		for {
			usage, err := cpu.PercentWithContext(ctx, time.Second, false)
			if ctx.Err() != nil {
				return
			}
			if err != nil || len(usage) == 0 {
				lg.Warnf("cpu sample: %v", err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(5 * time.Second):
				}
				continue
			}
			s.percent.Store(math.Float64bits(usage[0]))
		}
	}()
	return s
}

// Percent returns the most recent sample, or 0 before the first one
// completes.
func (s *CPUSampler) Percent() float64 {
	if s == nil {
		return 0
	}
	return math.Float64frombits(s.percent.Load())
}

// Wait blocks until the sampling goroutine has exited.
func (s *CPUSampler) Wait() {
	if s != nil {
		<-s.done
	}
}

func (s *CPUSampler) LogValue() slog.Value {
	return slog.Float64Value(s.Percent())
}
