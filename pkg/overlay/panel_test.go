package overlay

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/leterax/opal/pkg/input"
	"github.com/leterax/opal/pkg/render"
	"github.com/leterax/opal/pkg/stats"
)

func TestPanelMinimal(t *testing.T) {
	p := Panel{Frame: stats.Summary{Count: 1, Mean: 20 * time.Millisecond, Min: 20 * time.Millisecond,
		Max: 20 * time.Millisecond, FPS: 50}}
	assert.Equal(t, []string{
		"50.0 fps (20.00 ms)",
		"min 20.00 ms  max 20.00 ms",
	}, p.Lines())
}

func TestPanelFull(t *testing.T) {
	p := Panel{
		Frames: 42,
		CPU:    12.4,
		Pose:   &render.Pose{Position: mgl32.Vec3{1, 2, -3}, Yaw: math.Pi / 2},
		Held:   []input.Key{input.KeyW, input.KeyLeftShift},
		Notes:  []string{"replaying"},
	}
	lines := p.Lines()
	assert.Equal(t, []string{
		"frame 42",
		"cpu 12%",
		"pos 1.00 2.00 -3.00",
		"pitch 0.0° yaw 90.0°",
		"keys W LeftShift",
		"replaying",
	}, lines[2:])
}
