package overlay

import (
	"fmt"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/opal/pkg/input"
	"github.com/leterax/opal/pkg/render"
	"github.com/leterax/opal/pkg/stats"
)

// Panel is what the statistics window shows. Fields left at their zero
// value are omitted.
type Panel struct {
	Frames uint64
	Frame  stats.Summary
	CPU    float64
	Pose   *render.Pose
	Held   []input.Key
	Notes  []string
}

// Lines renders the panel as text, one entry per line.
func (p Panel) Lines() []string {
	lines := []string{
		fmt.Sprintf("%.1f fps (%.2f ms)", p.Frame.FPS, ms(p.Frame.Mean)),
		fmt.Sprintf("min %.2f ms  max %.2f ms", ms(p.Frame.Min), ms(p.Frame.Max)),
	}
	if p.Frames > 0 {
		lines = append(lines, fmt.Sprintf("frame %d", p.Frames))
	}
	if p.CPU > 0 {
		lines = append(lines, fmt.Sprintf("cpu %.0f%%", p.CPU))
	}
	if p.Pose != nil {
		pos := p.Pose.Position
		lines = append(lines,
			fmt.Sprintf("pos %.2f %.2f %.2f", pos.X(), pos.Y(), pos.Z()),
			fmt.Sprintf("pitch %.1f° yaw %.1f°", mgl32.RadToDeg(p.Pose.Pitch), mgl32.RadToDeg(p.Pose.Yaw)))
	}
	if len(p.Held) > 0 {
		names := make([]string, len(p.Held))
		for i, k := range p.Held {
			names[i] = k.String()
		}
		lines = append(lines, "keys "+strings.Join(names, " "))
	}
	return append(lines, p.Notes...)
}

// DrawStats submits the statistics window. It must be called from the
// draw function passed to Frame.
func DrawStats(p Panel) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.CondAlways, imgui.Vec2{})
	imgui.SetNextWindowBgAlpha(0.6)
	flags := imgui.WindowFlagsNoDecoration | imgui.WindowFlagsAlwaysAutoResize |
		imgui.WindowFlagsNoSavedSettings | imgui.WindowFlagsNoFocusOnAppearing |
		imgui.WindowFlagsNoNav | imgui.WindowFlagsNoInputs
	if imgui.BeginV("stats", nil, flags) {
		for i, line := range p.Lines() {
			if i == 2 {
				imgui.Separator()
			}
			imgui.TextUnformatted(line)
		}
	}
	imgui.End()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
