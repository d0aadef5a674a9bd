package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leterax/opal/pkg/input"
	"github.com/leterax/opal/pkg/render"
)

func TestOptionDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, "opal", o.Title)
	assert.Equal(t, 800, o.Width)
	assert.Equal(t, 600, o.Height)
	assert.Equal(t, float32(render.DefaultLookSensitivity), o.LookSensitivity)
	assert.Equal(t, 10*time.Second, o.StatsInterval)
	assert.NotEqual(t, render.Pose{}, o.StartPose)

	o = Options{Width: 1024, StartPose: render.Pose{Yaw: 1}}.withDefaults()
	assert.Equal(t, 1024, o.Width)
	assert.Equal(t, render.Pose{Yaw: 1}, o.StartPose)
}

func TestOptionValidation(t *testing.T) {
	assert.NoError(t, Options{}.validate())
	assert.NoError(t, Options{Camera: true, RecordPath: "a.rec"}.validate())
	assert.Error(t, Options{RecordPath: "a.rec"}.validate())
	assert.Error(t, Options{BindingsPath: "keys.yaml"}.validate())
	assert.Error(t, Options{Camera: true, BindingsPath: "keys.json"}.validate())
	assert.Error(t, Options{Camera: true, RecordPath: "a.rec", ReplayPath: "a.rec"}.validate())
}

func TestReplayReplacesLiveInput(t *testing.T) {
	var a App
	live := []input.Event{
		input.KeyDown{Key: input.KeyW},
		input.Resized{Width: 640, Height: 480},
		input.PointerMotion{DX: 1},
		input.CloseRequested{},
	}
	replayed := []input.Event{
		input.KeyDown{Key: input.KeyS},
		input.Resized{Width: 10, Height: 10},
		input.Scroll{DY: 1},
	}

	got := a.replace(live, replayed)
	assert.Equal(t, []input.Event{
		input.Resized{Width: 640, Height: 480},
		input.CloseRequested{},
		input.KeyDown{Key: input.KeyS},
		input.Scroll{DY: 1},
	}, got)
}
