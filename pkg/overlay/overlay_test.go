package overlay

import (
	"testing"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFontAtlasBuiltBeforeFirstFrame(t *testing.T) {
	imgui.CreateContext()
	defer imgui.DestroyContext()

	texData := buildFontAtlas()
	require.True(t, imgui.CurrentIO().Fonts().TexIsBuilt())
	assert.Positive(t, texData.Width())
	assert.Positive(t, texData.Height())
	assert.NotZero(t, texData.Pixels())

	texData.SetTexID(imgui.TextureID(1))
	texData.SetStatus(imgui.TextureStatusOK)

	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: 800, Y: 600})
	assert.NotPanics(t, func() {
		imgui.NewFrame()
		DrawStats(Panel{})
		imgui.Render()
	})
}
