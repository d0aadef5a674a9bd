// Package overlay draws an immediate-mode UI on top of the 3D scene.
package overlay

import (
	"embed"
	"fmt"
	"unsafe"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/opal/internal/openglhelper"
	"github.com/leterax/opal/pkg/log"
)

//go:embed shaders
var shaderFS embed.FS

// Overlay owns the ImGui context and the GL objects used to draw it. It
// only displays; it does not consume input.
type Overlay struct {
	ctx *imgui.Context
	lg  *log.Logger

	shader      *openglhelper.Shader
	vao         *openglhelper.VertexArrayObject
	vbo         *openglhelper.BufferObject
	ebo         *openglhelper.BufferObject
	fontTexture uint32
}

// New creates the ImGui context and uploads its font atlas. A GL context
// must be current.
func New(lg *log.Logger) (*Overlay, error) {
	o := &Overlay{ctx: imgui.CreateContext(), lg: lg}

	texData := buildFontAtlas()

	shader, err := openglhelper.LoadShaderFS(shaderFS, "shaders/overlay.vert", "shaders/overlay.frag")
	if err != nil {
		imgui.DestroyContext()
		return nil, fmt.Errorf("failed to load overlay shader: %w", err)
	}
	o.shader = shader

	o.vao = openglhelper.NewVAO()
	o.vao.Bind()
	o.vbo = openglhelper.NewBufferObject(gl.ARRAY_BUFFER, 0, nil, openglhelper.StreamDraw)
	o.ebo = openglhelper.NewBufferObject(gl.ELEMENT_ARRAY_BUFFER, 0, nil, openglhelper.StreamDraw)

	vertexSize, posOffset, uvOffset, colOffset := imgui.VertexBufferLayout()
	o.vao.SetVertexAttribPointer(0, 2, gl.FLOAT, false, int32(vertexSize), posOffset)
	o.vao.SetVertexAttribPointer(1, 2, gl.FLOAT, false, int32(vertexSize), uvOffset)
	o.vao.SetVertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), colOffset)
	o.vao.Unbind()

	o.uploadFonts(texData)

	return o, nil
}

// buildFontAtlas rasterizes the default font into the current context's
// atlas. The atlas must be built before the first NewFrame.
func buildFontAtlas() *imgui.TextureData {
	io := imgui.CurrentIO()
	io.SetIniFilename("")
	io.Fonts().AddFontDefault()
	imgui.InternalImFontAtlasBuildMain(io.Fonts())
	return io.Fonts().TexData()
}

func (o *Overlay) uploadFonts(texData *imgui.TextureData) {
	w, h, bpp := texData.Width(), texData.Height(), texData.BytesPerPixel()
	o.lg.Infof("Fonts texture: %dx%d, %d bpp", w, h, bpp)
	pixels := unsafe.Add(nil, texData.Pixels())

	// The atlas is usually alpha-only; expand it to white RGBA.
	rgba := unsafe.Slice((*uint8)(pixels), int(w*h*bpp))
	if bpp != 4 {
		alpha := rgba
		rgba = make([]uint8, 4*int(w*h))
		for i := range int(w * h) {
			rgba[i*4+0] = 255
			rgba[i*4+1] = 255
			rgba[i*4+2] = 255
			rgba[i*4+3] = alpha[i]
		}
	}

	gl.GenTextures(1, &o.fontTexture)
	gl.BindTexture(gl.TEXTURE_2D, o.fontTexture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	texData.SetTexID(imgui.TextureID(o.fontTexture))
	texData.SetStatus(imgui.TextureStatusOK)
}

// Frame runs one UI frame: draw is called between NewFrame and Render to
// submit windows, and the result is drawn into the current framebuffer.
// displaySize is in screen coordinates and framebufferSize in pixels.
func (o *Overlay) Frame(displaySize, framebufferSize [2]float32, dt float32, draw func()) {
	io := imgui.CurrentIO()
	io.SetDisplaySize(imgui.Vec2{X: displaySize[0], Y: displaySize[1]})
	if dt > 0 {
		io.SetDeltaTime(dt)
	}

	imgui.NewFrame()
	if draw != nil {
		draw()
	}
	imgui.Render()

	o.render(displaySize, framebufferSize)
}

func (o *Overlay) render(displaySize, framebufferSize [2]float32) {
	// Avoid rendering when minimized.
	fbWidth, fbHeight := framebufferSize[0], framebufferSize[1]
	if fbWidth <= 0 || fbHeight <= 0 || displaySize[0] <= 0 || displaySize[1] <= 0 {
		return
	}

	drawData := imgui.CurrentDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: fbWidth / displaySize[0],
		Y: fbHeight / displaySize[1],
	})

	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	o.shader.Use()
	o.shader.SetInt("Texture", 0)
	o.shader.SetMat4("ProjMtx", mgl32.Ortho2D(0, displaySize[0], displaySize[1], 0))
	gl.ActiveTexture(gl.TEXTURE0)
	o.vao.Bind()

	indexSize := imgui.IndexBufferLayout()
	indexType := uint32(gl.UNSIGNED_SHORT)
	if indexSize == 4 {
		indexType = gl.UNSIGNED_INT
	}

	for _, commandList := range drawData.CommandLists() {
		vertexBufferPtr, vertexBufferSizeBytes := commandList.GetVertexBuffer()
		indexBufferPtr, indexBufferSizeBytes := commandList.GetIndexBuffer()
		o.vbo.Upload(vertexBufferSizeBytes, vertexBufferPtr)
		o.ebo.Upload(indexBufferSizeBytes, indexBufferPtr)

		for _, command := range commandList.Commands() {
			if command.HasUserCallback() {
				o.lg.Error("Unexpected user callback in imgui draw list")
				continue
			}
			clip := command.ClipRect()
			clip.X = max(clip.X, 0)
			clip.Y = max(clip.Y, 0)
			if clip.Z <= clip.X || clip.W <= clip.Y {
				continue
			}
			gl.Scissor(int32(clip.X), max(int32(fbHeight)-int32(clip.W), 0),
				int32(clip.Z-clip.X), int32(clip.W-clip.Y))
			gl.BindTexture(gl.TEXTURE_2D, uint32(command.TexID()))
			gl.DrawElements(gl.TRIANGLES, int32(command.ElemCount()), indexType,
				gl.PtrOffset(int(command.IdxOffset())*indexSize))
		}
	}

	o.vao.Unbind()
	gl.Disable(gl.SCISSOR_TEST)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Dispose releases the GL objects and destroys the ImGui context.
func (o *Overlay) Dispose() {
	gl.DeleteTextures(1, &o.fontTexture)
	o.vbo.Delete()
	o.ebo.Delete()
	o.vao.Delete()
	o.shader.Delete()
	imgui.DestroyContext()
}
