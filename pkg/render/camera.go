package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/opal/pkg/bindings"
	"github.com/leterax/opal/pkg/input"
)

// Pose is a camera position and orientation. Angles are in radians. At
// zero pitch and yaw the camera looks down -Z with +Y up; positive yaw
// turns left and positive pitch looks up.
type Pose struct {
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32
}

// PoseLookingAt returns a pose at eye facing target. The result is
// undefined when target is straight above or below eye.
func PoseLookingAt(eye, target mgl32.Vec3) Pose {
	dir := target.Sub(eye).Normalize()
	return Pose{
		Position: eye,
		Pitch:    float32(math.Asin(float64(mgl32.Clamp(dir.Y(), -1, 1)))),
		Yaw:      float32(math.Atan2(float64(-dir.X()), float64(-dir.Z()))),
	}
}

// Rotation is yaw about world +Y applied after pitch about the camera's
// local X axis; that is, yaw first in world terms and then pitch about the
// resulting right axis.
func (p Pose) Rotation() mgl32.Mat4 {
	return mgl32.HomogRotate3DY(p.Yaw).Mul4(mgl32.HomogRotate3DX(p.Pitch))
}

// Basis holds the camera's unit direction vectors in world space.
type Basis struct {
	Forward mgl32.Vec3
	Right   mgl32.Vec3
	Up      mgl32.Vec3
}

// Basis returns the camera's forward, right and up vectors.
func (p Pose) Basis() Basis {
	r := p.Rotation()
	return Basis{
		Forward: r.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3(),
		Right:   r.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3(),
		Up:      r.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3(),
	}
}

// ViewMatrix maps world space into camera space. The rotation is
// orthonormal, so its inverse is its transpose.
func (p Pose) ViewMatrix() mgl32.Mat4 {
	pos := p.Position
	return p.Rotation().Transpose().Mul4(mgl32.Translate3D(-pos.X(), -pos.Y(), -pos.Z()))
}

// InputState is the read-only view of the input manager that the camera
// needs. *input.Manager implements it.
type InputState interface {
	IsDown(c input.Code) bool
	IsJustPressed(c input.Code) bool
	MouseDelta() mgl32.Vec2
}

// CameraController moves a Pose in response to the actions in its
// bindings. Movement never changes orientation; when LookSensitivity is
// positive, pointer motion turns the camera.
type CameraController struct {
	pose     Pose
	bindings bindings.Bindings

	LookSensitivity float32
}

// NewCameraController returns a controller starting at pose, with its pitch
// clamped, and with a copy of b. Mouse look is off until LookSensitivity
// is set.
func NewCameraController(pose Pose, b bindings.Bindings) *CameraController {
	c := &CameraController{bindings: b.Clone()}
	c.SetPose(pose)
	return c
}

// Update advances the pose by one tick of elapsed seconds and reports
// whether the exit action was pressed this frame.
func (c *CameraController) Update(in InputState, elapsed float32) (Pose, bool) {
	basis := c.pose.Basis()

	// Opposing actions cancel before anything is scaled, so holding both
	// leaves the position bit-for-bit unchanged.
	forward := c.axis(in, bindings.Forward, bindings.Back)
	right := c.axis(in, bindings.Right, bindings.Left)
	up := c.axis(in, bindings.Rise, bindings.Fall)

	if forward != 0 || right != 0 || up != 0 {
		step := c.bindings.Speed * elapsed
		disp := basis.Forward.Mul(forward * step).
			Add(basis.Right.Mul(right * step)).
			Add(basis.Up.Mul(up * step))
		c.pose.Position = c.pose.Position.Add(disp)
	}

	if c.LookSensitivity > 0 {
		d := in.MouseDelta()
		c.pose.Yaw -= d.X() * c.LookSensitivity
		c.pose.Pitch = mgl32.Clamp(c.pose.Pitch-d.Y()*c.LookSensitivity, MinPitch, MaxPitch)
	}

	exit := false
	if code := c.bindings.Code(bindings.Exit); code != nil {
		exit = in.IsJustPressed(code)
	}
	return c.pose, exit
}

func (c *CameraController) axis(in InputState, pos, neg bindings.Action) float32 {
	var v float32
	if code := c.bindings.Code(pos); code != nil && in.IsDown(code) {
		v++
	}
	if code := c.bindings.Code(neg); code != nil && in.IsDown(code) {
		v--
	}
	return v
}

// Pose returns the current pose.
func (c *CameraController) Pose() Pose {
	return c.pose
}

// SetPose replaces the pose, clamping pitch to the allowed range.
func (c *CameraController) SetPose(p Pose) {
	p.Pitch = mgl32.Clamp(p.Pitch, MinPitch, MaxPitch)
	c.pose = p
}

// Basis returns the direction vectors of the current pose.
func (c *CameraController) Basis() Basis {
	return c.pose.Basis()
}

// ViewMatrix returns the view matrix of the current pose.
func (c *CameraController) ViewMatrix() mgl32.Mat4 {
	return c.pose.ViewMatrix()
}

// Bindings returns a copy of the bindings in use.
func (c *CameraController) Bindings() bindings.Bindings {
	return c.bindings.Clone()
}

// SetBindings takes effect on the next Update.
func (c *CameraController) SetBindings(b bindings.Bindings) {
	c.bindings = b.Clone()
}

// Projection is a perspective projection that tracks the framebuffer
// aspect ratio.
type Projection struct {
	fov        float32
	width      int
	height     int
	projection mgl32.Mat4
}

// NewProjection returns a projection with the default field of view for a
// framebuffer of the given size.
func NewProjection(width, height int) *Projection {
	p := &Projection{fov: DefaultFOV, width: width, height: height}
	p.update()
	return p
}

func (p *Projection) update() {
	aspect := float32(1)
	if p.width > 0 && p.height > 0 {
		aspect = float32(p.width) / float32(p.height)
	}
	p.projection = mgl32.Perspective(p.fov, aspect, NearPlane, FarPlane)
}

// Resize updates the aspect ratio. A zero-sized framebuffer (a minimized
// window) keeps the previous matrix.
func (p *Projection) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = width, height
	p.update()
}

// SetFOV sets the vertical field of view in radians, clamped to
// [MinFOV, MaxFOV].
func (p *Projection) SetFOV(fov float32) {
	p.fov = mgl32.Clamp(fov, MinFOV, MaxFOV)
	p.update()
}

// FOV returns the vertical field of view in radians.
func (p *Projection) FOV() float32 {
	return p.fov
}

// Matrix returns the current perspective matrix.
func (p *Projection) Matrix() mgl32.Mat4 {
	return p.projection
}
