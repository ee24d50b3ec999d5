package scene

import (
	"math"

	"github.com/Carmen-Shannon/g4d-go/common"
	"github.com/Carmen-Shannon/g4d-go/engine/transform"
)

// Default projection parameters of a 480x320 viewport.
const (
	DefaultFovY   float32 = math.Pi / 4
	DefaultAspect float32 = 480.0 / 320.0
	DefaultNear   float32 = 0.1
	DefaultFar    float32 = 100
)

// Per-step increments applied by DemoState.Step.
const (
	AngleStep    = 0.011
	DistanceStep = 0.111
)

// DemoDepth is the w distance the demo object is pushed away from the viewer.
const DemoDepth = 20

// DemoScale is the uniform scale of the demo object.
const DemoScale = 10

var (
	demoPlane1A = transform.Vec4{1, 0, 1, 0}.Normalize()
	demoPlane1B = transform.Vec4{0, 1, 0, 1}.Normalize()
	demoPlane2A = transform.Vec4{0, 1, 1, 0}.Normalize()
	demoPlane2B = transform.Vec4{1, 0, 0, 1}.Normalize()
)

// DemoView returns the view used by the tesseract demo: view space remapped so that y, z and w
// play the roles of the look-at axes, looking from the origin along +w with y and z up.
//
// Returns:
//   - transform.Transform: the view transform
func DemoView() transform.Transform {
	v, err := transform.Identity().
		ViewSpace(transform.Vec4{0, 1, 0, 0}, transform.Vec4{0, 0, 1, 0}, transform.Vec4{0, 0, 0, 1}).
		LookAt(transform.Vec4{}, transform.Vec4{0, 0, 0, 1}, transform.Vec4{0, 1, 0, 0}, transform.Vec4{0, 0, 1, 0})
	if err != nil {
		// constant orthonormal inputs
		panic("scene: demo view basis is degenerate: " + err.Error())
	}
	return v
}

// DefaultProjection returns the default perspective projection in column-major order.
//
// Returns:
//   - [16]float32: the projection matrix
func DefaultProjection() [16]float32 {
	return perspective(DefaultFovY, DefaultAspect, DefaultNear, DefaultFar)
}

func perspective(fovY, aspect, near, far float32) [16]float32 {
	var p [16]float32
	common.Perspective(p[:], fovY, aspect, near, far)
	return p
}

// Controls is the input sampled once per demo frame.
type Controls struct {
	// Angle1 advances the first rotation angle.
	Angle1 bool
	// Angle2 advances the second rotation angle.
	Angle2 bool
	// Distance advances the x offset.
	Distance bool
	// Invert reverses the direction of every advance.
	Invert bool
}

// PollControls samples the demo keys: A, S and D advance the two angles and the distance, and
// holding space reverses them.
//
// Parameters:
//   - pressed: the key state query
//
// Returns:
//   - Controls: the sampled controls
func PollControls(pressed common.KeyPressed) Controls {
	return Controls{
		Angle1:   pressed(common.KeyA),
		Angle2:   pressed(common.KeyS),
		Distance: pressed(common.KeyD),
		Invert:   pressed(common.KeySpace),
	}
}

// DemoState holds the interactive parameters of the tesseract demo.
type DemoState struct {
	Angle1 float64
	Angle2 float64
	XDist  float64
}

// Step applies one frame of input.
//
// Parameters:
//   - c: the controls held during the frame
func (d *DemoState) Step(c Controls) {
	dir := 1.0
	if c.Invert {
		dir = -1
	}
	if c.Angle1 {
		d.Angle1 += dir * AngleStep
	}
	if c.Angle2 {
		d.Angle2 += dir * AngleStep
	}
	if c.Distance {
		d.XDist += dir * DistanceStep
	}
}

// Model returns the demo object's model transform: pushed DemoDepth along w and XDist along x,
// rotated in the xz/yw diagonal plane by Angle1 and the yz/xw diagonal plane by Angle2, and
// scaled by DemoScale.
//
// Returns:
//   - transform.Transform: the model transform
func (d DemoState) Model() transform.Transform {
	return transform.Identity().
		Translate(d.XDist, 0, 0, DemoDepth).
		Rotate(d.Angle1, demoPlane1A, demoPlane1B).
		Rotate(d.Angle2, demoPlane2A, demoPlane2B).
		Scale(DemoScale, DemoScale, DemoScale, DemoScale)
}
