package phys

import "math"

// Body is the full kinematic state of the mascot: center position,
// orientation, and velocities in container-local coordinates.
type Body struct {
	X          float64
	Y          float64
	Angle      float64
	VX         float64
	VY         float64
	AngularVel float64
}

// Speed returns the magnitude of the linear velocity.
func (b Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// IsValid reports whether every field is finite.
func (b Body) IsValid() bool {
	for _, v := range []float64{b.X, b.Y, b.Angle, b.VX, b.VY, b.AngularVel} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Bounds is the rectangular region the body is confined to. It is re-read
// every step, so a resizing container takes effect immediately.
type Bounds struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

func (b Bounds) Right() float64  { return b.Left + b.Width }
func (b Bounds) Bottom() float64 { return b.Top + b.Height }

// Size is the body's visual footprint. Collision clamping keeps the body's
// edges, not its center, inside the bounds.
type Size struct {
	Width  float64
	Height float64
}
