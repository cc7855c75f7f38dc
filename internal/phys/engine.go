// Package phys implements the mascot's rigid-body integrator: semi-implicit
// Euler stepping under gravity and multiplicative friction, with wall
// collisions resolved by clamping and restitution-scaled reflection.
package phys

import "math"

// Engine advances a Body one discrete tick at a time. It holds only its
// Config; bodies are owned by the caller and never retained across calls.
type Engine struct {
	cfg Config
}

func NewEngine() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

// Config returns a copy of the current tunables.
func (e *Engine) Config() Config { return e.cfg }

// UpdateConfig merges the patch into the current config. Out-of-range values
// are clamped and non-finite values dropped; it never fails. Applying the
// same patch twice is a no-op.
func (e *Engine) UpdateConfig(p Patch) {
	e.cfg.merge(p)
}

// Step integrates one tick: gravity, friction decay, position advance, then
// edge clamping against bounds. The body is mutated in place. The return
// value reports whether a wall was hit with meaningful speed.
//
// A body resting on a wall stays put: the single tick of gravity it
// accumulates is absorbed by the clamp without a rebound, so repeated calls
// neither oscillate nor drift.
func (e *Engine) Step(b *Body, bounds Bounds, size Size) (bounced bool) {
	cfg := e.cfg

	b.VY += cfg.Gravity
	b.VX *= cfg.Friction
	b.VY *= cfg.Friction
	b.AngularVel *= cfg.AngularFriction

	if speed := b.Speed(); speed > cfg.MaxSpeed {
		scale := cfg.MaxSpeed / speed
		b.VX *= scale
		b.VY *= scale
	}

	b.X += b.VX
	b.Y += b.VY
	b.Angle += b.AngularVel

	// An impact slower than this settles instead of rebounding. Two ticks
	// of gravity covers the speed a grounded body picks up between clamps.
	settle := math.Max(2*cfg.Gravity, cfg.RestEpsilon)

	halfW := size.Width / 2
	halfH := size.Height / 2
	minX, maxX := bounds.Left+halfW, bounds.Right()-halfW
	minY, maxY := bounds.Top+halfH, bounds.Bottom()-halfH

	// A container smaller than the body pins it to the midline.
	if minX > maxX {
		mid := (minX + maxX) / 2
		minX, maxX = mid, mid
	}
	if minY > maxY {
		mid := (minY + maxY) / 2
		minY, maxY = mid, mid
	}

	if b.X < minX {
		b.X = minX
		bounced = e.reflect(&b.VX, settle) || bounced
	} else if b.X > maxX {
		b.X = maxX
		bounced = e.reflect(&b.VX, settle) || bounced
	}

	if b.Y < minY {
		b.Y = minY
		bounced = e.reflect(&b.VY, settle) || bounced
	} else if b.Y > maxY {
		b.Y = maxY
		floorHit := e.reflect(&b.VY, settle)
		bounced = floorHit || bounced
		// Ground contact converts slide into roll.
		b.AngularVel += b.VX * cfg.SpinTransfer
	}

	return bounced
}

// reflect inverts a velocity component scaled by restitution. Impacts below
// the settle threshold are absorbed and not reported as bounces.
func (e *Engine) reflect(v *float64, settle float64) bool {
	impact := math.Abs(*v)
	if impact <= settle {
		*v = 0
		return false
	}
	*v = -*v * e.cfg.Restitution
	return true
}

// AtRest reports whether both linear and angular speed are below the rest
// epsilon. Pure; position is irrelevant.
func (e *Engine) AtRest(b Body) bool {
	return b.Speed() < e.cfg.RestEpsilon && math.Abs(b.AngularVel) < e.cfg.RestEpsilon
}

// ApplyDrag moves the body by the live pointer delta and zeroes all
// accumulated velocity, so only the final release decides a throw. Bounds
// are deliberately not consulted; the release step clamps.
func (e *Engine) ApplyDrag(b *Body, dx, dy float64) {
	b.X += dx
	b.Y += dy
	b.VX = 0
	b.VY = 0
	b.AngularVel = 0
}

// Throw sets the body's velocity to the given impulse, clamped to MaxSpeed.
// Position is unchanged; subsequent Step calls carry the motion.
func (e *Engine) Throw(b *Body, vx, vy float64) {
	b.VX = vx
	b.VY = vy
	if speed := b.Speed(); speed > e.cfg.MaxSpeed {
		scale := e.cfg.MaxSpeed / speed
		b.VX *= scale
		b.VY *= scale
	}
}
