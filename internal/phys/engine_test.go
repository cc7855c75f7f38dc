package phys

import (
	"math"
	"testing"
)

func testBounds() Bounds { return Bounds{Left: 0, Top: 0, Width: 100, Height: 50} }
func testSize() Size     { return Size{Width: 6, Height: 2} }

func TestStepGravityPullsDown(t *testing.T) {
	e := NewEngine()
	b := Body{X: 50, Y: 10}

	e.Step(&b, testBounds(), testSize())

	if b.VY <= 0 {
		t.Errorf("expected downward velocity after step, got %f", b.VY)
	}
	if b.Y <= 10 {
		t.Errorf("expected body to fall, y = %f", b.Y)
	}
}

func TestStepFrictionDecaysVelocity(t *testing.T) {
	e := NewEngine()
	e.UpdateConfig(Patch{Gravity: Float(0)})
	b := Body{X: 50, Y: 25, VX: 10, AngularVel: 2}

	e.Step(&b, testBounds(), testSize())

	if b.VX >= 10 {
		t.Errorf("expected vx decay, got %f", b.VX)
	}
	if b.AngularVel >= 2 {
		t.Errorf("expected angular decay, got %f", b.AngularVel)
	}
}

func TestStepKeepsEdgesInsideBounds(t *testing.T) {
	e := NewEngine()
	bounds := testBounds()
	size := testSize()

	starts := []Body{
		{X: 50, Y: 25, VX: 80, VY: 0},
		{X: 50, Y: 25, VX: -80, VY: 0},
		{X: 50, Y: 25, VX: 0, VY: 80},
		{X: 50, Y: 25, VX: 0, VY: -80},
		{X: 2, Y: 48, VX: -30, VY: 30},
	}

	for i, b := range starts {
		for tick := 0; tick < 200; tick++ {
			e.Step(&b, bounds, size)

			if left := b.X - size.Width/2; left < bounds.Left-1e-9 {
				t.Fatalf("case %d tick %d: left edge %f outside bounds", i, tick, left)
			}
			if right := b.X + size.Width/2; right > bounds.Right()+1e-9 {
				t.Fatalf("case %d tick %d: right edge %f outside bounds", i, tick, right)
			}
			if top := b.Y - size.Height/2; top < bounds.Top-1e-9 {
				t.Fatalf("case %d tick %d: top edge %f outside bounds", i, tick, top)
			}
			if bottom := b.Y + size.Height/2; bottom > bounds.Bottom()+1e-9 {
				t.Fatalf("case %d tick %d: bottom edge %f outside bounds", i, tick, bottom)
			}
		}
	}
}

func TestStepReportsBounce(t *testing.T) {
	e := NewEngine()
	b := Body{X: 50, Y: 25, VX: 80}

	if !e.Step(&b, testBounds(), testSize()) {
		t.Error("expected bounce against right wall")
	}
	if b.VX >= 0 {
		t.Errorf("expected reflected vx, got %f", b.VX)
	}
}

func TestStepRestitutionScalesReflection(t *testing.T) {
	e := NewEngine()
	e.UpdateConfig(Patch{Gravity: Float(0), Friction: Float(1), Restitution: Float(0.5)})
	b := Body{X: 50, Y: 25, VX: 60}

	e.Step(&b, testBounds(), testSize())

	if math.Abs(b.VX+30) > 1e-9 {
		t.Errorf("expected vx -30 after half-restitution bounce, got %f", b.VX)
	}
}

func TestStepRestingBodyIsIdempotent(t *testing.T) {
	e := NewEngine()
	b := Body{X: 50, Y: 25}

	// Settle onto the floor first.
	for i := 0; i < 500; i++ {
		e.Step(&b, testBounds(), testSize())
	}
	if !e.AtRest(b) {
		t.Fatalf("body did not settle, v = (%f, %f)", b.VX, b.VY)
	}

	settled := b
	for i := 0; i < 50; i++ {
		if bounced := e.Step(&b, testBounds(), testSize()); bounced {
			t.Fatalf("tick %d: resting body reported a bounce", i)
		}
	}

	if math.Abs(b.X-settled.X) > 1e-9 || math.Abs(b.Y-settled.Y) > 1e-9 {
		t.Errorf("resting body drifted from (%f, %f) to (%f, %f)",
			settled.X, settled.Y, b.X, b.Y)
	}
}

func TestStepRestingAwayFromBoundary(t *testing.T) {
	e := NewEngine()
	e.UpdateConfig(Patch{Gravity: Float(0)})
	b := Body{X: 50, Y: 25}

	before := b
	for i := 0; i < 10; i++ {
		if bounced := e.Step(&b, testBounds(), testSize()); bounced {
			t.Fatal("free resting body reported a bounce")
		}
	}
	if b != before {
		t.Errorf("free resting body changed: %+v -> %+v", before, b)
	}
}

func TestStepTinyContainerPinsBody(t *testing.T) {
	e := NewEngine()
	tiny := Bounds{Left: 0, Top: 0, Width: 2, Height: 1}
	b := Body{X: 50, Y: 25, VX: 5, VY: 5}

	for i := 0; i < 20; i++ {
		e.Step(&b, tiny, testSize())
	}

	if b.X < tiny.Left-3 || b.X > tiny.Right()+3 {
		t.Errorf("body escaped tiny container, x = %f", b.X)
	}
}

func TestAtRest(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name string
		body Body
		want bool
	}{
		{"stationary", Body{X: 500, Y: -3}, true},
		{"slow", Body{VX: 0.01, VY: 0.01}, true},
		{"moving", Body{VX: 5}, false},
		{"falling", Body{VY: 5}, false},
		{"spinning", Body{AngularVel: 2}, false},
	}

	for _, tt := range tests {
		if got := e.AtRest(tt.body); got != tt.want {
			t.Errorf("%s: AtRest = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestApplyDrag(t *testing.T) {
	e := NewEngine()
	b := Body{X: 10, Y: 10, VX: 7, VY: -3, AngularVel: 1}

	e.ApplyDrag(&b, 5, -2)

	if b.X != 15 || b.Y != 8 {
		t.Errorf("expected position (15, 8), got (%f, %f)", b.X, b.Y)
	}
	if b.VX != 0 || b.VY != 0 || b.AngularVel != 0 {
		t.Errorf("expected zeroed velocity, got (%f, %f, %f)", b.VX, b.VY, b.AngularVel)
	}
}

func TestApplyDragIgnoresBounds(t *testing.T) {
	e := NewEngine()
	b := Body{X: 10, Y: 10}

	e.ApplyDrag(&b, -500, -500)

	if b.X != -490 || b.Y != -490 {
		t.Errorf("drag should not clamp, got (%f, %f)", b.X, b.Y)
	}
}

func TestThrow(t *testing.T) {
	e := NewEngine()
	b := Body{X: 10, Y: 10}

	e.Throw(&b, 6, -9)

	if b.VX != 6 || b.VY != -9 {
		t.Errorf("expected velocity (6, -9), got (%f, %f)", b.VX, b.VY)
	}
	if b.X != 10 || b.Y != 10 {
		t.Error("throw must not move the body")
	}
}

func TestThrowClampsToMaxSpeed(t *testing.T) {
	e := NewEngine()
	e.UpdateConfig(Patch{MaxSpeed: Float(10)})
	b := Body{}

	e.Throw(&b, 300, -400)

	if speed := b.Speed(); math.Abs(speed-10) > 1e-9 {
		t.Errorf("expected speed clamped to 10, got %f", speed)
	}
	// Direction preserved.
	if b.VX <= 0 || b.VY >= 0 {
		t.Errorf("expected direction (+, -), got (%f, %f)", b.VX, b.VY)
	}
}
