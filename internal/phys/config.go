package phys

import "math"

const (
	DefaultGravity         = 0.5
	DefaultFriction        = 0.98
	DefaultAngularFriction = 0.97
	DefaultRestitution     = 0.65
	DefaultMaxSpeed        = 40.0
	DefaultRestEpsilon     = 0.15
	DefaultSpinTransfer    = 0.04
)

// Config holds the engine's numeric tunables. Units are pixels (cells) and
// ticks: Gravity is added to VY each step, Friction and AngularFriction are
// per-step keep fractions, Restitution is the velocity fraction reflected by
// a wall.
type Config struct {
	Gravity         float64
	Friction        float64
	AngularFriction float64
	Restitution     float64
	MaxSpeed        float64
	RestEpsilon     float64
	SpinTransfer    float64
}

// DefaultConfig returns tunables sized for a terminal-cell playground
// stepped at roughly 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		Gravity:         DefaultGravity,
		Friction:        DefaultFriction,
		AngularFriction: DefaultAngularFriction,
		Restitution:     DefaultRestitution,
		MaxSpeed:        DefaultMaxSpeed,
		RestEpsilon:     DefaultRestEpsilon,
		SpinTransfer:    DefaultSpinTransfer,
	}
}

// Patch is a partial config update. Nil fields keep their current value, so
// a yaml file only has to name the tunables it wants to change.
type Patch struct {
	Gravity         *float64 `yaml:"gravity,omitempty"`
	Friction        *float64 `yaml:"friction,omitempty"`
	AngularFriction *float64 `yaml:"angular_friction,omitempty"`
	Restitution     *float64 `yaml:"restitution,omitempty"`
	MaxSpeed        *float64 `yaml:"max_speed,omitempty"`
	RestEpsilon     *float64 `yaml:"rest_epsilon,omitempty"`
	SpinTransfer    *float64 `yaml:"spin_transfer,omitempty"`
}

// merge applies p to c, clamping each value into its valid range. Non-finite
// values are dropped rather than rejected.
func (c *Config) merge(p Patch) {
	assign(&c.Gravity, p.Gravity, 0, 10)
	assign(&c.Friction, p.Friction, 0, 1)
	assign(&c.AngularFriction, p.AngularFriction, 0, 1)
	assign(&c.Restitution, p.Restitution, 0, 1)
	assign(&c.MaxSpeed, p.MaxSpeed, 1, 1000)
	assign(&c.RestEpsilon, p.RestEpsilon, 0.001, 10)
	assign(&c.SpinTransfer, p.SpinTransfer, 0, 1)
}

func assign(dst *float64, src *float64, min, max float64) {
	if src == nil {
		return
	}
	v := *src
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	*dst = math.Min(math.Max(v, min), max)
}

// Float is a convenience for building patches in code.
func Float(v float64) *float64 { return &v }
