package config

import "github.com/san-kum/mochi/internal/phys"

// Presets are named physics personalities layered over the defaults.
var Presets = map[string]*Config{
	"floaty": presetWith(phys.Patch{
		Gravity:     phys.Float(0.12),
		Friction:    phys.Float(0.995),
		Restitution: phys.Float(0.8),
	}),
	"bouncy": presetWith(phys.Patch{
		Restitution: phys.Float(0.92),
		Friction:    phys.Float(0.99),
	}),
	"heavy": presetWith(phys.Patch{
		Gravity:     phys.Float(1.4),
		Restitution: phys.Float(0.3),
		Friction:    phys.Float(0.94),
	}),
	"icy": presetWith(phys.Patch{
		Friction:        phys.Float(0.999),
		AngularFriction: phys.Float(0.999),
		Restitution:     phys.Float(0.55),
	}),
}

func presetWith(p phys.Patch) *Config {
	cfg := DefaultConfig()
	cfg.Physics = p
	return cfg
}

// GetPreset returns the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns every preset name.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
