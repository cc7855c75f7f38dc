package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mochi/internal/phys"
)

const (
	DefaultFPS        = 60
	DefaultThrowMin   = 0.8
	DefaultPetDelay   = 2.0
	DefaultSleepAfter = 30.0
	DefaultTheme      = "neon"
)

// Config is the on-disk configuration: a partial physics patch merged over
// the engine defaults, plus playground and interaction options.
type Config struct {
	Physics     phys.Patch  `yaml:"physics"`
	Playground  Playground  `yaml:"playground"`
	Interaction Interaction `yaml:"interaction"`
}

type Playground struct {
	FPS   int    `yaml:"fps"`
	Theme string `yaml:"theme"`
	Trail bool   `yaml:"trail"`
}

type Interaction struct {
	ThrowMin   float64 `yaml:"throw_min"`
	PetDelay   float64 `yaml:"pet_delay_seconds"`
	SleepAfter float64 `yaml:"sleep_after_seconds"`
}

func DefaultConfig() *Config {
	return &Config{
		Playground: Playground{
			FPS:   DefaultFPS,
			Theme: DefaultTheme,
			Trail: true,
		},
		Interaction: Interaction{
			ThrowMin:   DefaultThrowMin,
			PetDelay:   DefaultPetDelay,
			SleepAfter: DefaultSleepAfter,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// normalize pulls malformed values back to defaults. Physics fields are
// clamped later by the engine itself.
func (c *Config) normalize() {
	if c.Playground.FPS < 1 || c.Playground.FPS > 240 {
		c.Playground.FPS = DefaultFPS
	}
	if c.Playground.Theme == "" {
		c.Playground.Theme = DefaultTheme
	}
	if c.Interaction.ThrowMin <= 0 {
		c.Interaction.ThrowMin = DefaultThrowMin
	}
	if c.Interaction.PetDelay <= 0 {
		c.Interaction.PetDelay = DefaultPetDelay
	}
	if c.Interaction.SleepAfter <= 0 {
		c.Interaction.SleepAfter = DefaultSleepAfter
	}
}
