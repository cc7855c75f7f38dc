// Package stats accumulates per-tick session metrics: how far the mascot
// traveled, how often it hit a wall, how fast it went.
package stats

import (
	"math"
	"sync"

	"github.com/san-kum/mochi/internal/phys"
)

// Metric accumulates one scalar over a session.
type Metric interface {
	Name() string
	Observe(body phys.Body, bounced bool)
	Value() float64
	Reset()
}

type Bounces struct {
	count float64
}

func NewBounces() *Bounces { return &Bounces{} }

func (b *Bounces) Name() string { return "bounces" }

func (b *Bounces) Observe(body phys.Body, bounced bool) {
	if bounced {
		b.count++
	}
}

func (b *Bounces) Value() float64 { return b.count }
func (b *Bounces) Reset()         { b.count = 0 }

type Distance struct {
	started    bool
	lastX      float64
	lastY      float64
	total      float64
}

func NewDistance() *Distance { return &Distance{} }

func (d *Distance) Name() string { return "distance" }

func (d *Distance) Observe(body phys.Body, bounced bool) {
	if d.started {
		d.total += math.Hypot(body.X-d.lastX, body.Y-d.lastY)
	}
	d.started = true
	d.lastX, d.lastY = body.X, body.Y
}

func (d *Distance) Value() float64 { return d.total }

func (d *Distance) Reset() {
	d.started = false
	d.total = 0
}

type PeakSpeed struct {
	max float64
}

func NewPeakSpeed() *PeakSpeed { return &PeakSpeed{} }

func (p *PeakSpeed) Name() string { return "peak_speed" }

func (p *PeakSpeed) Observe(body phys.Body, bounced bool) {
	p.max = math.Max(p.max, body.Speed())
}

func (p *PeakSpeed) Value() float64 { return p.max }
func (p *PeakSpeed) Reset()         { p.max = 0 }

// Airtime counts ticks spent in free motion.
type Airtime struct {
	ticks float64
}

func NewAirtime() *Airtime { return &Airtime{} }

func (a *Airtime) Name() string { return "airtime_ticks" }

func (a *Airtime) Observe(body phys.Body, bounced bool) { a.ticks++ }

func (a *Airtime) Value() float64 { return a.ticks }
func (a *Airtime) Reset()         { a.ticks = 0 }

// Set bundles metrics behind the controller's Observer hook.
type Set struct {
	mu      sync.Mutex
	metrics []Metric
}

// NewSet returns the standard session metrics.
func NewSet() *Set {
	return &Set{metrics: []Metric{
		NewBounces(),
		NewDistance(),
		NewPeakSpeed(),
		NewAirtime(),
	}}
}

// OnTick implements mascot.Observer.
func (s *Set) OnTick(body phys.Body, bounced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.Observe(body, bounced)
	}
}

// Values returns a snapshot of every metric by name.
func (s *Set) Values() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Reset clears every metric.
func (s *Set) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		m.Reset()
	}
}
