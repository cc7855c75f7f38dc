package mascot

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/mochi/internal/phys"
)

type phase int

const (
	phaseIdle phase = iota
	phaseDragging
	phaseAnimating
	phaseResting
)

// PublicState is the read-only snapshot published to the renderer after
// every mutation.
type PublicState struct {
	X          float64
	Y          float64
	Angle      float64
	Dragging   bool
	Animating  bool
	Expression Expression
}

// Observer is notified after every simulation tick while the mascot is in
// free motion.
type Observer interface {
	OnTick(body phys.Body, bounced bool)
}

const (
	DefaultThrowMin   = 0.8
	DefaultPetDelay   = 2 * time.Second
	DefaultSleepAfter = 30 * time.Second
	DefaultTick       = time.Second / 60

	tossMaxX = 8.0
	tossMinY = 4.0
	tossMaxY = 12.0
)

// Config wires a Controller. Zero fields fall back to defaults; Bounds may
// be left nil and supplied later via SetBounds.
type Config struct {
	Size       phys.Size
	StartX     float64
	StartY     float64
	ThrowMin   float64       // minimum estimated release speed for a throw
	PetDelay   time.Duration // love expression reversion delay
	SleepAfter time.Duration // resting time before the mascot dozes off
	Tick       time.Duration // nominal frame interval
	Seed       int64

	Scheduler Scheduler
	Bounds    func() (phys.Bounds, bool)
	Now       func() time.Time
	Logger    *zap.Logger

	OnThrow  func(vx, vy float64)
	OnBounce func()
}

func DefaultConfig() Config {
	return Config{
		Size:       phys.Size{Width: 7, Height: 1},
		StartX:     10,
		StartY:     5,
		ThrowMin:   DefaultThrowMin,
		PetDelay:   DefaultPetDelay,
		SleepAfter: DefaultSleepAfter,
		Tick:       DefaultTick,
	}
}

// Controller owns the mascot's body and interaction state. All methods are
// safe for concurrent use, though the intended model is a single host loop.
type Controller struct {
	mu     sync.Mutex
	engine *phys.Engine
	body   phys.Body
	size   phys.Size

	cfg       Config
	sched     Scheduler
	boundsFn  func() (phys.Bounds, bool)
	static    phys.Bounds
	staticSet bool
	now       func() time.Time
	log       *zap.Logger
	rng       *rand.Rand

	current    phase
	expr       Expression
	samples    sampleRing
	loopCancel func()
	petCancel  func()
	dozeCancel func()
	observers  []Observer
	state      PublicState
	closed     bool
}

// New builds a Controller around the given engine. The engine is shared, not
// copied: live UpdatePhysics calls affect the body immediately.
func New(engine *phys.Engine, cfg Config) *Controller {
	def := DefaultConfig()
	if cfg.Size == (phys.Size{}) {
		cfg.Size = def.Size
	}
	if cfg.ThrowMin <= 0 {
		cfg.ThrowMin = def.ThrowMin
	}
	if cfg.PetDelay <= 0 {
		cfg.PetDelay = def.PetDelay
	}
	if cfg.SleepAfter <= 0 {
		cfg.SleepAfter = def.SleepAfter
	}
	if cfg.Tick <= 0 {
		cfg.Tick = def.Tick
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = NewFrameScheduler(cfg.Tick)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c := &Controller{
		engine:   engine,
		body:     phys.Body{X: cfg.StartX, Y: cfg.StartY},
		size:     cfg.Size,
		cfg:      cfg,
		sched:    cfg.Scheduler,
		boundsFn: cfg.Bounds,
		now:      cfg.Now,
		log:      cfg.Logger,
		rng:      rand.New(rand.NewSource(seed)),
		current:  phaseIdle,
		expr:     ExpressionIdle,
	}
	c.publishLocked()
	return c
}

// State returns the latest published snapshot.
func (c *Controller) State() PublicState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Body returns a copy of the underlying kinematic state.
func (c *Controller) Body() phys.Body {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.body
}

// SetBounds attaches a fixed container rectangle. A Bounds provider given at
// construction takes precedence.
func (c *Controller) SetBounds(b phys.Bounds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.static = b
	c.staticSet = true
}

// AddObserver registers a per-tick observer.
func (c *Controller) AddObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// UpdatePhysics forwards a partial tunable update to the engine. Accepted at
// any time, including mid-flight.
func (c *Controller) UpdatePhysics(p phys.Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engine.UpdateConfig(p)
}

// DragStart begins a manual drag at the given pointer position. It is a
// no-op without an attached container or with non-finite coordinates.
func (c *Controller) DragStart(x, y float64) {
	c.mu.Lock()
	if c.closed || !finite(x, y) {
		c.mu.Unlock()
		return
	}
	if _, ok := c.boundsLocked(); !ok {
		c.mu.Unlock()
		return
	}
	if c.current == phaseDragging {
		c.mu.Unlock()
		return
	}

	c.stopLoopLocked()
	c.cancelTimersLocked()
	c.current = phaseDragging
	c.samples.reset()
	c.samples.push(DragSample{X: x, Y: y, At: c.now()})
	c.expr = ExpressionSurprised
	c.publishLocked()
	c.log.Debug("drag start", zap.Float64("x", x), zap.Float64("y", y))
	c.mu.Unlock()
}

// DragMove feeds one pointer position while dragging. Events arriving
// outside a drag, or with non-finite coordinates, are dropped.
func (c *Controller) DragMove(x, y float64) {
	c.mu.Lock()
	if c.closed || c.current != phaseDragging || !finite(x, y) {
		c.mu.Unlock()
		return
	}

	prev := c.samples.last(0)
	c.engine.ApplyDrag(&c.body, x-prev.X, y-prev.Y)
	c.samples.push(DragSample{X: x, Y: y, At: c.now()})
	c.publishLocked()
	c.mu.Unlock()
}

// DragEnd releases the drag. The body is clamped back into bounds by one
// forced step; if the estimated release speed clears the throw threshold the
// body is thrown and OnThrow fires, otherwise it is left at rest.
func (c *Controller) DragEnd() {
	c.mu.Lock()
	if c.closed || c.current != phaseDragging {
		c.mu.Unlock()
		return
	}

	vx, vy, ok := c.samples.velocity(c.cfg.Tick)

	if b, attached := c.boundsLocked(); attached {
		c.engine.Step(&c.body, b, c.size)
	}
	c.body.VX, c.body.VY, c.body.AngularVel = 0, 0, 0

	var fire func()
	if ok && math.Hypot(vx, vy) >= c.cfg.ThrowMin {
		c.engine.Throw(&c.body, vx, vy)
		tvx, tvy := c.body.VX, c.body.VY
		c.current = phaseAnimating
		c.expr = ExpressionHappy
		c.startLoopLocked()
		c.log.Debug("throw", zap.Float64("vx", tvx), zap.Float64("vy", tvy))
		if h := c.cfg.OnThrow; h != nil {
			fire = func() { h(tvx, tvy) }
		}
	} else {
		c.current = phaseResting
		c.expr = ExpressionIdle
		c.armDozeLocked()
	}
	c.publishLocked()
	c.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// Toss launches the mascot with a randomized impulse. Ignored while
// dragging or without an attached container.
func (c *Controller) Toss() {
	c.mu.Lock()
	if c.closed || c.current == phaseDragging {
		c.mu.Unlock()
		return
	}
	if _, ok := c.boundsLocked(); !ok {
		c.mu.Unlock()
		return
	}

	vx := (c.rng.Float64()*2 - 1) * tossMaxX
	vy := -(tossMinY + c.rng.Float64()*(tossMaxY-tossMinY))
	c.engine.Throw(&c.body, vx, vy)
	tvx, tvy := c.body.VX, c.body.VY

	c.cancelTimersLocked()
	c.current = phaseAnimating
	c.expr = ExpressionHappy
	c.startLoopLocked()
	c.publishLocked()
	c.log.Debug("toss", zap.Float64("vx", tvx), zap.Float64("vy", tvy))
	h := c.cfg.OnThrow
	c.mu.Unlock()

	if h != nil {
		h(tvx, tvy)
	}
}

// Pet shows the love expression and reverts it after the configured delay,
// independent of drag or animation state.
func (c *Controller) Pet() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.petCancel != nil {
		c.petCancel()
	}
	c.expr = ExpressionLove
	c.petCancel = c.sched.After(c.cfg.PetDelay, c.revertExpression)
	c.publishLocked()
	c.log.Debug("pet")
	c.mu.Unlock()
}

// Reset cancels any motion and puts the mascot back at its start position.
func (c *Controller) Reset() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.stopLoopLocked()
	c.cancelTimersLocked()
	c.body = phys.Body{X: c.cfg.StartX, Y: c.cfg.StartY}
	c.current = phaseIdle
	c.expr = ExpressionIdle
	c.publishLocked()
	c.mu.Unlock()
}

// Close cancels the frame loop and all pending timers. The controller is
// inert afterwards; Close is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopLoopLocked()
	c.cancelTimersLocked()
}

// tick advances the simulation one frame while animating.
func (c *Controller) tick() {
	c.mu.Lock()
	if c.closed || c.current != phaseAnimating {
		c.mu.Unlock()
		return
	}

	b, ok := c.boundsLocked()
	if !ok {
		// Container went away mid-flight; park the body.
		c.stopLoopLocked()
		c.current = phaseResting
		c.publishLocked()
		c.mu.Unlock()
		return
	}

	bounced := c.engine.Step(&c.body, b, c.size)
	body := c.body

	var fire func()
	if bounced {
		c.expr = ExpressionDizzy
		if h := c.cfg.OnBounce; h != nil {
			fire = h
		}
		c.log.Debug("bounce",
			zap.Float64("x", body.X), zap.Float64("y", body.Y))
	}

	if c.engine.AtRest(c.body) {
		c.stopLoopLocked()
		c.current = phaseResting
		c.expr = ExpressionIdle
		c.armDozeLocked()
	}

	c.publishLocked()
	obs := make([]Observer, len(c.observers))
	copy(obs, c.observers)
	c.mu.Unlock()

	for _, o := range obs {
		o.OnTick(body, bounced)
	}
	if fire != nil {
		fire()
	}
}

func (c *Controller) revertExpression() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.petCancel = nil
	c.expr = c.baseExpressionLocked()
	c.publishLocked()
	c.mu.Unlock()
}

func (c *Controller) doze() {
	c.mu.Lock()
	if c.closed || c.current != phaseResting || c.expr != ExpressionIdle {
		c.mu.Unlock()
		return
	}
	c.dozeCancel = nil
	c.expr = ExpressionSleeping
	c.publishLocked()
	c.mu.Unlock()
}

func (c *Controller) baseExpressionLocked() Expression {
	switch c.current {
	case phaseDragging:
		return ExpressionSurprised
	case phaseAnimating:
		return ExpressionHappy
	default:
		return ExpressionIdle
	}
}

func (c *Controller) boundsLocked() (phys.Bounds, bool) {
	if c.boundsFn != nil {
		return c.boundsFn()
	}
	if c.staticSet {
		return c.static, true
	}
	return phys.Bounds{}, false
}

func (c *Controller) startLoopLocked() {
	c.stopLoopLocked()
	c.loopCancel = c.sched.Tick(c.tick)
}

func (c *Controller) stopLoopLocked() {
	if c.loopCancel != nil {
		c.loopCancel()
		c.loopCancel = nil
	}
}

func (c *Controller) cancelTimersLocked() {
	if c.petCancel != nil {
		c.petCancel()
		c.petCancel = nil
	}
	if c.dozeCancel != nil {
		c.dozeCancel()
		c.dozeCancel = nil
	}
}

func (c *Controller) armDozeLocked() {
	if c.dozeCancel != nil {
		c.dozeCancel()
	}
	c.dozeCancel = c.sched.After(c.cfg.SleepAfter, c.doze)
}

func (c *Controller) publishLocked() {
	c.state = PublicState{
		X:          c.body.X,
		Y:          c.body.Y,
		Angle:      c.body.Angle,
		Dragging:   c.current == phaseDragging,
		Animating:  c.current == phaseAnimating,
		Expression: c.expr,
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
