package mascot_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mochi/internal/mascot"
	"github.com/san-kum/mochi/internal/phys"
)

type throwCall struct{ vx, vy float64 }

var _ = Describe("Controller", func() {
	var (
		engine  *phys.Engine
		sched   *mascot.ManualScheduler
		clock   time.Time
		ctrl    *mascot.Controller
		thrown  []throwCall
		bounces int
	)

	// advance moves both the drag-sample clock and the scheduler's
	// virtual time.
	advance := func(d time.Duration) {
		clock = clock.Add(d)
		sched.Advance(d)
	}

	// pump runs frame callbacks until the loop stops on its own.
	pump := func(max int) {
		for i := 0; i < max && sched.Pending() > 0; i++ {
			sched.Step()
			advance(mascot.DefaultTick)
		}
	}

	BeforeEach(func() {
		engine = phys.NewEngine()
		sched = mascot.NewManualScheduler()
		clock = time.Unix(0, 0)
		thrown = nil
		bounces = 0

		ctrl = mascot.New(engine, mascot.Config{
			StartX:    40,
			StartY:    10,
			Seed:      1,
			Scheduler: sched,
			Now:       func() time.Time { return clock },
			OnThrow:   func(vx, vy float64) { thrown = append(thrown, throwCall{vx, vy}) },
			OnBounce:  func() { bounces++ },
		})
		ctrl.SetBounds(phys.Bounds{Left: 0, Top: 0, Width: 80, Height: 24})
	})

	AfterEach(func() {
		ctrl.Close()
	})

	Describe("drag start", func() {
		It("marks the state dragging with a startled cue", func() {
			ctrl.DragStart(150, 200)

			st := ctrl.State()
			Expect(st.Dragging).To(BeTrue())
			Expect(st.Animating).To(BeFalse())
			Expect(st.Expression).To(Equal(mascot.ExpressionSurprised))
		})

		It("is a no-op without an attached container", func() {
			detached := mascot.New(engine, mascot.Config{
				StartX: 40, StartY: 10, Scheduler: sched,
			})
			defer detached.Close()

			before := detached.State()
			detached.DragStart(10, 10)

			Expect(detached.State()).To(Equal(before))
		})

		It("drops non-finite pointer coordinates", func() {
			ctrl.DragStart(math.NaN(), 5)
			Expect(ctrl.State().Dragging).To(BeFalse())

			ctrl.DragStart(math.Inf(1), 5)
			Expect(ctrl.State().Dragging).To(BeFalse())
		})

		It("cancels a running animation loop", func() {
			ctrl.Toss()
			Expect(sched.Pending()).To(Equal(1))

			ctrl.DragStart(40, 10)

			Expect(sched.Pending()).To(BeZero())
			Expect(ctrl.State().Dragging).To(BeTrue())
		})
	})

	Describe("drag move", func() {
		It("follows the pointer without changing the angle", func() {
			ctrl.DragStart(40, 10)
			startAngle := ctrl.State().Angle

			advance(10 * time.Millisecond)
			ctrl.DragMove(50, 14)

			st := ctrl.State()
			Expect(st.X).To(BeNumerically("==", 50))
			Expect(st.Y).To(BeNumerically("==", 14))
			Expect(st.Angle).To(Equal(startAngle))
		})

		It("is ignored while not dragging", func() {
			before := ctrl.State()
			ctrl.DragMove(70, 20)
			Expect(ctrl.State()).To(Equal(before))
		})

		It("drops non-finite coordinates mid-drag", func() {
			ctrl.DragStart(40, 10)
			advance(10 * time.Millisecond)
			ctrl.DragMove(math.NaN(), math.Inf(-1))

			st := ctrl.State()
			Expect(st.X).To(BeNumerically("==", 40))
			Expect(st.Y).To(BeNumerically("==", 10))
		})
	})

	Describe("drag end", func() {
		It("throws when the release velocity clears the threshold", func() {
			ctrl.DragStart(100, 10)
			advance(10 * time.Millisecond)
			ctrl.DragMove(110, 12)
			advance(10 * time.Millisecond)
			ctrl.DragMove(130, 14)

			ctrl.DragEnd()

			st := ctrl.State()
			Expect(thrown).To(HaveLen(1))
			Expect(thrown[0].vx).To(BeNumerically(">", 0))
			Expect(st.Expression).To(Equal(mascot.ExpressionHappy))
			Expect(st.Dragging).To(BeFalse())
			Expect(st.Animating).To(BeTrue())
		})

		It("does not throw a barely-moved release", func() {
			ctrl.DragStart(100, 10)
			advance(10 * time.Millisecond)
			ctrl.DragMove(100.05, 10)

			ctrl.DragEnd()

			Expect(thrown).To(BeEmpty())
			st := ctrl.State()
			Expect(st.Dragging).To(BeFalse())
			Expect(st.Animating).To(BeFalse())
		})

		It("treats a zero time delta as no motion", func() {
			ctrl.DragStart(100, 10)
			ctrl.DragMove(160, 20) // same instant, no clock advance

			ctrl.DragEnd()

			Expect(thrown).To(BeEmpty())
			Expect(ctrl.State().Animating).To(BeFalse())
		})

		It("clamps a release outside the container back inside", func() {
			ctrl.DragStart(40, 10)
			advance(10 * time.Millisecond)
			ctrl.DragMove(400, 10) // far past the right wall

			ctrl.DragEnd()
			pump(500)

			st := ctrl.State()
			Expect(st.X).To(BeNumerically("<=", 80))
		})

		It("is ignored while not dragging", func() {
			ctrl.DragEnd()
			Expect(thrown).To(BeEmpty())
		})

		It("estimates from recent samples only", func() {
			// A long fast sweep followed by holding still must not throw.
			ctrl.DragStart(10, 10)
			for i := 1; i <= 6; i++ {
				advance(10 * time.Millisecond)
				ctrl.DragMove(10+float64(i)*10, 10)
			}
			for i := 0; i < 6; i++ {
				advance(10 * time.Millisecond)
				ctrl.DragMove(70, 10)
			}

			ctrl.DragEnd()

			Expect(thrown).To(BeEmpty())
		})
	})

	Describe("toss", func() {
		It("animates and fires exactly one throw", func() {
			ctrl.Toss()

			Expect(ctrl.State().Animating).To(BeTrue())
			Expect(thrown).To(HaveLen(1))

			speed := math.Hypot(thrown[0].vx, thrown[0].vy)
			Expect(speed).To(BeNumerically("<=", engine.Config().MaxSpeed))
			Expect(thrown[0].vy).To(BeNumerically("<", 0), "toss goes upward")
		})

		It("stops the loop once the body settles", func() {
			// Kill nearly all velocity each tick so rest follows quickly.
			ctrl.UpdatePhysics(phys.Patch{
				Gravity:  phys.Float(0),
				Friction: phys.Float(0.001),
			})

			ctrl.Toss()
			Expect(ctrl.State().Animating).To(BeTrue())

			pump(100)

			st := ctrl.State()
			Expect(st.Animating).To(BeFalse())
			Expect(sched.Pending()).To(BeZero())
		})

		It("is ignored while dragging", func() {
			ctrl.DragStart(40, 10)
			ctrl.Toss()

			Expect(thrown).To(BeEmpty())
			Expect(ctrl.State().Dragging).To(BeTrue())
		})
	})

	Describe("bounce", func() {
		It("fires the hook and shows the dizzy cue on impact", func() {
			ctrl.UpdatePhysics(phys.Patch{Gravity: phys.Float(0), Friction: phys.Float(1)})

			// Throw hard at the floor via a fast downward drag.
			ctrl.DragStart(40, 5)
			advance(10 * time.Millisecond)
			ctrl.DragMove(40, 13)
			advance(10 * time.Millisecond)
			ctrl.DragMove(40, 21)
			ctrl.DragEnd()
			Expect(thrown).To(HaveLen(1))

			for i := 0; i < 10 && bounces == 0; i++ {
				sched.Step()
			}

			Expect(bounces).To(BeNumerically(">=", 1))
			Expect(ctrl.State().Expression).To(Equal(mascot.ExpressionDizzy))
		})
	})

	Describe("pet", func() {
		It("shows love and reverts to idle after the delay", func() {
			ctrl.Pet()
			Expect(ctrl.State().Expression).To(Equal(mascot.ExpressionLove))

			advance(2 * time.Second)

			Expect(ctrl.State().Expression).To(Equal(mascot.ExpressionIdle))
		})

		It("restarts the reversion timer on repeated pets", func() {
			ctrl.Pet()
			advance(1500 * time.Millisecond)
			ctrl.Pet()
			advance(1500 * time.Millisecond)

			Expect(ctrl.State().Expression).To(Equal(mascot.ExpressionLove))

			advance(600 * time.Millisecond)
			Expect(ctrl.State().Expression).To(Equal(mascot.ExpressionIdle))
		})

		It("reverts to the drag cue when petted mid-drag", func() {
			ctrl.DragStart(40, 10)
			ctrl.Pet()
			Expect(ctrl.State().Expression).To(Equal(mascot.ExpressionLove))

			advance(2 * time.Second)

			Expect(ctrl.State().Expression).To(Equal(mascot.ExpressionSurprised))
		})
	})

	Describe("sleep", func() {
		It("dozes off after resting undisturbed", func() {
			ctrl.DragStart(40, 10)
			ctrl.DragEnd() // below threshold, settles immediately

			advance(mascot.DefaultSleepAfter)

			Expect(ctrl.State().Expression).To(Equal(mascot.ExpressionSleeping))
		})

		It("does not doze when interacted with", func() {
			ctrl.DragStart(40, 10)
			ctrl.DragEnd()

			advance(15 * time.Second)
			ctrl.Toss()
			advance(mascot.DefaultSleepAfter)

			Expect(ctrl.State().Expression).NotTo(Equal(mascot.ExpressionSleeping))
		})
	})

	Describe("close", func() {
		It("cancels the loop and pending timers", func() {
			ctrl.Toss()
			ctrl.Pet()
			Expect(sched.Pending()).To(Equal(1))

			ctrl.Close()

			Expect(sched.Pending()).To(BeZero())

			// Interaction after close stays inert.
			ctrl.DragStart(40, 10)
			Expect(ctrl.State().Dragging).To(BeFalse())
		})
	})

	Describe("physics updates", func() {
		It("forwards partial patches to the engine", func() {
			ctrl.UpdatePhysics(phys.Patch{Gravity: phys.Float(0.9)})
			Expect(engine.Config().Gravity).To(Equal(0.9))
		})
	})
})
