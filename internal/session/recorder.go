// Package session records playground sessions — the mascot's trajectory and
// interaction events — and persists them for later plotting and export.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/mochi/internal/mascot"
)

// Frame is one sampled snapshot of the public state.
type Frame struct {
	T          float64
	X          float64
	Y          float64
	Angle      float64
	Expression string
}

// Event marks an interaction during the session.
type Event struct {
	T    float64 `json:"t"`
	Kind string  `json:"kind"` // throw, bounce, pet, toss
	VX   float64 `json:"vx,omitempty"`
	VY   float64 `json:"vy,omitempty"`
}

// Recorder accumulates frames and events for a single session.
type Recorder struct {
	mu     sync.Mutex
	id     string
	start  time.Time
	frames []Frame
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{
		id:    uuid.NewString()[:8],
		start: time.Now(),
	}
}

func (r *Recorder) ID() string { return r.id }

func (r *Recorder) elapsed() float64 {
	return time.Since(r.start).Seconds()
}

// RecordFrame samples the published state once per host frame.
func (r *Recorder) RecordFrame(st mascot.PublicState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, Frame{
		T:          r.elapsed(),
		X:          st.X,
		Y:          st.Y,
		Angle:      st.Angle,
		Expression: string(st.Expression),
	})
}

func (r *Recorder) RecordThrow(vx, vy float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{T: r.elapsed(), Kind: "throw", VX: vx, VY: vy})
}

func (r *Recorder) RecordBounce() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{T: r.elapsed(), Kind: "bounce"})
}

func (r *Recorder) RecordPet() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{T: r.elapsed(), Kind: "pet"})
}

// Snapshot returns copies of the recorded frames and events.
func (r *Recorder) Snapshot() ([]Frame, []Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	frames := make([]Frame, len(r.frames))
	copy(frames, r.frames)
	events := make([]Event, len(r.events))
	copy(events, r.events)
	return frames, events
}
