package mascot

import "time"

// DragSample is one pointer position observed during an active drag.
type DragSample struct {
	X  float64
	Y  float64
	At time.Time
}

const sampleCap = 8

// sampleRing keeps the most recent drag samples. The window is small so the
// release velocity reflects the end of the drag, not how it started.
type sampleRing struct {
	buf  [sampleCap]DragSample
	head int
	n    int
}

func (r *sampleRing) reset() {
	r.head = 0
	r.n = 0
}

func (r *sampleRing) push(s DragSample) {
	r.buf[r.head] = s
	r.head = (r.head + 1) % sampleCap
	if r.n < sampleCap {
		r.n++
	}
}

func (r *sampleRing) len() int { return r.n }

// last returns the i-th most recent sample (0 = newest).
func (r *sampleRing) last(i int) DragSample {
	idx := (r.head - 1 - i + 2*sampleCap) % sampleCap
	return r.buf[idx]
}

// velocity estimates the release velocity in cells per tick from the two
// most recent samples. A missing or zero-length time delta yields no
// velocity rather than a division by zero.
func (r *sampleRing) velocity(tick time.Duration) (vx, vy float64, ok bool) {
	if r.n < 2 {
		return 0, 0, false
	}
	newest, prev := r.last(0), r.last(1)
	dt := newest.At.Sub(prev.At).Seconds()
	if dt <= 1e-6 {
		return 0, 0, false
	}
	perSecX := (newest.X - prev.X) / dt
	perSecY := (newest.Y - prev.Y) / dt
	return perSecX * tick.Seconds(), perSecY * tick.Seconds(), true
}
