// Package mascot implements the interaction layer around the physics
// engine: a small state machine (idle, dragging, animating, resting) with a
// transient expression overlay, drag-to-throw velocity estimation, and a
// cooperative per-frame update loop.
//
// The [Controller] owns the single simulated body. Hosts feed it pointer
// events through [Controller.DragStart], [Controller.DragMove] and
// [Controller.DragEnd], and read back a [PublicState] snapshot each frame.
// Frame timing is abstracted behind [Scheduler], so the loop runs equally
// well off real timers ([FrameScheduler]) or a host-pumped clock
// ([ManualScheduler]).
//
// Every anomaly degrades to "no state change": missing bounds make
// interaction inert, non-finite pointer input is dropped, and zero-length
// drags never throw. No method panics or returns an error.
package mascot
