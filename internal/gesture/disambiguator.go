// Package gesture tells clicks from drags in a stream of pointer events.
package gesture

import (
	"math"
	"time"
)

const (
	// DefaultDragThreshold is the displacement in pixels beyond which a
	// pressed pointer becomes a drag
	DefaultDragThreshold = 5.0

	// DefaultClickCooldown suppresses a click that arrives right after a drag
	// ends, for hosts that report both for one physical gesture
	DefaultClickCooldown = 100 * time.Millisecond
)

// State of the disambiguator
type State int

const (
	Idle State = iota
	Pressed
	Dragging
)

// String returns a string representation of the state
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Pressed:
		return "Pressed"
	case Dragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// Point is a pointer position in screen pixels
type Point struct {
	X float64
	Y float64
}

// Distance returns the euclidean distance between two points
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// DragSession exists between pointer-down and pointer-up
type DragSession struct {
	Start               Point
	Last                Point
	AccumulatedDistance float64
	IsDrag              bool
}

// Target receives the outcome of gestures
type Target interface {
	// Pan is called for every pointer move once the gesture is a drag
	Pan(dx, dy float64)
	// Pick is called once for a completed click
	Pick(x, y float64)
}

// Disambiguator is the Idle -> Pressed -> (Dragging | click) -> Idle state machine.
// It is not safe for concurrent use; feed it from the input goroutine.
type Disambiguator struct {
	target    Target
	threshold float64
	cooldown  time.Duration

	session *DragSession
	dragEnd time.Time
}

// New creates a disambiguator. Non-positive threshold or negative cooldown
// fall back to the defaults.
func New(target Target, threshold float64, cooldown time.Duration) *Disambiguator {
	if threshold <= 0 {
		threshold = DefaultDragThreshold
	}
	if cooldown < 0 {
		cooldown = DefaultClickCooldown
	}

	return &Disambiguator{
		target:    target,
		threshold: threshold,
		cooldown:  cooldown,
	}
}

// State returns the current state
func (d *Disambiguator) State() State {
	switch {
	case d.session == nil:
		return Idle
	case d.session.IsDrag:
		return Dragging
	default:
		return Pressed
	}
}

// Session returns a copy of the active drag session, if any
func (d *Disambiguator) Session() (DragSession, bool) {
	if d.session == nil {
		return DragSession{}, false
	}
	return *d.session, true
}

// Threshold returns the drag threshold in pixels
func (d *Disambiguator) Threshold() float64 {
	return d.threshold
}

// PointerDown starts a session. A down while a session is active restarts it.
func (d *Disambiguator) PointerDown(p Point) {
	d.session = &DragSession{Start: p, Last: p}
}

// PointerMove updates the session. Crossing the threshold turns the
// session into a drag and pans by the full displacement so content stays
// under the pointer; later moves pan by the step.
func (d *Disambiguator) PointerMove(p Point) {
	s := d.session
	if s == nil {
		return
	}

	step := s.Last.Distance(p)
	s.AccumulatedDistance += step

	if s.IsDrag {
		d.target.Pan(p.X-s.Last.X, p.Y-s.Last.Y)
		s.Last = p
		return
	}

	s.Last = p
	if s.Start.Distance(p) > d.threshold {
		s.IsDrag = true
		d.target.Pan(p.X-s.Start.X, p.Y-s.Start.Y)
	}
}

// PointerUp ends the session. A session that never became a drag and
// ends within the threshold, outside the post-drag cooldown, is a click.
// It reports whether a pick was issued.
func (d *Disambiguator) PointerUp(p Point, at time.Time) bool {
	s := d.session
	if s == nil {
		return false
	}
	d.session = nil

	if s.IsDrag {
		d.dragEnd = at
		return false
	}

	if s.Start.Distance(p) > d.threshold {
		// Jumped past the threshold without a move in between: treat as a drag
		d.target.Pan(p.X-s.Start.X, p.Y-s.Start.Y)
		d.dragEnd = at
		return false
	}

	return d.Click(p, at)
}

// Click handles a standalone click callback from hosts that report clicks
// separately from press/release. Clicks during an open session or inside
// the cooldown are dropped; the session's own release decides.
func (d *Disambiguator) Click(p Point, at time.Time) bool {
	if d.session != nil {
		return false
	}
	if !d.dragEnd.IsZero() && at.Sub(d.dragEnd) < d.cooldown {
		return false
	}

	d.target.Pick(p.X, p.Y)
	return true
}

// PointerLeave abandons any active gesture without a pick
func (d *Disambiguator) PointerLeave() {
	d.session = nil
}
