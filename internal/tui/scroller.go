package tui

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	// defaultSmoothing is the fraction of the remaining distance covered per
	// frame.
	defaultSmoothing = 0.25
	// snapDistance is how close (in columns) an offset must get before it
	// jumps onto the target.
	snapDistance = 0.5
)

// Scroller animates a horizontal offset toward an absolute target with
// exponential easing. It implements gallery.Scroller.
//
// A new target always replaces the previous one, so a later command
// supersedes an animation that is still in flight.
type Scroller struct {
	current   float64
	target    float64
	extent    float64
	bounded   bool
	smoothing float64
}

// NewScroller creates a scroller at offset 0. A smoothing outside (0, 1]
// falls back to the default.
func NewScroller(smoothing float64) *Scroller {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = defaultSmoothing
	}
	return &Scroller{smoothing: smoothing}
}

// ScrollTo sets the target offset. When animated is false the offset jumps
// there immediately.
func (s *Scroller) ScrollTo(offset float64, animated bool) {
	s.target = s.clamp(offset)
	if !animated {
		s.current = s.target
	}
}

// SetExtent bounds offsets to [0, limit]. A negative limit bounds to 0.
func (s *Scroller) SetExtent(limit float64) {
	s.extent = math.Max(limit, 0)
	s.bounded = true
	s.target = s.clamp(s.target)
	s.current = s.clamp(s.current)
}

// Step advances one frame and reports whether the offset moved.
func (s *Scroller) Step() bool {
	if s.Settled() {
		return false
	}

	s.current += (s.target - s.current) * s.smoothing
	if math.Abs(s.target-s.current) < snapDistance {
		s.current = s.target
	}
	return true
}

// Current returns the offset as rendered.
func (s *Scroller) Current() float64 { return s.current }

// Target returns the offset the scroller is moving toward.
func (s *Scroller) Target() float64 { return s.target }

// Settled reports whether the scroller is at rest on its target.
func (s *Scroller) Settled() bool { return s.current == s.target }

// Column returns the current offset rounded to a whole terminal column.
func (s *Scroller) Column() int { return int(math.Round(s.current)) }

func (s *Scroller) clamp(v float64) float64 {
	v = math.Max(v, 0)
	if s.bounded {
		v = math.Min(v, s.extent)
	}
	return v
}

type frameMsg time.Time

func scheduleFrame(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
