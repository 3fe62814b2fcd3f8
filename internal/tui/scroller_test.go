package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func runToRest(s *Scroller) int {
	frames := 0
	for s.Step() {
		frames++
		if frames > 1000 {
			break
		}
	}
	return frames
}

func TestScroller_ConvergesToTarget(t *testing.T) {
	s := NewScroller(0)
	s.ScrollTo(400, true)

	assert.False(t, s.Settled())
	assert.Equal(t, 400.0, s.Target())
	assert.Equal(t, 0.0, s.Current(), "animated scroll does not jump")

	frames := runToRest(s)
	assert.Less(t, frames, 100)
	assert.True(t, s.Settled())
	assert.Equal(t, 400.0, s.Current())
	assert.Equal(t, 400, s.Column())
}

func TestScroller_MovesMonotonically(t *testing.T) {
	s := NewScroller(0.3)
	s.ScrollTo(100, true)

	prev := s.Current()
	for s.Step() {
		assert.GreaterOrEqual(t, s.Current(), prev)
		assert.LessOrEqual(t, s.Current(), 100.0)
		prev = s.Current()
	}
}

func TestScroller_NotAnimatedJumps(t *testing.T) {
	s := NewScroller(0)
	s.ScrollTo(250, false)

	assert.True(t, s.Settled())
	assert.Equal(t, 250.0, s.Current())
	assert.False(t, s.Step())
}

func TestScroller_NewTargetSupersedes(t *testing.T) {
	s := NewScroller(0)
	s.ScrollTo(400, true)
	s.Step()
	s.Step()

	s.ScrollTo(80, true)
	runToRest(s)

	assert.Equal(t, 80.0, s.Current())
}

func TestScroller_Extent(t *testing.T) {
	tests := []struct {
		name   string
		extent float64
		to     float64
		want   float64
	}{
		{name: "within", extent: 62, to: 40, want: 40},
		{name: "past right edge", extent: 62, to: 92, want: 62},
		{name: "negative", extent: 62, to: -10, want: 0},
		{name: "content narrower than viewport", extent: -8, to: 22, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScroller(0)
			s.SetExtent(tt.extent)
			s.ScrollTo(tt.to, false)
			assert.Equal(t, tt.want, s.Current())
		})
	}
}

func TestScroller_ShrinkingExtentReclamps(t *testing.T) {
	s := NewScroller(0)
	s.SetExtent(200)
	s.ScrollTo(150, false)

	s.SetExtent(100)

	assert.Equal(t, 100.0, s.Current())
	assert.Equal(t, 100.0, s.Target())
}

func TestScroller_UnboundedClampsAtZero(t *testing.T) {
	s := NewScroller(0)
	s.ScrollTo(-5, false)
	assert.Equal(t, 0.0, s.Current())

	s.ScrollTo(1e6, false)
	assert.Equal(t, 1e6, s.Current())
}
