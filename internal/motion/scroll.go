package motion

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Scroller moves a viewport offset to a target line, smoothly unless it was
// built instant.
type Scroller struct {
	instant bool
	spring  harmonica.Spring
	pos     float64
	vel     float64
	target  float64
	active  bool
}

func NewScroller(instant bool) *Scroller {
	return &Scroller{
		instant: instant,
		spring:  harmonica.NewSpring(harmonica.FPS(FPS), 8.0, 1.0),
	}
}

// ScrollTo starts a scroll from the current offset. It returns the offset to
// apply right away, which is the target itself when instant.
func (s *Scroller) ScrollTo(from, to int) int {
	if s.instant || from == to {
		s.pos, s.vel, s.target, s.active = float64(to), 0, float64(to), false
		return to
	}
	if !s.active {
		s.pos, s.vel = float64(from), 0
	}
	s.target = float64(to)
	s.active = true
	return from
}

// Active reports whether a smooth scroll is in progress.
func (s *Scroller) Active() bool {
	return s.active
}

// Stop abandons a scroll in progress, e.g. when the user scrolls manually.
func (s *Scroller) Stop() {
	s.active = false
	s.vel = 0
}

// Step advances one frame and returns the offset to apply.
func (s *Scroller) Step() int {
	if !s.active {
		return int(math.Round(s.pos))
	}
	s.pos, s.vel = s.spring.Update(s.pos, s.vel, s.target)
	if math.Abs(s.pos-s.target) < 0.5 && math.Abs(s.vel) < 0.5 {
		s.pos, s.vel, s.active = s.target, 0, false
	}
	return int(math.Round(s.pos))
}
