package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/csheth/folio/internal/dom"
)

// Property is an animated style property of an element.
type Property string

const (
	Opacity Property = "opacity"
	Height  Property = "height"
)

// FPS is the frame rate of the animation loop.
const FPS = 60

// FrameInterval is the delay between two animation frames.
const FrameInterval = time.Second / FPS

const settleEpsilon = 0.005

// TransitionEnd is emitted once a property reaches its target.
type TransitionEnd struct {
	Target   *dom.Element
	Property Property
}

type channel struct {
	property Property
	spring   harmonica.Spring
	pos      float64
	vel      float64
	moving   bool
}

type track struct {
	el       *dom.Element
	channels []*channel
}

// Engine animates element properties toward the values implied by their
// classes: 1 when the element is visible, 0 otherwise. Each property runs on
// its own spring so they settle at different times, like CSS transitions
// with different durations.
type Engine struct {
	instant bool
	tracks  []*track
	index   map[*dom.Element]*track
}

// NewEngine returns an engine. An instant engine jumps to every target and
// never emits transition ends.
func NewEngine(instant bool) *Engine {
	return &Engine{instant: instant, index: map[*dom.Element]*track{}}
}

// Track starts animating el. The element's current state is taken as
// already settled.
func (e *Engine) Track(el *dom.Element, props ...Property) {
	if _, ok := e.index[el]; ok {
		return
	}
	start := target(el)
	t := &track{el: el}
	for _, prop := range props {
		t.channels = append(t.channels, &channel{
			property: prop,
			spring:   springFor(prop),
			pos:      start,
		})
	}
	e.tracks = append(e.tracks, t)
	e.index[el] = t
}

func springFor(prop Property) harmonica.Spring {
	// Height settles faster than opacity, so a close always finishes on the
	// opacity transition.
	if prop == Height {
		return harmonica.NewSpring(harmonica.FPS(FPS), 14.0, 1.0)
	}
	return harmonica.NewSpring(harmonica.FPS(FPS), 9.0, 1.0)
}

func target(el *dom.Element) float64 {
	if el.Visible() {
		return 1
	}
	return 0
}

// Value returns the current value of prop on el, between 0 and 1. Untracked
// elements report their target.
func (e *Engine) Value(el *dom.Element, prop Property) float64 {
	if t, ok := e.index[el]; ok {
		for _, ch := range t.channels {
			if ch.property == prop {
				return clamp(ch.pos)
			}
		}
	}
	return target(el)
}

// Active reports whether any property still needs frames.
func (e *Engine) Active() bool {
	for _, t := range e.tracks {
		goal := target(t.el)
		for _, ch := range t.channels {
			if ch.moving || ch.pos != goal {
				return true
			}
		}
	}
	return false
}

// Step advances every spring by one frame and returns the transitions that
// finished on it. Hidden elements jump to their target without an event:
// an element outside layout has no transition to end.
func (e *Engine) Step() []TransitionEnd {
	var ended []TransitionEnd
	for _, t := range e.tracks {
		goal := target(t.el)
		for _, ch := range t.channels {
			if ch.pos == goal && !ch.moving {
				continue
			}
			if e.instant || t.el.Hidden {
				ch.pos, ch.vel, ch.moving = goal, 0, false
				continue
			}
			ch.moving = true
			ch.pos, ch.vel = ch.spring.Update(ch.pos, ch.vel, goal)
			if math.Abs(ch.pos-goal) < settleEpsilon && math.Abs(ch.vel) < settleEpsilon {
				ch.pos, ch.vel, ch.moving = goal, 0, false
				ended = append(ended, TransitionEnd{Target: t.el, Property: ch.property})
			}
		}
	}
	return ended
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
