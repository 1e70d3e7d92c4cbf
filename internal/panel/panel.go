package panel

import (
	"github.com/csheth/folio/internal/dom"
	"github.com/csheth/folio/internal/effect"
)

// AnimationMode is fixed when a controller is built.
type AnimationMode int

const (
	Instant AnimationMode = iota
	Animated
)

func (m AnimationMode) String() string {
	if m == Animated {
		return "animated"
	}
	return "instant"
}

// ClassOpen marks the card of an expanded panel.
const ClassOpen = "is-open"

// closeProperty is the only transition that finishes a close. Height and
// colour transitions on the same element end at different times.
const closeProperty = "opacity"

// State is a snapshot of one panel.
type State struct {
	Expanded       bool
	ContentVisible bool
	Mode           AnimationMode
}

// Controller drives one collapsible panel: a toggle control, a content
// region and the card that wraps them.
type Controller struct {
	toggle  *dom.Element
	content *dom.Element
	card    *dom.Element
	mode    AnimationMode

	pendingFrame  effect.Token
	closeListener effect.Token
}

// New binds a controller to its elements. The starting state is read from the
// toggle's expanded attribute.
func New(toggle, content, card *dom.Element, reducedMotion bool) *Controller {
	mode := Animated
	if reducedMotion {
		mode = Instant
	}
	c := &Controller{toggle: toggle, content: content, card: card, mode: mode}

	startExpanded := toggle.BoolAttr(dom.AttrExpanded)
	toggle.SetBoolAttr(dom.AttrExpanded, startExpanded)
	card.ToggleClass(ClassOpen, startExpanded)
	content.Hidden = !startExpanded
	content.ToggleClass(dom.ClassVisible, startExpanded)
	return c
}

func (c *Controller) expanded() bool {
	return c.toggle.BoolAttr(dom.AttrExpanded)
}

// State reports the current expanded and content visibility flags.
func (c *Controller) State() State {
	return State{
		Expanded:       c.expanded(),
		ContentVisible: !c.content.Hidden,
		Mode:           c.mode,
	}
}

// Content returns the content element, used by the host for focus and layout.
func (c *Controller) Content() *dom.Element {
	return c.content
}

// Toggle flips the panel. In instant mode every change is applied before it
// returns; in animated mode the returned effects must be executed by the host.
func (c *Controller) Toggle() []effect.Effect {
	wasExpanded := c.expanded()
	c.toggle.SetBoolAttr(dom.AttrExpanded, !wasExpanded)
	c.card.ToggleClass(ClassOpen, !wasExpanded)

	if c.mode == Instant {
		c.content.Hidden = wasExpanded
		c.content.ToggleClass(dom.ClassVisible, !wasExpanded)
		return nil
	}
	if wasExpanded {
		return c.close()
	}
	return c.open()
}

func (c *Controller) open() []effect.Effect {
	var effects []effect.Effect
	if c.closeListener != 0 {
		effects = append(effects, effect.CancelTransition{Token: c.closeListener})
		c.closeListener = 0
	}
	c.content.Hidden = false
	c.pendingFrame = effect.NextToken()
	return append(effects, effect.Frame{Token: c.pendingFrame})
}

func (c *Controller) close() []effect.Effect {
	if c.pendingFrame != 0 {
		// The fade-in never started, so no transition will end: collapse now.
		c.pendingFrame = 0
		c.content.RemoveClass(dom.ClassVisible)
		c.content.Hidden = true
		return nil
	}
	c.content.RemoveClass(dom.ClassVisible)
	c.closeListener = effect.NextToken()
	return []effect.Effect{effect.AwaitTransition{Target: c.content, Token: c.closeListener}}
}

// FrameReady applies the visible class once the content has been laid out,
// so the transition animates from hidden to shown.
func (c *Controller) FrameReady(token effect.Token) []effect.Effect {
	if token == 0 || token != c.pendingFrame {
		return nil
	}
	c.pendingFrame = 0
	if !c.expanded() {
		return nil
	}
	c.content.AddClass(dom.ClassVisible)
	return nil
}

// TransitionEnd finishes a close. It ignores other properties, listeners that
// were deregistered, and panels that were reopened in the meantime.
func (c *Controller) TransitionEnd(token effect.Token, property string) []effect.Effect {
	if token == 0 || token != c.closeListener {
		return nil
	}
	if property != closeProperty {
		return nil
	}
	if c.expanded() {
		return nil
	}
	c.content.Hidden = true
	c.closeListener = 0
	return []effect.Effect{effect.CancelTransition{Token: token}}
}

// Teardown deregisters pending callbacks. The controller stays usable.
func (c *Controller) Teardown() []effect.Effect {
	var effects []effect.Effect
	if c.closeListener != 0 {
		effects = append(effects, effect.CancelTransition{Token: c.closeListener})
		c.closeListener = 0
	}
	c.pendingFrame = 0
	return effects
}

// Placeholder shows the empty-state element when there are no panels. The
// element is marked revealed at once since there is nothing to scroll into.
func Placeholder(empty *dom.Element, count int) {
	if count == 0 {
		empty.Hidden = false
		empty.AddClass(dom.ClassReveal, dom.ClassVisible)
		return
	}
	empty.Hidden = true
	empty.RemoveClass(dom.ClassVisible)
}
