package loader

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/csheth/folio/internal/advice"
	"github.com/csheth/folio/internal/dom"
	"github.com/csheth/folio/internal/effect"
)

// Trigger records who asked for a load.
type Trigger int

const (
	Auto Trigger = iota
	Manual
)

func (t Trigger) String() string {
	if t == Manual {
		return "manual"
	}
	return "auto"
}

// Phase is the loader's state tag.
type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Error
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// User-facing text.
const (
	TextLoading     = "Fetching advice..."
	TextUnavailable = "No advice available right now."
	StatusLoading   = "Loading new advice..."
	StatusManual    = "Here's another piece of advice."
	StatusAuto      = "Loaded today's advice."
	StatusFailed    = "Could not load advice. Please try again."
)

// State is a snapshot of the loader. Text holds the advice on Success and
// the failure message on Error.
type State struct {
	Phase     Phase
	Text      string
	Epoch     uint64
	Trigger   Trigger
	FetchedAt time.Time
}

// Loader owns the single outstanding advice request and the three elements
// that display it: the advice text, a status line and the refresh control.
type Loader struct {
	text    *dom.Element
	status  *dom.Element
	refresh *dom.Element

	state State
	now   func() time.Time
}

// New binds a loader to its elements.
func New(text, status, refresh *dom.Element) *Loader {
	return &Loader{text: text, status: status, refresh: refresh, now: time.Now}
}

// State returns the current snapshot.
func (l *Loader) State() State {
	return l.state
}

// Busy reports whether the refresh control is disabled.
func (l *Loader) Busy() bool {
	return l.refresh.BoolAttr(dom.AttrDisabled)
}

// Load starts a new request. Any request still in flight is superseded: its
// result will no longer match the epoch and is dropped when it arrives.
func (l *Loader) Load(trigger Trigger) []effect.Effect {
	l.state.Epoch++
	l.state.Phase = Loading
	l.state.Trigger = trigger
	l.state.Text = ""

	l.text.Text = TextLoading
	l.status.Text = StatusLoading
	l.status.RemoveClass(dom.ClassError)
	l.refresh.SetBoolAttr(dom.AttrDisabled, true)
	l.refresh.SetBoolAttr(dom.AttrBusy, true)

	return []effect.Effect{effect.Fetch{Epoch: l.state.Epoch, Manual: trigger == Manual}}
}

// Resolve applies the result of the request tagged with epoch. It reports
// false when the result was stale and nothing changed.
func (l *Loader) Resolve(epoch uint64, result advice.Result) bool {
	if epoch != l.state.Epoch || l.state.Phase != Loading {
		slog.Debug("advice result dropped", "epoch", epoch, "current", l.state.Epoch)
		return false
	}
	defer l.idle()

	if result.OK() {
		l.state.Phase = Success
		l.state.Text = result.Advice
		l.state.FetchedAt = l.now()
		l.text.Text = `"` + result.Advice + `"`
		l.showStatus(l.successStatus(), false)
		return true
	}

	err := result.Err
	if err == nil {
		err = advice.ErrPayload
	}
	slog.Error("advice fetch failed", "kind", result.Kind().String(), "trigger", l.state.Trigger.String(), "error", err)
	l.state.Phase = Error
	l.state.Text = err.Error()
	l.text.Text = TextUnavailable
	l.showStatus(StatusFailed, true)
	return true
}

// Teardown abandons the request in flight. Its result will be dropped.
func (l *Loader) Teardown() {
	if l.state.Phase == Loading {
		l.state.Epoch++
		l.state.Phase = Idle
		l.idle()
	}
}

func (l *Loader) successStatus() string {
	if l.state.Trigger == Manual {
		return StatusManual
	}
	return StatusAuto
}

func (l *Loader) showStatus(message string, isError bool) {
	l.status.Text = message
	l.status.ToggleClass(dom.ClassError, isError)
}

func (l *Loader) idle() {
	l.refresh.SetBoolAttr(dom.AttrDisabled, false)
	l.refresh.RemoveAttr(dom.AttrBusy)
}
