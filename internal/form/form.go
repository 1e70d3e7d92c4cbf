package form

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/csheth/folio/internal/dom"
	"github.com/csheth/folio/internal/effect"
)

// Kind selects the banner style.
type Kind int

const (
	KindInfo Kind = iota
	KindError
	KindSuccess
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	default:
		return "info"
	}
}

// Phase is the submit pipeline state. Validation runs synchronously inside
// Submit, so it never shows up as a resting phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRejected
	PhaseSubmitting
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseRejected:
		return "rejected"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSettled:
		return "settled"
	default:
		return "idle"
	}
}

// Banner messages.
const (
	StatusFixFields = "Please fix the highlighted fields."
	StatusSending   = "Sending message..."
	StatusSent      = "Thanks! Your message was sent (demo)."
)

// Timings holds the banner and submit delays.
type Timings struct {
	AutoHide       time.Duration
	HideCompletion time.Duration
	SubmitDelay    time.Duration
}

// DefaultTimings matches the fade durations the renderer is tuned for.
func DefaultTimings() Timings {
	return Timings{
		AutoHide:       4000 * time.Millisecond,
		HideCompletion: 300 * time.Millisecond,
		SubmitDelay:    600 * time.Millisecond,
	}
}

// Binding is the pair of elements behind one field. Input.Text holds the
// current value.
type Binding struct {
	Input *dom.Element
	Error *dom.Element
}

// FieldState is the validation state of one field.
type FieldState struct {
	Value            string
	Error            string
	TouchedForSubmit bool
}

// Status is the banner as last requested.
type Status struct {
	Visible bool
	Message string
	Kind    Kind
}

type timerHandle struct {
	token effect.Token
}

func (h *timerHandle) pending() bool {
	return h.token != 0
}

// Form validates the contact form and owns its status banner.
type Form struct {
	bindings map[Field]Binding
	fields   map[Field]*FieldState
	banner   *dom.Element
	timings  Timings

	status       Status
	phase        Phase
	submissionID string

	frame          effect.Token
	autoHide       timerHandle
	hideCompletion timerHandle
	submitDelay    timerHandle
}

// New binds a form to its field elements and banner. Missing bindings are
// skipped: that field is never validated.
func New(bindings map[Field]Binding, banner *dom.Element, timings Timings) *Form {
	f := &Form{
		bindings: map[Field]Binding{},
		fields:   map[Field]*FieldState{},
		banner:   banner,
		timings:  timings,
	}
	for _, field := range Fields {
		b, ok := bindings[field]
		if !ok || b.Input == nil || b.Error == nil {
			continue
		}
		f.bindings[field] = b
		f.fields[field] = &FieldState{Value: b.Input.Text}
		b.Error.Hidden = true
	}
	banner.Hidden = true
	return f
}

// Field returns a copy of one field's state.
func (f *Form) Field(field Field) FieldState {
	if st, ok := f.fields[field]; ok {
		return *st
	}
	return FieldState{}
}

func (f *Form) Status() Status { return f.status }

func (f *Form) Phase() Phase { return f.phase }

// SubmissionID is the correlation id of the last accepted submit.
func (f *Form) SubmissionID() string { return f.submissionID }

// PendingTimers reports how many timers of each kind are scheduled.
func (f *Form) PendingTimers() (autoHide, hideCompletion, submitDelay int) {
	count := func(h timerHandle) int {
		if h.pending() {
			return 1
		}
		return 0
	}
	return count(f.autoHide), count(f.hideCompletion), count(f.submitDelay)
}

// ValidateField recomputes one field's error and updates its display. The
// return value is validity under the given showEmptyError setting.
func (f *Form) ValidateField(field Field, showEmptyError bool) bool {
	st, ok := f.fields[field]
	if !ok {
		return true
	}
	message := Check(field, st.Value, showEmptyError)
	f.setFieldError(field, message)
	return message == ""
}

func (f *Form) setFieldError(field Field, message string) {
	st := f.fields[field]
	b := f.bindings[field]
	st.Error = message
	if message != "" {
		b.Error.Text = message
		b.Error.Hidden = false
		b.Input.SetBoolAttr(dom.AttrInvalid, true)
		return
	}
	b.Error.Text = ""
	b.Error.Hidden = true
	b.Input.RemoveAttr(dom.AttrInvalid)
}

// Input handles a keystroke: required-ness is not enforced while typing, but
// a format error is. A resolved error banner is dismissed.
func (f *Form) Input(field Field, value string) []effect.Effect {
	st, ok := f.fields[field]
	if !ok {
		return nil
	}
	st.Value = value
	f.bindings[field].Input.Text = value
	f.ValidateField(field, false)
	return f.clearStatusIfResolved()
}

// Blur enforces required-ness once the user leaves a field.
func (f *Form) Blur(field Field) []effect.Effect {
	st, ok := f.fields[field]
	if !ok {
		return nil
	}
	st.TouchedForSubmit = true
	f.ValidateField(field, true)
	return nil
}

func (f *Form) hasInvalid() bool {
	for _, field := range Fields {
		if b, ok := f.bindings[field]; ok && b.Input.BoolAttr(dom.AttrInvalid) {
			return true
		}
	}
	return false
}

func (f *Form) clearStatusIfResolved() []effect.Effect {
	if len(f.fields) == 0 || f.banner.Hidden || !f.banner.HasClass(dom.ClassError) {
		return nil
	}
	if f.hideCompletion.pending() {
		return nil
	}
	if f.hasInvalid() {
		return nil
	}
	return f.hideStatus()
}

// Submit validates every field. On failure it shows the error banner and
// focuses the first invalid field; on success it enters the sending phase.
// A submit while one is already sending is ignored.
func (f *Form) Submit() []effect.Effect {
	if f.phase == PhaseSubmitting {
		return nil
	}
	valid := true
	for _, field := range Fields {
		st, ok := f.fields[field]
		if !ok {
			continue
		}
		st.TouchedForSubmit = true
		if !f.ValidateField(field, true) {
			valid = false
		}
	}

	if !valid {
		f.phase = PhaseRejected
		effects := f.showStatus(StatusFixFields, KindError)
		for _, field := range Fields {
			if b, ok := f.bindings[field]; ok && b.Input.BoolAttr(dom.AttrInvalid) {
				effects = append(effects, effect.Focus{Target: b.Input})
				break
			}
		}
		return effects
	}

	f.phase = PhaseSubmitting
	f.submissionID = uuid.NewString()
	slog.Info("contact form submitted", "submission", f.submissionID)
	effects := f.showStatus(StatusSending, KindInfo)
	f.submitDelay.token = effect.NextToken()
	return append(effects, effect.Timer{Name: "submit-delay", Token: f.submitDelay.token, Delay: f.timings.SubmitDelay})
}

func (f *Form) settle() []effect.Effect {
	effects := f.showStatus(StatusSent, KindSuccess)
	for _, field := range Fields {
		st, ok := f.fields[field]
		if !ok {
			continue
		}
		st.Value = ""
		st.TouchedForSubmit = false
		f.bindings[field].Input.Text = ""
		f.setFieldError(field, "")
	}
	f.phase = PhaseSettled
	slog.Info("contact form sent", "submission", f.submissionID)
	return effects
}

func (f *Form) cancelTimers() []effect.Effect {
	var effects []effect.Effect
	for _, h := range []*timerHandle{&f.autoHide, &f.hideCompletion} {
		if h.pending() {
			effects = append(effects, effect.CancelTimer{Token: h.token})
			h.token = 0
		}
	}
	return effects
}

// showStatus is the only writer of the banner besides hideStatus and the
// timer callbacks.
func (f *Form) showStatus(message string, kind Kind) []effect.Effect {
	effects := f.cancelTimers()
	f.banner.Hidden = false
	f.banner.Text = message
	f.banner.RemoveClass(dom.ClassError, dom.ClassSuccess)
	switch kind {
	case KindError:
		f.banner.AddClass(dom.ClassError)
	case KindSuccess:
		f.banner.AddClass(dom.ClassSuccess)
		f.autoHide.token = effect.NextToken()
		effects = append(effects, effect.Timer{Name: "auto-hide", Token: f.autoHide.token, Delay: f.timings.AutoHide})
	}
	f.status = Status{Visible: true, Message: message, Kind: kind}
	f.frame = effect.NextToken()
	return append(effects, effect.Frame{Token: f.frame})
}

func (f *Form) hideStatus() []effect.Effect {
	effects := f.cancelTimers()
	f.banner.RemoveClass(dom.ClassVisible)
	f.frame = 0
	f.status.Visible = false
	f.hideCompletion.token = effect.NextToken()
	return append(effects, effect.Timer{Name: "hide-completion", Token: f.hideCompletion.token, Delay: f.timings.HideCompletion})
}

// FrameReady starts the banner's entrance animation.
func (f *Form) FrameReady(token effect.Token) []effect.Effect {
	if token == 0 || token != f.frame {
		return nil
	}
	f.frame = 0
	if f.banner.Hidden {
		return nil
	}
	f.banner.AddClass(dom.ClassVisible)
	return nil
}

// TimerFired dispatches a timer callback. Tokens that no longer match an
// owned handle were cancelled and are ignored.
func (f *Form) TimerFired(token effect.Token) []effect.Effect {
	if token == 0 {
		return nil
	}
	switch token {
	case f.autoHide.token:
		f.autoHide.token = 0
		return f.hideStatus()
	case f.hideCompletion.token:
		f.hideCompletion.token = 0
		f.banner.Hidden = true
		return nil
	case f.submitDelay.token:
		f.submitDelay.token = 0
		if f.phase != PhaseSubmitting {
			return nil
		}
		return f.settle()
	}
	return nil
}

// Teardown cancels every pending timer and abandons a submit in progress.
func (f *Form) Teardown() []effect.Effect {
	effects := f.cancelTimers()
	if f.submitDelay.pending() {
		effects = append(effects, effect.CancelTimer{Token: f.submitDelay.token})
		f.submitDelay.token = 0
	}
	if f.phase == PhaseSubmitting {
		f.phase = PhaseIdle
	}
	f.frame = 0
	return effects
}
