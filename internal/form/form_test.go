package form_test

import (
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/csheth/folio/internal/dom"
	"github.com/csheth/folio/internal/effect"
	"github.com/csheth/folio/internal/form"
)

// scheduler records the timers and frames a form asks for, the way the host
// would run them.
type scheduler struct {
	timers map[effect.Token]effect.Timer
	frames []effect.Token
	focus  *dom.Element
}

func newScheduler() *scheduler {
	return &scheduler{timers: map[effect.Token]effect.Timer{}}
}

func (s *scheduler) apply(effects []effect.Effect) {
	for _, e := range effects {
		switch e := e.(type) {
		case effect.Timer:
			s.timers[e.Token] = e
		case effect.CancelTimer:
			delete(s.timers, e.Token)
		case effect.Frame:
			s.frames = append(s.frames, e.Token)
		case effect.Focus:
			s.focus = e.Target
		}
	}
}

func (s *scheduler) pending(name string) []effect.Timer {
	var out []effect.Timer
	for _, timer := range s.timers {
		if timer.Name == name {
			out = append(out, timer)
		}
	}
	return out
}

// fire runs the pending timer called name.
func (s *scheduler) fire(t *testing.T, f *form.Form, name string) {
	t.Helper()
	timers := s.pending(name)
	if len(timers) != 1 {
		t.Fatalf("expected one pending %s timer, got %d", name, len(timers))
	}
	delete(s.timers, timers[0].Token)
	s.apply(f.TimerFired(timers[0].Token))
}

func (s *scheduler) flushFrames(f *form.Form) {
	frames := s.frames
	s.frames = nil
	for _, token := range frames {
		s.apply(f.FrameReady(token))
	}
}

type page struct {
	bindings map[form.Field]form.Binding
	banner   *dom.Element
	form     *form.Form
	sched    *scheduler
}

func newPage() *page {
	bindings := map[form.Field]form.Binding{}
	for _, field := range form.Fields {
		bindings[field] = form.Binding{
			Input: dom.New(field.String()),
			Error: dom.New(field.String() + "-error"),
		}
	}
	banner := dom.New("form-status")
	return &page{
		bindings: bindings,
		banner:   banner,
		form:     form.New(bindings, banner, form.DefaultTimings()),
		sched:    newScheduler(),
	}
}

func (p *page) fill(name, email, message string) {
	p.sched.apply(p.form.Input(form.Name, name))
	p.sched.apply(p.form.Input(form.Email, email))
	p.sched.apply(p.form.Input(form.Message, message))
}

func TestCheckEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value     string
		showEmpty bool
		want      string
	}{
		{"a@b.co", false, ""},
		{"a@b.co", true, ""},
		{"first.last+tag@sub.example.org", false, ""},
		{"  a@b.co  ", false, ""},
		{"a@b", false, form.ErrEmailFormat},
		{"a@b", true, form.ErrEmailFormat},
		{"a@b.c", false, form.ErrEmailFormat},
		{"@b.co", false, form.ErrEmailFormat},
		{"a b@c.co", false, form.ErrEmailFormat},
		{"", false, ""},
		{"   ", false, ""},
		{"", true, form.ErrEmailRequired},
	}
	for _, tt := range tests {
		if got := form.Check(form.Email, tt.value, tt.showEmpty); got != tt.want {
			t.Errorf("Check(email, %q, %v) = %q, want %q", tt.value, tt.showEmpty, got, tt.want)
		}
	}
}

func TestCheckRequiredFields(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(form.Check(form.Name, "", false)).To(BeEmpty())
	g.Expect(form.Check(form.Name, " ", true)).To(Equal(form.ErrNameRequired))
	g.Expect(form.Check(form.Name, "Ada", true)).To(BeEmpty())
	g.Expect(form.Check(form.Message, "", false)).To(BeEmpty())
	g.Expect(form.Check(form.Message, "", true)).To(Equal(form.ErrMessageRequired))
	g.Expect(form.Valid(form.Email, "")).To(BeFalse())
	g.Expect(form.Valid(form.Message, "hi")).To(BeTrue())
}

func TestTypingNeverShowsRequiredButShowsFormat(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()

	p.sched.apply(p.form.Input(form.Name, ""))
	g.Expect(p.form.Field(form.Name).Error).To(BeEmpty())
	g.Expect(p.bindings[form.Name].Error.Hidden).To(BeTrue())

	p.sched.apply(p.form.Input(form.Email, "ada@"))
	g.Expect(p.form.Field(form.Email).Error).To(Equal(form.ErrEmailFormat))
	g.Expect(p.bindings[form.Email].Input.BoolAttr(dom.AttrInvalid)).To(BeTrue())
	g.Expect(p.bindings[form.Email].Error.Hidden).To(BeFalse())
	g.Expect(p.bindings[form.Email].Error.Text).To(Equal(form.ErrEmailFormat))

	p.sched.apply(p.form.Input(form.Email, "ada@example.com"))
	g.Expect(p.form.Field(form.Email).Error).To(BeEmpty())
	_, invalid := p.bindings[form.Email].Input.Attr(dom.AttrInvalid)
	g.Expect(invalid).To(BeFalse())
}

func TestBlurEnforcesRequired(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()

	p.sched.apply(p.form.Blur(form.Name))
	g.Expect(p.form.Field(form.Name).Error).To(Equal(form.ErrNameRequired))
	g.Expect(p.form.Field(form.Name).TouchedForSubmit).To(BeTrue())

	p.sched.apply(p.form.Blur(form.Email))
	g.Expect(p.form.Field(form.Email).Error).To(Equal(form.ErrEmailRequired))
}

func TestSubmitGating(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()
	p.fill("", "x@y.com", "")

	p.sched.apply(p.form.Submit())

	shown := 0
	for _, field := range form.Fields {
		if !p.bindings[field].Error.Hidden {
			shown++
		}
	}
	g.Expect(shown).To(Equal(2))
	g.Expect(p.form.Field(form.Name).Error).To(Equal(form.ErrNameRequired))
	g.Expect(p.form.Field(form.Message).Error).To(Equal(form.ErrMessageRequired))
	g.Expect(p.form.Status()).To(Equal(form.Status{Visible: true, Message: form.StatusFixFields, Kind: form.KindError}))
	g.Expect(p.banner.HasClass(dom.ClassError)).To(BeTrue())
	g.Expect(p.sched.focus).To(BeIdenticalTo(p.bindings[form.Name].Input))
	g.Expect(p.form.Phase()).To(Equal(form.PhaseRejected))
	g.Expect(p.sched.pending("submit-delay")).To(BeEmpty())
	g.Expect(p.form.SubmissionID()).To(BeEmpty())
}

func TestSuccessfulSubmit(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()
	p.fill("Ada", "ada@example.com", "Hello there")

	var seen []form.Status
	p.sched.apply(p.form.Submit())
	seen = append(seen, p.form.Status())
	g.Expect(p.form.Phase()).To(Equal(form.PhaseSubmitting))
	g.Expect(p.form.SubmissionID()).NotTo(BeEmpty())

	delay := p.sched.pending("submit-delay")
	g.Expect(delay).To(HaveLen(1))
	g.Expect(delay[0].Delay).To(Equal(600 * time.Millisecond))

	p.sched.flushFrames(p.form)
	g.Expect(p.banner.HasClass(dom.ClassVisible)).To(BeTrue())

	p.sched.fire(t, p.form, "submit-delay")
	seen = append(seen, p.form.Status())
	g.Expect(seen).To(Equal([]form.Status{
		{Visible: true, Message: "Sending message...", Kind: form.KindInfo},
		{Visible: true, Message: "Thanks! Your message was sent (demo).", Kind: form.KindSuccess},
	}))
	g.Expect(p.form.Phase()).To(Equal(form.PhaseSettled))
	for _, field := range form.Fields {
		g.Expect(p.form.Field(field).Value).To(BeEmpty())
		g.Expect(p.bindings[field].Input.Text).To(BeEmpty())
		g.Expect(p.bindings[field].Error.Hidden).To(BeTrue())
	}

	autoHide := p.sched.pending("auto-hide")
	g.Expect(autoHide).To(HaveLen(1))
	g.Expect(autoHide[0].Delay).To(Equal(4000 * time.Millisecond))

	p.sched.flushFrames(p.form)
	p.sched.fire(t, p.form, "auto-hide")
	g.Expect(p.banner.HasClass(dom.ClassVisible)).To(BeFalse())
	g.Expect(p.banner.Hidden).To(BeFalse(), "banner stays in layout while it fades")
	g.Expect(p.form.Status().Visible).To(BeFalse())

	p.sched.fire(t, p.form, "hide-completion")
	g.Expect(p.banner.Hidden).To(BeTrue())
	g.Expect(p.sched.timers).To(BeEmpty())
}

func TestResolvedErrorBannerDismissesWhileTyping(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()
	p.fill("", "", "")
	p.sched.apply(p.form.Submit())
	p.sched.flushFrames(p.form)

	p.sched.apply(p.form.Input(form.Name, "Ada"))
	g.Expect(p.banner.HasClass(dom.ClassVisible)).To(BeTrue(), "still invalid fields remain")

	p.sched.apply(p.form.Input(form.Email, "ada@example.com"))
	g.Expect(p.banner.HasClass(dom.ClassVisible)).To(BeTrue())
	p.sched.apply(p.form.Input(form.Message, "Hi"))
	g.Expect(p.banner.HasClass(dom.ClassVisible)).To(BeFalse())
	g.Expect(p.sched.pending("hide-completion")).To(HaveLen(1))

	p.sched.apply(p.form.Input(form.Message, "Hi!"))
	g.Expect(p.sched.pending("hide-completion")).To(HaveLen(1), "a second keystroke must not stack timers")

	p.sched.fire(t, p.form, "hide-completion")
	g.Expect(p.banner.Hidden).To(BeTrue())
}

func TestStatusTimerHygiene(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()

	check := func() {
		t.Helper()
		g.Expect(len(p.sched.pending("auto-hide"))).To(BeNumerically("<=", 1))
		g.Expect(len(p.sched.pending("hide-completion"))).To(BeNumerically("<=", 1))
		autoHide, hideCompletion, _ := p.form.PendingTimers()
		g.Expect(autoHide).To(Equal(len(p.sched.pending("auto-hide"))))
		g.Expect(hideCompletion).To(Equal(len(p.sched.pending("hide-completion"))))
	}

	for i := 0; i < 3; i++ {
		p.fill("Ada", "ada@example.com", "Hello")
		p.sched.apply(p.form.Submit())
		check()
		p.sched.fire(t, p.form, "submit-delay")
		check()
		p.sched.fire(t, p.form, "auto-hide")
		check()

		// A rejected submit during the fade-out replaces the pending hide.
		p.sched.apply(p.form.Submit())
		check()
		g.Expect(p.sched.pending("hide-completion")).To(BeEmpty())
		g.Expect(p.banner.Hidden).To(BeFalse())
		g.Expect(p.form.Status().Kind).To(Equal(form.KindError))
	}
}

func TestStaleTimerTokenIsIgnored(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()
	p.fill("Ada", "ada@example.com", "Hello")
	p.sched.apply(p.form.Submit())
	p.sched.fire(t, p.form, "submit-delay")

	stale := p.sched.pending("auto-hide")[0].Token
	p.sched.apply(p.form.Submit())
	g.Expect(p.sched.pending("auto-hide")).To(BeEmpty())

	g.Expect(p.form.TimerFired(stale)).To(BeEmpty())
	g.Expect(p.form.Status()).To(Equal(form.Status{Visible: true, Message: form.StatusFixFields, Kind: form.KindError}))
}

func TestSubmitWhileSendingIsIgnored(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()
	p.fill("Ada", "ada@example.com", "Hello")

	p.sched.apply(p.form.Submit())
	g.Expect(p.form.Submit()).To(BeEmpty())
	g.Expect(p.sched.pending("submit-delay")).To(HaveLen(1))
}

func TestTeardownCancelsEverything(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)
	p := newPage()
	p.fill("Ada", "ada@example.com", "Hello")
	p.sched.apply(p.form.Submit())

	p.sched.apply(p.form.Teardown())
	g.Expect(p.sched.timers).To(BeEmpty())
	g.Expect(p.form.Phase()).To(Equal(form.PhaseIdle))
	autoHide, hideCompletion, submitDelay := p.form.PendingTimers()
	g.Expect(autoHide + hideCompletion + submitDelay).To(BeZero())
}
