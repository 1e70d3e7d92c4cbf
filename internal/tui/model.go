package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/folio/internal/advice"
	"github.com/csheth/folio/internal/content"
	"github.com/csheth/folio/internal/dom"
	"github.com/csheth/folio/internal/effect"
	"github.com/csheth/folio/internal/form"
	"github.com/csheth/folio/internal/loader"
	"github.com/csheth/folio/internal/motion"
	"github.com/csheth/folio/internal/prefs"
)

const defaultPulse = 500 * time.Millisecond

// Config wires runtime options into the TUI program.
type Config struct {
	Page          content.Page
	Fetcher       advice.Fetcher
	Prefs         prefs.Store
	SystemDark    bool
	ReducedMotion bool
	FormTimings   form.Timings
	Pulse         time.Duration
}

type model struct {
	config Config
	ctx    context.Context
	cancel context.CancelFunc

	layout   pageLayout
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model

	nameInput    textinput.Model
	emailInput   textinput.Model
	messageInput textarea.Model

	page      *page
	loader    *loader.Loader
	form      *form.Form
	engine    *motion.Engine
	reveal    motion.Reveal
	scroller  *motion.Scroller
	scheduler *scheduler
	jobs      *jobBus
	jobState  map[string]jobSnapshot

	theme  prefs.Theme
	styles pageStyles
	pulse  effect.Token

	focusables []*dom.Element
	focus      int

	pendingFrames []effect.Token
	listeners     map[effect.Token]*dom.Element
	ticking       bool

	viewportDirty bool
	anchors       map[string]int
	spans         map[*dom.Element]motion.Span
	focusLines    map[*dom.Element]int

	errorMessage string
	quitting     bool
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Fetcher == nil {
		config.Fetcher = advice.NewClient("", nil)
	}
	if config.Prefs == nil {
		config.Prefs = prefs.NewMemoryStore()
	}
	if config.FormTimings == (form.Timings{}) {
		config.FormTimings = form.DefaultTimings()
	}
	if config.Pulse <= 0 {
		config.Pulse = defaultPulse
	}

	nameInput := textinput.New()
	nameInput.Placeholder = "Your name"
	nameInput.CharLimit = 80
	nameInput.Width = 40

	emailInput := textinput.New()
	emailInput.Placeholder = "name@example.com"
	emailInput.CharLimit = 120
	emailInput.Width = 40

	messageInput := textarea.New()
	messageInput.Placeholder = "What would you like to say?"
	messageInput.CharLimit = 2000
	messageInput.ShowLineNumbers = false
	messageInput.SetWidth(40)
	messageInput.SetHeight(4)

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	ctx, cancel := context.WithCancel(context.Background())
	pg := newPage(config.Page, config.ReducedMotion)
	theme := prefs.ResolveTheme(config.Prefs, config.SystemDark)

	m := &model{
		config:        config,
		ctx:           ctx,
		cancel:        cancel,
		layout:        newPageLayout(),
		keys:          newKeyMap(),
		help:          help.New(),
		spinner:       spin,
		viewport:      vp,
		nameInput:     nameInput,
		emailInput:    emailInput,
		messageInput:  messageInput,
		page:          pg,
		loader:        loader.New(pg.adviceText, pg.adviceStatus, pg.adviceRefresh),
		form:          form.New(pg.fields, pg.banner, config.FormTimings),
		engine:        motion.NewEngine(config.ReducedMotion),
		scroller:      motion.NewScroller(config.ReducedMotion),
		scheduler:     newScheduler(),
		jobs:          newJobBus(ctx),
		jobState:      map[string]jobSnapshot{},
		focusables:    pg.focusables(),
		focus:         -1,
		listeners:     map[effect.Token]*dom.Element{},
		viewportDirty: true,
		anchors:       map[string]int{},
		spans:         map[*dom.Element]motion.Span{},
		focusLines:    map[*dom.Element]int{},
	}
	m.setTheme(theme)

	for _, s := range pg.sections {
		m.reveal.Observe(s.el, config.ReducedMotion)
		m.engine.Track(s.el, motion.Opacity)
	}
	for _, card := range pg.projects {
		m.engine.Track(card.content, motion.Opacity, motion.Height)
	}
	m.engine.Track(pg.banner, motion.Opacity)
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		m.apply(m.loader.Load(loader.Auto)),
		m.scheduler.Wait(),
		textinput.Blink,
	)
}

// Update handles msg and then brings layout-derived state up to date: the
// viewport content, the reveal observer and the frame loop.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.quitting {
		return m, cmd
	}
	m.refreshViewportIfDirty()
	m.updateReveal()
	return m, tea.Batch(cmd, m.ensureTicking())
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.scroller.Stop()
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return nil
	case frameMsg:
		return m.handleFrame()
	case timerFiredMsg:
		return tea.Batch(m.handleTimer(msg), m.scheduler.Wait())
	case jobSignalMsg:
		m.jobState[msg.Snapshot.ID] = msg.Snapshot
		return nil
	case jobResultEnvelope:
		delete(m.jobState, msg.Snapshot.ID)
		if msg.Payload == nil {
			return nil
		}
		return m.update(msg.Payload)
	case adviceResultMsg:
		if m.loader.Resolve(msg.epoch, msg.result) {
			m.markViewportDirty()
		}
		return nil
	case themeSavedMsg:
		if msg.err != nil {
			slog.Warn("theme not saved", "theme", string(msg.theme), "error", msg.err)
			m.errorMessage = "Could not save theme: " + msg.err.Error()
		} else {
			m.errorMessage = ""
		}
		m.relayout()
		return nil
	case spinner.TickMsg:
		if !m.loader.Busy() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.markViewportDirty()
		return cmd
	}
	return m.updateFocusedInput(msg)
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	focused := m.focused()
	_, editing := m.page.fieldFor(focused)

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)
	case key.Matches(msg, m.keys.Submit):
		return m.apply(m.form.Submit())
	case editing && key.Matches(msg, m.keys.Leave):
		return m.setFocus(-1)
	case editing:
		return m.handleFieldKey(msg)
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Activate):
		return m.activate(focused)
	case key.Matches(msg, m.keys.Leave):
		return m.setFocus(-1)
	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()
	case key.Matches(msg, m.keys.Refresh):
		return m.refreshAdvice()
	case key.Matches(msg, m.keys.Sections):
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(sectionSequence) {
			m.jumpToSection(sectionSequence[idx])
		}
		return nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return nil
	case key.Matches(msg, m.keys.Up):
		m.scroller.Stop()
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.scroller.Stop()
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scroller.Stop()
		m.viewport.ViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.scroller.Stop()
		m.viewport.ViewDown()
	case key.Matches(msg, m.keys.Top):
		m.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.scrollTo(m.maxYOffset())
	}
	return nil
}

// handleFieldKey feeds a key to the focused form input and reports the new
// value to the form.
func (m *model) handleFieldKey(msg tea.KeyMsg) tea.Cmd {
	field, _ := m.page.fieldFor(m.focused())
	if msg.Type == tea.KeyEnter && field != form.Message {
		return m.moveFocus(1)
	}
	before := m.fieldValue(field)
	cmd := m.updateFocusedInput(msg)
	after := m.fieldValue(field)
	if after == before {
		return cmd
	}
	return tea.Batch(cmd, m.apply(m.form.Input(field, after)))
}

func (m *model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	field, ok := m.page.fieldFor(m.focused())
	if !ok {
		return nil
	}
	var cmd tea.Cmd
	switch field {
	case form.Name:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case form.Email:
		m.emailInput, cmd = m.emailInput.Update(msg)
	case form.Message:
		m.messageInput, cmd = m.messageInput.Update(msg)
	}
	m.markViewportDirty()
	return cmd
}

func (m *model) fieldValue(field form.Field) string {
	switch field {
	case form.Name:
		return m.nameInput.Value()
	case form.Email:
		return m.emailInput.Value()
	case form.Message:
		return m.messageInput.Value()
	}
	return ""
}

// syncInputs copies values the form changed on its own, such as the reset
// after a successful send, back into the input widgets.
func (m *model) syncInputs() {
	for _, field := range form.Fields {
		want := m.page.fields[field].Input.Text
		if m.fieldValue(field) == want {
			continue
		}
		switch field {
		case form.Name:
			m.nameInput.SetValue(want)
		case form.Email:
			m.emailInput.SetValue(want)
		case form.Message:
			m.messageInput.SetValue(want)
		}
	}
}

func (m *model) activate(el *dom.Element) tea.Cmd {
	switch {
	case el == nil:
		return nil
	case el == m.page.themeToggle:
		return m.toggleTheme()
	case el == m.page.adviceRefresh:
		return m.refreshAdvice()
	case el == m.page.submit:
		return m.apply(m.form.Submit())
	}
	if card := m.page.projectFor(el); card != nil {
		return m.apply(card.panel.Toggle())
	}
	return nil
}

func (m *model) refreshAdvice() tea.Cmd {
	if m.loader.Busy() {
		return nil
	}
	return m.apply(m.loader.Load(loader.Manual))
}

func (m *model) focused() *dom.Element {
	if m.focus < 0 || m.focus >= len(m.focusables) {
		return nil
	}
	return m.focusables[m.focus]
}

func (m *model) moveFocus(delta int) tea.Cmd {
	n := len(m.focusables)
	next := m.focus + delta
	switch {
	case m.focus < 0 && delta < 0:
		next = n - 1
	case next < 0:
		next = n - 1
	case next >= n:
		next = 0
	}
	return m.setFocus(next)
}

// setFocus moves focus to index idx, or clears it when idx is negative.
// Leaving a form input blurs it, which enforces required fields.
func (m *model) setFocus(idx int) tea.Cmd {
	if idx == m.focus {
		return nil
	}
	var cmds []tea.Cmd
	if field, ok := m.page.fieldFor(m.focused()); ok {
		m.blurInput(field)
		cmds = append(cmds, m.apply(m.form.Blur(field)))
	}
	m.focus = idx
	if field, ok := m.page.fieldFor(m.focused()); ok {
		cmds = append(cmds, m.focusInput(field))
	}
	m.markViewportDirty()
	m.refreshViewportIfDirty()
	if line, ok := m.focusLines[m.focused()]; ok {
		m.ensureLineVisible(line)
	}
	return tea.Batch(cmds...)
}

func (m *model) focusElement(el *dom.Element) tea.Cmd {
	for i, candidate := range m.focusables {
		if candidate == el {
			return m.setFocus(i)
		}
	}
	return nil
}

func (m *model) focusInput(field form.Field) tea.Cmd {
	switch field {
	case form.Name:
		return m.nameInput.Focus()
	case form.Email:
		return m.emailInput.Focus()
	case form.Message:
		return m.messageInput.Focus()
	}
	return nil
}

func (m *model) blurInput(field form.Field) {
	switch field {
	case form.Name:
		m.nameInput.Blur()
	case form.Email:
		m.emailInput.Blur()
	case form.Message:
		m.messageInput.Blur()
	}
}

func (m *model) setTheme(theme prefs.Theme) {
	m.theme = theme
	m.styles = newPageStyles(theme)
	m.page.themeToggle.SetBoolAttr(dom.AttrPressed, theme == prefs.Dark)
	m.markViewportDirty()
}

// toggleTheme switches theme, saves it and pulses the toggle. A pulse still
// running is restarted.
func (m *model) toggleTheme() tea.Cmd {
	next := m.theme.Toggle()
	m.setTheme(next)

	var effects []effect.Effect
	if m.pulse != 0 {
		effects = append(effects, effect.CancelTimer{Token: m.pulse})
	}
	m.pulse = effect.NextToken()
	m.page.themeToggle.AddClass(classPulse)
	effects = append(effects, effect.Timer{Name: "theme-pulse", Token: m.pulse, Delay: m.config.Pulse})

	return tea.Batch(m.apply(effects), m.jobs.Start(jobKindSaveTheme, saveThemeJob(m.config.Prefs, next)))
}

func (m *model) handleTimer(msg timerFiredMsg) tea.Cmd {
	if msg.token != 0 && msg.token == m.pulse {
		m.pulse = 0
		m.page.themeToggle.RemoveClass(classPulse)
		m.markViewportDirty()
		return nil
	}
	return m.apply(m.form.TimerFired(msg.token))
}

// handleFrame delivers frame callbacks, advances the animations and hands
// finished transitions to the listeners registered for their element.
func (m *model) handleFrame() tea.Cmd {
	m.ticking = false
	frames := m.pendingFrames
	m.pendingFrames = nil

	var effects []effect.Effect
	for _, token := range frames {
		for _, card := range m.page.projects {
			effects = append(effects, card.panel.FrameReady(token)...)
		}
		effects = append(effects, m.form.FrameReady(token)...)
	}
	for _, end := range m.engine.Step() {
		for token, target := range m.listeners {
			if target != end.Target {
				continue
			}
			for _, card := range m.page.projects {
				effects = append(effects, card.panel.TransitionEnd(token, string(end.Property))...)
			}
		}
	}
	if m.scroller.Active() {
		m.viewport.SetYOffset(m.scroller.Step())
	}
	m.markViewportDirty()
	return m.apply(effects)
}

// apply executes widget effects.
func (m *model) apply(effects []effect.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		switch e := eff.(type) {
		case effect.Frame:
			m.pendingFrames = append(m.pendingFrames, e.Token)
		case effect.AwaitTransition:
			m.listeners[e.Token] = e.Target
		case effect.CancelTransition:
			delete(m.listeners, e.Token)
		case effect.Timer:
			m.scheduler.Schedule(e)
		case effect.CancelTimer:
			m.scheduler.Cancel(e.Token)
		case effect.Fetch:
			cmds = append(cmds, m.jobs.Start(jobKindAdvice, fetchAdviceJob(m.config.Fetcher, e.Epoch)), m.spinner.Tick)
		case effect.Focus:
			cmds = append(cmds, m.focusElement(e.Target))
		}
	}
	m.syncInputs()
	m.markViewportDirty()
	return tea.Batch(cmds...)
}

// ensureTicking starts the frame loop when something is waiting on a frame.
func (m *model) ensureTicking() tea.Cmd {
	if m.ticking || m.quitting {
		return nil
	}
	if len(m.pendingFrames) == 0 && !m.engine.Active() && !m.scroller.Active() {
		return nil
	}
	m.ticking = true
	return tea.Tick(motion.FrameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m *model) updateReveal() {
	if m.reveal.Pending() == 0 {
		return
	}
	if revealed := m.reveal.Update(m.viewport.YOffset, m.viewport.Height, m.spans); len(revealed) > 0 {
		m.markViewportDirty()
	}
}

func (m *model) quit() tea.Cmd {
	m.teardown()
	return tea.Quit
}

// teardown deregisters every callback the widgets still wait on and stops
// the timers and jobs behind them.
func (m *model) teardown() {
	if m.quitting {
		return
	}
	var effects []effect.Effect
	for _, card := range m.page.projects {
		effects = append(effects, card.panel.Teardown()...)
	}
	m.loader.Teardown()
	effects = append(effects, m.form.Teardown()...)
	if m.pulse != 0 {
		effects = append(effects, effect.CancelTimer{Token: m.pulse})
		m.pulse = 0
	}
	m.apply(effects)
	m.quitting = true
	m.pendingFrames = nil
	m.scheduler.Stop()
	m.cancel()
}
