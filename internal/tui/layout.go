package tui

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/folio/internal/dom"
	"github.com/csheth/folio/internal/motion"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	fieldWidth     int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 20,
		fieldWidth:     40,
	}
}

// Update recomputes the regions for a window of width x height. footer is
// the number of lines below the viewport.
func (l *pageLayout) Update(width, height, footer int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.fieldWidth = innerWidth - 4
	if l.fieldWidth > maxFieldWidth {
		l.fieldWidth = maxFieldWidth
	}
	// header lines plus the blank separators around the viewport
	const chrome = 2 + 2
	contentHeight := height - chrome - footer
	if contentHeight < 5 {
		contentHeight = 5
	}
	l.viewportHeight = contentHeight
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

// WriteLine writes s and ends the line.
func (cb *contentBuilder) WriteLine(s string) {
	cb.WriteString(s)
	cb.WriteRune('\n')
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

type pageView struct {
	content    string
	anchors    map[string]int
	spans      map[*dom.Element]motion.Span
	focusLines map[*dom.Element]int
}

func (m *model) resize(width, height int) {
	footer := 1 + strings.Count(m.help.View(m.keys), "\n") + 1
	if m.errorMessage != "" {
		footer++
	}
	m.layout.Update(width, height, footer)
	m.help.Width = width
	m.viewport.Width = m.layout.viewportWidth
	m.viewport.Height = m.layout.viewportHeight
	m.nameInput.Width = m.layout.fieldWidth
	m.emailInput.Width = m.layout.fieldWidth
	m.messageInput.SetWidth(m.layout.fieldWidth)
	m.markViewportDirty()
}

// relayout reapplies the last window size after the footer changed height.
func (m *model) relayout() {
	if m.layout.windowWidth > 0 {
		m.resize(m.layout.windowWidth, m.layout.windowHeight)
	}
}

func (m *model) markViewportDirty() {
	m.viewportDirty = true
}

func (m *model) refreshViewportIfDirty() {
	if m.viewportDirty {
		m.refreshViewport()
	}
}

func (m *model) refreshViewport() {
	m.viewportDirty = false
	view := m.buildPageContent()
	m.anchors = view.anchors
	m.spans = view.spans
	m.focusLines = view.focusLines
	offset := m.viewport.YOffset
	m.viewport.SetContent(view.content)
	m.viewport.SetYOffset(offset)
}

func (m *model) maxYOffset() int {
	lines := m.viewport.TotalLineCount()
	if lines <= m.viewport.Height {
		return 0
	}
	return lines - m.viewport.Height
}

// scrollTo moves the viewport to line, smoothly unless motion is reduced.
func (m *model) scrollTo(line int) {
	if line < 0 {
		line = 0
	}
	if limit := m.maxYOffset(); line > limit {
		line = limit
	}
	m.viewport.SetYOffset(m.scroller.ScrollTo(m.viewport.YOffset, line))
}

func (m *model) jumpToSection(anchor string) {
	line, ok := m.anchors[anchor]
	if !ok {
		return
	}
	m.scrollTo(line)
}

func (m *model) ensureLineVisible(line int) {
	switch {
	case line < m.viewport.YOffset:
		m.scroller.Stop()
		m.viewport.SetYOffset(line)
	case line > m.viewport.YOffset+m.viewport.Height-1:
		m.scroller.Stop()
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

func (m *model) wrapWidth(padding int) int {
	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func wrap(text string, width int) string {
	return wordwrap.String(strings.TrimSpace(text), width)
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
