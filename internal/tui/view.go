package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/csheth/folio/internal/dom"
	"github.com/csheth/folio/internal/form"
	"github.com/csheth/folio/internal/loader"
	"github.com/csheth/folio/internal/motion"
	"github.com/csheth/folio/internal/prefs"
)

func (m *model) View() string {
	m.refreshViewportIfDirty()
	return joinNonEmpty([]string{m.headerView(), m.viewport.View(), m.footerView()})
}

func (m *model) headerView() string {
	name := m.styles.name.Render(m.config.Page.Name)
	header := lipgloss.JoinHorizontal(lipgloss.Top, name, "  ", m.themeToggleView())
	return header + "\n" + m.styles.tagline.Render(m.config.Page.Tagline)
}

func (m *model) themeToggleView() string {
	label := "[ ☀ light ]"
	if m.theme == prefs.Dark {
		label = "[ ☾ dark ]"
	}
	toggle := m.page.themeToggle
	switch {
	case toggle == m.focused():
		return m.styles.focused.Render(label)
	case toggle.HasClass(classPulse):
		return pulseStyle.Render(label)
	default:
		return m.styles.button.Render(label)
	}
}

func (m *model) footerView() string {
	lines := []string{m.statusBarView()}
	if m.errorMessage != "" {
		lines = append(lines, m.styles.errorText.Render(m.errorMessage))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m *model) statusBarView() string {
	stats := []string{fmt.Sprintf("Theme %s", m.theme)}
	if m.config.ReducedMotion {
		stats = append(stats, "Motion reduced")
	}
	if el := m.focused(); el != nil {
		stats = append(stats, "Focus "+el.ID)
	}
	stats = append(stats, m.jobStatusBadges()...)
	return statusBarStyle.Render(strings.Join(stats, "  •  "))
}

func (m *model) jobStatusBadges() []string {
	var badges []string
	for _, job := range m.jobState {
		if job.Status == jobStatusRunning {
			badges = append(badges, string(job.Kind)+"…")
		}
	}
	sort.Strings(badges)
	return badges
}

// button renders an activatable element. Focus wins over the disabled look.
func (m *model) button(el *dom.Element, label string) string {
	text := "[ " + label + " ]"
	switch {
	case el == m.focused():
		return m.styles.focused.Render(text)
	case el.BoolAttr(dom.AttrDisabled):
		return m.styles.disabled.Render(text)
	default:
		return m.styles.button.Render(text)
	}
}

func (m *model) buildPageContent() pageView {
	cb := &contentBuilder{}
	view := pageView{
		anchors:    map[string]int{},
		spans:      map[*dom.Element]motion.Span{},
		focusLines: map[*dom.Element]int{},
	}
	width := m.wrapWidth(4)
	for i, s := range m.page.sections {
		if i > 0 {
			cb.WriteRune('\n')
		}
		start := cb.Line()
		view.anchors[s.anchor] = start
		opacity := m.engine.Value(s.el, motion.Opacity)
		header := m.styles.sectionHeader.Foreground(lipgloss.Color(blend(m.styles.palette.Background, m.styles.palette.Accent, opacity)))
		cb.WriteLine(header.Render(s.title))
		switch s.anchor {
		case anchorAbout:
			cb.WriteLine(m.styles.fade(indentMultiline(wrap(m.config.Page.About, width), "  "), m.styles.palette.Foreground, opacity))
		case anchorProjects:
			m.writeProjects(cb, &view, opacity, width)
		case anchorAdvice:
			m.writeAdvice(cb, &view, opacity, width)
		case anchorContact:
			m.writeContact(cb, &view)
		}
		view.spans[s.el] = motion.Span{Top: start, Height: cb.Line() - start}
	}
	view.content = strings.TrimSuffix(cb.String(), "\n")
	return view
}

type styledLine struct {
	text  string
	color string
}

func (m *model) writeProjects(cb *contentBuilder, view *pageView, opacity float64, width int) {
	p := m.styles.palette
	if !m.page.empty.Hidden {
		cb.WriteLine("  " + m.styles.fade(m.page.empty.Text, p.Muted, opacity))
		return
	}
	for _, card := range m.page.projects {
		marker := "▸"
		if card.toggle.BoolAttr(dom.AttrExpanded) {
			marker = "▾"
		}
		view.focusLines[card.toggle] = cb.Line()
		cb.WriteLine("  " + m.button(card.toggle, marker+" "+card.project.Title))
		if summary := strings.TrimSpace(card.project.Summary); summary != "" {
			cb.WriteLine(m.styles.fade(indentMultiline(wrap(summary, width-2), "    "), p.Muted, opacity))
		}
		if card.content.Hidden {
			continue
		}
		var lines []styledLine
		for _, line := range strings.Split(wrap(card.project.Body, width-2), "\n") {
			lines = append(lines, styledLine{text: "    " + line, color: p.Foreground})
		}
		if len(card.project.Tags) > 0 {
			lines = append(lines, styledLine{text: "    #" + strings.Join(card.project.Tags, " #"), color: p.Info})
		}
		shown := int(math.Ceil(m.engine.Value(card.content, motion.Height) * float64(len(lines))))
		fade := m.engine.Value(card.content, motion.Opacity) * opacity
		for _, line := range lines[:shown] {
			cb.WriteLine(m.styles.fade(line.text, line.color, fade))
		}
	}
}

func (m *model) writeAdvice(cb *contentBuilder, view *pageView, opacity float64, width int) {
	p := m.styles.palette
	cb.WriteLine(m.styles.fade(indentMultiline(wrap(m.page.adviceText.Text, width), "  "), p.Foreground, opacity))

	status := m.page.adviceStatus.Text
	color := p.Muted
	if m.page.adviceStatus.HasClass(dom.ClassError) {
		color = p.Error
	}
	if state := m.loader.State(); state.Phase == loader.Success && !state.FetchedAt.IsZero() {
		status += " Fetched " + humanize.Time(state.FetchedAt) + "."
	}
	cb.WriteLine("  " + m.styles.fade(status, color, opacity))

	label := "New advice"
	if m.loader.Busy() {
		label = m.spinner.View() + " Loading"
	}
	view.focusLines[m.page.adviceRefresh] = cb.Line()
	cb.WriteLine("  " + m.button(m.page.adviceRefresh, label))
}

func (m *model) writeContact(cb *contentBuilder, view *pageView) {
	for _, field := range form.Fields {
		binding := m.page.fields[field]
		label := m.styles.label
		if binding.Input.BoolAttr(dom.AttrInvalid) {
			label = m.styles.invalidLabel
		}
		marker := "  "
		if binding.Input == m.focused() {
			marker = m.styles.name.Render("› ")
		}
		view.focusLines[binding.Input] = cb.Line()
		cb.WriteLine(marker + label.Render(fieldLabel(field)))
		cb.WriteLine(indentMultiline(m.inputView(field), "  "))
		if !binding.Error.Hidden {
			cb.WriteLine("  " + m.styles.errorText.Render(binding.Error.Text))
		}
	}
	view.focusLines[m.page.submit] = cb.Line()
	cb.WriteLine("  " + m.button(m.page.submit, "Send message"))

	banner := m.page.banner
	if banner.Hidden {
		return
	}
	p := m.styles.palette
	color := p.Info
	switch {
	case banner.HasClass(dom.ClassError):
		color = p.Error
	case banner.HasClass(dom.ClassSuccess):
		color = p.Success
	}
	cb.WriteLine("  " + m.styles.fade(banner.Text, color, m.engine.Value(banner, motion.Opacity)))
}

func (m *model) inputView(field form.Field) string {
	switch field {
	case form.Name:
		return m.nameInput.View()
	case form.Email:
		return m.emailInput.View()
	default:
		return m.messageInput.View()
	}
}

func fieldLabel(field form.Field) string {
	switch field {
	case form.Name:
		return "Name"
	case form.Email:
		return "Email"
	default:
		return "Message"
	}
}

func joinNonEmpty(parts []string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "\n\n")
}
