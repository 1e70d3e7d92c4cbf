package tui

import (
	"fmt"

	"github.com/csheth/folio/internal/content"
	"github.com/csheth/folio/internal/dom"
	"github.com/csheth/folio/internal/form"
	"github.com/csheth/folio/internal/panel"
)

type section struct {
	anchor string
	title  string
	el     *dom.Element
}

type projectCard struct {
	project content.Project
	card    *dom.Element
	toggle  *dom.Element
	content *dom.Element
	panel   *panel.Controller
}

// page holds every element the widgets act on. Rendering reads them back.
type page struct {
	themeToggle *dom.Element
	sections    []*section

	projects []*projectCard
	empty    *dom.Element

	adviceText    *dom.Element
	adviceStatus  *dom.Element
	adviceRefresh *dom.Element

	fields map[form.Field]form.Binding
	banner *dom.Element
	submit *dom.Element
}

func newPage(c content.Page, reducedMotion bool) *page {
	p := &page{
		themeToggle:   dom.New("theme-toggle"),
		empty:         dom.New("projects-empty"),
		adviceText:    dom.New("advice-text"),
		adviceStatus:  dom.New("advice-status"),
		adviceRefresh: dom.New("advice-refresh"),
		fields:        map[form.Field]form.Binding{},
		banner:        dom.New("form-status"),
		submit:        dom.New("contact-submit"),
	}
	p.empty.Hidden = true
	p.empty.Text = emptyProjectsText

	titles := map[string]string{
		anchorAbout:    "About",
		anchorProjects: "Projects",
		anchorAdvice:   "Advice of the day",
		anchorContact:  "Contact",
	}
	for _, anchor := range sectionSequence {
		p.sections = append(p.sections, &section{anchor: anchor, title: titles[anchor], el: dom.New(anchor)})
	}

	for i, project := range c.Projects {
		id := fmt.Sprintf("project-%d", i+1)
		card := &projectCard{
			project: project,
			card:    dom.New(id),
			toggle:  dom.New(id + "-toggle"),
			content: dom.New(id + "-content"),
		}
		card.toggle.SetBoolAttr(dom.AttrExpanded, project.StartExpanded)
		card.panel = panel.New(card.toggle, card.content, card.card, reducedMotion)
		p.projects = append(p.projects, card)
	}
	panel.Placeholder(p.empty, len(p.projects))

	for _, field := range form.Fields {
		p.fields[field] = form.Binding{
			Input: dom.New("contact-" + field.String()),
			Error: dom.New("contact-" + field.String() + "-error"),
		}
	}
	return p
}

func (p *page) section(anchor string) *section {
	for _, s := range p.sections {
		if s.anchor == anchor {
			return s
		}
	}
	return nil
}

// focusables lists the interactive elements in tab order.
func (p *page) focusables() []*dom.Element {
	elements := []*dom.Element{p.themeToggle}
	for _, card := range p.projects {
		elements = append(elements, card.toggle)
	}
	elements = append(elements, p.adviceRefresh)
	for _, field := range form.Fields {
		elements = append(elements, p.fields[field].Input)
	}
	return append(elements, p.submit)
}

// fieldFor reports which form field el is the input of.
func (p *page) fieldFor(el *dom.Element) (form.Field, bool) {
	for _, field := range form.Fields {
		if p.fields[field].Input == el {
			return field, true
		}
	}
	return 0, false
}

func (p *page) projectFor(el *dom.Element) *projectCard {
	for _, card := range p.projects {
		if card.toggle == el {
			return card
		}
	}
	return nil
}
